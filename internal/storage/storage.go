// Package storage defines the Storage interface, the contract every
// document store backend must satisfy to serve the API.
//
// Handlers only ever see this interface. main.go builds exactly one
// backend at startup (MongoDB or SQLite, picked by config) and injects it
// into every handler, so no package holds a global connection.
//
// Each method is one round trip to the store. Methods that look a record up
// by id return ErrNotFound when nothing matched; every other failure is
// returned wrapped.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/tank-man-api/internal/types"
)

// Collection names, shared by all backends.
const (
	ProfilesCollection = "profiles"
	TanksCollection    = "tanks"
)

// TankListLimit caps the number of tanks returned by GetTanks.
const TankListLimit = 999

// ErrNotFound is returned when a lookup, update or delete matched no record.
var ErrNotFound = errors.New("not found")

type Storage interface {
	// CreateProfile stores p under p.ID, which the caller must have set.
	CreateProfile(ctx context.Context, p types.Profile) error

	// GetProfile returns any one stored profile, or ErrNotFound when the
	// collection is empty.
	GetProfile(ctx context.Context) (types.Profile, error)

	// CreateTank stores t and returns the id the store assigned to it.
	CreateTank(ctx context.Context, t types.Tank) (string, error)

	// GetTankByID fetches a single tank by its store-assigned id.
	GetTankByID(ctx context.Context, id string) (types.Tank, error)

	// GetTanks returns up to limit tanks in insertion order. Returns an
	// empty slice (not nil) when there are none.
	GetTanks(ctx context.Context, limit int64) ([]types.Tank, error)

	// ReplaceTankByID overwrites every field of the tank with id.
	// Fields that are nil in t are stored as null.
	ReplaceTankByID(ctx context.Context, id string, t types.Tank) error

	// DeleteTankByID removes the tank with id.
	DeleteTankByID(ctx context.Context, id string) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
