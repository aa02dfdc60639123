package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every caller; a *validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()

// ErrInvalidID is returned by ValidateTankID for a path id that can never
// match a stored tank.
var ErrInvalidID = errors.New("invalid id: must be a 24 character hex ObjectID")

// DecodeProfile reads a Profile from a JSON request body.
//
// An empty body is valid and yields an empty Profile. Unknown fields are
// ignored. Any id sent by the client is dropped: profile ids are always
// generated server-side.
func DecodeProfile(body io.Reader) (Profile, error) {
	var p Profile
	if err := decode(body, &p); err != nil {
		return Profile{}, err
	}
	p.ID = nil
	return p, nil
}

// DecodeTank reads a Tank from a JSON request body. Same rules as
// DecodeProfile; the id always comes from the store or the URL path.
func DecodeTank(body io.Reader) (Tank, error) {
	var t Tank
	if err := decode(body, &t); err != nil {
		return Tank{}, err
	}
	t.ID = nil
	return t, nil
}

// ValidateTankID checks that id has the shape of a MongoDB ObjectID.
func ValidateTankID(id string) error {
	if err := validate.Var(id, "required,mongodb"); err != nil {
		return ErrInvalidID
	}
	return nil
}

func decode(body io.Reader, v any) error {
	if body == nil {
		return nil
	}
	err := json.NewDecoder(body).Decode(v)
	if errors.Is(err, io.EOF) {
		// nothing to decode, every field stays nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
