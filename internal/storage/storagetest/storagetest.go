// Package storagetest holds the behaviour every storage.Storage backend must
// share. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/tank-man-api/internal/storage"
	"github.com/aanand-mishra/tank-man-api/internal/types"
)

// missingID is a well-formed ObjectID that no test ever stores.
const missingID = "000000000000000000000000"

// Run executes the contract against stores returned by newStore. Each
// subtest gets a fresh, empty store.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	t.Run("GetProfileEmpty", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetProfile(context.Background())
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ProfileRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		p := types.Profile{
			ID:       types.String(uuid.NewString()),
			Username: types.String("ada"),
			Color:    types.String("teal"),
		}
		require.NoError(t, s.CreateProfile(ctx, p))

		got, err := s.GetProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.Nil(t, got.Role)
	})

	t.Run("CreateProfileWithoutID", func(t *testing.T) {
		s := newStore(t)

		err := s.CreateProfile(context.Background(), types.Profile{Username: types.String("ada")})
		assert.Error(t, err)
	})

	t.Run("TankRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := types.Tank{
			Location: types.String("north field"),
			Lat:      types.Float(52.52),
			Long:     types.Float(13.405),
		}
		id, err := s.CreateTank(ctx, in)
		require.NoError(t, err)
		require.NoError(t, types.ValidateTankID(id))

		got, err := s.GetTankByID(ctx, id)
		require.NoError(t, err)

		in.ID = types.String(id)
		assert.Equal(t, in, got)
	})

	t.Run("EmptyTank", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.CreateTank(ctx, types.Tank{})
		require.NoError(t, err)

		got, err := s.GetTankByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, types.Tank{ID: types.String(id)}, got)
	})

	t.Run("GetTankMissing", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetTankByID(context.Background(), missingID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("GetTanks", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		tanks, err := s.GetTanks(ctx, storage.TankListLimit)
		require.NoError(t, err)
		assert.NotNil(t, tanks)
		assert.Empty(t, tanks)

		var ids []string
		for _, loc := range []string{"a", "b", "c"} {
			id, err := s.CreateTank(ctx, types.Tank{Location: types.String(loc)})
			require.NoError(t, err)
			ids = append(ids, id)
		}

		tanks, err = s.GetTanks(ctx, storage.TankListLimit)
		require.NoError(t, err)
		require.Len(t, tanks, 3)
		for i, tank := range tanks {
			assert.Equal(t, ids[i], *tank.ID)
		}

		tanks, err = s.GetTanks(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, tanks, 2)
	})

	t.Run("ReplaceTank", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.CreateTank(ctx, types.Tank{
			Location: types.String("roof"),
			Lat:      types.Float(1),
			Long:     types.Float(2),
		})
		require.NoError(t, err)

		// full replacement: long is not sent, so it is cleared
		update := types.Tank{Location: types.String("cellar"), Lat: types.Float(3)}
		require.NoError(t, s.ReplaceTankByID(ctx, id, update))

		got, err := s.GetTankByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "cellar", *got.Location)
		assert.Equal(t, 3.0, *got.Lat)
		assert.Nil(t, got.Long)

		// same values again still counts as a match
		assert.NoError(t, s.ReplaceTankByID(ctx, id, update))
	})

	t.Run("ReplaceTankMissing", func(t *testing.T) {
		s := newStore(t)

		err := s.ReplaceTankByID(context.Background(), missingID, types.Tank{})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("DeleteTank", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.CreateTank(ctx, types.Tank{Location: types.String("gone")})
		require.NoError(t, err)

		require.NoError(t, s.DeleteTankByID(ctx, id))

		_, err = s.GetTankByID(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		assert.ErrorIs(t, s.DeleteTankByID(ctx, id), storage.ErrNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(context.Background()))
	})
}
