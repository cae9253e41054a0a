// Package storagetest holds the behaviour every storage.UserStore implementation must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/user-directory/internal/models"
	"github.com/hongminglow/user-directory/internal/storage"
)

// Run exercises store created by newStore. newStore must return an empty users table.
func Run(t *testing.T, newStore func(t *testing.T) storage.UserStore) {
	t.Run("CreateThenGet", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateUser(ctx, models.User{Name: "Ana", Email: "ana@x.com"})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Nil(t, created.Phone)

		got, err := store.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("UpdateReplacesFields", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateUser(ctx, models.User{Name: "Ana", Email: "ana@x.com", Phone: Phone("555")})
		require.NoError(t, err)

		updated := models.User{ID: created.ID, Name: "Ana B", Email: "ana@y.com"}
		require.NoError(t, store.UpdateUser(ctx, updated))

		got, err := store.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("UpdateSameValues", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateUser(ctx, models.User{Name: "Ana", Email: "ana@x.com"})
		require.NoError(t, err)
		assert.NoError(t, store.UpdateUser(ctx, created))
	})

	t.Run("MissingIDs", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.GetUser(ctx, 999)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.UpdateUser(ctx, models.User{ID: 999, Name: "x", Email: "y"}), storage.ErrNotFound)
		assert.ErrorIs(t, store.DeleteUser(ctx, 999), storage.ErrNotFound)
	})

	t.Run("DeleteThenGet", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateUser(ctx, models.User{Name: "Ana", Email: "ana@x.com"})
		require.NoError(t, err)
		require.NoError(t, store.DeleteUser(ctx, created.ID))

		_, err = store.GetUser(ctx, created.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.DeleteUser(ctx, created.ID), storage.ErrNotFound)
	})

	t.Run("ListOrderAndIDsNotReused", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)

		a, err := store.CreateUser(ctx, models.User{Name: "A", Email: "a@x.com"})
		require.NoError(t, err)
		b, err := store.CreateUser(ctx, models.User{Name: "B", Email: "b@x.com"})
		require.NoError(t, err)
		require.NoError(t, store.DeleteUser(ctx, b.ID))
		c, err := store.CreateUser(ctx, models.User{Name: "C", Email: "c@x.com"})
		require.NoError(t, err)

		assert.Greater(t, c.ID, b.ID)

		users, err = store.ListUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.User{a, c}, users)
	})
}

// Phone returns a pointer to p.
func Phone(p string) *string {
	return &p
}
