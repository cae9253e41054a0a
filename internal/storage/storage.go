package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/user-directory/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserStore captures persistence operations needed by handlers.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	// CreateUser inserts the record and returns it with the id assigned by the store.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// UpdateUser replaces name, email and phone of the record with user.ID.
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close()
}

