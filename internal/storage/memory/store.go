package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-memdb"

	"github.com/hongminglow/user-directory/internal/models"
	"github.com/hongminglow/user-directory/internal/storage"
)

const usersTable = "users"

var _ storage.UserStore = (*Store)(nil)

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			usersTable: {
				Name: usersTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}
}

// Store keeps users in process memory. Ids start at 1 and are never reused.
type Store struct {
	db *memdb.MemDB

	mu     sync.Mutex
	nextID int64
}

// NewUserStore creates an empty Store.
func NewUserStore() (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("create memdb: %w", err)
	}
	return &Store{db: db, nextID: 1}, nil
}

// Close is a no-op; the data lives as long as the Store.
func (s *Store) Close() {}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// ListUsers returns every user ordered by id.
func (s *Store) ListUsers(context.Context) ([]models.User, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(usersTable, "id")
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		users = append(users, obj.(*models.User).Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(_ context.Context, id int64) (models.User, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	obj, err := txn.First(usersTable, "id", id)
	if err != nil {
		return models.User{}, err
	}
	if obj == nil {
		return models.User{}, storage.ErrNotFound
	}
	return obj.(*models.User).Clone(), nil
}

// CreateUser stores a copy of user under the next id.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := user.Clone()
	record.ID = s.nextID

	txn := s.db.Txn(true)
	if err := txn.Insert(usersTable, &record); err != nil {
		txn.Abort()
		return models.User{}, err
	}
	txn.Commit()
	s.nextID++
	return record.Clone(), nil
}

// UpdateUser overwrites name, email and phone for the given id.
func (s *Store) UpdateUser(_ context.Context, user models.User) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(usersTable, "id", user.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return storage.ErrNotFound
	}
	record := user.Clone()
	if err := txn.Insert(usersTable, &record); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// DeleteUser removes the user with the given id.
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(usersTable, "id", id)
	if err != nil {
		return err
	}
	if existing == nil {
		return storage.ErrNotFound
	}
	if err := txn.Delete(usersTable, existing); err != nil {
		return err
	}
	txn.Commit()
	return nil
}
