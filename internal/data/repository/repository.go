package repository

import (
	"errors"

	"moodflix/pkg/database"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

var (
	// ErrPersistence wraps every storage failure surfaced to services.
	ErrPersistence = errors.New("persistence error")
	// ErrDuplicateEmail is returned by UserRepository.Create.
	ErrDuplicateEmail = errors.New("email already registered")
)

type Repository struct {
	User     UserRepository
	Favorite FavoriteRepository
	History  HistoryRepository
}

// NewRepository wires the postgres-backed stores.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Favorite: NewFavoriteRepository(db, log),
		History:  NewHistoryRepository(db, log),
	}
}

// NewMemoryRepository wires process-local stores. Nothing survives a restart.
func NewMemoryRepository() *Repository {
	return &Repository{
		User:     NewMemoryUserRepository(),
		Favorite: NewMemoryFavoriteRepository(),
		History:  NewMemoryHistoryRepository(),
	}
}

// NewBadgerRepository wires stores on an embedded badger database.
func NewBadgerRepository(db *badger.DB, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewBadgerUserRepository(db, log),
		Favorite: NewBadgerFavoriteRepository(db, log),
		History:  NewBadgerHistoryRepository(db, log),
	}
}
