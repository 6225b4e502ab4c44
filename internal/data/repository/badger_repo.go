package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moodflix/internal/data/entity"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Key prefixes for BadgerDB storage. Favorites and history are one JSON
// document per owner, updated inside a single serializable transaction.
const (
	favoriteKeyPrefix  = "fav:"
	historyKeyPrefix   = "hist:"
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "user_email:"
)

// badgerUpdate runs fn in a read-write transaction, retrying once when a
// concurrent writer touched the same keys.
func badgerUpdate(db *badger.DB, fn func(txn *badger.Txn) error) error {
	err := db.Update(fn)
	if errors.Is(err, badger.ErrConflict) {
		err = db.Update(fn)
	}
	return err
}

// readJSON decodes key into dst. It reports false when the key is absent.
func readJSON(txn *badger.Txn, key []byte, dst any) (bool, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, item.Value(func(val []byte) error {
		return json.Unmarshal(val, dst)
	})
}

func writeJSON(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set(key, data)
}

// ==================== FAVORITES ====================

type badgerFavoriteRepository struct {
	db  *badger.DB
	log *zap.Logger
}

func NewBadgerFavoriteRepository(db *badger.DB, log *zap.Logger) FavoriteRepository {
	return &badgerFavoriteRepository{
		db:  db,
		log: log.With(zap.String("repository", "favorite"), zap.String("store", "badger")),
	}
}

func (r *badgerFavoriteRepository) load(txn *badger.Txn, owner string) ([]entity.Movie, error) {
	var movies []entity.Movie
	if _, err := readJSON(txn, []byte(favoriteKeyPrefix+owner), &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *badgerFavoriteRepository) List(_ context.Context, owner string) ([]entity.Movie, error) {
	var movies []entity.Movie
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		movies, err = r.load(txn, owner)
		return err
	})
	if err != nil {
		r.log.Error("Failed to list favorites", zap.Error(err), zap.String("owner", owner))
		return nil, fmt.Errorf("%w: list favorites: %v", ErrPersistence, err)
	}
	if movies == nil {
		movies = []entity.Movie{}
	}
	return movies, nil
}

func (r *badgerFavoriteRepository) Add(_ context.Context, owner string, movie entity.Movie) (bool, error) {
	var added bool
	err := badgerUpdate(r.db, func(txn *badger.Txn) error {
		added = false
		movies, err := r.load(txn, owner)
		if err != nil {
			return err
		}
		if indexOfMovie(movies, movie.ID) >= 0 {
			return nil
		}
		added = true
		return writeJSON(txn, []byte(favoriteKeyPrefix+owner), append(movies, movie))
	})
	if err != nil {
		r.log.Error("Failed to add favorite",
			zap.Error(err),
			zap.String("owner", owner),
			zap.Int64("movie_id", movie.ID),
		)
		return false, fmt.Errorf("%w: add favorite %d: %v", ErrPersistence, movie.ID, err)
	}
	return added, nil
}

func (r *badgerFavoriteRepository) Remove(_ context.Context, owner string, movieID int64) error {
	err := badgerUpdate(r.db, func(txn *badger.Txn) error {
		movies, err := r.load(txn, owner)
		if err != nil {
			return err
		}
		if indexOfMovie(movies, movieID) < 0 {
			return nil
		}
		return writeJSON(txn, []byte(favoriteKeyPrefix+owner), removeMovie(movies, movieID))
	})
	if err != nil {
		r.log.Error("Failed to remove favorite",
			zap.Error(err),
			zap.String("owner", owner),
			zap.Int64("movie_id", movieID),
		)
		return fmt.Errorf("%w: remove favorite %d: %v", ErrPersistence, movieID, err)
	}
	return nil
}

func (r *badgerFavoriteRepository) Exists(ctx context.Context, owner string, movieID int64) (bool, error) {
	movies, err := r.List(ctx, owner)
	if err != nil {
		return false, err
	}
	return indexOfMovie(movies, movieID) >= 0, nil
}

func (r *badgerFavoriteRepository) Clear(_ context.Context, owner string) error {
	err := badgerUpdate(r.db, func(txn *badger.Txn) error {
		return txn.Delete([]byte(favoriteKeyPrefix + owner))
	})
	if err != nil {
		r.log.Error("Failed to clear favorites", zap.Error(err), zap.String("owner", owner))
		return fmt.Errorf("%w: clear favorites: %v", ErrPersistence, err)
	}
	return nil
}

// ==================== HISTORY ====================

type badgerHistoryRepository struct {
	db  *badger.DB
	log *zap.Logger
}

func NewBadgerHistoryRepository(db *badger.DB, log *zap.Logger) HistoryRepository {
	return &badgerHistoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "history"), zap.String("store", "badger")),
	}
}

func (r *badgerHistoryRepository) load(txn *badger.Txn, owner string) ([]entity.HistoryEntry, error) {
	var entries []entity.HistoryEntry
	if _, err := readJSON(txn, []byte(historyKeyPrefix+owner), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *badgerHistoryRepository) List(_ context.Context, owner string) ([]entity.HistoryEntry, error) {
	var entries []entity.HistoryEntry
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		entries, err = r.load(txn, owner)
		return err
	})
	if err != nil {
		r.log.Error("Failed to list history", zap.Error(err), zap.String("owner", owner))
		return nil, fmt.Errorf("%w: list history: %v", ErrPersistence, err)
	}
	if entries == nil {
		entries = []entity.HistoryEntry{}
	}
	return entries, nil
}

func (r *badgerHistoryRepository) Add(_ context.Context, owner string, entry entity.HistoryEntry, limit int) error {
	err := badgerUpdate(r.db, func(txn *badger.Txn) error {
		entries, err := r.load(txn, owner)
		if err != nil {
			return err
		}
		return writeJSON(txn, []byte(historyKeyPrefix+owner), prependEntry(entries, entry, limit))
	})
	if err != nil {
		r.log.Error("Failed to add history entry",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("id", entry.ID),
		)
		return fmt.Errorf("%w: add history: %v", ErrPersistence, err)
	}
	return nil
}

func (r *badgerHistoryRepository) Remove(_ context.Context, owner string, id string) error {
	err := badgerUpdate(r.db, func(txn *badger.Txn) error {
		entries, err := r.load(txn, owner)
		if err != nil {
			return err
		}
		kept := removeEntry(entries, id)
		if len(kept) == len(entries) {
			return nil
		}
		return writeJSON(txn, []byte(historyKeyPrefix+owner), kept)
	})
	if err != nil {
		r.log.Error("Failed to remove history entry",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("id", id),
		)
		return fmt.Errorf("%w: remove history %s: %v", ErrPersistence, id, err)
	}
	return nil
}

func (r *badgerHistoryRepository) Clear(_ context.Context, owner string) error {
	err := badgerUpdate(r.db, func(txn *badger.Txn) error {
		return txn.Delete([]byte(historyKeyPrefix + owner))
	})
	if err != nil {
		r.log.Error("Failed to clear history", zap.Error(err), zap.String("owner", owner))
		return fmt.Errorf("%w: clear history: %v", ErrPersistence, err)
	}
	return nil
}

// ==================== USERS ====================

type badgerUserRepository struct {
	db  *badger.DB
	log *zap.Logger
}

func NewBadgerUserRepository(db *badger.DB, log *zap.Logger) UserRepository {
	return &badgerUserRepository{
		db:  db,
		log: log.With(zap.String("repository", "user"), zap.String("store", "badger")),
	}
}

func (r *badgerUserRepository) Create(_ context.Context, user *entity.User) error {
	emailKey := []byte(userEmailKeyPrefix + strings.ToLower(user.Email))

	err := badgerUpdate(r.db, func(txn *badger.Txn) error {
		if _, err := txn.Get(emailKey); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := writeJSON(txn, []byte(userKeyPrefix+user.ID.String()), user); err != nil {
			return err
		}
		return txn.Set(emailKey, []byte(user.ID.String()))
	})
	if errors.Is(err, ErrDuplicateEmail) {
		return err
	}
	if err != nil {
		r.log.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("%w: create user %s: %v", ErrPersistence, user.Email, err)
	}
	return nil
}

func (r *badgerUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	var found bool
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = readJSON(txn, []byte(userKeyPrefix+id.String()), &user)
		return err
	})
	if err != nil {
		r.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("%w: find user: %v", ErrPersistence, err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (r *badgerUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var id uuid.UUID
	var found bool
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userEmailKeyPrefix + strings.ToLower(email)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			id, err = uuid.ParseBytes(val)
			return err
		})
	})
	if err != nil {
		r.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("%w: find user: %v", ErrPersistence, err)
	}
	if !found {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}
