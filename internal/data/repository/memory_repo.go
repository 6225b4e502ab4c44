package repository

import (
	"context"
	"strings"
	"sync"

	"moodflix/internal/data/entity"

	"github.com/google/uuid"
)

// Memory stores serialize every operation on one mutex; values are copied in
// and out so callers never share backing arrays with the store.

type memoryFavoriteRepository struct {
	mu   sync.Mutex
	data map[string][]entity.Movie
}

func NewMemoryFavoriteRepository() FavoriteRepository {
	return &memoryFavoriteRepository{data: make(map[string][]entity.Movie)}
}

func (r *memoryFavoriteRepository) List(_ context.Context, owner string) ([]entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.Movie, 0, len(r.data[owner]))
	for _, m := range r.data[owner] {
		out = append(out, cloneMovie(m))
	}
	return out, nil
}

func (r *memoryFavoriteRepository) Add(_ context.Context, owner string, movie entity.Movie) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if indexOfMovie(r.data[owner], movie.ID) >= 0 {
		return false, nil
	}
	r.data[owner] = append(r.data[owner], cloneMovie(movie))
	return true, nil
}

func (r *memoryFavoriteRepository) Remove(_ context.Context, owner string, movieID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[owner] = removeMovie(r.data[owner], movieID)
	return nil
}

func (r *memoryFavoriteRepository) Exists(_ context.Context, owner string, movieID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return indexOfMovie(r.data[owner], movieID) >= 0, nil
}

func (r *memoryFavoriteRepository) Clear(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, owner)
	return nil
}

type memoryHistoryRepository struct {
	mu   sync.Mutex
	data map[string][]entity.HistoryEntry
}

func NewMemoryHistoryRepository() HistoryRepository {
	return &memoryHistoryRepository{data: make(map[string][]entity.HistoryEntry)}
}

func (r *memoryHistoryRepository) List(_ context.Context, owner string) ([]entity.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.HistoryEntry, 0, len(r.data[owner]))
	for _, e := range r.data[owner] {
		out = append(out, cloneEntry(e))
	}
	return out, nil
}

func (r *memoryHistoryRepository) Add(_ context.Context, owner string, entry entity.HistoryEntry, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[owner] = prependEntry(r.data[owner], cloneEntry(entry), limit)
	return nil
}

func (r *memoryHistoryRepository) Remove(_ context.Context, owner string, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[owner] = removeEntry(r.data[owner], id)
	return nil
}

func (r *memoryHistoryRepository) Clear(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, owner)
	return nil
}

type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]entity.User
	byEmail map[string]uuid.UUID
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[uuid.UUID]entity.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, taken := r.byEmail[key]; taken {
		return ErrDuplicateEmail
	}
	r.byID[user.ID] = *user
	r.byEmail[key] = user.ID
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	user := r.byID[id]
	return &user, nil
}

// ==================== SHARED LIST HELPERS ====================
// Used by the memory and badger stores.

func indexOfMovie(movies []entity.Movie, id int64) int {
	for i, m := range movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func removeMovie(movies []entity.Movie, id int64) []entity.Movie {
	i := indexOfMovie(movies, id)
	if i < 0 {
		return movies
	}
	return append(movies[:i:i], movies[i+1:]...)
}

func prependEntry(entries []entity.HistoryEntry, entry entity.HistoryEntry, limit int) []entity.HistoryEntry {
	out := make([]entity.HistoryEntry, 0, len(entries)+1)
	out = append(out, entry)
	out = append(out, entries...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func removeEntry(entries []entity.HistoryEntry, id string) []entity.HistoryEntry {
	for i, e := range entries {
		if e.ID == id {
			return append(entries[:i:i], entries[i+1:]...)
		}
	}
	return entries
}

func cloneMovie(m entity.Movie) entity.Movie {
	if m.PosterPath != nil {
		p := *m.PosterPath
		m.PosterPath = &p
	}
	if m.VoteAverage != nil {
		v := *m.VoteAverage
		m.VoteAverage = &v
	}
	if m.GenreIDs != nil {
		m.GenreIDs = append([]int(nil), m.GenreIDs...)
	}
	return m
}

func cloneEntry(e entity.HistoryEntry) entity.HistoryEntry {
	if e.Genres != nil {
		e.Genres = append([]string(nil), e.Genres...)
	}
	return e
}
