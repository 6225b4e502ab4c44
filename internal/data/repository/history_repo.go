package repository

import (
	"context"
	"fmt"

	"moodflix/internal/data/entity"
	"moodflix/pkg/database"

	"go.uber.org/zap"
)

// HistoryRepository is a newest-first, bounded log of searches per owner.
// Entries are never edited, only added or deleted.
type HistoryRepository interface {
	List(ctx context.Context, owner string) ([]entity.HistoryEntry, error)
	// Add inserts entry at the front and evicts the oldest beyond limit.
	Add(ctx context.Context, owner string, entry entity.HistoryEntry, limit int) error
	Remove(ctx context.Context, owner string, id string) error
	Clear(ctx context.Context, owner string) error
}

type historyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHistoryRepository(db database.PgxIface, log *zap.Logger) HistoryRepository {
	return &historyRepository{
		db:  db,
		log: log.With(zap.String("repository", "history")),
	}
}

func (r *historyRepository) List(ctx context.Context, owner string) ([]entity.HistoryEntry, error) {
	query := `
		SELECT id, mood, genres, movie_count, created_at
		FROM search_history
		WHERE owner = $1
		ORDER BY created_at DESC, seq DESC
	`

	rows, err := r.db.Query(ctx, query, owner)
	if err != nil {
		r.log.Error("Failed to list history", zap.Error(err), zap.String("owner", owner))
		return nil, fmt.Errorf("%w: list history: %v", ErrPersistence, err)
	}
	defer rows.Close()

	entries := []entity.HistoryEntry{}
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Mood, &e.Genres, &e.MovieCount, &e.Timestamp); err != nil {
			r.log.Error("Failed to scan history row", zap.Error(err))
			return nil, fmt.Errorf("%w: scan history: %v", ErrPersistence, err)
		}
		e.Timestamp = e.Timestamp.UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("%w: iterate history: %v", ErrPersistence, err)
	}

	return entries, nil
}

func (r *historyRepository) Add(ctx context.Context, owner string, entry entity.HistoryEntry, limit int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin history tx", zap.Error(err))
		return fmt.Errorf("%w: begin: %v", ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	// serialize writers for the same owner so the trim sees every insert
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, owner); err != nil {
		r.log.Error("Failed to lock history owner", zap.Error(err), zap.String("owner", owner))
		return fmt.Errorf("%w: lock history: %v", ErrPersistence, err)
	}

	genres := entry.Genres
	if genres == nil {
		genres = []string{}
	}

	insert := `
		INSERT INTO search_history (id, owner, mood, genres, movie_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, insert,
		entry.ID,
		owner,
		entry.Mood,
		genres,
		entry.MovieCount,
		entry.Timestamp,
	); err != nil {
		r.log.Error("Failed to insert history entry",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("id", entry.ID),
		)
		return fmt.Errorf("%w: insert history: %v", ErrPersistence, err)
	}

	trim := `
		DELETE FROM search_history
		WHERE owner = $1
		  AND id NOT IN (
		      SELECT id FROM search_history
		      WHERE owner = $1
		      ORDER BY created_at DESC, seq DESC
		      LIMIT $2
		  )
	`
	if _, err := tx.Exec(ctx, trim, owner, limit); err != nil {
		r.log.Error("Failed to trim history", zap.Error(err), zap.String("owner", owner))
		return fmt.Errorf("%w: trim history: %v", ErrPersistence, err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit history tx", zap.Error(err))
		return fmt.Errorf("%w: commit history: %v", ErrPersistence, err)
	}

	return nil
}

func (r *historyRepository) Remove(ctx context.Context, owner string, id string) error {
	query := `DELETE FROM search_history WHERE owner = $1 AND id = $2`

	if _, err := r.db.Exec(ctx, query, owner, id); err != nil {
		r.log.Error("Failed to remove history entry",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("id", id),
		)
		return fmt.Errorf("%w: remove history %s: %v", ErrPersistence, id, err)
	}

	return nil
}

func (r *historyRepository) Clear(ctx context.Context, owner string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM search_history WHERE owner = $1`, owner); err != nil {
		r.log.Error("Failed to clear history", zap.Error(err), zap.String("owner", owner))
		return fmt.Errorf("%w: clear history: %v", ErrPersistence, err)
	}

	return nil
}
