package repository

import (
	"context"
	"fmt"

	"moodflix/internal/data/entity"
	"moodflix/pkg/database"

	"go.uber.org/zap"
)

// FavoriteRepository stores at most one favorite per (owner, movie id),
// listed in insertion order.
type FavoriteRepository interface {
	List(ctx context.Context, owner string) ([]entity.Movie, error)
	// Add reports false when the movie was already a favorite.
	Add(ctx context.Context, owner string, movie entity.Movie) (bool, error)
	Remove(ctx context.Context, owner string, movieID int64) error
	Exists(ctx context.Context, owner string, movieID int64) (bool, error)
	Clear(ctx context.Context, owner string) error
}

type favoriteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFavoriteRepository(db database.PgxIface, log *zap.Logger) FavoriteRepository {
	return &favoriteRepository{
		db:  db,
		log: log.With(zap.String("repository", "favorite")),
	}
}

func (r *favoriteRepository) List(ctx context.Context, owner string) ([]entity.Movie, error) {
	query := `
		SELECT movie_id, title, overview, poster_path, release_date,
		       vote_average, genre_ids
		FROM favorites
		WHERE owner = $1
		ORDER BY created_at, seq
	`

	rows, err := r.db.Query(ctx, query, owner)
	if err != nil {
		r.log.Error("Failed to list favorites", zap.Error(err), zap.String("owner", owner))
		return nil, fmt.Errorf("%w: list favorites: %v", ErrPersistence, err)
	}
	defer rows.Close()

	movies := []entity.Movie{}
	for rows.Next() {
		var m entity.Movie
		if err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.Overview,
			&m.PosterPath,
			&m.ReleaseDate,
			&m.VoteAverage,
			&m.GenreIDs,
		); err != nil {
			r.log.Error("Failed to scan favorite row", zap.Error(err))
			return nil, fmt.Errorf("%w: scan favorite: %v", ErrPersistence, err)
		}
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("%w: iterate favorites: %v", ErrPersistence, err)
	}

	return movies, nil
}

func (r *favoriteRepository) Add(ctx context.Context, owner string, movie entity.Movie) (bool, error) {
	// the primary key makes concurrent adds of the same movie collapse to one row
	query := `
		INSERT INTO favorites (owner, movie_id, title, overview, poster_path,
		                       release_date, vote_average, genre_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner, movie_id) DO NOTHING
	`

	genreIDs := movie.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}

	tag, err := r.db.Exec(ctx, query,
		owner,
		movie.ID,
		movie.Title,
		movie.Overview,
		movie.PosterPath,
		movie.ReleaseDate,
		movie.VoteAverage,
		genreIDs,
	)
	if err != nil {
		r.log.Error("Failed to add favorite",
			zap.Error(err),
			zap.String("owner", owner),
			zap.Int64("movie_id", movie.ID),
		)
		return false, fmt.Errorf("%w: add favorite %d: %v", ErrPersistence, movie.ID, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, owner string, movieID int64) error {
	query := `DELETE FROM favorites WHERE owner = $1 AND movie_id = $2`

	if _, err := r.db.Exec(ctx, query, owner, movieID); err != nil {
		r.log.Error("Failed to remove favorite",
			zap.Error(err),
			zap.String("owner", owner),
			zap.Int64("movie_id", movieID),
		)
		return fmt.Errorf("%w: remove favorite %d: %v", ErrPersistence, movieID, err)
	}

	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, owner string, movieID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM favorites WHERE owner = $1 AND movie_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, owner, movieID).Scan(&exists); err != nil {
		r.log.Error("Failed to check favorite",
			zap.Error(err),
			zap.String("owner", owner),
			zap.Int64("movie_id", movieID),
		)
		return false, fmt.Errorf("%w: check favorite %d: %v", ErrPersistence, movieID, err)
	}

	return exists, nil
}

func (r *favoriteRepository) Clear(ctx context.Context, owner string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE owner = $1`, owner)
	if err != nil {
		r.log.Error("Failed to clear favorites", zap.Error(err), zap.String("owner", owner))
		return fmt.Errorf("%w: clear favorites: %v", ErrPersistence, err)
	}

	r.log.Info("Favorites cleared", zap.String("owner", owner), zap.Int64("removed", tag.RowsAffected()))
	return nil
}
