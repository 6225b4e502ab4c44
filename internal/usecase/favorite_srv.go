package usecase

import (
	"context"

	"moodflix/internal/data/entity"
	"moodflix/internal/data/repository"

	"go.uber.org/zap"
)

type FavoriteService interface {
	List(ctx context.Context, owner string) ([]entity.Movie, error)
	// Add reports false when the movie was already saved.
	Add(ctx context.Context, owner string, movie entity.Movie) (bool, error)
	Remove(ctx context.Context, owner string, movieID int64) error
	IsFavorite(ctx context.Context, owner string, movieID int64) (bool, error)
	Clear(ctx context.Context, owner string) error
}

type favoriteService struct {
	repo repository.FavoriteRepository
	log  *zap.Logger
}

func NewFavoriteService(repo repository.FavoriteRepository, log *zap.Logger) FavoriteService {
	return &favoriteService{
		repo: repo,
		log:  log.With(zap.String("service", "favorite")),
	}
}

func (s *favoriteService) List(ctx context.Context, owner string) ([]entity.Movie, error) {
	if owner == "" {
		return nil, ErrUnauthenticated
	}
	return s.repo.List(ctx, owner)
}

func (s *favoriteService) Add(ctx context.Context, owner string, movie entity.Movie) (bool, error) {
	// 1. Check owner and movie
	if owner == "" {
		return false, ErrUnauthenticated
	}
	if movie.ID <= 0 {
		return false, newValidationError("Invalid movie data provided.", map[string]string{"id": "This field is required"})
	}
	if movie.GenreIDs == nil {
		movie.GenreIDs = []int{}
	}

	// 2. Save
	added, err := s.repo.Add(ctx, owner, movie)
	if err != nil {
		return false, err
	}

	if added {
		s.log.Info("Favorite added", zap.String("owner", owner), zap.Int64("movie_id", movie.ID))
	}
	return added, nil
}

func (s *favoriteService) Remove(ctx context.Context, owner string, movieID int64) error {
	if owner == "" {
		return ErrUnauthenticated
	}
	if movieID <= 0 {
		return newValidationError("Movie ID is required.", nil)
	}
	return s.repo.Remove(ctx, owner, movieID)
}

func (s *favoriteService) IsFavorite(ctx context.Context, owner string, movieID int64) (bool, error) {
	if owner == "" {
		return false, ErrUnauthenticated
	}
	return s.repo.Exists(ctx, owner, movieID)
}

func (s *favoriteService) Clear(ctx context.Context, owner string) error {
	if owner == "" {
		return ErrUnauthenticated
	}
	if err := s.repo.Clear(ctx, owner); err != nil {
		return err
	}
	s.log.Info("Favorites cleared", zap.String("owner", owner))
	return nil
}
