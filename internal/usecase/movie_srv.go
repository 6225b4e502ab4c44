package usecase

import (
	"context"
	"strings"

	"moodflix/internal/data/entity"

	"go.uber.org/zap"
)

type MovieService interface {
	Search(ctx context.Context, query string, page int) ([]entity.Movie, error)
	Details(ctx context.Context, id int64) (*entity.MovieDetails, error)
}

type movieService struct {
	catalog Catalog
	log     *zap.Logger
}

func NewMovieService(catalog Catalog, log *zap.Logger) MovieService {
	return &movieService{
		catalog: catalog,
		log:     log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) Search(ctx context.Context, query string, page int) ([]entity.Movie, error) {
	if strings.TrimSpace(query) == "" {
		return nil, newValidationError("Search query is required.", map[string]string{"q": "This field is required"})
	}

	movies, err := s.catalog.Search(ctx, query, page)
	if err != nil {
		logCatalogError(s.log, "Failed to search movies", err, zap.Int("page", page))
		return nil, err
	}
	return movies, nil
}

func (s *movieService) Details(ctx context.Context, id int64) (*entity.MovieDetails, error) {
	if id <= 0 {
		return nil, newValidationError("Movie ID is required.", nil)
	}

	details, err := s.catalog.Movie(ctx, id)
	if err != nil {
		s.log.Warn("Failed to get movie details", zap.Error(err), zap.Int64("movie_id", id))
		return nil, err
	}
	return details, nil
}
