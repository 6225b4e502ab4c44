package usecase

import (
	"context"
	"errors"

	"moodflix/internal/data/entity"
	"moodflix/internal/data/repository"
	"moodflix/internal/mood"
	"moodflix/pkg/utils"

	"go.uber.org/zap"
)

// Catalog is the movie source the services read from.
type Catalog interface {
	FetchByGenres(ctx context.Context, genreIDs []int) ([]entity.Movie, error)
	FetchTrending(ctx context.Context) ([]entity.Movie, error)
	Search(ctx context.Context, query string, page int) ([]entity.Movie, error)
	Movie(ctx context.Context, id int64) (*entity.MovieDetails, error)
}

type Service struct {
	Recommendation RecommendationService
	Movie          MovieService
	Favorite       FavoriteService
	History        HistoryService
	Auth           AuthService
}

func NewService(
	repo *repository.Repository,
	catalog Catalog,
	classifier *mood.Classifier,
	tokens *utils.TokenManager,
	log *zap.Logger,
) *Service {
	history := NewHistoryService(repo.History, log)

	return &Service{
		Recommendation: NewRecommendationService(catalog, classifier, history, log),
		Movie:          NewMovieService(catalog, log),
		Favorite:       NewFavoriteService(repo.Favorite, log),
		History:        history,
		Auth:           NewAuthService(repo.User, tokens, log),
	}
}

// logCatalogError logs a failed catalog call. A caller hanging up is not
// an error worth paging on.
func logCatalogError(log *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.Debug(msg, fields...)
		return
	}
	log.Error(msg, fields...)
}
