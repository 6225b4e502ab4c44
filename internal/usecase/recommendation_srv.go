package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"moodflix/internal/data/entity"
	"moodflix/internal/dto/request"
	"moodflix/internal/dto/response"
	"moodflix/internal/mood"
	"moodflix/pkg/metrics"
	"moodflix/pkg/utils"

	"go.uber.org/zap"
)

const MsgMoodRequired = "Mood is required and must be a non-empty string."

type RecommendationService interface {
	// Recommend classifies mood and fetches matching movies. A history entry
	// is recorded for owner when owner is non-empty.
	Recommend(ctx context.Context, owner, mood string) (*response.RecommendationResponse, error)
	Trending(ctx context.Context) ([]entity.Movie, error)
}

type recommendationService struct {
	catalog    Catalog
	classifier *mood.Classifier
	history    HistoryService
	log        *zap.Logger
}

func NewRecommendationService(
	catalog Catalog,
	classifier *mood.Classifier,
	history HistoryService,
	log *zap.Logger,
) RecommendationService {
	if classifier == nil {
		classifier = mood.NewClassifier(nil)
	}
	return &recommendationService{
		catalog:    catalog,
		classifier: classifier,
		history:    history,
		log:        log.With(zap.String("service", "recommendation")),
	}
}

func (s *recommendationService) Recommend(ctx context.Context, owner, moodText string) (*response.RecommendationResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(&request.RecommendationRequest{Mood: moodText}); len(errs) > 0 {
		msg := MsgMoodRequired
		if strings.TrimSpace(moodText) != "" {
			msg = fmt.Sprintf("Mood must be at most %d characters.", request.MaxMoodLength)
		}
		return nil, newValidationError(msg, errs)
	}

	// 2. Classify
	result := s.classifier.Classify(moodText)
	metrics.Classifications.WithLabelValues(strconv.FormatBool(result.Fallback)).Inc()
	if result.Fallback {
		s.log.Debug("No mood keywords matched, using fallback genres")
	}

	// 3. Fetch
	movies := []entity.Movie{}
	if len(result.GenreIDs) > 0 {
		fetched, err := s.catalog.FetchByGenres(ctx, result.GenreIDs)
		if err != nil {
			logCatalogError(s.log, "Failed to fetch movies by genre", err,
				zap.Ints("genre_ids", result.GenreIDs),
			)
			return nil, err
		}
		movies = fetched
	}

	// 4. Record history, never failing the request over it
	if owner != "" {
		entry := entity.HistoryEntry{
			Mood:       moodText,
			Genres:     result.Genres,
			MovieCount: len(movies),
		}
		if _, err := s.history.Add(ctx, owner, entry); err != nil {
			metrics.HistoryWriteFailures.Inc()
			s.log.Warn("Failed to record search history", zap.Error(err), zap.String("owner", owner))
		}
	}

	return &response.RecommendationResponse{
		Genres: result.Genres,
		Movies: movies,
	}, nil
}

func (s *recommendationService) Trending(ctx context.Context) ([]entity.Movie, error) {
	movies, err := s.catalog.FetchTrending(ctx)
	if err != nil {
		logCatalogError(s.log, "Failed to fetch trending movies", err)
		return nil, err
	}
	return movies, nil
}
