// internal/wire/wire.go
package wire

import (
	"context"
	"errors"
	"net/http"

	"moodflix/internal/adaptor"
	"moodflix/internal/data/entity"
	"moodflix/internal/data/repository"
	"moodflix/internal/mood"
	"moodflix/internal/usecase"
	"moodflix/pkg/metrics"
	"moodflix/pkg/middleware"
	"moodflix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes from already-open stores.
func Wiring(
	repo *repository.Repository,
	catalog usecase.Catalog,
	tokens *utils.TokenManager,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	// Initialize services and handlers
	service := usecase.NewService(repo, catalog, mood.NewClassifier(nil), tokens, logger)
	handler := adaptor.NewHandler(service, tokens, logger)

	// Setup router
	router := setupRouter(handler, tokens, userExists(service.Auth), config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// userExists lets the session middleware drop tokens of deleted accounts.
func userExists(auth usecase.AuthService) middleware.UserExistsFunc {
	return func(ctx context.Context, id uuid.UUID) (bool, error) {
		user, err := auth.Me(ctx, id)
		if errors.Is(err, usecase.ErrUnauthenticated) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return user != nil, nil
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	tokens *utils.TokenManager,
	exists middleware.UserExistsFunc,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// without required auth, anonymous callers share the process owner
	fallbackOwner := ""
	if !config.Auth.Required {
		fallbackOwner = entity.ProcessOwner
	}

	// Apply global middleware
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(config.HTTP.CORSAllowedOrigins))
	r.Use(middleware.Session(tokens, exists, fallbackOwner, logger))

	limit := middleware.RateLimit(config.HTTP.RateLimitPerMinute)

	// Apply routes
	wireRecommendation(r, handler.Recommendation, limit)
	wireMovie(r, handler.Movie)
	wireFavorite(r, handler.Favorite)
	wireHistory(r, handler.History)
	wireAuth(r, handler.Auth, limit)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	return r
}
