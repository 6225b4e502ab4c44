// Package tmdb talks to The Movie Database v3 API and normalizes its
// responses into entity.Movie values.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moodflix/internal/data/entity"
	"moodflix/pkg/cache"
	"moodflix/pkg/metrics"
	"moodflix/pkg/utils"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// PageSize caps every movie list returned by the client.
const PageSize = 20

// MinVoteCount filters obscure titles out of genre discovery.
const MinVoteCount = 100

var (
	ErrCatalogUnavailable   = errors.New("movie catalog unavailable")
	ErrCatalogMisconfigured = errors.New("TMDB API key is not configured")
	ErrMovieNotFound        = errors.New("movie not found")
	ErrNoGenres             = errors.New("at least one genre id is required")
	ErrEmptyQuery           = errors.New("search query is required")
)

type Client struct {
	apiKey   string
	baseURL  string
	http     *http.Client
	cb       *gobreaker.CircuitBreaker[[]byte]
	cache    cache.Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

// NewClient builds a client. store may be nil to disable response caching.
func NewClient(cfg utils.TMDBConfig, store cache.Cache, cacheTTL time.Duration, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	log = log.With(zap.String("client", "tmdb"))

	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		cb:       newBreaker(log),
		cache:    store,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

type pageResponse struct {
	Page         int            `json:"page"`
	Results      []entity.Movie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type detailResponse struct {
	entity.Movie
	Tagline string            `json:"tagline"`
	Runtime int               `json:"runtime"`
	Genres  []entity.GenreRef `json:"genres"`
	Credits struct {
		Cast []entity.CastMember `json:"cast"`
	} `json:"credits"`
	Videos struct {
		Results []struct {
			Key  string `json:"key"`
			Site string `json:"site"`
			Type string `json:"type"`
		} `json:"results"`
	} `json:"videos"`
	Similar pageResponse `json:"similar"`
}

// FetchByGenres returns the most popular movies matching every genre id.
func (c *Client) FetchByGenres(ctx context.Context, genreIDs []int) ([]entity.Movie, error) {
	if len(genreIDs) == 0 {
		return nil, ErrNoGenres
	}

	ids := make([]string, len(genreIDs))
	for i, id := range genreIDs {
		ids[i] = strconv.Itoa(id)
	}

	params := url.Values{}
	params.Set("with_genres", strings.Join(ids, ","))
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("vote_count.gte", strconv.Itoa(MinVoteCount))
	params.Set("language", "en-US")
	params.Set("page", "1")

	return c.list(ctx, "discover", "/discover/movie", params)
}

// FetchTrending returns this week's trending movies.
func (c *Client) FetchTrending(ctx context.Context) ([]entity.Movie, error) {
	params := url.Values{}
	params.Set("language", "en-US")
	return c.list(ctx, "trending", "/trending/movie/week", params)
}

// Search runs a title search.
func (c *Client) Search(ctx context.Context, query string, page int) ([]entity.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("language", "en-US")
	params.Set("page", strconv.Itoa(utils.NormalizePage(page)))

	return c.list(ctx, "search", "/search/movie", params)
}

// Movie returns one movie with credits, videos and similar titles.
func (c *Client) Movie(ctx context.Context, id int64) (*entity.MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,similar")
	params.Set("language", "en-US")

	body, err := c.get(ctx, "movie", fmt.Sprintf("/movie/%d", id), params)
	if err != nil {
		return nil, err
	}

	var raw detailResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode movie %d: %v", ErrCatalogUnavailable, id, err)
	}

	details := &entity.MovieDetails{
		Movie:   raw.Movie,
		Tagline: raw.Tagline,
		Runtime: raw.Runtime,
		Genres:  raw.Genres,
		Cast:    raw.Credits.Cast,
		Similar: capMovies(raw.Similar.Results),
	}
	if len(details.GenreIDs) == 0 {
		details.GenreIDs = make([]int, 0, len(raw.Genres))
		for _, g := range raw.Genres {
			details.GenreIDs = append(details.GenreIDs, g.ID)
		}
	}
	if len(details.Cast) > 10 {
		details.Cast = details.Cast[:10]
	}
	if details.Cast == nil {
		details.Cast = []entity.CastMember{}
	}
	for _, v := range raw.Videos.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			details.TrailerKey = v.Key
			break
		}
	}

	return details, nil
}

func (c *Client) list(ctx context.Context, endpoint, path string, params url.Values) ([]entity.Movie, error) {
	body, err := c.get(ctx, endpoint, path, params)
	if err != nil {
		return nil, err
	}

	var page pageResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCatalogUnavailable, endpoint, err)
	}

	return capMovies(page.Results), nil
}

// get performs a cached, circuit-protected GET and returns the raw body.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrCatalogMisconfigured
	}

	// Encode sorts by key, so equal queries share a cache entry.
	cacheKey := "tmdb:" + path + "?" + params.Encode()
	if c.cache != nil {
		if body, err := c.cache.Get(ctx, cacheKey); err == nil {
			metrics.CatalogRequests.WithLabelValues(endpoint, "cached").Inc()
			return body, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			c.log.Warn("Catalog cache read failed", zap.Error(err), zap.String("key", cacheKey))
		}
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.doGet(ctx, path, params)
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CatalogRequests.WithLabelValues(endpoint, "rejected").Inc()
			c.log.Warn("Catalog request rejected by circuit breaker", zap.String("endpoint", endpoint))
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		case errors.Is(err, ErrMovieNotFound):
			metrics.CatalogRequests.WithLabelValues(endpoint, "success").Inc()
			return nil, err
		case isCanceled(ctx, err):
			metrics.CatalogRequests.WithLabelValues(endpoint, "canceled").Inc()
			c.log.Debug("Catalog request canceled by caller", zap.Error(err), zap.String("endpoint", endpoint))
			return nil, err
		default:
			metrics.CatalogRequests.WithLabelValues(endpoint, "failure").Inc()
			c.log.Error("Catalog request failed", zap.Error(err), zap.String("endpoint", endpoint))
			return nil, err
		}
	}
	metrics.CatalogRequests.WithLabelValues(endpoint, "success").Inc()

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.cacheTTL); err != nil {
			c.log.Warn("Catalog cache write failed", zap.Error(err), zap.String("key", cacheKey))
		}
	}

	return body, nil
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrCatalogUnavailable, stripURL(err))
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("Calling catalog", zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, stripURL(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: read body: %v", ErrCatalogUnavailable, stripURL(err))
	}

	if resp.StatusCode == http.StatusNotFound && strings.HasPrefix(path, "/movie/") {
		return nil, ErrMovieNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tmdb status %d: %s", ErrCatalogUnavailable, resp.StatusCode, truncate(string(body), 200))
	}

	return body, nil
}

func capMovies(movies []entity.Movie) []entity.Movie {
	if movies == nil {
		return []entity.Movie{}
	}
	if len(movies) > PageSize {
		movies = movies[:PageSize]
	}
	return movies
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// stripURL drops the request URL from transport errors; it carries the
// api_key query parameter.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s catalog request: %w", ue.Op, ue.Err)
	}
	return err
}

// isCanceled reports whether err comes from the caller giving up rather
// than from the catalog.
func isCanceled(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil
}
