package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"moodflix/pkg/cache"
	"moodflix/pkg/utils"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc, store cache.Cache) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(utils.TMDBConfig{APIKey: "k3y", BaseURL: srv.URL, Timeout: 2 * time.Second}, store, time.Minute, zap.NewNop())
	return c, &calls
}

func moviesJSON(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"id":%d,"title":"Movie %d","overview":"o","poster_path":"/p%d.jpg","release_date":"2020-01-01","vote_average":7.5,"genre_ids":[35,18]}`, i+1, i+1, i+1)
	}
	return `{"page":1,"results":[` + strings.Join(parts, ",") + `],"total_pages":1,"total_results":` + fmt.Sprint(n) + `}`
}

func TestFetchByGenres_Request(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover/movie" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		want := map[string]string{
			"api_key":        "k3y",
			"with_genres":    "35,16,10751",
			"sort_by":        "popularity.desc",
			"include_adult":  "false",
			"vote_count.gte": "100",
			"language":       "en-US",
			"page":           "1",
		}
		for k, v := range want {
			if got := q.Get(k); got != v {
				t.Errorf("query %s = %q, want %q", k, got, v)
			}
		}
		fmt.Fprint(w, moviesJSON(25))
	}, nil)

	movies, err := c.FetchByGenres(context.Background(), []int{35, 16, 10751})
	if err != nil {
		t.Fatalf("FetchByGenres: %v", err)
	}
	if len(movies) != PageSize {
		t.Fatalf("got %d movies, want %d", len(movies), PageSize)
	}
	m := movies[0]
	if m.ID != 1 || m.Title != "Movie 1" || m.PosterPath == nil || *m.PosterPath != "/p1.jpg" {
		t.Errorf("unexpected movie %+v", m)
	}
	if m.VoteAverage == nil || *m.VoteAverage != 7.5 {
		t.Errorf("VoteAverage = %v", m.VoteAverage)
	}
}

func TestFetchTrending_NullableFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trending/movie/week" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"results":[{"id":9,"title":"No Poster","poster_path":null,"genre_ids":[]}]}`)
	}, nil)

	movies, err := c.FetchTrending(context.Background())
	if err != nil {
		t.Fatalf("FetchTrending: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("got %d movies", len(movies))
	}
	if movies[0].PosterPath != nil || movies[0].VoteAverage != nil {
		t.Errorf("expected nil optionals, got %+v", movies[0])
	}
	if movies[0].RatingLabel() != "N/A" {
		t.Errorf("RatingLabel = %q", movies[0].RatingLabel())
	}
}

func TestClient_Errors(t *testing.T) {
	t.Run("misconfigured", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer srv.Close()

		c := NewClient(utils.TMDBConfig{BaseURL: srv.URL}, nil, 0, zap.NewNop())
		if _, err := c.FetchByGenres(context.Background(), []int{28}); !errors.Is(err, ErrCatalogMisconfigured) {
			t.Errorf("err = %v, want ErrCatalogMisconfigured", err)
		}
		if _, err := c.FetchTrending(context.Background()); !errors.Is(err, ErrCatalogMisconfigured) {
			t.Errorf("err = %v, want ErrCatalogMisconfigured", err)
		}
		if calls != 0 {
			t.Errorf("made %d HTTP calls without an API key", calls)
		}
	})

	t.Run("non-200", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
		}, nil)
		_, err := c.FetchByGenres(context.Background(), []int{28})
		if !errors.Is(err, ErrCatalogUnavailable) {
			t.Errorf("err = %v, want ErrCatalogUnavailable", err)
		}
	})

	t.Run("bad body", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		}, nil)
		if _, err := c.FetchTrending(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
			t.Errorf("err = %v, want ErrCatalogUnavailable", err)
		}
	})

	t.Run("network", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		c := NewClient(utils.TMDBConfig{APIKey: "SUPER-SECRET-KEY", BaseURL: srv.URL}, nil, 0, zap.NewNop())
		_, err := c.FetchTrending(context.Background())
		if !errors.Is(err, ErrCatalogUnavailable) {
			t.Errorf("err = %v, want ErrCatalogUnavailable", err)
		}
		if err != nil && strings.Contains(err.Error(), "SUPER-SECRET-KEY") {
			t.Errorf("error exposes the API key: %v", err)
		}
	})

	t.Run("no genres", func(t *testing.T) {
		c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
		if _, err := c.FetchByGenres(context.Background(), nil); !errors.Is(err, ErrNoGenres) {
			t.Errorf("err = %v, want ErrNoGenres", err)
		}
		if *calls != 0 {
			t.Error("expected no HTTP call")
		}
	})

	t.Run("empty search", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
		if _, err := c.Search(context.Background(), "  ", 1); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("err = %v, want ErrEmptyQuery", err)
		}
	})
}

func TestClient_CircuitOpens(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, nil)

	for i := 0; i < 5; i++ {
		c.FetchTrending(context.Background())
	}
	before := atomic.LoadInt32(calls)

	_, err := c.FetchTrending(context.Background())
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("err = %v, want ErrCatalogUnavailable", err)
	}
	if after := atomic.LoadInt32(calls); after != before {
		t.Errorf("open circuit still reached the server (%d -> %d calls)", before, after)
	}
}

func TestClient_CanceledRequestsKeepCircuitClosed(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, moviesJSON(2))
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 10; i++ {
		_, err := c.FetchTrending(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
		if errors.Is(err, ErrCatalogUnavailable) {
			t.Fatalf("canceled request reported as catalog outage: %v", err)
		}
	}

	movies, err := c.FetchTrending(context.Background())
	if err != nil || len(movies) != 2 {
		t.Fatalf("FetchTrending after cancellations = %d movies, %v", len(movies), err)
	}
}

func TestClient_CachesResponses(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, moviesJSON(3))
	}, cache.NewMemory(time.Minute, 0))

	for i := 0; i < 3; i++ {
		movies, err := c.FetchByGenres(context.Background(), []int{27, 53})
		if err != nil || len(movies) != 3 {
			t.Fatalf("FetchByGenres = %d movies, %v", len(movies), err)
		}
	}
	if *calls != 1 {
		t.Errorf("server called %d times, want 1", *calls)
	}

	// different genres are a different request
	c.FetchByGenres(context.Background(), []int{27})
	if *calls != 2 {
		t.Errorf("server called %d times, want 2", *calls)
	}
}

func TestSearch(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("query"); q != "blade runner" {
			t.Errorf("query = %q", q)
		}
		if p := r.URL.Query().Get("page"); p != "1" {
			t.Errorf("page = %q", p)
		}
		fmt.Fprint(w, moviesJSON(2))
	}, nil)

	movies, err := c.Search(context.Background(), " blade runner ", 0)
	if err != nil || len(movies) != 2 {
		t.Fatalf("Search = %d, %v", len(movies), err)
	}
}

func TestMovie(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/603":
			if got := r.URL.Query().Get("append_to_response"); got != "credits,videos,similar" {
				t.Errorf("append_to_response = %q", got)
			}
			fmt.Fprint(w, `{
				"id": 603, "title": "The Matrix", "overview": "Neo", "poster_path": "/m.jpg",
				"release_date": "1999-03-30", "vote_average": 8.2, "runtime": 136, "tagline": "Free your mind",
				"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
				"credits": {"cast": [{"name": "Keanu Reeves", "character": "Neo", "profile_path": null}]},
				"videos": {"results": [{"key": "teaser1", "site": "YouTube", "type": "Teaser"}, {"key": "abc", "site": "YouTube", "type": "Trailer"}]},
				"similar": {"results": [{"id": 604, "title": "The Matrix Reloaded", "genre_ids": [28]}]}
			}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, nil)

	d, err := c.Movie(context.Background(), 603)
	if err != nil {
		t.Fatalf("Movie: %v", err)
	}
	if d.Title != "The Matrix" || d.Runtime != 136 || d.TrailerKey != "abc" {
		t.Errorf("unexpected details %+v", d)
	}
	if len(d.GenreIDs) != 2 || d.GenreIDs[1] != 878 {
		t.Errorf("GenreIDs = %v", d.GenreIDs)
	}
	if len(d.Cast) != 1 || d.Cast[0].Name != "Keanu Reeves" {
		t.Errorf("Cast = %+v", d.Cast)
	}
	if len(d.Similar) != 1 || d.Similar[0].ID != 604 {
		t.Errorf("Similar = %+v", d.Similar)
	}

	if _, err := c.Movie(context.Background(), 1); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("err = %v, want ErrMovieNotFound", err)
	}
}
