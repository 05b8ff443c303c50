package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, retries int) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient("test-key", srv.URL, 1000, retries)
	c.backoff = time.Millisecond
	return c
}

func TestClient_Details(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/27205", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":27205,"title":"Inception","release_date":"2010-07-15","vote_average":8.4,
			"runtime":148,"genres":[{"id":28,"name":"Action"}],"poster_path":"/p.jpg","backdrop_path":"/b.jpg"}`))
	}, 0)

	d, err := c.Details(context.Background(), 27205)

	require.NoError(t, err)
	assert.Equal(t, "Inception", d.Title)
	require.NotNil(t, d.Runtime)
	assert.Equal(t, 148, *d.Runtime)
	assert.Equal(t, []Genre{{ID: 28, Name: "Action"}}, d.Genres)
}

func TestClient_Popular(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"page":2,"total_pages":500,"results":[{"id":1,"title":"a"},{"id":2,"title":"b"}]}`))
	}, 0)

	p, err := c.Popular(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 500, p.TotalPages)
	assert.Len(t, p.Results, 2)
}

func TestClient_Retry(t *testing.T) {
	t.Run("retries 429 and 5xx then succeeds", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch calls.Add(1) {
			case 1:
				w.WriteHeader(http.StatusTooManyRequests)
			case 2:
				w.WriteHeader(http.StatusBadGateway)
			default:
				_, _ = w.Write([]byte(`{"cast":[{"id":1,"name":"Leonardo DiCaprio","character":"Cobb"}]}`))
			}
		}, 3)

		cr, err := c.Credits(context.Background(), 27205)

		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
		assert.Equal(t, "Cobb", cr.Cast[0].Character)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}, 2)

		_, err := c.Videos(context.Background(), 1)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusServiceUnavailable, se.Code)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}, 5)

		_, err := c.Details(context.Background(), 1)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusUnauthorized, se.Code)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("context cancellation stops the loop", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, 5)
		c.backoff = time.Hour
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := c.Details(ctx, 1)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestImageAndTrailerURL(t *testing.T) {
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", ImageURL("w500", "/p.jpg"))
	assert.Empty(t, ImageURL("w500", ""))

	assert.Equal(t, "https://www.youtube.com/embed/YoHD9XEInc0", TrailerURL([]Video{
		{Key: "teaser", Site: "YouTube", Type: "Teaser"},
		{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
		{Key: "YoHD9XEInc0", Site: "YouTube", Type: "Trailer"},
		{Key: "second", Site: "YouTube", Type: "Trailer"},
	}))
	assert.Empty(t, TrailerURL(nil))
}
