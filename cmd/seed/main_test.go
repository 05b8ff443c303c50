package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviedex/internal/catalog/source"
)

func fakeTMDb(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/popular", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		fmt.Fprint(w, `{"page":1,"total_pages":1,"results":[{"id":27205,"title":"Inception"},{"id":404,"title":"Gone"},{"id":603,"title":"The Matrix"}]}`)
	})
	mux.HandleFunc("/movie/27205", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":27205,"title":"Inception","release_date":"2010-07-15","vote_average":8.4,"runtime":148,"genres":[{"id":28,"name":"Action"}],"poster_path":"/p.jpg"}`)
	})
	mux.HandleFunc("/movie/27205/credits", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cast":[{"id":6193,"name":"Leonardo DiCaprio","character":"Cobb"}]}`)
	})
	mux.HandleFunc("/movie/27205/videos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"key":"YoHD9XEInc0","site":"YouTube","type":"Trailer"}]}`)
	})
	mux.HandleFunc("/movie/603", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":603,"title":"The Matrix","release_date":"1999-03-30","vote_average":8.2,"genres":[{"id":878,"name":"Science Fiction"}]}`)
	})
	// Everything else, including /movie/404 and the Matrix extras, is a 404.
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("TMDB_API_KEY", "test-key")
	t.Setenv("TMDB_BASE_URL", baseURL)
	t.Setenv("TMDB_RPS", "100")
	t.Setenv("TMDB_MAX_RETRIES", "0")
	t.Setenv("LOG_LEVEL", "error")
}

func TestRun_WritesBundledDataset(t *testing.T) {
	srv := fakeTMDb(t)
	setupEnv(t, srv.URL)
	outPath := filepath.Join(t.TempDir(), "movies.json")

	var out bytes.Buffer
	err := run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "none.yaml"), "-out", outPath}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Wrote 2 movies")

	ms, err := source.NewBundled(outPath).Movies(context.Background())
	require.NoError(t, err)
	require.Len(t, ms, 2)

	assert.Equal(t, "Inception", ms[0].Title)
	assert.Equal(t, []string{"Action"}, ms[0].Genres)
	require.NotNil(t, ms[0].Runtime)
	assert.Equal(t, 148, *ms[0].Runtime)
	require.Len(t, ms[0].Cast, 1)
	assert.Equal(t, "Leonardo DiCaprio", ms[0].Cast[0].Name)
	assert.NotEmpty(t, ms[0].Trailer)

	assert.Equal(t, "The Matrix", ms[1].Title)
	assert.Empty(t, ms[1].Cast)
}

func TestRun_Errors(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "none.yaml")

	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("TMDB_API_KEY", "")
		err := run(context.Background(), []string{"-config", cfgPath}, &bytes.Buffer{})
		assert.ErrorContains(t, err, "TMDB_API_KEY")
	})

	t.Run("popular fails", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(srv.Close)
		setupEnv(t, srv.URL)
		outPath := filepath.Join(t.TempDir(), "movies.json")

		err := run(context.Background(), []string{"-config", cfgPath, "-out", outPath}, &bytes.Buffer{})
		assert.Error(t, err)
		_, statErr := os.Stat(outPath)
		assert.True(t, os.IsNotExist(statErr))
	})
}
