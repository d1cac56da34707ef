package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/movies/backend/internal/config"
)

func TestLoadMoviesEmbeddedByDefault(t *testing.T) {
	movies, err := loadMovies(config.DataConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, movies)
	assert.Equal(t, "embedded", sourceName(config.DataConfig{}))
}

func TestLoadMoviesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- id: only
  title: Alien
  year: 1979
  director: Ridley Scott
  duration: 117
  poster: https://example.com/alien.jpg
  rating: 8.5
  genre: [Horror, Sci-Fi]
`), 0o600))

	movies, err := loadMovies(config.DataConfig{MoviesFile: path})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Alien", movies[0].Title)
}

func TestLoadMoviesRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: only\n  title: Alien\n  genre: [Horror]\n"), 0o600))

	_, err := loadMovies(config.DataConfig{MoviesFile: path})
	assert.ErrorContains(t, err, "movie only")
}

func TestRunServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, srv, config.ServerConfig{ShutdownTimeout: time.Second})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
