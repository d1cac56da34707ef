package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/zhouzirui/movies/backend/internal/config"
	"github.com/zhouzirui/movies/backend/internal/handler"
	"github.com/zhouzirui/movies/backend/internal/logger"
	"github.com/zhouzirui/movies/backend/internal/model/movie"
	movieService "github.com/zhouzirui/movies/backend/internal/service/movie"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if envErr != nil {
		log.Debug("no .env file loaded, using process environment only", zap.Error(envErr))
	}

	movies, err := loadMovies(cfg.Data)
	if err != nil {
		log.Fatal("failed to load movies", zap.Error(err))
	}

	store := movie.NewMemoryStore(movies)
	movieSvc := movieService.NewService(store, log.Named("movies"))
	log.Info("movie store initialized", zap.Int("movies", store.Len()), zap.String("source", sourceName(cfg.Data)))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := handler.NewRouter(movieSvc, handler.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log.Named("http"),
		Registry:       registry,
	})

	startServer(ctx, log, cfg.Server, router)
}

func loadMovies(cfg config.DataConfig) ([]movie.Movie, error) {
	if cfg.MoviesFile == "" {
		return movie.Seed()
	}
	return movie.LoadFile(cfg.MoviesFile)
}

func sourceName(cfg config.DataConfig) string {
	if cfg.MoviesFile == "" {
		return "embedded"
	}
	return cfg.MoviesFile
}

func startServer(ctx context.Context, log *zap.Logger, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: serverCfg.ReadHeaderTimeout,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          zap.NewStdLog(log.Named("server")),
	}

	log.Info("movies API listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv, serverCfg); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}

func runServer(ctx context.Context, srv *http.Server, serverCfg config.ServerConfig) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
