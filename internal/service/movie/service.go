package movie

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/movies/backend/internal/model/movie"
)

// ErrNotFound is re-exported so callers need not import the model package to match it.
var ErrNotFound = movie.ErrNotFound

// Service validates movie payloads and applies them to the store.
type Service struct {
	store  movie.Store
	logger *zap.Logger
	newID  func() string
}

// NewService wires a service over store. A nil logger disables logging.
func NewService(store movie.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// List returns the catalog, narrowed to genre when it is non-empty.
func (s *Service) List(_ context.Context, genre string) []movie.Movie {
	return s.store.List(genre)
}

// Get retrieves a movie by identifier.
func (s *Service) Get(_ context.Context, id string) (movie.Movie, error) {
	return s.store.Get(id)
}

// Create validates body against the full schema, assigns a fresh id and stores the movie.
// Validation failures come back as *movie.ValidationError.
func (s *Service) Create(_ context.Context, body []byte) (movie.Movie, error) {
	res := movie.ValidateFull(body)
	if err := res.Err(); err != nil {
		return movie.Movie{}, err
	}

	created := res.Movie
	created.ID = s.newID()
	s.store.Append(created)

	s.logger.Info("movie created", zap.String("id", created.ID), zap.String("title", created.Title))
	return created, nil
}

// Update validates body as a partial movie and merges it into the stored record.
// Validation runs before the lookup, so an invalid body is reported even for unknown ids.
func (s *Service) Update(_ context.Context, id string, body []byte) (movie.Movie, error) {
	res := movie.ValidatePartial(body)
	if err := res.Err(); err != nil {
		return movie.Movie{}, err
	}

	updated, err := s.store.UpdateByID(id, res.Patch)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("update movie %s: %w", id, err)
	}

	s.logger.Info("movie updated", zap.String("id", id), zap.Bool("noop", res.Patch.Empty()))
	return updated, nil
}

// Delete removes a movie.
func (s *Service) Delete(_ context.Context, id string) error {
	if err := s.store.RemoveByID(id); err != nil {
		return fmt.Errorf("delete movie %s: %w", id, err)
	}

	s.logger.Info("movie deleted", zap.String("id", id))
	return nil
}

// Count reports the number of stored movies.
func (s *Service) Count() int {
	return s.store.Len()
}
