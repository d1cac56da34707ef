package movie

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when no movie carries the requested identifier.
var ErrNotFound = errors.New("movie not found")

// Store exposes movie retrieval and mutation for the HTTP layer.
type Store interface {
	List(genre string) []Movie
	Get(id string) (Movie, error)
	Append(m Movie)
	UpdateByID(id string, patch Patch) (Movie, error)
	RemoveByID(id string) error
	Len() int
}

// MemoryStore implements Store with an ordered in-memory slice.
// Every operation holds the mutex for its whole duration, so mutations never interleave.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Movie
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied movies.
func NewMemoryStore(items []Movie) *MemoryStore {
	copied := make([]Movie, 0, len(items))
	for _, item := range items {
		copied = append(copied, item.clone())
	}
	return &MemoryStore{items: copied}
}

// List returns every movie when genre is empty, otherwise only those tagged with it.
func (s *MemoryStore) List(genre string) []Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Movie, 0, len(s.items))
	for _, item := range s.items {
		if genre != "" && !item.HasGenre(genre) {
			continue
		}
		out = append(out, item.clone())
	}
	return out
}

// Get looks up a movie by identifier.
func (s *MemoryStore) Get(id string) (Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Movie{}, ErrNotFound
	}
	return s.items[i].clone(), nil
}

// Append adds m at the end of the sequence.
func (s *MemoryStore) Append(m Movie) {
	s.mu.Lock()
	s.items = append(s.items, m.clone())
	s.mu.Unlock()
}

// UpdateByID merges patch over the stored movie in place and returns the result.
func (s *MemoryStore) UpdateByID(id string, patch Patch) (Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Movie{}, ErrNotFound
	}
	s.items[i] = patch.Apply(s.items[i])
	return s.items[i].clone(), nil
}

// RemoveByID deletes the movie, keeping the remaining ones in order.
func (s *MemoryStore) RemoveByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// Len reports how many movies are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// indexOf must be called with the mutex held.
func (s *MemoryStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
