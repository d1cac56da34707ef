package movie

import "strings"

// Movie is a single catalog entry served under /movies.
type Movie struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Year     int      `json:"year" yaml:"year"`
	Director string   `json:"director" yaml:"director"`
	Duration int      `json:"duration" yaml:"duration"`
	Poster   string   `json:"poster" yaml:"poster"`
	Rating   float64  `json:"rating" yaml:"rating"`
	Genre    []string `json:"genre" yaml:"genre"`
}

// Patch carries the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	Title    *string
	Year     *int
	Director *string
	Duration *int
	Poster   *string
	Rating   *float64
	Genre    []string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Year == nil && p.Director == nil &&
		p.Duration == nil && p.Poster == nil && p.Rating == nil && p.Genre == nil
}

// Apply returns m with every present patch field written over it. The ID is never touched.
func (p Patch) Apply(m Movie) Movie {
	out := m.clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Year != nil {
		out.Year = *p.Year
	}
	if p.Director != nil {
		out.Director = *p.Director
	}
	if p.Duration != nil {
		out.Duration = *p.Duration
	}
	if p.Poster != nil {
		out.Poster = *p.Poster
	}
	if p.Rating != nil {
		out.Rating = *p.Rating
	}
	if p.Genre != nil {
		out.Genre = append([]string(nil), p.Genre...)
	}
	return out
}

// HasGenre matches genre case-insensitively against the movie's genres.
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.Genre {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

func (m Movie) clone() Movie {
	m.Genre = append([]string(nil), m.Genre...)
	return m
}
