package movie

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed movies.json
var seedJSON []byte

// Seed returns the catalog bundled with the binary.
func Seed() ([]Movie, error) {
	return decodeSeed(seedJSON, ".json")
}

// LoadFile reads a catalog from a .json, .yaml or .yml file.
func LoadFile(path string) ([]Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read movies file: %w", err)
	}
	movies, err := decodeSeed(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return movies, nil
}

func decodeSeed(data []byte, ext string) ([]Movie, error) {
	var movies []Movie
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &movies); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &movies); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported movies file extension %q", ext)
	}

	seen := make(map[string]struct{}, len(movies))
	for i, m := range movies {
		if m.ID == "" {
			return nil, fmt.Errorf("movie at index %d has no id", i)
		}
		if _, dup := seen[m.ID]; dup {
			return nil, fmt.Errorf("duplicate movie id %q", m.ID)
		}
		seen[m.ID] = struct{}{}
	}

	// Seeded records must satisfy the full schema.
	for _, m := range movies {
		raw, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("movie %s: %w", m.ID, err)
		}
		if res := ValidateFull(raw); !res.OK() {
			return nil, fmt.Errorf("movie %s: %w", m.ID, res.Err())
		}
	}
	return movies, nil
}
