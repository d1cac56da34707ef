package movie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

// Genres lists the values accepted in a movie's genre field.
var Genres = []string{"Action", "Adventure", "Crime", "Comedy", "Drama", "Fantasy", "Horror", "Thriller", "Sci-Fi"}

const (
	minYear       = 1900
	minRating     = 0
	maxRating     = 10
	defaultRating = 5
)

// now is swapped in tests that pin the upper year bound.
var now = time.Now

// Validation issue codes.
const (
	CodeInvalidType  = "invalid_type"
	CodeRequired     = "required"
	CodeTooSmall     = "too_small"
	CodeTooBig       = "too_big"
	CodeInvalidURL   = "invalid_url"
	CodeInvalidEnum  = "invalid_enum_value"
	CodeInvalidInput = "invalid_input"
)

// FieldError describes one failed check. Path is empty for problems with the document itself.
type FieldError struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// ValidationError wraps the issues found in a rejected payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if len(f.Path) == 0 {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, strings.Join(f.Path, ".")+": "+f.Message)
	}
	return "invalid movie: " + strings.Join(parts, "; ")
}

// Result is the outcome of a validation: either a normalized value or a list of errors.
// Movie is set by ValidateFull, Patch by ValidatePartial.
type Result struct {
	Movie  Movie
	Patch  Patch
	Errors []FieldError
}

// OK reports whether validation succeeded.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Err returns the errors as a *ValidationError, or nil when validation succeeded.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Fields: r.Errors}
}

// ValidateFull checks a JSON document against the complete movie shape.
// Unknown fields, including id, are dropped.
func ValidateFull(raw []byte) Result {
	fields, errs := decodeObject(raw)
	if errs != nil {
		return Result{Errors: errs}
	}

	c := &checker{fields: fields, required: true}
	p := c.patch()
	if !c.has("rating") {
		r := float64(defaultRating)
		p.Rating = &r
	}
	if !c.ok() {
		return Result{Errors: c.errs}
	}
	return Result{Movie: p.Apply(Movie{})}
}

// ValidatePartial applies the same per-field checks as ValidateFull without requiring any field.
// An empty object yields an empty patch.
func ValidatePartial(raw []byte) Result {
	fields, errs := decodeObject(raw)
	if errs != nil {
		return Result{Errors: errs}
	}

	c := &checker{fields: fields}
	p := c.patch()
	if !c.ok() {
		return Result{Errors: c.errs}
	}
	return Result{Patch: p}
}

func decodeObject(raw []byte) (map[string]json.RawMessage, []FieldError) {
	trimmed := bytes.TrimSpace(raw)
	if jsonKind(trimmed) != "object" {
		return nil, []FieldError{{
			Code:    CodeInvalidType,
			Path:    []string{},
			Message: "Expected object, received " + describe(trimmed),
		}}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, []FieldError{{
			Code:    CodeInvalidInput,
			Path:    []string{},
			Message: fmt.Sprintf("Malformed JSON: %v", err),
		}}
	}
	return fields, nil
}

type checker struct {
	fields   map[string]json.RawMessage
	required bool
	errs     []FieldError
}

func (c *checker) ok() bool { return len(c.errs) == 0 }

func (c *checker) has(name string) bool {
	_, ok := c.fields[name]
	return ok
}

func (c *checker) fail(code, message string, path ...string) {
	c.errs = append(c.errs, FieldError{Code: code, Path: path, Message: message})
}

func (c *checker) patch() Patch {
	var p Patch
	p.Title = c.text("title")
	p.Year = c.integer("year", minYear, now().Year()+1)
	p.Director = c.text("director")
	p.Duration = c.integer("duration", 1, math.MaxInt32)
	p.Poster = c.link("poster")
	if c.has("rating") {
		p.Rating = c.number("rating", minRating, maxRating)
	}
	p.Genre = c.genre("genre")
	return p
}

// lookup returns the raw value for name, recording a required error when it is missing.
func (c *checker) lookup(name string) (json.RawMessage, bool) {
	raw, ok := c.fields[name]
	if !ok {
		if c.required {
			c.fail(CodeRequired, "Required", name)
		}
		return nil, false
	}
	return bytes.TrimSpace(raw), true
}

func (c *checker) expect(name string, raw json.RawMessage, kind string) bool {
	if got := jsonKind(raw); got != kind {
		c.fail(CodeInvalidType, fmt.Sprintf("Expected %s, received %s", kind, got), name)
		return false
	}
	return true
}

func (c *checker) text(name string) *string {
	raw, ok := c.lookup(name)
	if !ok || !c.expect(name, raw, "string") {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		c.fail(CodeInvalidType, "Expected string", name)
		return nil
	}
	if strings.TrimSpace(s) == "" {
		c.fail(CodeTooSmall, "String must contain at least 1 character(s)", name)
		return nil
	}
	return &s
}

func (c *checker) number(name string, lo, hi float64) *float64 {
	raw, ok := c.lookup(name)
	if !ok || !c.expect(name, raw, "number") {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		c.fail(CodeInvalidType, "Expected number", name)
		return nil
	}
	switch {
	case f < lo:
		c.fail(CodeTooSmall, fmt.Sprintf("Number must be greater than or equal to %v", lo), name)
		return nil
	case f > hi:
		c.fail(CodeTooBig, fmt.Sprintf("Number must be less than or equal to %v", hi), name)
		return nil
	}
	return &f
}

func (c *checker) integer(name string, lo, hi int) *int {
	raw, ok := c.lookup(name)
	if !ok || !c.expect(name, raw, "number") {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		c.fail(CodeInvalidType, "Expected number", name)
		return nil
	}
	if f != math.Trunc(f) {
		c.fail(CodeInvalidType, "Expected integer, received float", name)
		return nil
	}
	switch {
	case f < float64(lo):
		c.fail(CodeTooSmall, fmt.Sprintf("Number must be greater than or equal to %d", lo), name)
		return nil
	case f > float64(hi):
		c.fail(CodeTooBig, fmt.Sprintf("Number must be less than or equal to %d", hi), name)
		return nil
	}
	n := int(f)
	return &n
}

func (c *checker) link(name string) *string {
	s := c.text(name)
	if s == nil {
		return nil
	}
	u, err := url.ParseRequestURI(*s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		c.fail(CodeInvalidURL, "Invalid url", name)
		return nil
	}
	return s
}

func (c *checker) genre(name string) []string {
	raw, ok := c.lookup(name)
	if !ok || !c.expect(name, raw, "array") {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		c.fail(CodeInvalidType, "Expected array", name)
		return nil
	}
	if len(items) == 0 {
		c.fail(CodeTooSmall, "Array must contain at least 1 element(s)", name)
		return nil
	}

	before := len(c.errs)
	out := make([]string, 0, len(items))
	for i, item := range items {
		idx := fmt.Sprint(i)
		item = bytes.TrimSpace(item)
		if kind := jsonKind(item); kind != "string" {
			c.fail(CodeInvalidType, "Expected string, received "+kind, name, idx)
			continue
		}
		var g string
		if err := json.Unmarshal(item, &g); err != nil {
			c.fail(CodeInvalidType, "Expected string", name, idx)
			continue
		}
		if !allowedGenre(g) {
			c.fail(CodeInvalidEnum, fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", quoteGenres(), g), name, idx)
			continue
		}
		out = append(out, g)
	}
	if len(c.errs) > before {
		return nil
	}
	return out
}

func allowedGenre(g string) bool {
	for _, allowed := range Genres {
		if g == allowed {
			return true
		}
	}
	return false
}

func quoteGenres() string {
	quoted := make([]string, len(Genres))
	for i, g := range Genres {
		quoted[i] = "'" + g + "'"
	}
	return strings.Join(quoted, " | ")
}

// jsonKind classifies a trimmed JSON value by its first byte.
func jsonKind(raw []byte) string {
	if len(raw) == 0 {
		return "undefined"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return "number"
	}
	return "unknown"
}

func describe(raw []byte) string {
	kind := jsonKind(raw)
	if kind == "unknown" {
		return "malformed input"
	}
	return kind
}
