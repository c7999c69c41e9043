package model

import (
	"fmt"
	"strings"
)

// Record is a single bookmark: a title, the category it is filed under, and
// the URL to open.
type Record struct {
	Title    string
	Category string
	URL      string
}

// New trims the three fields and validates the result.
func New(title, category, url string) (Record, error) {
	r := Record{
		Title:    strings.TrimSpace(title),
		Category: strings.TrimSpace(category),
		URL:      strings.TrimSpace(url),
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate reports the first field that violates the record invariant:
// every field must be non-empty after trimming, and title and category must
// not contain the brace characters the file format uses as tag markers.
// The URL is otherwise free-form; the store's job is storage, not
// link-checking.
func (r Record) Validate() error {
	fields := []struct{ name, value string }{
		{"title", r.Title},
		{"category", r.Category},
		{"url", r.URL},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "must not be empty"}
		}
		if f.name != "url" && strings.ContainsAny(f.value, "{}") {
			return &ValidationError{Field: f.name, Reason: "must not contain '{' or '}'"}
		}
	}
	return nil
}

// Compare orders records by (category, title), case-sensitive. The URL is
// not part of the key; records that tie keep their existing order.
func Compare(a, b Record) int {
	if c := strings.Compare(a.Category, b.Category); c != 0 {
		return c
	}
	return strings.Compare(a.Title, b.Title)
}

// ValidationError marks a record field that was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
