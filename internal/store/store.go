// Package store owns the in-memory bookmark collection for one run. The
// collection is always sorted by (category, title); every mutation either
// keeps that invariant or is rejected before anything changes.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/vannrr/fmark/internal/codec"
	"github.com/vannrr/fmark/internal/model"
)

// ErrIndexOutOfRange marks an index that does not name a record. It points
// at a resolution bug, not at anything a user did.
var ErrIndexOutOfRange = errors.New("record index out of range")

// Store holds the collection loaded from one bookmark file.
type Store struct {
	path    string
	records []model.Record
}

// Open reads and parses the bookmark file at path. A missing file is an
// empty collection; the file appears on the first save.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Store{path: path}, nil
		}
		return nil, fmt.Errorf("read bookmark file %s: %w", path, err)
	}
	records, err := codec.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse bookmark file %s: %w", path, err)
	}
	return &Store{path: path, records: records}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// At returns the record at index i.
func (s *Store) At(i int) (model.Record, error) {
	if i < 0 || i >= len(s.records) {
		return model.Record{}, ErrIndexOutOfRange
	}
	return s.records[i], nil
}

// Snapshot returns a copy of the collection in sort order.
func (s *Store) Snapshot() []model.Record {
	return slices.Clone(s.records)
}

// Categories returns the distinct categories in sort order, for offering as
// menu items during create and modify.
func (s *Store) Categories() []string {
	var categories []string
	for _, r := range s.records {
		if len(categories) == 0 || categories[len(categories)-1] != r.Category {
			categories = append(categories, r.Category)
		}
	}
	return categories
}

// Add validates rec, trims its fields, and inserts it at the position that
// keeps the collection sorted, returning that position. Exact duplicates
// are allowed and land after their equals.
func (s *Store) Add(rec model.Record) (int, error) {
	normalized, err := model.New(rec.Title, rec.Category, rec.URL)
	if err != nil {
		return 0, err
	}
	i := s.insertionIndex(normalized)
	s.records = slices.Insert(s.records, i, normalized)
	return i, nil
}

// Update replaces the record at index i. A category or title edit can move
// the record, so this is remove-then-add; the new position is returned.
// The replacement is validated before anything is touched.
func (s *Store) Update(i int, rec model.Record) (int, error) {
	if i < 0 || i >= len(s.records) {
		return 0, ErrIndexOutOfRange
	}
	normalized, err := model.New(rec.Title, rec.Category, rec.URL)
	if err != nil {
		return 0, err
	}
	s.records = slices.Delete(s.records, i, i+1)
	j := s.insertionIndex(normalized)
	s.records = slices.Insert(s.records, j, normalized)
	return j, nil
}

// Remove deletes the record at index i.
func (s *Store) Remove(i int) error {
	if i < 0 || i >= len(s.records) {
		return ErrIndexOutOfRange
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

// Save serializes the collection and overwrites the backing file, creating
// the parent directory if needed.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("write bookmark file %s: %w", s.path, err)
	}
	text := codec.Serialize(s.records)
	if err := os.WriteFile(s.path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write bookmark file %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) insertionIndex(rec model.Record) int {
	return sort.Search(len(s.records), func(i int) bool {
		return model.Compare(s.records[i], rec) > 0
	})
}
