package search

import (
	"github.com/sahilm/fuzzy"
	"github.com/vannrr/fmark/internal/model"
)

// Result is one fuzzy match against the collection.
type Result struct {
	Index          int // position in the collection passed to Titles
	Record         model.Record
	MatchedIndexes []int
	Score          int
}

// recordTitles implements fuzzy.Source over a record slice.
type recordTitles []model.Record

func (rt recordTitles) String(i int) string {
	return rt[i].Title
}

func (rt recordTitles) Len() int {
	return len(rt)
}

// Titles fuzzy-matches query against record titles.
// Returns results sorted by match score (best first).
func Titles(records []model.Record, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, recordTitles(records))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Index:          m.Index,
			Record:         records[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
