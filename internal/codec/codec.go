// Package codec implements the plain-text bookmark file format: one record
// per line, three tagged fields, right-padded so the tags line up in columns.
//
//	{T}Project's Github {C}Development {U}https://github.com/vannrr/fmark
//
// Parsing tolerates whatever a hand edit left behind (ragged padding, blank
// lines); serializing normalizes everything back, and re-parsing serialized
// output reproduces it byte for byte.
package codec

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/vannrr/fmark/internal/model"
)

const (
	tagTitle    = "{T}"
	tagCategory = "{C}"
	tagURL      = "{U}"
)

// Parse turns raw file contents into records sorted by (category, title).
// Blank lines are skipped. Any other line must carry the three tags in
// order with non-empty content between them; the first offending line stops
// the parse with a *ParseError so the user can fix the file by hand.
func Parse(text string) ([]model.Record, error) {
	var records []model.Record
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parseLine(line, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	// Stable, so duplicate (category, title) pairs keep file order.
	slices.SortStableFunc(records, model.Compare)
	return records, nil
}

func parseLine(line string, number int) (model.Record, error) {
	ti := strings.Index(line, tagTitle)
	ci := strings.Index(line, tagCategory)
	ui := strings.Index(line, tagURL)

	malformed := ti < 0 || ci < 0 || ui < 0 || ci < ti || ui < ci ||
		strings.Count(line, tagTitle) != 1 ||
		strings.Count(line, tagCategory) != 1 ||
		strings.Count(line, tagURL) != 1
	if malformed {
		return model.Record{}, &ParseError{
			Code: MalformedLine,
			Line: number,
			Text: strings.TrimRight(line, " \t"),
		}
	}

	rec := model.Record{
		Title:    strings.TrimSpace(line[ti+len(tagTitle) : ci]),
		Category: strings.TrimSpace(line[ci+len(tagCategory) : ui]),
		URL:      strings.TrimSpace(line[ui+len(tagURL):]),
	}

	fields := []struct{ name, value string }{
		{"title", rec.Title},
		{"category", rec.Category},
		{"url", rec.URL},
	}
	for _, f := range fields {
		if f.value == "" {
			return model.Record{}, &ParseError{Code: EmptyField, Line: number, Field: f.name}
		}
	}
	return rec, nil
}

// Serialize renders records as file text. Titles and categories are padded
// to the widest value of their column; the URL is the last column and never
// padded. Non-empty output ends with a newline; an empty collection is
// empty text.
func Serialize(records []model.Record) string {
	if len(records) == 0 {
		return ""
	}
	titleWidth, categoryWidth := Widths(records)
	var b strings.Builder
	for _, r := range records {
		b.WriteString(Line(r, titleWidth, categoryWidth))
		b.WriteByte('\n')
	}
	return b.String()
}

// Widths returns the rune count of the widest title and category. Padding
// counts runes, not bytes, so multibyte titles keep the columns aligned.
func Widths(records []model.Record) (titleWidth, categoryWidth int) {
	for _, r := range records {
		if n := utf8.RuneCountInString(r.Title); n > titleWidth {
			titleWidth = n
		}
		if n := utf8.RuneCountInString(r.Category); n > categoryWidth {
			categoryWidth = n
		}
	}
	return titleWidth, categoryWidth
}

// Line renders a single record at the given column widths. The selector
// shows these exact strings, so what the user picks from is what the file
// stores.
func Line(r model.Record, titleWidth, categoryWidth int) string {
	var b strings.Builder
	b.WriteString(tagTitle)
	b.WriteString(pad(r.Title, titleWidth))
	b.WriteByte(' ')
	b.WriteString(tagCategory)
	b.WriteString(pad(r.Category, categoryWidth))
	b.WriteByte(' ')
	b.WriteString(tagURL)
	b.WriteString(r.URL)
	return b.String()
}

func pad(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
