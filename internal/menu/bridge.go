package menu

import (
	"strings"

	"github.com/vannrr/fmark/internal/codec"
	"github.com/vannrr/fmark/internal/model"
)

// Render returns one selectable line per record, in collection order, using
// the same padded layout the file uses. What the user picks from is exactly
// what the file stores.
func Render(records []model.Record) []string {
	titleWidth, categoryWidth := codec.Widths(records)
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = codec.Line(r, titleWidth, categoryWidth)
	}
	return lines
}

// Kind tells the dispatcher what a menu round produced.
type Kind int

const (
	// Cancelled means the user dismissed the menu. A normal outcome.
	Cancelled Kind = iota

	// Selected means the choice matched a rendered line.
	Selected

	// Raw means the user typed text that matches no line.
	Raw
)

// Resolution is the decoded outcome of one menu round.
type Resolution struct {
	Kind  Kind
	Index int    // set when Kind == Selected
	Text  string // set when Kind == Raw
}

// Resolve maps the menu program's output back onto the rendered lines.
// Records with identical rendered text resolve to the first matching index
// in sort order.
func Resolve(choice string, rendered []string) Resolution {
	if strings.TrimSpace(choice) == "" {
		return Resolution{Kind: Cancelled}
	}
	for i, line := range rendered {
		if line == choice {
			return Resolution{Kind: Selected, Index: i}
		}
	}
	return Resolution{Kind: Raw, Text: choice}
}
