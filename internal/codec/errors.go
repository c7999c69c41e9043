package codec

import "fmt"

// ErrorCode classifies why a line was rejected.
type ErrorCode string

const (
	// MalformedLine means a tag marker was missing, repeated, or out of
	// order.
	MalformedLine ErrorCode = "MALFORMED_LINE"

	// EmptyField means a field was blank after trimming.
	EmptyField ErrorCode = "EMPTY_FIELD"
)

// ParseError reports a line the codec could not turn into a record.
type ParseError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Line is the 1-based line number, matching what editors show.
	Line int

	// Text is the raw line, set for MalformedLine.
	Text string

	// Field names the blank field, set for EmptyField.
	Field string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Code {
	case EmptyField:
		return fmt.Sprintf("line %d: %s is empty", e.Line, e.Field)
	default:
		return fmt.Sprintf("line %d: malformed bookmark line %q", e.Line, e.Text)
	}
}
