package chart

import "errors"

// Sentinel errors for chart parsing.
var (
	// ErrSyntax indicates a malformed line in a chart file.
	ErrSyntax = errors.New("chart syntax error")

	// ErrInvalidNote indicates a note whose fields are well-formed but inconsistent,
	// such as a hold ending before it starts.
	ErrInvalidNote = errors.New("invalid note")
)
