package graphio

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine indicates a data line without exactly two tokens
	ErrMalformedLine = errors.New("graphio: data line must hold exactly two node IDs")

	// ErrSelfLoop indicates an edge from a node to itself when self-loops are rejected
	ErrSelfLoop = errors.New("graphio: self-loop not allowed")

	// ErrInvalidS3URL indicates an s3:// source without bucket or key
	ErrInvalidS3URL = errors.New("graphio: invalid s3 URL")
)

// ParseError reports the line that stopped a parse
type ParseError struct {
	Line int    // 1-based
	Text string // raw line, comment included
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("graphio: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
