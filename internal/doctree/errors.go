package doctree

import "fmt"

// ParseError reports a source document that could not be parsed into a tree.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
