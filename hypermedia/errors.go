package hypermedia

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a link or named entity the operation
// depends on is absent from the collection.
type NotFoundError struct {
	Name string
	Type string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("no %s %q in collection", e.Type, e.Name)
	}
	return fmt.Sprintf("no link with relation %q in collection", e.Name)
}

// AmbiguousError indicates that a lookup which must resolve to exactly one
// item matched several. This is a caller or data-model bug, surfaced
// eagerly instead of picking an arbitrary match.
type AmbiguousError struct {
	Name string
	Type string
}

// Error implements the error interface
func (e *AmbiguousError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("multiple %s entries match %q", e.Type, e.Name)
	}
	return fmt.Sprintf("multiple links match relation %q", e.Name)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
