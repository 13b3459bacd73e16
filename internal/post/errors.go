package post

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the identifier was well-formed but no post matched.
	ErrNotFound = errors.New("post not found")
	// ErrInvalidID means the identifier failed the format check; the store
	// was never contacted.
	ErrInvalidID = errors.New("invalid post id")
	// ErrInvalidPage means the page parameter was not a positive integer.
	ErrInvalidPage = errors.New("invalid page parameter")
)

// FieldError names a single failing payload field and the reason it failed.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError enumerates every payload field that failed its rule.
// It is produced before any store access.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("invalid payload: %s", strings.Join(names, ", "))
}
