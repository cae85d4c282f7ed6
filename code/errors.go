package code

import (
	"errors"
	"fmt"
)

// ErrClassificationGap is returned when a code matches none of the grammar
// shapes. It is never recoverable: a mis-tagged code corrupts the published
// hierarchy.
var ErrClassificationGap = errors.New("code matches no tier")

// ClassificationError describes a code that could not be classified.
type ClassificationError struct {
	Code   string
	Reason string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify %q: %s", e.Code, e.Reason)
}

// Unwrap lets errors.Is match ErrClassificationGap.
func (e *ClassificationError) Unwrap() error {
	return ErrClassificationGap
}
