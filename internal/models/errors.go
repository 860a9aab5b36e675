package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveAmount is returned when an expense amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	// ErrNegativeAmount is returned when a limit or alert threshold is negative.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrEmptyDescription is returned for a blank expense description.
	ErrEmptyDescription = errors.New("description must not be empty")
	// ErrEmptyCategory is returned when renaming a budget to a blank name.
	ErrEmptyCategory = errors.New("category name must not be empty")
)

// IndexError reports a 1-based expense index outside [1, Size].
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("invalid index %d: there are no expenses", e.Index)
	}
	return fmt.Sprintf("invalid index %d: expected a number between 1 and %d", e.Index, e.Size)
}
