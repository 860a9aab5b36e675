package budget

import (
	"errors"
	"fmt"
)

var (
	// ErrCategoryNotFound matches every NotFoundError via errors.Is.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNothingToEdit is returned when an edit supplies no field.
	ErrNothingToEdit = errors.New("nothing to edit")
	// ErrOverallRename is returned for any attempt to rename the Overall budget.
	ErrOverallRename = errors.New("the Overall budget cannot be renamed")
	// ErrReservedCategory is returned when a category would be named Overall.
	ErrReservedCategory = errors.New("the name 'Overall' is reserved")
	// ErrCategoryExists is returned when a rename collides with another category.
	ErrCategoryExists = errors.New("category already exists")
	// ErrInvalidRecurrence is returned for frequency or iteration counts out of bounds.
	ErrInvalidRecurrence = errors.New("invalid recurrence")
)

// NotFoundError reports an unknown budget category.
type NotFoundError struct {
	Category string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("budget category '%s' not found", e.Category)
}

// Is lets errors.Is(err, ErrCategoryNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrCategoryNotFound
}
