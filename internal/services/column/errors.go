package column

import "errors"

// Column command errors. Commands never return them; they are logged at
// debug level and the command reports false.
var (
	// Gate errors
	ErrLocked = errors.New("column commands are locked")

	// Resolution errors
	ErrNotInColumn = errors.New("position is not inside a column")
	ErrNotInGroup  = errors.New("position is not inside a column group")

	// Validation errors
	ErrInvalidColumnCount = errors.New("a column group needs at least 2 columns")
	ErrIndexOutOfRange    = errors.New("column index out of range")
	ErrSameIndex          = errors.New("source and target column are the same")
	ErrInvalidWidth       = errors.New("column width must be a finite number")
)
