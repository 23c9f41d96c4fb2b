package gridpath

import "errors"

var (
	// ErrEmptyGrid indicates the walkability matrix has no rows or no columns.
	ErrEmptyGrid = errors.New("gridpath: walkability matrix must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridpath: all rows must have the same length")
	// ErrStartOutOfBounds indicates the start coordinate lies outside the matrix.
	ErrStartOutOfBounds = errors.New("gridpath: start coordinate out of bounds")
	// ErrGoalOutOfBounds indicates the goal coordinate lies outside the matrix.
	ErrGoalOutOfBounds = errors.New("gridpath: goal coordinate out of bounds")
	// ErrOutOfBounds indicates a coordinate outside the matrix passed to Connected.
	ErrOutOfBounds = errors.New("gridpath: coordinate out of bounds")
	// ErrEngineConsumed is returned when Run is invoked on an Engine that already ran.
	ErrEngineConsumed = errors.New("gridpath: engine already consumed; build a new engine per search")
	// ErrExpansionLimit is returned when the WithMaxExpansions budget is exhausted.
	ErrExpansionLimit = errors.New("gridpath: expansion limit reached")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("gridpath: invalid option supplied")
)
