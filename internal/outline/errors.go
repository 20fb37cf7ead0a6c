package outline

import "errors"

// Errors returned by structural edits.
var (
	// ErrOutdent is returned when an item cannot be outdented.
	ErrOutdent = errors.New("outline: cannot outdent item")

	// ErrOutermost indicates the item is already at the outermost level.
	// It is always wrapped in ErrOutdent.
	ErrOutermost = errors.New("item is at the outermost indentation level")

	// ErrNotItem is returned when an operation expects a list item line.
	ErrNotItem = errors.New("outline: line is not a list item")
)
