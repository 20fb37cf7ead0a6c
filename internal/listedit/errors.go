package listedit

import "errors"

var (
	// ErrNoItem is returned when an item operation runs with the cursor
	// outside a list item.
	ErrNoItem = errors.New("listedit: cursor is not in a list item")

	// ErrNoEngine is returned by the advice when the context has no engine.
	ErrNoEngine = errors.New("listedit: no engine")
)
