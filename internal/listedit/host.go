package listedit

import "github.com/dshills/listedit/internal/engine/buffer"

// Host is the editing surface the list handlers work against. Queries
// describe the buffer around the cursor at the time of the call.
type Host interface {
	// InListItem reports whether the cursor is inside a list item.
	InListItem() bool
	// InCheckboxItem reports whether the item at the cursor has a checkbox.
	InCheckboxItem() bool
	// ItemContentBoundary returns the offset right after the prefix of the
	// item at the cursor.
	ItemContentBoundary() (buffer.ByteOffset, bool)
	// AtLineEnd reports whether the cursor is at the end of its line.
	AtLineEnd() bool
	// PreviousLineBlank reports whether the line above the cursor holds
	// only whitespace. It is false on the first line.
	PreviousLineBlank() bool
	// CurrentLineNumber returns the 1-based line of the cursor.
	CurrentLineNumber() int

	Point() buffer.ByteOffset
	LineStart() buffer.ByteOffset
	LineEnd() buffer.ByteOffset
	PreviousLineStart() buffer.ByteOffset
	PreviousLineEnd() buffer.ByteOffset

	// OutdentItem moves the current item one level left. It fails with
	// an error matching outline.ErrOutdent at the outermost level.
	OutdentItem() error
	InsertCheckboxItem() error
	InsertPlainItem() error
	DeleteRange(start, end buffer.ByteOffset) error
	MoveTo(offset buffer.ByteOffset)
}
