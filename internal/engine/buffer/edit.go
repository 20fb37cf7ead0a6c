package buffer

import "fmt"

// Range is the half-open byte span [Start, End).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// NewRange returns the span from start to end.
func NewRange(start, end ByteOffset) Range {
	return Range{Start: start, End: end}
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Len returns the number of bytes the range covers.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// Edit replaces the text in Range with NewText. An empty Range inserts and
// an empty NewText deletes.
type Edit struct {
	Range   Range
	NewText string
}

func (e Edit) String() string {
	switch {
	case e.Range.IsEmpty():
		return fmt.Sprintf("insert %q at %d", e.NewText, e.Range.Start)
	case e.NewText == "":
		return fmt.Sprintf("delete %d..%d", e.Range.Start, e.Range.End)
	}
	return fmt.Sprintf("replace %d..%d with %q", e.Range.Start, e.Range.End, e.NewText)
}

// NewInsert returns an edit inserting text at offset.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: NewRange(offset, offset), NewText: text}
}

// NewDelete returns an edit removing [start, end).
func NewDelete(start, end ByteOffset) Edit {
	return Edit{Range: NewRange(start, end)}
}

// EditResult records an applied edit with enough detail to undo it.
type EditResult struct {
	OldRange Range  // span replaced, in the text before the edit
	NewRange Range  // span of the inserted text, after the edit
	OldText  string // removed text
	NewText  string // inserted text
	Delta    int64  // change in buffer length
}

// Invert returns the edit that restores the text this result replaced.
func (r EditResult) Invert() Edit {
	return Edit{Range: r.NewRange, NewText: r.OldText}
}

// Redo returns the edit that re-applies this result.
func (r EditResult) Redo() Edit {
	return Edit{Range: r.OldRange, NewText: r.NewText}
}
