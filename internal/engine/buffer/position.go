package buffer

import "sync/atomic"

// ByteOffset is a byte position in the LF-normalized text.
type ByteOffset = int64

// Point is a 0-based line and a byte column within that line.
type Point struct {
	Line   uint32
	Column uint32
}

// RevisionID identifies a state of a buffer. Every edit, undo and redo
// produces a fresh ID, so equal IDs mean unchanged text.
type RevisionID uint64

var lastRevision atomic.Uint64

// NewRevisionID returns an ID no buffer has used yet.
func NewRevisionID() RevisionID {
	return RevisionID(lastRevision.Add(1))
}
