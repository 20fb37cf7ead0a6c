// Package cursor tracks the editing point of a session.
//
// There is exactly one cursor per buffer. It is a byte offset plus a
// remembered goal column used by vertical motion. Edits applied elsewhere in
// the buffer shift the cursor through Transform so that it stays attached to
// the same text.
package cursor
