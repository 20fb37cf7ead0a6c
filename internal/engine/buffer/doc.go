// Package buffer provides the mutable text buffer edited by list commands.
//
// Text is stored with LF line endings and indexed by line so that the
// outline parser can ask for line bounds on every keystroke without
// rescanning the document. The line ending found on load is remembered and
// restored by Export.
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column position (0-indexed, column in bytes)
//
// All Buffer methods are safe for concurrent use. Read operations acquire a
// read lock, writes an exclusive lock. Use Snapshot to obtain a consistent
// read-only view across several reads.
package buffer
