// Package history provides grouped undo/redo for buffer edits.
//
// Every edit applied through the engine is recorded as a buffer.EditResult.
// Edits recorded between BeginGroup and EndGroup form a single undo unit,
// so a list command that deletes a prefix and moves the cursor is reverted
// with one undo.
package history
