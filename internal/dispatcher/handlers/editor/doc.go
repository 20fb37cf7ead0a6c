// Package editor provides handlers for text editing operations.
//
// Commands:
//
//	editor.insertText      insert action text at the cursor
//	editor.insertNewline   split the line at the cursor, optionally
//	                       copying the current line's indentation
//	editor.deleteCharBack  delete the character before the cursor
//	editor.undo            revert the last undo unit
//	editor.redo            re-apply the last undone unit
//
// All edits go through the engine, which records history and keeps the
// cursor in place relative to the text.
package editor
