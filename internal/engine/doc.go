// Package engine combines the buffer, the cursor and undo history into the
// editing surface that commands operate on.
//
// Every mutation goes through Engine so that it is recorded in history and
// the cursor is kept attached to its text:
//
//	e := engine.New(engine.WithContent("- one\n- two"))
//	e.BeginUndoGroup("extend")
//	e.Insert(5, "\n- ")
//	e.EndUndoGroup()
//	e.Undo() // back to "- one\n- two"
//
// All Engine operations are safe for concurrent use.
package engine
