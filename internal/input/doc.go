// Package input turns terminal key events into editor actions.
//
// An Action names a dispatcher command ("editor.insertNewline",
// "cursor.left") and carries its arguments. A Keymap maps tcell key events
// to actions; printable keys that have no binding insert themselves.
//
// Key specs are written "Enter", "Backspace", "Ctrl+Z", "Alt+x" or a single
// character. The same specs are used by the default keymap, by scenario
// files and by scripts.
package input
