// Package outline recognises plain-text list items and performs the
// structural edits list commands need.
//
// An item is a line of the form
//
//	<indent><bullet><space>[<checkbox><space>]<content>
//
// where bullet is "-", "+", "*" (indented only, since "*" at column 0 is a
// heading), "N." or "N)". Checkboxes are "[ ]", "[X]", "[x]" and "[-]". An
// item owns the following non-blank lines indented deeper than its bullet:
// continuation text and nested items. A blank line ends every open item.
//
// Nothing is cached. Every query reads the text again, since the buffer
// may have changed between keystrokes.
package outline
