// Package cursor provides handlers for cursor movement operations.
//
// Horizontal motions move by runes and cross line boundaries. Vertical
// motions keep a goal column across short lines until a horizontal motion
// or an edit resets it.
package cursor
