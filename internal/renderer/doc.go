// Package renderer draws a buffer, its cursor and a status line on a tcell
// screen.
//
// List item bullets and checkboxes are highlighted using the outline
// parser. Text is laid out by grapheme cluster with tabs expanded to the
// buffer's tab width, and the view scrolls to keep the cursor visible.
package renderer
