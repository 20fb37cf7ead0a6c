// Package listedit makes Enter and Backspace behave like a word processor
// inside outline lists.
//
// Two handlers run as advice around the editor's native commands:
//
//   - Extend wraps editor.insertNewline. On an item with content it starts a
//     sibling item (keeping a checkbox if the item has one). On an empty item
//     it outdents the item one level, or clears the line when the item is
//     already at the outermost level.
//   - DeleteBack wraps editor.deleteCharBack. With the cursor at or before
//     the start of an item's content it removes the item prefix: joining a
//     blank line above, stripping the bullet on the first line, or merging
//     the content onto the end of the previous line.
//
// Everywhere else both handlers hand control to the native command.
//
// The handlers only talk to a Host. EngineHost implements Host for the
// editor engine using the outline parser. Session installs and removes the
// advice and tracks whether list editing is enabled.
package listedit
