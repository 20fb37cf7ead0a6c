package listedit

import "github.com/dshills/listedit/internal/engine/buffer"

// Locator finds the content boundary of the item under the cursor.
type Locator struct{}

// Boundary returns the offset where the content of the item at the cursor
// begins, after indentation, bullet, checkbox and separating whitespace.
// It reports false when the cursor is not in an item. The boundary is read
// from the host on every call.
func (Locator) Boundary(h Host) (buffer.ByteOffset, bool) {
	if !h.InListItem() {
		return 0, false
	}
	return h.ItemContentBoundary()
}
