package listedit

import "fmt"

// DeleteBackDecision is what DeleteBack does for a given cursor state.
type DeleteBackDecision uint8

const (
	// DeleteBackPassthrough runs the native delete command.
	DeleteBackPassthrough DeleteBackDecision = iota
	// DeleteBackJoinBlankAbove removes the blank line above the item.
	DeleteBackJoinBlankAbove
	// DeleteBackStripPrefix removes the item prefix on the first line.
	DeleteBackStripPrefix
	// DeleteBackMergeIntoPrevious removes the prefix and line break so the
	// content continues the previous line.
	DeleteBackMergeIntoPrevious
)

func (d DeleteBackDecision) String() string {
	switch d {
	case DeleteBackPassthrough:
		return "passthrough"
	case DeleteBackJoinBlankAbove:
		return "join-blank-above"
	case DeleteBackStripPrefix:
		return "strip-prefix"
	case DeleteBackMergeIntoPrevious:
		return "merge-into-previous"
	default:
		return "unknown"
	}
}

// ClassifyDeleteBack decides how DeleteBack treats the current cursor
// state. Only a cursor at or before the content boundary is handled.
func ClassifyDeleteBack(h Host) DeleteBackDecision {
	boundary, ok := Locator{}.Boundary(h)
	switch {
	case !ok || h.Point() > boundary:
		return DeleteBackPassthrough
	case h.PreviousLineBlank():
		return DeleteBackJoinBlankAbove
	case h.CurrentLineNumber() == 1:
		return DeleteBackStripPrefix
	default:
		return DeleteBackMergeIntoPrevious
	}
}

// DeleteBack handles a backspace trigger. next runs the native command and
// is called only when the cursor is outside an item or past its content
// boundary.
func (hs *Handlers) DeleteBack(h Host, next func() error) error {
	d := ClassifyDeleteBack(h)
	if d == DeleteBackPassthrough {
		return next()
	}
	if d == DeleteBackJoinBlankAbove {
		return h.DeleteRange(h.PreviousLineStart(), h.LineStart())
	}

	if !h.AtLineEnd() {
		boundary, _ := Locator{}.Boundary(h)
		h.MoveTo(boundary)
	}
	switch d {
	case DeleteBackStripPrefix:
		return h.DeleteRange(h.LineStart(), h.Point())
	case DeleteBackMergeIntoPrevious:
		return h.DeleteRange(h.PreviousLineEnd(), h.Point())
	default:
		return fmt.Errorf("listedit: unexpected delete-back decision %d", d)
	}
}
