package listedit

import (
	"errors"
	"fmt"

	"github.com/dshills/listedit/internal/outline"
)

// ExtendDecision is what Extend does for a given cursor state.
type ExtendDecision uint8

const (
	// ExtendPassthrough runs the native newline command.
	ExtendPassthrough ExtendDecision = iota
	// ExtendOutdentOrClear outdents an empty item, or clears its line when
	// it cannot be outdented.
	ExtendOutdentOrClear
	// ExtendInsertCheckbox starts a sibling checkbox item.
	ExtendInsertCheckbox
	// ExtendInsertPlain starts a sibling item.
	ExtendInsertPlain
)

func (d ExtendDecision) String() string {
	switch d {
	case ExtendPassthrough:
		return "passthrough"
	case ExtendOutdentOrClear:
		return "outdent-or-clear"
	case ExtendInsertCheckbox:
		return "insert-checkbox"
	case ExtendInsertPlain:
		return "insert-plain"
	default:
		return "unknown"
	}
}

// ClassifyExtend decides how Extend treats the current cursor state.
// An item is empty when the cursor is at end of line and not past the
// content boundary.
func ClassifyExtend(h Host) ExtendDecision {
	boundary, ok := Locator{}.Boundary(h)
	switch {
	case !ok:
		return ExtendPassthrough
	case h.AtLineEnd() && h.Point() <= boundary:
		return ExtendOutdentOrClear
	case h.InCheckboxItem():
		return ExtendInsertCheckbox
	default:
		return ExtendInsertPlain
	}
}

// Handlers runs the list-aware variants of newline and backspace.
type Handlers struct {
	logger Logger
}

// NewHandlers returns Handlers logging to logger, which may be nil.
func NewHandlers(logger Logger) *Handlers {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Handlers{logger: logger}
}

// Extend handles a newline trigger. next runs the native command and is
// called only when the cursor is not in a list item.
func (hs *Handlers) Extend(h Host, next func() error) error {
	switch d := ClassifyExtend(h); d {
	case ExtendPassthrough:
		return next()
	case ExtendOutdentOrClear:
		err := h.OutdentItem()
		if err == nil || !errors.Is(err, outline.ErrOutdent) {
			return err
		}
		hs.logger.Debug("item at outermost level, clearing line", "line", h.CurrentLineNumber())
		return h.DeleteRange(h.LineStart(), h.LineEnd())
	case ExtendInsertCheckbox:
		return h.InsertCheckboxItem()
	case ExtendInsertPlain:
		return h.InsertPlainItem()
	default:
		return fmt.Errorf("listedit: unexpected extend decision %d", d)
	}
}
