package listedit

import (
	"fmt"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/engine/buffer"
	"github.com/dshills/listedit/internal/outline"
)

// DefaultCheckbox is written into new checkbox items.
const DefaultCheckbox = "[ ] "

// Options tunes how new items are created.
type Options struct {
	// SplitLine moves the text after the cursor into the new item when
	// Enter is pressed in the middle of an item's content.
	SplitLine bool
	// Checkbox is the text written after the bullet of a new checkbox item.
	Checkbox string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{SplitLine: true, Checkbox: DefaultCheckbox}
}

// EngineHost implements Host over an editor engine. Every query parses the
// buffer afresh around the current cursor.
type EngineHost struct {
	eng    execctx.EngineInterface
	parser *outline.Parser
	opts   Options
}

// NewEngineHost returns a Host for eng.
func NewEngineHost(eng execctx.EngineInterface, opts Options) *EngineHost {
	if opts.Checkbox == "" {
		opts.Checkbox = DefaultCheckbox
	}
	return &EngineHost{
		eng:    eng,
		parser: outline.NewParser(eng.TabWidth()),
		opts:   opts,
	}
}

func (h *EngineHost) item() (outline.Item, bool) {
	return h.parser.ItemAt(h.eng, h.eng.CursorOffset())
}

func (h *EngineHost) line() uint32 {
	return h.eng.OffsetToPoint(h.eng.CursorOffset()).Line
}

// InListItem implements Host.
func (h *EngineHost) InListItem() bool {
	_, ok := h.item()
	return ok
}

// InCheckboxItem implements Host.
func (h *EngineHost) InCheckboxItem() bool {
	it, ok := h.item()
	return ok && it.HasCheckbox()
}

// ItemContentBoundary implements Host.
func (h *EngineHost) ItemContentBoundary() (buffer.ByteOffset, bool) {
	it, ok := h.item()
	if !ok {
		return 0, false
	}
	return it.ContentStart, true
}

// AtLineEnd implements Host.
func (h *EngineHost) AtLineEnd() bool {
	return h.eng.CursorOffset() == h.eng.LineEndOffset(h.line())
}

// PreviousLineBlank implements Host.
func (h *EngineHost) PreviousLineBlank() bool {
	line := h.line()
	return line > 0 && outline.IsBlank(h.eng.LineText(line-1))
}

// CurrentLineNumber implements Host.
func (h *EngineHost) CurrentLineNumber() int {
	return int(h.line()) + 1
}

// Point implements Host.
func (h *EngineHost) Point() buffer.ByteOffset {
	return h.eng.CursorOffset()
}

// LineStart implements Host.
func (h *EngineHost) LineStart() buffer.ByteOffset {
	return h.eng.LineStartOffset(h.line())
}

// LineEnd implements Host.
func (h *EngineHost) LineEnd() buffer.ByteOffset {
	return h.eng.LineEndOffset(h.line())
}

// PreviousLineStart implements Host. On the first line it is the line start.
func (h *EngineHost) PreviousLineStart() buffer.ByteOffset {
	line := h.line()
	if line == 0 {
		return 0
	}
	return h.eng.LineStartOffset(line - 1)
}

// PreviousLineEnd implements Host. On the first line it is the line start.
func (h *EngineHost) PreviousLineEnd() buffer.ByteOffset {
	line := h.line()
	if line == 0 {
		return 0
	}
	return h.eng.LineEndOffset(line - 1)
}

// OutdentItem implements Host.
func (h *EngineHost) OutdentItem() error {
	it, ok := h.item()
	if !ok {
		return ErrNoItem
	}
	return h.parser.Outdent(h.eng, it)
}

// InsertCheckboxItem implements Host.
func (h *EngineHost) InsertCheckboxItem() error {
	return h.insert(h.opts.Checkbox)
}

// InsertPlainItem implements Host.
func (h *EngineHost) InsertPlainItem() error {
	return h.insert("")
}

func (h *EngineHost) insert(checkbox string) error {
	it, ok := h.item()
	if !ok {
		return ErrNoItem
	}
	off, err := h.parser.InsertSibling(h.eng, it, h.eng.CursorOffset(), outline.InsertOptions{
		Checkbox:  checkbox,
		SplitLine: h.opts.SplitLine,
	})
	if err != nil {
		return err
	}
	h.eng.SetCursor(off)
	return nil
}

// DeleteRange implements Host.
func (h *EngineHost) DeleteRange(start, end buffer.ByteOffset) error {
	if _, err := h.eng.Delete(start, end); err != nil {
		return fmt.Errorf("delete %d..%d: %w", start, end, err)
	}
	return nil
}

// MoveTo implements Host.
func (h *EngineHost) MoveTo(offset buffer.ByteOffset) {
	h.eng.SetCursor(offset)
}
