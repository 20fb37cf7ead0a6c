package renderer

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/listedit/internal/engine/buffer"
	"github.com/dshills/listedit/internal/outline"
)

// BufferReader provides read access to buffer content.
type BufferReader interface {
	LineText(line uint32) string
	LineCount() uint32
	TabWidth() int
}

// Status is what the status line shows.
type Status struct {
	FileName    string
	Modified    bool
	ListEditing bool
	Message     string
	IsError     bool
}

// Options configures the renderer.
type Options struct {
	ShowLineNumbers bool
	HighlightItems  bool
	Theme           Theme
}

// DefaultOptions returns the default renderer options.
func DefaultOptions() Options {
	return Options{ShowLineNumbers: true, HighlightItems: true, Theme: DefaultTheme()}
}

// Renderer draws frames on a screen. It remembers the scroll position
// between frames.
type Renderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	opts   Options
	top    int
}

// New creates a renderer drawing on screen.
func New(screen tcell.Screen, opts Options) *Renderer {
	return &Renderer{screen: screen, opts: opts}
}

// Screen returns the underlying screen.
func (r *Renderer) Screen() tcell.Screen {
	return r.screen
}

// TopLine returns the first buffer line on screen.
func (r *Renderer) TopLine() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.top
}

// Render draws buf with the cursor at cur and the status line, then shows
// the frame.
func (r *Renderer) Render(buf BufferReader, cur buffer.Point, st Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.screen.Size()
	r.screen.Clear()
	if width <= 0 || height <= 0 {
		return
	}

	rows := max(height-1, 1)
	r.scrollTo(int(cur.Line), rows)

	gutter := 0
	if r.opts.ShowLineNumbers {
		gutter = len(fmt.Sprint(buf.LineCount())) + 1
	}
	parser := outline.NewParser(buf.TabWidth())

	for row := 0; row < rows && row < height; row++ {
		line := r.top + row
		if line >= int(buf.LineCount()) {
			r.put(0, row, "~", r.opts.Theme.Filler, width)
			continue
		}
		if gutter > 0 {
			num := fmt.Sprintf("%*d ", gutter-1, line+1)
			r.put(0, row, num, r.opts.Theme.LineNumber, width)
		}
		r.drawLine(gutter, row, width, buf.LineText(uint32(line)), buf.TabWidth(), parser)
	}

	if height > 1 {
		r.drawStatus(height-1, width, cur, st)
	}

	text := buf.LineText(cur.Line)
	x := gutter + visualColumn(text, int(cur.Column), buf.TabWidth())
	y := int(cur.Line) - r.top
	if x < width && y >= 0 && y < rows {
		r.screen.ShowCursor(x, y)
	} else {
		r.screen.HideCursor()
	}
	r.screen.Show()
}

// scrollTo adjusts the top line so line is visible in rows.
func (r *Renderer) scrollTo(line, rows int) {
	switch {
	case line < r.top:
		r.top = line
	case line >= r.top+rows:
		r.top = line - rows + 1
	}
}

func (r *Renderer) drawLine(x0, y, width int, text string, tabWidth int, parser *outline.Parser) {
	styleAt := func(int) tcell.Style { return r.opts.Theme.Text }
	if r.opts.HighlightItems {
		if pre, ok := parser.ParseLine(text); ok {
			styleAt = r.itemStyles(text, pre)
		}
	}

	for _, c := range layoutLine(text, tabWidth) {
		x := x0 + c.col
		if x >= width {
			return
		}
		style := styleAt(c.start)
		if c.str == "\t" {
			for i := 0; i < c.width && x+i < width; i++ {
				r.screen.SetContent(x+i, y, ' ', nil, style)
			}
			continue
		}
		runes := []rune(c.str)
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
	}
}

// itemStyles returns a style lookup highlighting the bullet and checkbox of
// an item line.
func (r *Renderer) itemStyles(text string, pre outline.Prefix) func(int) tcell.Style {
	bulletStart := pre.IndentBytes
	bulletEnd := bulletStart + len(pre.Bullet)
	boxStart, boxEnd := -1, -1
	if pre.Checkbox != "" {
		if i := strings.Index(text[bulletEnd:pre.Content], pre.Checkbox); i >= 0 {
			boxStart = bulletEnd + i
			boxEnd = boxStart + len(pre.Checkbox)
		}
	}
	th := r.opts.Theme
	return func(pos int) tcell.Style {
		switch {
		case pos >= bulletStart && pos < bulletEnd:
			return th.Bullet
		case pos >= boxStart && pos < boxEnd:
			return th.Checkbox
		default:
			return th.Text
		}
	}
}

func (r *Renderer) drawStatus(y, width int, cur buffer.Point, st Status) {
	th := r.opts.Theme
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, y, ' ', nil, th.Status)
	}

	name := "[scratch]"
	if st.FileName != "" {
		name = filepath.Base(st.FileName)
	}
	if st.Modified {
		name += " [+]"
	}

	x := 0
	if st.ListEditing {
		x = r.put(x, y, " LIST ", th.StatusOn, width)
	}
	x = r.put(x, y, " "+name+" ", th.Status, width)

	if st.Message != "" {
		style := th.Status
		if st.IsError {
			style = th.Error
		}
		x = r.put(x+1, y, st.Message, style, width)
	}

	pos := fmt.Sprintf(" %d:%d ", cur.Line+1, cur.Column+1)
	if start := width - len(pos); start > x {
		r.put(start, y, pos, th.Status, width)
	}
}

// put draws s from column x and returns the column after it.
func (r *Renderer) put(x, y int, s string, style tcell.Style, width int) int {
	for _, c := range layoutLine(s, 1) {
		if x+c.col >= width {
			break
		}
		runes := []rune(c.str)
		r.screen.SetContent(x+c.col, y, runes[0], runes[1:], style)
	}
	return x + visualColumn(s, len(s), 1)
}
