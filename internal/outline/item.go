package outline

import (
	"strings"

	"github.com/dshills/listedit/internal/engine/buffer"
)

// DefaultTabWidth is the tab width used when a Parser has none set.
const DefaultTabWidth = 4

// Text is the read surface the parser needs.
type Text interface {
	LineCount() uint32
	LineText(line uint32) string
	LineStartOffset(line uint32) buffer.ByteOffset
	LineEndOffset(line uint32) buffer.ByteOffset
	OffsetToPoint(offset buffer.ByteOffset) buffer.Point
}

// Prefix is the parsed head of an item line. Byte positions are relative to
// the line start.
type Prefix struct {
	// IndentBytes is the length of the leading whitespace.
	IndentBytes int
	// Indent is the visual width of the leading whitespace.
	Indent int
	// Bullet is the bullet text without surrounding whitespace ("-", "3.").
	Bullet string
	// Checkbox is the checkbox text ("[ ]") or "" when absent.
	Checkbox string
	// Content is where the item's text starts.
	Content int
}

// Ordered reports whether the bullet is numbered.
func (p Prefix) Ordered() bool {
	return len(p.Bullet) > 1 && isDigit(p.Bullet[0])
}

// Item is a list item located in a Text.
type Item struct {
	Prefix

	// Line is the line holding the bullet.
	Line uint32
	// EndLine is the last line owned by the item, children included.
	EndLine uint32
	// Begin is the offset of the start of Line.
	Begin buffer.ByteOffset
	// ContentStart is the offset right after the prefix.
	ContentStart buffer.ByteOffset
}

// HasCheckbox reports whether the item carries a checkbox.
func (it Item) HasCheckbox() bool {
	return it.Checkbox != ""
}

// Parser recognises list items. The zero value is usable.
type Parser struct {
	// TabWidth is used to measure indentation containing tabs.
	TabWidth int
}

// NewParser returns a parser using the given tab width.
func NewParser(tabWidth int) *Parser {
	return &Parser{TabWidth: tabWidth}
}

func (p *Parser) tabWidth() int {
	if p == nil || p.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return p.TabWidth
}

// IsBlank reports whether a line has no non-whitespace characters.
func IsBlank(line string) bool {
	return strings.TrimLeft(line, " \t") == ""
}

// IndentWidth returns the visual width of the line's leading whitespace
// and its length in bytes.
func (p *Parser) IndentWidth(line string) (width, n int) {
	tw := p.tabWidth()
	for n < len(line) {
		switch line[n] {
		case ' ':
			width++
		case '\t':
			width += tw - width%tw
		default:
			return width, n
		}
		n++
	}
	return width, n
}

// ParseLine parses the item prefix of a single line.
func (p *Parser) ParseLine(line string) (Prefix, bool) {
	width, i := p.IndentWidth(line)
	pre := Prefix{IndentBytes: i, Indent: width}

	j, ok := scanBullet(line, i)
	if !ok {
		return Prefix{}, false
	}
	pre.Bullet = line[i:j]
	if pre.Bullet == "*" && i == 0 {
		// Column zero star is a heading.
		return Prefix{}, false
	}

	j = skipSpace(line, j)
	if box, k, ok := scanCheckbox(line, j); ok {
		pre.Checkbox = box
		j = skipSpace(line, k)
	}
	pre.Content = j
	return pre, true
}

// scanBullet returns the end of a bullet starting at i. A bullet must be
// followed by whitespace or end of line.
func scanBullet(line string, i int) (int, bool) {
	if i >= len(line) {
		return 0, false
	}
	j := i
	switch c := line[i]; {
	case c == '-' || c == '+' || c == '*':
		j++
	case isDigit(c):
		for j < len(line) && isDigit(line[j]) {
			j++
		}
		if j-i > 9 || j >= len(line) || (line[j] != '.' && line[j] != ')') {
			return 0, false
		}
		j++
	default:
		return 0, false
	}
	if j < len(line) && !isSpace(line[j]) {
		return 0, false
	}
	return j, true
}

var checkboxes = []string{"[ ]", "[X]", "[x]", "[-]"}

func scanCheckbox(line string, i int) (string, int, bool) {
	for _, box := range checkboxes {
		if !strings.HasPrefix(line[i:], box) {
			continue
		}
		end := i + len(box)
		if end < len(line) && !isSpace(line[end]) {
			return "", 0, false
		}
		return box, end, true
	}
	return "", 0, false
}

func skipSpace(line string, i int) int {
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
