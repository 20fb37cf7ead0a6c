package outline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/listedit/internal/engine/buffer"
)

// Editor is a Text that can be changed.
type Editor interface {
	Text
	Insert(offset buffer.ByteOffset, text string) (buffer.EditResult, error)
	Replace(start, end buffer.ByteOffset, text string) (buffer.EditResult, error)
}

// InsertOptions controls InsertSibling.
type InsertOptions struct {
	// Checkbox is written after the new bullet, e.g. "[ ] ". Empty for a
	// plain item.
	Checkbox string
	// SplitLine moves the text after the cursor into the new item.
	SplitLine bool
}

// Outdent moves it and everything it owns left to the indentation of its
// parent item. Relative indentation inside the subtree is kept.
func (p *Parser) Outdent(e Editor, it Item) error {
	parent, ok := p.Parent(e, it)
	if !ok {
		return fmt.Errorf("%w: line %d: %w", ErrOutdent, it.Line+1, ErrOutermost)
	}
	shift := it.Indent - parent.Indent
	parentIndent := e.LineText(parent.Line)[:parent.IndentBytes]

	// Bottom up, so earlier line offsets stay valid.
	for line := it.EndLine; ; line-- {
		text := e.LineText(line)
		width, n := p.IndentWidth(text)
		indent := p.shiftedIndent(text[:n], it.Indent, parentIndent, width-shift)
		if text[:n] != indent {
			start := e.LineStartOffset(line)
			if _, err := e.Replace(start, start+buffer.ByteOffset(n), indent); err != nil {
				return fmt.Errorf("outdent line %d: %w", line+1, err)
			}
		}
		if line == it.Line {
			break
		}
	}
	return nil
}

// shiftedIndent rewrites the leading whitespace ws of a subtree line so
// that the part covering the item's own indentation (level columns) becomes
// the parent's whitespace, keeping tabs or spaces as the parent wrote them.
// Lines whose whitespace cannot be cut at level fall back to spaces.
func (p *Parser) shiftedIndent(ws string, level int, parentIndent string, want int) string {
	for k := 0; k <= len(ws); k++ {
		w, _ := p.IndentWidth(ws[:k])
		if w > level {
			break
		}
		if w == level {
			indent := parentIndent + ws[k:]
			if got, _ := p.IndentWidth(indent); got == want {
				return indent
			}
			break
		}
	}
	return strings.Repeat(" ", max(want, 0))
}

// InsertSibling adds an item after it at the same indentation and returns
// the offset of the new item's content.
func (p *Parser) InsertSibling(e Editor, it Item, cursor buffer.ByteOffset, opts InsertOptions) (buffer.ByteOffset, error) {
	bullet := it.Bullet
	if it.Ordered() {
		bullet = nextBullet(it.Bullet, 1)
	}
	prefix := e.LineText(it.Line)[:it.IndentBytes] + bullet + " " + opts.Checkbox

	start, end := e.LineEndOffset(it.EndLine), e.LineEndOffset(it.EndLine)
	if lineEnd := e.LineEndOffset(it.Line); opts.SplitLine && cursor >= it.ContentStart && cursor < lineEnd {
		// The tail becomes the new item's text, minus leading blanks.
		line := e.LineText(it.Line)
		start = cursor
		end = it.Begin + buffer.ByteOffset(skipSpace(line, int(cursor-it.Begin)))
	}

	if _, err := e.Replace(start, end, "\n"+prefix); err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	newLine := e.OffsetToPoint(start).Line + 1
	content := e.LineStartOffset(newLine) + buffer.ByteOffset(len(prefix))

	if it.Ordered() {
		if next, ok := p.ItemOnLine(e, newLine); ok {
			if err := p.Renumber(e, next); err != nil {
				return 0, err
			}
		}
	}
	return content, nil
}

// Renumber rewrites the bullets of the ordered siblings following it so
// they count up from its number.
func (p *Parser) Renumber(e Editor, it Item) error {
	if !it.Ordered() {
		return nil
	}
	want := it.Bullet
	for {
		sib, ok := p.NextSibling(e, it)
		if !ok || !sib.Ordered() {
			return nil
		}
		want = nextBullet(want, 1)
		if sib.Bullet != want {
			start := sib.Begin + buffer.ByteOffset(sib.IndentBytes)
			if _, err := e.Replace(start, start+buffer.ByteOffset(len(sib.Bullet)), want); err != nil {
				return fmt.Errorf("renumber line %d: %w", sib.Line+1, err)
			}
			// Offsets after the bullet may have moved.
			sib, _ = p.ItemOnLine(e, sib.Line)
		}
		it = sib
	}
}

// nextBullet returns the ordered bullet n steps after bullet, keeping its
// delimiter.
func nextBullet(bullet string, n int) string {
	delim := bullet[len(bullet)-1:]
	num, err := strconv.Atoi(bullet[:len(bullet)-1])
	if err != nil {
		return bullet
	}
	return strconv.Itoa(num+n) + delim
}
