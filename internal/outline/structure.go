package outline

import "github.com/dshills/listedit/internal/engine/buffer"

// ItemAt returns the innermost item whose extent covers the line holding
// offset.
func (p *Parser) ItemAt(t Text, offset buffer.ByteOffset) (Item, bool) {
	line := t.OffsetToPoint(offset).Line
	text := t.LineText(line)
	if IsBlank(text) {
		return Item{}, false
	}
	if pre, ok := p.ParseLine(text); ok {
		return p.item(t, line, pre), true
	}
	if isHeading(text) {
		return Item{}, false
	}
	width, _ := p.IndentWidth(text)
	return p.enclosing(t, line, width)
}

// ItemOnLine returns the item whose bullet is on line.
func (p *Parser) ItemOnLine(t Text, line uint32) (Item, bool) {
	if line >= t.LineCount() {
		return Item{}, false
	}
	pre, ok := p.ParseLine(t.LineText(line))
	if !ok {
		return Item{}, false
	}
	return p.item(t, line, pre), true
}

// Parent returns the item that directly contains it.
func (p *Parser) Parent(t Text, it Item) (Item, bool) {
	return p.enclosing(t, it.Line, it.Indent)
}

// NextSibling returns the item following it at the same level.
func (p *Parser) NextSibling(t Text, it Item) (Item, bool) {
	next, ok := p.ItemOnLine(t, it.EndLine+1)
	if !ok || next.Indent != it.Indent {
		return Item{}, false
	}
	return next, true
}

// enclosing scans upward from line for an item indented less than width.
// Blank lines, headings and unindented text end the search.
func (p *Parser) enclosing(t Text, line uint32, width int) (Item, bool) {
	for line > 0 {
		line--
		text := t.LineText(line)
		if IsBlank(text) || isHeading(text) {
			return Item{}, false
		}
		if pre, ok := p.ParseLine(text); ok && pre.Indent < width {
			return p.item(t, line, pre), true
		}
		w, _ := p.IndentWidth(text)
		if w < width {
			width = w
		}
		if width == 0 {
			return Item{}, false
		}
	}
	return Item{}, false
}

func (p *Parser) item(t Text, line uint32, pre Prefix) Item {
	begin := t.LineStartOffset(line)
	return Item{
		Prefix:       pre,
		Line:         line,
		EndLine:      p.endLine(t, line, pre.Indent),
		Begin:        begin,
		ContentStart: begin + buffer.ByteOffset(pre.Content),
	}
}

// endLine returns the last line of the item starting at line.
func (p *Parser) endLine(t Text, line uint32, width int) uint32 {
	end := line
	for l := line + 1; l < t.LineCount(); l++ {
		text := t.LineText(l)
		if IsBlank(text) || isHeading(text) {
			break
		}
		if w, _ := p.IndentWidth(text); w <= width {
			break
		}
		end = l
	}
	return end
}

// isHeading reports whether the line is an outline heading ("* Title").
func isHeading(line string) bool {
	i := 0
	for i < len(line) && line[i] == '*' {
		i++
	}
	return i > 0 && (i == len(line) || isSpace(line[i]))
}
