package renderer

import "github.com/rivo/uniseg"

// cluster is one grapheme cluster of a line placed on screen.
type cluster struct {
	str        string
	start, end int // byte range in the line
	col, width int // screen column and width
}

// layoutLine splits text into clusters with their screen columns. Tabs
// advance to the next multiple of tabWidth.
func layoutLine(text string, tabWidth int) []cluster {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	var out []cluster
	col := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		start, end := g.Positions()
		c := cluster{str: g.Str(), start: start, end: end, col: col}
		if c.str == "\t" {
			c.width = tabWidth - col%tabWidth
		} else {
			c.width = max(g.Width(), 1)
		}
		col += c.width
		out = append(out, c)
	}
	return out
}

// visualColumn returns the screen column of byte offset byteCol in text.
func visualColumn(text string, byteCol, tabWidth int) int {
	col := 0
	for _, c := range layoutLine(text, tabWidth) {
		if c.start >= byteCol {
			return c.col
		}
		col = c.col + c.width
	}
	return col
}
