package renderer

import "github.com/gdamore/tcell/v2"

// Theme holds the styles used for drawing.
type Theme struct {
	Text       tcell.Style
	Bullet     tcell.Style
	Checkbox   tcell.Style
	LineNumber tcell.Style
	Filler     tcell.Style
	Status     tcell.Style
	StatusOn   tcell.Style
	Error      tcell.Style
}

// DefaultTheme returns the built-in styles.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Text:       base,
		Bullet:     base.Foreground(tcell.ColorYellow).Bold(true),
		Checkbox:   base.Foreground(tcell.ColorAqua),
		LineNumber: base.Foreground(tcell.ColorGray),
		Filler:     base.Foreground(tcell.ColorNavy),
		Status:     base.Reverse(true),
		StatusOn:   base.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack).Bold(true),
		Error:      base.Background(tcell.ColorRed).Foreground(tcell.ColorWhite),
	}
}
