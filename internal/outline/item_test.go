package outline

import "testing"

func TestParseLine(t *testing.T) {
	p := NewParser(4)

	tests := []struct {
		line     string
		ok       bool
		indent   int
		bullet   string
		checkbox string
		content  int
	}{
		{"- one", true, 0, "-", "", 2},
		{"  - apple", true, 2, "-", "", 4},
		{"- ", true, 0, "-", "", 2},
		{"-", true, 0, "-", "", 1},
		{"+ plus", true, 0, "+", "", 2},
		{"  * star", true, 2, "*", "", 4},
		{"* heading", false, 0, "", "", 0},
		{"1. first", true, 0, "1.", "", 3},
		{"12) twelfth", true, 0, "12)", "", 4},
		{"- [ ] todo", true, 0, "-", "[ ]", 6},
		{"  - [X] done", true, 2, "-", "[X]", 8},
		{"- [-] partial", true, 0, "-", "[-]", 6},
		{"  - [ ] ", true, 2, "-", "[ ]", 8},
		{"- [ ]x", true, 0, "-", "", 2},
		{"\t- tab", true, 4, "-", "", 3},
		{"-dash", false, 0, "", "", 0},
		{"1.5 pounds", false, 0, "", "", 0},
		{"plain text", false, 0, "", "", 0},
		{"", false, 0, "", "", 0},
	}

	for _, tt := range tests {
		pre, ok := p.ParseLine(tt.line)
		if ok != tt.ok {
			t.Errorf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if pre.Indent != tt.indent || pre.Bullet != tt.bullet || pre.Checkbox != tt.checkbox || pre.Content != tt.content {
			t.Errorf("ParseLine(%q) = %+v", tt.line, pre)
		}
	}
}

func TestPrefixOrdered(t *testing.T) {
	p := NewParser(4)
	for line, want := range map[string]bool{"1. a": true, "10) b": true, "- c": false, "  + d": false} {
		pre, _ := p.ParseLine(line)
		if pre.Ordered() != want {
			t.Errorf("%q: Ordered() = %v, want %v", line, pre.Ordered(), want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	for line, want := range map[string]bool{"": true, "   ": true, "\t ": true, " x ": false, "-": false} {
		if got := IsBlank(line); got != want {
			t.Errorf("IsBlank(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestIndentWidthTabs(t *testing.T) {
	p := NewParser(8)
	if w, n := p.IndentWidth("  \tx"); w != 8 || n != 3 {
		t.Errorf("IndentWidth = %d/%d, want 8/3", w, n)
	}

	var zero Parser
	if w, _ := zero.IndentWidth("\tx"); w != DefaultTabWidth {
		t.Errorf("zero parser tab width = %d, want %d", w, DefaultTabWidth)
	}
}
