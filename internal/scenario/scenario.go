package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/listedit/internal/engine/buffer"
)

// File is the top level of a scenario file.
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is one recorded editing session.
type Scenario struct {
	Name     string   `yaml:"name"`
	Lines    []string `yaml:"lines"`
	Cursor   Position `yaml:"cursor"`
	Settings Settings `yaml:"settings"`
	Steps    []Step   `yaml:"steps"`
	Expect   Expect   `yaml:"expect"`
}

// Settings tune the headless editor. Unset fields keep their defaults.
type Settings struct {
	ListEditing *bool  `yaml:"list_editing"`
	SplitLine   *bool  `yaml:"split_line"`
	AutoIndent  bool   `yaml:"auto_indent"`
	Checkbox    string `yaml:"checkbox"`
	TabWidth    int    `yaml:"tab_width"`
}

// Step is one input event. Exactly one of Key, Text or Action is set.
type Step struct {
	Key    string `yaml:"key"`
	Text   string `yaml:"text"`
	Action string `yaml:"action"`
	Repeat int    `yaml:"repeat"`
}

// Expect is the state after the last step.
type Expect struct {
	Lines  []string  `yaml:"lines"`
	Cursor *Position `yaml:"cursor"`
}

// Position addresses a point in the buffer. Line is 1-based.
type Position struct {
	Line   int  `yaml:"line"`
	Column int  `yaml:"column"`
	End    bool `yaml:"end"`
}

func (p Position) String() string {
	if p.End {
		return fmt.Sprintf("%d:end", p.Line)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// point resolves p against lines.
func (p Position) point(lines []string) (buffer.Point, error) {
	line := p.Line
	if line == 0 {
		line = 1
	}
	if line < 1 || line > len(lines) {
		return buffer.Point{}, fmt.Errorf("%w: line %d of %d", ErrBadPosition, p.Line, len(lines))
	}
	text := lines[line-1]
	col := p.Column
	if p.End {
		col = len(text)
	}
	if col < 0 || col > len(text) {
		return buffer.Point{}, fmt.Errorf("%w: column %d of line %d", ErrBadPosition, p.Column, line)
	}
	return buffer.Point{Line: uint32(line - 1), Column: uint32(col)}, nil
}

// matches reports whether got, taken in lines, is the same place as p.
func (p Position) matches(got Position, lines []string) bool {
	want, err := p.point(lines)
	if err != nil {
		return false
	}
	have, err := got.point(lines)
	if err != nil {
		return false
	}
	return want == have
}

func (s Step) validate() error {
	set := 0
	for _, v := range []string{s.Key, s.Text, s.Action} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: want exactly one of key, text or action", ErrInvalidStep)
	}
	if s.Repeat < 0 {
		return fmt.Errorf("%w: negative repeat", ErrInvalidStep)
	}
	return nil
}

func (s Step) String() string {
	switch {
	case s.Key != "":
		return "key " + s.Key
	case s.Text != "":
		return fmt.Sprintf("text %q", s.Text)
	default:
		return "action " + s.Action
	}
}

// Parse decodes scenario YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	for i := range f.Scenarios {
		sc := &f.Scenarios[i]
		if strings.TrimSpace(sc.Name) == "" {
			sc.Name = fmt.Sprintf("#%d", i+1)
		}
		if len(sc.Lines) == 0 {
			sc.Lines = []string{""}
		}
		for j, st := range sc.Steps {
			if err := st.validate(); err != nil {
				return nil, &StepError{Scenario: sc.Name, Step: j, Err: err}
			}
		}
	}
	return &f, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
