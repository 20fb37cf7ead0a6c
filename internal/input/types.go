package input

import "strings"

// ActionSource records who produced an action. Hooks log it; it never
// changes what a command does.
type ActionSource uint8

const (
	SourceKeyboard ActionSource = iota
	SourcePlugin                // Lua scripts and plugins
	SourceScenario              // scenario replay
	SourceAPI                   // Application.Execute
)

var sourceNames = [...]string{"keyboard", "plugin", "scenario", "api"}

func (s ActionSource) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return "unknown"
}

// ActionArgs are the arguments of an action. Only editor.insertText reads
// Text; Extra carries whatever a script passed along.
type ActionArgs struct {
	Text  string
	Extra map[string]any
}

// Action is a named command for the dispatcher, such as
// "editor.insertNewline".
type Action struct {
	Name   string
	Args   ActionArgs
	Source ActionSource
	Count  int // repeat count; zero means once
}

func NewAction(name string) Action { return Action{Name: name} }

func (a Action) WithText(text string) Action {
	a.Args.Text = text
	return a
}

func (a Action) WithSource(src ActionSource) Action {
	a.Source = src
	return a
}

func (a Action) WithCount(count int) Action {
	a.Count = count
	return a
}

// Namespace returns the part of the name before the first dot, or "" for
// names without one.
func (a Action) Namespace() string {
	ns, _, found := strings.Cut(a.Name, ".")
	if !found {
		return ""
	}
	return ns
}
