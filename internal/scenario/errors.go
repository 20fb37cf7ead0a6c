package scenario

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Errors returned when loading or running scenarios.
var (
	ErrNoScenarios = errors.New("no scenarios")
	ErrInvalidStep = errors.New("invalid step")
	ErrBadPosition = errors.New("position outside buffer")
)

// MismatchError reports a scenario whose final state differs from its
// expectation.
type MismatchError struct {
	Scenario   string
	WantLines  []string
	GotLines   []string
	WantCursor *Position
	GotCursor  Position
}

// Error implements error.
func (e *MismatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "scenario %q: final state differs", e.Scenario)
	if e.WantLines != nil && !slices.Equal(e.WantLines, e.GotLines) {
		n := max(len(e.WantLines), len(e.GotLines))
		for i := 0; i < n; i++ {
			want, got := lineAt(e.WantLines, i), lineAt(e.GotLines, i)
			if want != got {
				fmt.Fprintf(&sb, "\n  line %d: want %s, got %s", i+1, want, got)
			}
		}
	}
	if e.WantCursor != nil && !e.WantCursor.matches(e.GotCursor, e.GotLines) {
		fmt.Fprintf(&sb, "\n  cursor: want %s, got %s", e.WantCursor, e.GotCursor)
	}
	return sb.String()
}

func lineAt(lines []string, i int) string {
	if i >= len(lines) {
		return "<missing>"
	}
	return fmt.Sprintf("%q", lines[i])
}

// StepError reports a step the editor rejected.
type StepError struct {
	Scenario string
	Step     int
	Err      error
}

// Error implements error.
func (e *StepError) Error() string {
	return fmt.Sprintf("scenario %q: step %d: %v", e.Scenario, e.Step+1, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
