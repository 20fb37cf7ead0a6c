package scenario

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/listedit/internal/dispatcher"
	"github.com/dshills/listedit/internal/dispatcher/handlers/cursor"
	"github.com/dshills/listedit/internal/dispatcher/handlers/editor"
	"github.com/dshills/listedit/internal/engine"
	"github.com/dshills/listedit/internal/input"
	"github.com/dshills/listedit/internal/listedit"
)

// Logger receives per-scenario progress.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// Result is the outcome of one scenario.
type Result struct {
	Name string
	Err  error
}

// Passed reports whether the scenario met its expectation.
func (r Result) Passed() bool { return r.Err == nil }

// Runner replays scenarios on a fresh headless editor each.
type Runner struct {
	logger Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger Logger) *Runner {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Runner{logger: logger}
}

// RunFile runs every scenario in f and returns one result per scenario.
// It stops early only when ctx is done.
func (r *Runner) RunFile(ctx context.Context, f *File) []Result {
	results := make([]Result, 0, len(f.Scenarios))
	for _, sc := range f.Scenarios {
		if ctx.Err() != nil {
			results = append(results, Result{Name: sc.Name, Err: ctx.Err()})
			continue
		}
		results = append(results, Result{Name: sc.Name, Err: r.Run(ctx, sc)})
	}
	return results
}

// Run replays one scenario. It returns a *MismatchError when the final
// state differs from the expectation and a *StepError when a step fails.
func (r *Runner) Run(ctx context.Context, sc Scenario) error {
	h, err := newHeadless(sc)
	if err != nil {
		return fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		action, err := h.action(st)
		if err != nil {
			return &StepError{Scenario: sc.Name, Step: i, Err: err}
		}
		for n := max(st.Repeat, 1); n > 0; n-- {
			res := h.dispatcher.Dispatch(action)
			r.logger.Debug("scenario step", "scenario", sc.Name, "step", st.String(), "status", res.Status.String())
			if res.IsError() {
				return &StepError{Scenario: sc.Name, Step: i, Err: res.Err()}
			}
		}
	}

	got := strings.Split(h.engine.Text(), "\n")
	p := h.engine.OffsetToPoint(h.engine.CursorOffset())
	gotCursor := Position{Line: int(p.Line) + 1, Column: int(p.Column)}

	linesOK := sc.Expect.Lines == nil || slices.Equal(sc.Expect.Lines, got)
	cursorOK := sc.Expect.Cursor == nil || sc.Expect.Cursor.matches(gotCursor, got)
	if linesOK && cursorOK {
		return nil
	}
	return &MismatchError{
		Scenario:   sc.Name,
		WantLines:  sc.Expect.Lines,
		GotLines:   got,
		WantCursor: sc.Expect.Cursor,
		GotCursor:  gotCursor,
	}
}

// headless is the editor stack a scenario runs against.
type headless struct {
	engine     *engine.Engine
	dispatcher *dispatcher.Dispatcher
	keys       *input.Keymap
}

func newHeadless(sc Scenario) (*headless, error) {
	opts := []engine.Option{engine.WithContent(strings.Join(sc.Lines, "\n"))}
	if sc.Settings.TabWidth > 0 {
		opts = append(opts, engine.WithTabWidth(sc.Settings.TabWidth))
	}
	eng := engine.New(opts...)

	pt, err := sc.Cursor.point(sc.Lines)
	if err != nil {
		return nil, err
	}
	eng.SetCursor(eng.PointToOffset(pt))

	d := dispatcher.NewWithDefaults()
	d.SetEngine(eng)
	d.RegisterNamespace(editor.NewCombinedHandler(sc.Settings.AutoIndent))
	d.RegisterNamespace(cursor.NewHandler())

	lo := listedit.DefaultOptions()
	if sc.Settings.SplitLine != nil {
		lo.SplitLine = *sc.Settings.SplitLine
	}
	if sc.Settings.Checkbox != "" {
		lo.Checkbox = sc.Settings.Checkbox
	}
	session := listedit.NewSession(d.Hooks(), listedit.WithOptions(lo))
	d.RegisterHandler(listedit.ActionToggle, session.ToggleHandler())
	if sc.Settings.ListEditing == nil || *sc.Settings.ListEditing {
		session.Enable()
	}

	return &headless{engine: eng, dispatcher: d, keys: input.DefaultKeymap()}, nil
}

// action translates a step into a dispatchable action.
func (h *headless) action(st Step) (input.Action, error) {
	switch {
	case st.Key != "":
		ev, err := input.ParseKey(st.Key)
		if err != nil {
			return input.Action{}, err
		}
		a, ok := h.keys.Lookup(ev)
		if !ok {
			return input.Action{}, fmt.Errorf("%w: key %q is not bound", ErrInvalidStep, st.Key)
		}
		return a.WithSource(input.SourceScenario), nil
	case st.Text != "":
		return input.NewAction(input.ActionInsertText).WithText(st.Text).WithSource(input.SourceScenario), nil
	default:
		return input.NewAction(st.Action).WithSource(input.SourceScenario), nil
	}
}
