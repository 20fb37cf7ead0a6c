package dispatcher_test

import (
	"errors"
	"testing"

	"github.com/dshills/listedit/internal/dispatcher"
	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/dispatcher/hook"
	"github.com/dshills/listedit/internal/engine"
	"github.com/dshills/listedit/internal/input"
)

func TestNewWithDefaults(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	if d.Registry() == nil || d.Hooks() == nil {
		t.Fatal("expected registry and hook manager")
	}
	if d.Metrics() != nil {
		t.Error("expected nil metrics by default")
	}
	if !d.Config().GroupUndo || !d.Config().RecoverFromPanic {
		t.Errorf("unexpected default config %+v", d.Config())
	}
}

func TestDispatchNoHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	result := d.Dispatch(input.NewAction("unknown.action"))
	if !errors.Is(result.Err(), dispatcher.ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", result.Err())
	}
}

func TestDispatchInvalidAction(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	if r := d.Dispatch(input.Action{}); !errors.Is(r.Err(), dispatcher.ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", r.Err())
	}
}

func TestDispatchPassesContext(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	eng := engine.New()
	d.SetEngine(eng)
	d.SetFilePath("notes.org")

	var got *execctx.ExecutionContext
	d.RegisterHandlerFunc("test.ctx", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		got = ctx
		return handler.Success()
	})

	d.Dispatch(input.NewAction("test.ctx").WithCount(3))
	if got == nil {
		t.Fatal("handler not called")
	}
	if got.Engine != eng || got.FilePath != "notes.org" || got.Count != 3 {
		t.Errorf("unexpected context %+v", got)
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("test.panic", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	result := d.Dispatch(input.NewAction("test.panic"))
	if !errors.Is(result.Err(), dispatcher.ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", result.Err())
	}
	if _, _, panics := d.Metrics().Totals(); panics != 1 {
		t.Errorf("expected 1 recorded panic, got %d", panics)
	}
}

func TestDispatchAdviceWrapsHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	var trace []string

	d.RegisterHandlerFunc("editor.insertNewline", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		trace = append(trace, "native")
		return handler.Success()
	})
	d.Hooks().RegisterAdvice("editor.insertNewline", hook.NewAroundFunc("around", 100,
		func(action input.Action, ctx *execctx.ExecutionContext, next hook.Next) handler.Result {
			trace = append(trace, "before")
			r := next()
			trace = append(trace, "after")
			return r
		}))

	d.Dispatch(input.NewAction("editor.insertNewline"))
	if len(trace) != 3 || trace[0] != "before" || trace[1] != "native" || trace[2] != "after" {
		t.Errorf("trace = %v", trace)
	}
}

func TestDispatchGroupsUndo(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	eng := engine.New(engine.WithContent("ab"), engine.WithCursor(2))
	d.SetEngine(eng)

	d.RegisterHandlerFunc("test.twoEdits", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if _, err := ctx.Engine.Insert(2, "c"); err != nil {
			return handler.Error(err)
		}
		if _, err := ctx.Engine.Insert(3, "d"); err != nil {
			return handler.Error(err)
		}
		return handler.Success()
	})

	d.Dispatch(input.NewAction("test.twoEdits"))
	if eng.Text() != "abcd" {
		t.Fatalf("unexpected text %q", eng.Text())
	}
	if eng.IsGrouping() {
		t.Error("group left open")
	}
	if err := eng.Undo(); err != nil {
		t.Fatal(err)
	}
	if eng.Text() != "ab" {
		t.Errorf("expected one undo step to revert both edits, got %q", eng.Text())
	}
}

func TestDispatchReadOnly(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.SetReadOnly(true)

	called := false
	d.RegisterHandlerFunc("editor.insertText", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := d.Dispatch(input.NewAction("editor.insertText"))
	if called {
		t.Error("edit should be blocked on a read-only buffer")
	}
	if !errors.Is(result.Err(), dispatcher.ErrActionCancelled) {
		t.Errorf("expected ErrActionCancelled, got %v", result.Err())
	}
}

func TestDispatchPostHookSeesResult(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandlerFunc("test.noop", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.NoOp()
	})

	var seen handler.ResultStatus = 99
	d.Hooks().RegisterPost(hook.NewPostDispatchFunc("observer", 0,
		func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
			seen = result.Status
		}))

	d.Dispatch(input.NewAction("test.noop"))
	if seen != handler.StatusNoOp {
		t.Errorf("post hook saw %v", seen)
	}
}

func TestMetrics(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("a", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	})
	d.RegisterHandlerFunc("b", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Errorf("fail")
	})

	d.Dispatch(input.NewAction("a"))
	d.Dispatch(input.NewAction("a"))
	d.Dispatch(input.NewAction("b"))

	total, errs, _ := d.Metrics().Totals()
	if total != 3 || errs != 1 {
		t.Errorf("totals = %d/%d, want 3/1", total, errs)
	}
	top := d.Metrics().TopActions(1)
	if len(top) != 1 || top[0].Name != "a" || top[0].DispatchCount != 2 {
		t.Errorf("TopActions = %+v", top)
	}
	if stats, ok := d.Metrics().ActionStats("b"); !ok || stats.ErrorCount != 1 || stats.LastStatus != handler.StatusError {
		t.Errorf("ActionStats(b) = %+v/%v", stats, ok)
	}
}
