package hook_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/dispatcher/hook"
	"github.com/dshills/listedit/internal/input"
)

// recordingLogger captures log calls.
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) {
	l.lines = append(l.lines, "debug "+msg)
}

func (l *recordingLogger) Info(msg string, kv ...interface{}) {
	l.lines = append(l.lines, "info "+msg)
}

func (l *recordingLogger) Error(msg string, kv ...interface{}) {
	l.lines = append(l.lines, "error "+msg)
}

// tracer returns advice that records entry and exit around next.
func tracer(name string, priority int, trace *[]string) hook.Advice {
	return hook.NewAroundFunc(name, priority, func(action input.Action, ctx *execctx.ExecutionContext, next hook.Next) handler.Result {
		*trace = append(*trace, name+">")
		r := next()
		*trace = append(*trace, "<"+name)
		return r
	})
}

func TestAdviceOrder(t *testing.T) {
	m := hook.NewManager()
	var trace []string

	m.RegisterAdvice("editor.insertNewline", tracer("low", 10, &trace))
	m.RegisterAdvice("editor.insertNewline", tracer("high", 100, &trace))
	m.RegisterAdvice("editor.insertNewline", tracer("mid", 50, &trace))

	base := func() handler.Result {
		trace = append(trace, "command")
		return handler.Success()
	}
	r := m.Wrap(input.Action{Name: "editor.insertNewline"}, execctx.New(), base)()

	if !r.IsOK() {
		t.Fatalf("unexpected result %v", r.Status)
	}
	want := []string{"high>", "mid>", "low>", "command", "<low", "<mid", "<high"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
	if got := m.AdviceNames("editor.insertNewline"); !reflect.DeepEqual(got, []string{"high", "mid", "low"}) {
		t.Errorf("AdviceNames = %v", got)
	}
}

func TestAdviceCanSkipCommand(t *testing.T) {
	m := hook.NewManager()
	m.RegisterAdvice("editor.deleteCharBack", hook.NewAroundFunc("skip", 100,
		func(action input.Action, ctx *execctx.ExecutionContext, next hook.Next) handler.Result {
			return handler.SuccessWithMessage("handled")
		}))

	ran := false
	base := func() handler.Result {
		ran = true
		return handler.Success()
	}
	r := m.Wrap(input.Action{Name: "editor.deleteCharBack"}, execctx.New(), base)()

	if ran {
		t.Error("command should not run when advice skips next")
	}
	if r.Message != "handled" {
		t.Errorf("unexpected message %q", r.Message)
	}
}

func TestAdviceScopedToCommand(t *testing.T) {
	m := hook.NewManager()
	var trace []string
	m.RegisterAdvice("editor.insertNewline", tracer("a", 1, &trace))

	base := func() handler.Result { return handler.NoOp() }
	m.Wrap(input.Action{Name: "editor.insertText"}, execctx.New(), base)()

	if len(trace) != 0 {
		t.Errorf("advice ran for another command: %v", trace)
	}
}

func TestAdviceReplaceAndUnregister(t *testing.T) {
	m := hook.NewManager()
	var trace []string

	m.RegisterAdvice("cmd", tracer("x", 1, &trace))
	m.RegisterAdvice("cmd", tracer("x", 1, &trace))
	if got := m.AdviceNames("cmd"); len(got) != 1 {
		t.Fatalf("same name should replace, got %v", got)
	}
	if !m.HasAdvice("cmd", "x") || m.HasAdvice("cmd", "y") || m.HasAdvice("other", "x") {
		t.Error("unexpected HasAdvice results")
	}

	if !m.UnregisterAdvice("cmd", "x") {
		t.Error("expected advice to be removed")
	}
	if m.UnregisterAdvice("cmd", "x") {
		t.Error("second removal should report false")
	}
	if m.HasAdvice("cmd", "x") {
		t.Error("advice still present")
	}
}

func TestNilAroundFuncPassesThrough(t *testing.T) {
	a := hook.NewAroundFunc("nil", 0, nil)
	r := a.Around(input.Action{}, execctx.New(), func() handler.Result { return handler.NoOpWithMessage("base") })
	if r.Message != "base" {
		t.Errorf("expected base result, got %q", r.Message)
	}
}

func TestPreDispatchOrderAndCancel(t *testing.T) {
	m := hook.NewManager()
	var order []string

	m.RegisterPre(hook.NewPreDispatchFunc("low", 1, func(action *input.Action, ctx *execctx.ExecutionContext) bool {
		order = append(order, "low")
		return true
	}))
	m.RegisterPre(hook.NewPreDispatchFunc("high", 10, func(action *input.Action, ctx *execctx.ExecutionContext) bool {
		order = append(order, "high")
		return action.Name != "blocked"
	}))

	if !m.RunPreDispatch(&input.Action{Name: "ok"}, execctx.New()) {
		t.Error("expected dispatch to continue")
	}
	if !reflect.DeepEqual(order, []string{"high", "low"}) {
		t.Errorf("order = %v", order)
	}

	order = nil
	if m.RunPreDispatch(&input.Action{Name: "blocked"}, execctx.New()) {
		t.Error("expected dispatch to be cancelled")
	}
	if !reflect.DeepEqual(order, []string{"high"}) {
		t.Errorf("low hook should not run after cancel, order = %v", order)
	}
}

func TestPostDispatchOrder(t *testing.T) {
	m := hook.NewManager()
	var order []string
	for _, p := range []int{10, 1} {
		name := map[int]string{10: "high", 1: "low"}[p]
		m.RegisterPost(hook.NewPostDispatchFunc(name, p, func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
			order = append(order, name)
		}))
	}

	r := handler.Success()
	m.RunPostDispatch(&input.Action{Name: "x"}, execctx.New(), &r)
	if !reflect.DeepEqual(order, []string{"low", "high"}) {
		t.Errorf("order = %v", order)
	}
	if got := m.PostHookNames(); !reflect.DeepEqual(got, []string{"low", "high"}) {
		t.Errorf("PostHookNames = %v", got)
	}
}

func TestRegisterAndUnregisterCombined(t *testing.T) {
	m := hook.NewManager()
	m.Register(hook.NewAuditHook(nil))

	if got := m.PreHookNames(); len(got) != 1 || got[0] != "audit" {
		t.Errorf("PreHookNames = %v", got)
	}
	if got := m.PostHookNames(); len(got) != 1 || got[0] != "audit" {
		t.Errorf("PostHookNames = %v", got)
	}
	if !m.Unregister("audit") {
		t.Error("expected audit hook to be removed")
	}
	if len(m.PreHookNames()) != 0 || len(m.PostHookNames()) != 0 {
		t.Error("hooks still registered")
	}
}

func TestAuditHookLogs(t *testing.T) {
	log := &recordingLogger{}
	h := hook.NewAuditHook(log)
	action := &input.Action{Name: "editor.insertText"}
	ctx := execctx.New()

	h.PreDispatch(action, ctx)
	ok := handler.Success()
	h.PostDispatch(action, ctx, &ok)
	failed := handler.Error(errors.New("boom"))
	h.PostDispatch(action, ctx, &failed)

	got := strings.Join(log.lines, ",")
	if got != "debug dispatch,debug dispatched,error dispatch failed" {
		t.Errorf("unexpected log lines: %s", got)
	}
}

func TestCountLimitHook(t *testing.T) {
	h := hook.NewCountLimitHook(5)
	ctx := execctx.New().WithCount(50)
	h.PreDispatch(&input.Action{}, ctx)
	if ctx.Count != 5 {
		t.Errorf("expected count clamped to 5, got %d", ctx.Count)
	}
}

func TestReadOnlyHook(t *testing.T) {
	h := hook.NewReadOnlyHook()
	ctx := execctx.New()

	if !h.PreDispatch(&input.Action{Name: "editor.insertText"}, ctx) {
		t.Error("writable context should allow edits")
	}
	ctx.ReadOnly = true
	if h.PreDispatch(&input.Action{Name: "editor.insertText"}, ctx) {
		t.Error("read-only context should block edits")
	}
	if !h.PreDispatch(&input.Action{Name: "cursor.left"}, ctx) {
		t.Error("motions should be allowed when read-only")
	}

	custom := hook.NewReadOnlyHook("app")
	if custom.PreDispatch(&input.Action{Name: "app.save"}, ctx) {
		t.Error("custom namespace should be blocked")
	}
	if !custom.PreDispatch(&input.Action{Name: "editor.insertText"}, ctx) {
		t.Error("only the listed namespaces are guarded")
	}
}
