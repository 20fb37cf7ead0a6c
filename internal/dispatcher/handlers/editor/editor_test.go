package editor_test

import (
	"testing"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/dispatcher/handlers/editor"
	"github.com/dshills/listedit/internal/engine"
	"github.com/dshills/listedit/internal/input"
)

func newCtx(text string, cursor engine.ByteOffset) (*execctx.ExecutionContext, *engine.Engine) {
	eng := engine.New(engine.WithContent(text), engine.WithCursor(cursor))
	return execctx.New().WithEngine(eng), eng
}

func TestInsertText(t *testing.T) {
	ctx, eng := newCtx("- on", 4)
	h := editor.NewCombinedHandler(false)

	r := h.HandleAction(input.NewAction(editor.ActionInsertText).WithText("e"), ctx)
	if !r.IsOK() {
		t.Fatalf("unexpected result %v: %v", r.Status, r.Error)
	}
	if eng.Text() != "- one" || eng.CursorOffset() != 5 {
		t.Errorf("got %q cursor %d", eng.Text(), eng.CursorOffset())
	}

	if r := h.HandleAction(input.NewAction(editor.ActionInsertText), ctx); r.Status != handler.StatusNoOp {
		t.Errorf("empty insert should be a no-op, got %v", r.Status)
	}
}

func TestInsertTextCount(t *testing.T) {
	ctx, eng := newCtx("", 0)
	ctx.WithCount(3)
	editor.NewInsertHandler(false).HandleAction(input.NewAction(editor.ActionInsertText).WithText("ab"), ctx)
	if eng.Text() != "ababab" || eng.CursorOffset() != 6 {
		t.Errorf("got %q cursor %d", eng.Text(), eng.CursorOffset())
	}
}

func TestInsertNewline(t *testing.T) {
	tests := []struct {
		name       string
		autoIndent bool
		text       string
		cursor     engine.ByteOffset
		want       string
		wantCursor engine.ByteOffset
	}{
		{"plain", false, "ab", 1, "a\nb", 2},
		{"at end", false, "ab", 2, "ab\n", 3},
		{"auto indent", true, "    text", 8, "    text\n    ", 13},
		{"auto indent tabs", true, "\tx", 2, "\tx\n\t", 4},
		{"auto indent off", false, "    text", 8, "    text\n", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, eng := newCtx(tt.text, tt.cursor)
			h := editor.NewCombinedHandler(tt.autoIndent)
			h.HandleAction(input.NewAction(editor.ActionInsertNewline), ctx)
			if eng.Text() != tt.want || eng.CursorOffset() != tt.wantCursor {
				t.Errorf("got %q cursor %d, want %q cursor %d", eng.Text(), eng.CursorOffset(), tt.want, tt.wantCursor)
			}
		})
	}
}

func TestDeleteCharBack(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     engine.ByteOffset
		count      int
		want       string
		wantCursor engine.ByteOffset
		status     handler.ResultStatus
	}{
		{"middle", "abc", 2, 1, "ac", 1, handler.StatusOK},
		{"joins lines", "a\nb", 2, 1, "ab", 1, handler.StatusOK},
		{"multibyte", "a→", 4, 1, "a", 1, handler.StatusOK},
		{"start of buffer", "abc", 0, 1, "abc", 0, handler.StatusNoOp},
		{"count clamps", "abc", 2, 5, "c", 0, handler.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, eng := newCtx(tt.text, tt.cursor)
			ctx.WithCount(tt.count)
			r := editor.NewDeleteHandler().HandleAction(input.NewAction(editor.ActionDeleteCharBack), ctx)
			if r.Status != tt.status {
				t.Errorf("status = %v, want %v", r.Status, tt.status)
			}
			if eng.Text() != tt.want || eng.CursorOffset() != tt.wantCursor {
				t.Errorf("got %q cursor %d, want %q cursor %d", eng.Text(), eng.CursorOffset(), tt.want, tt.wantCursor)
			}
		})
	}
}

func TestUndoRedo(t *testing.T) {
	ctx, eng := newCtx("x", 1)
	h := editor.NewCombinedHandler(false)

	if r := h.HandleAction(input.NewAction(editor.ActionUndo), ctx); r.Status != handler.StatusNoOp {
		t.Errorf("undo on empty history = %v", r.Status)
	}

	h.HandleAction(input.NewAction(editor.ActionInsertText).WithText("y"), ctx)
	if r := h.HandleAction(input.NewAction(editor.ActionUndo), ctx); !r.IsOK() {
		t.Fatalf("undo failed: %v", r.Error)
	}
	if eng.Text() != "x" || eng.CursorOffset() != 1 {
		t.Errorf("after undo: %q cursor %d", eng.Text(), eng.CursorOffset())
	}

	if r := h.HandleAction(input.NewAction(editor.ActionRedo), ctx); !r.IsOK() {
		t.Fatalf("redo failed: %v", r.Error)
	}
	if eng.Text() != "xy" {
		t.Errorf("after redo: %q", eng.Text())
	}
	if r := h.HandleAction(input.NewAction(editor.ActionRedo), ctx); r.Status != handler.StatusNoOp {
		t.Errorf("redo on empty stack = %v", r.Status)
	}
}

func TestReadOnlyRejected(t *testing.T) {
	ctx, eng := newCtx("x", 1)
	ctx.ReadOnly = true
	r := editor.NewCombinedHandler(false).HandleAction(input.NewAction(editor.ActionInsertText).WithText("y"), ctx)
	if !r.IsError() || eng.Text() != "x" {
		t.Errorf("expected read-only rejection, got %v %q", r.Status, eng.Text())
	}
}

func TestCombinedActions(t *testing.T) {
	h := editor.NewCombinedHandler(true)
	for _, name := range h.Actions() {
		if !h.CanHandle(name) {
			t.Errorf("CanHandle(%q) = false", name)
		}
	}
	if len(h.Actions()) != 5 {
		t.Errorf("expected 5 editor actions, got %v", h.Actions())
	}
	if r := h.HandleAction(input.NewAction("editor.bogus"), execctx.New()); !r.IsError() {
		t.Error("expected error for unknown action")
	}
}
