package execctx_test

import (
	"errors"
	"testing"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/engine"
)

func TestNewDefaults(t *testing.T) {
	ctx := execctx.New()
	if ctx.GetCount() != 1 {
		t.Errorf("expected count 1, got %d", ctx.GetCount())
	}
	ctx.WithCount(0)
	if ctx.GetCount() != 1 {
		t.Errorf("zero count should be ignored, got %d", ctx.GetCount())
	}
	ctx.WithCount(3)
	if ctx.GetCount() != 3 {
		t.Errorf("expected count 3, got %d", ctx.GetCount())
	}
}

func TestZeroValueCount(t *testing.T) {
	ctx := &execctx.ExecutionContext{}
	if ctx.GetCount() != 1 {
		t.Errorf("unset count should read as 1, got %d", ctx.GetCount())
	}
}

func TestValidate(t *testing.T) {
	ctx := execctx.New()
	if err := ctx.Validate(); !errors.Is(err, execctx.ErrMissingEngine) {
		t.Errorf("expected ErrMissingEngine, got %v", err)
	}

	ctx.WithEngine(engine.New())
	if err := ctx.ValidateForEdit(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	ctx.ReadOnly = true
	if err := ctx.ValidateForEdit(); !errors.Is(err, execctx.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}
