package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/listedit/internal/dispatcher/handler"
)

func TestResultStatus(t *testing.T) {
	tests := []struct {
		status   handler.ResultStatus
		expected string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.ResultStatus(99), "unknown"},
	}

	for _, tc := range tests {
		if tc.status.String() != tc.expected {
			t.Errorf("ResultStatus(%d).String() = %q, want %q", tc.status, tc.status.String(), tc.expected)
		}
	}
}

func TestConstructors(t *testing.T) {
	sentinel := errors.New("boom")

	tests := []struct {
		name   string
		r      handler.Result
		status handler.ResultStatus
		msg    string
		err    error
	}{
		{"success", handler.Success(), handler.StatusOK, "", nil},
		{"success message", handler.SuccessWithMessage("saved"), handler.StatusOK, "saved", nil},
		{"noop", handler.NoOp(), handler.StatusNoOp, "", nil},
		{"noop message", handler.NoOpWithMessage("nothing"), handler.StatusNoOp, "nothing", nil},
		{"error", handler.Error(sentinel), handler.StatusError, "", sentinel},
		{"errorf", handler.Errorf("wrap: %w", sentinel), handler.StatusError, "", sentinel},
		{"bare error status", handler.Result{Status: handler.StatusError}, handler.StatusError, "", handler.ErrActionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.r.Status != tt.status || tt.r.Message != tt.msg {
				t.Errorf("got %v %q, want %v %q", tt.r.Status, tt.r.Message, tt.status, tt.msg)
			}
			if tt.r.IsOK() != (tt.status == handler.StatusOK) || tt.r.IsError() != (tt.status == handler.StatusError) {
				t.Error("IsOK/IsError disagree with status")
			}
			if err := tt.r.Err(); (tt.err == nil) != (err == nil) || (tt.err != nil && !errors.Is(err, tt.err)) {
				t.Errorf("Err() = %v, want %v", err, tt.err)
			}
		})
	}
}
