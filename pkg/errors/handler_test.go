package errors

import (
	stderrors "errors"
	"testing"
	"time"
)

func TestIncrementError(t *testing.T) {
	h := NewErrorHandler("", nil)
	defer h.Stop()

	h.IncrementError()
	h.IncrementError()

	if got := h.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount() = %v, want %v", got, 2)
	}
}

func TestHandlePanicCountsAsError(t *testing.T) {
	h := NewErrorHandler("", nil)
	defer h.Stop()

	h.HandlePanic("boom")

	if got := h.ErrorCount(); got != 1 {
		t.Errorf("ErrorCount() = %v, want %v", got, 1)
	}
}

func TestRecoverMiddleware(t *testing.T) {
	reached := false
	func() {
		defer RecoverMiddleware()()
		reached = true
		panic("render exploded")
	}()

	// Reaching this line means the panic was recovered
	if !reached {
		t.Error("the panicking function should have run")
	}
}

func TestTrackWithoutHandler(t *testing.T) {
	// Track must be a no-op when Init was never called
	Track(stderrors.New("ignored"))
	Track(nil)
}

func TestReportWithoutWebhook(t *testing.T) {
	h := NewErrorHandler("", nil)
	defer h.Stop()

	h.Report("Test", "nothing to send")
}

func TestStopTwice(t *testing.T) {
	h := NewErrorHandler("", nil)
	h.Stop()
	h.Stop()
}

func TestTripped(t *testing.T) {
	h := &ErrorHandler{maxErrors: 2}

	tests := []struct {
		count int32
		want  bool
	}{
		{0, false},
		{2, false},
		{3, true},
	}

	for _, tt := range tests {
		h.errorCount = tt.count
		if got := h.tripped(); got != tt.want {
			t.Errorf("tripped() with %d errors = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestShutdownRunsHookThenExits(t *testing.T) {
	var order []string
	h := &ErrorHandler{
		resetInterval: time.Second,
		shutdownFunc:  func() { order = append(order, "shutdown") },
		exit:          func(code int) { order = append(order, "exit") },
	}

	h.shutdown()

	if len(order) != 2 || order[0] != "shutdown" || order[1] != "exit" {
		t.Errorf("order = %v, want [shutdown exit]", order)
	}
}

func TestReportEmbed(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	embed := reportEmbed("Critical Error", "Apagando...", at)

	author, _ := embed["author"].(map[string]string)
	if author["name"] != "Error Critical Error" {
		t.Errorf("author = %v, want %v", author["name"], "Error Critical Error")
	}
	if embed["timestamp"] != "2026-03-01T12:00:00Z" {
		t.Errorf("timestamp = %v, want %v", embed["timestamp"], "2026-03-01T12:00:00Z")
	}
}
