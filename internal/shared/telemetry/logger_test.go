package telemetry

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoAndErrorCarryFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Info("submit.start", map[string]any{"request_id": "req-1", "size_bytes": 42})
	Error("submit.failed", map[string]any{"err": errors.New("boom")})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0].ContextMap()
	if first["request_id"] != "req-1" {
		t.Fatalf("unexpected request_id: %v", first["request_id"])
	}
	if entries[1].Level != zap.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[1].Level)
	}
	if got := entries[1].ContextMap()["err"]; got != "boom" {
		t.Fatalf("unexpected err field: %v", got)
	}
}
