package logger

import (
	"context"
	"log/slog"
	"testing"

	"go.uber.org/fx"
)

func TestModuleProvidesLogger(t *testing.T) {
	var resolved *slog.Logger
	app := fx.New(fx.NopLogger, Module, fx.Populate(&resolved))
	t.Cleanup(func() { _ = app.Stop(context.Background()) })

	if err := app.Err(); err != nil {
		t.Fatalf("fx graph failed: %v", err)
	}
	if resolved == nil {
		t.Fatal("expected a logger in the graph")
	}
	if _, ok := resolved.Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("expected the JSON logger, got %T", resolved.Handler())
	}
}
