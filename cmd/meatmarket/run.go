package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run drives the fx app through its lifecycle: start, wait for a signal or an
// internal shutdown, then stop.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fatalf("meatmarket failed to start: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fatalf("meatmarket failed to stop cleanly: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
