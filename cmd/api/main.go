package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"T9-Keypad/internal/application"
)

const build = "dev"

// @title        T9 Keypad API
// @version      1.0
// @description  Maps phone keypad digit sequences to dictionary words.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := application.New()
	if err := app.Start(ctx, build); err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		stop()
		os.Exit(1)
	}

	if err := app.Wait(ctx, stop); err != nil {
		os.Exit(1)
	}
}
