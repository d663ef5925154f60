// cmd/deploy/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := newApp(os.Stdout, os.Stderr)
	if err := app.root().ExecuteContext(ctx); err != nil {
		app.log.Error(err)
		stop()
		os.Exit(1)
	}
}
