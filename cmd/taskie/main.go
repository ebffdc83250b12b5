// Package main is the entry point for the taskie CLI.
package main

import (
	"context"
	"os"
	"time"

	"github.com/fastygo/taskie/internal/cli"
	"github.com/fastygo/taskie/internal/commands"
	"github.com/fastygo/taskie/internal/services/lifecycle"
)

func main() {
	manager := lifecycle.New(5*time.Second, nil)
	ctx, stop := manager.SignalContext(context.Background())

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.NewEnvFactory(manager))
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	_ = manager.Shutdown(context.Background())
	os.Exit(code)
}
