package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/SahuH/Data-Analytics-Assistant/config"
	"github.com/SahuH/Data-Analytics-Assistant/internal/app"
)

// MCP-сервер: JSON-RPC на stdin/stdout. В stdout не пишется ничего, кроме ответов протокола.
func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := app.BootstrapMCP(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := a.Run(ctx, os.Stdin, os.Stdout); err != nil {
		a.Logger.Errorf(ctx, "mcp server stopped with error: %v", err)
		cleanup()
		os.Exit(1)
	}
}
