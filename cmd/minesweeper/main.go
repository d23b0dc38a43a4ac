package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/vancomm/minesweeper/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, cli.NewRootCommand())
	cancel()
	os.Exit(code)
}
