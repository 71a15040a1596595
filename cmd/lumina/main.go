package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/lumina-lang/lumina/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "lumina:", err)
		os.Exit(1)
	}
}
