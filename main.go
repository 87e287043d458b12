package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/terrazul-ai/stage-release/cmd"
)

const exitCodeInterrupt = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.InitCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "tz-stage error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Execute(ctx); err != nil {
		// An interrupt maps to the same exit code no matter which phase it
		// cut short.
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "tz-stage: interrupted")
			os.Exit(exitCodeInterrupt)
		}
		fmt.Fprintf(os.Stderr, "tz-stage error: %v\n", err)
		os.Exit(1)
	}
}
