// Command ai900 runs the AI-900 course demonstrations against Azure AI services.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/timothywarner/ai900/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		var missing *config.MissingSettingsError
		if errors.As(err, &missing) {
			fmt.Fprintln(os.Stderr, "Error: "+missing.Error())
			fmt.Fprintln(os.Stderr, "Copy .env.example to .env and fill in the values for this demo.")
		} else {
			fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		}
		os.Exit(1)
	}
}
