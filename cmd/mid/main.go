// Package main implements the mid CLI for Mark it Down.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", userMessage(err))
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "mid",
	Short:         "Mark it Down - projects and task checklists from the terminal",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var (
	rootAPIURL string
	rootDebug  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootAPIURL, "api-url", "", "Backend address (overrides config and MID_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Log diagnostics to stderr (also MID_DEBUG=1)")
}
