package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/internal/cli"
	fcerrors "github.com/matzehuels/flowcanvas/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		if code := fcerrors.GetCode(err); code != "" {
			os.Exit(exitCode(code))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, logs io.Writer) error {
	var verbose bool

	c := cli.New(logs, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Raise the log level before the config is loaded so its path is logged.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// exitCode separates bad input (2) from missing files (3) for scripts.
func exitCode(code fcerrors.Code) int {
	switch code {
	case fcerrors.ErrCodeFileNotFound:
		return 3
	case fcerrors.ErrCodeInternal:
		return 1
	}
	return 2
}
