package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/invoicer/internal/cli"
	"github.com/matzehuels/invoicer/pkg/errors"
)

// Exit statuses.
const (
	exitOK        = 0
	exitFailure   = 1
	exitBadInput  = 2
	exitInterrupt = 130
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	cancel()

	reportError(os.Stderr, err)
	os.Exit(exitCode(err))
}

func run(ctx context.Context, args []string) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.SetArgs(args)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	preRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return preRun(cmd, args)
	}

	return root.ExecuteContext(ctx)
}

// exitCode maps err to the process exit status: 2 for problems with the
// invoice or the command line, 130 for an interrupt, 1 for anything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case stderrors.Is(err, context.Canceled):
		return exitInterrupt
	case errors.IsInputError(err):
		return exitBadInput
	default:
		return exitFailure
	}
}

// reportError prints err as "Error [CODE]: message". Interrupts print
// nothing.
func reportError(w io.Writer, err error) {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return
	}
	if code := errors.GetCode(err); code != "" {
		fmt.Fprintf(w, "Error [%s]: %s\n", code, errors.UserMessage(err))
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
