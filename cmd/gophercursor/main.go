// Command gophercursor renders a simulated terminal (and optionally an
// editor) with the caret overlay to a PNG file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	focustime "github.com/sergunya/focus-time"
)

func newRootCommand() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:           "gophercursor",
		Short:         "Render the caret overlay on an in-memory host",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				focustime.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log overlay diagnostics to stderr")
	cmd.AddCommand(newRenderCommand(), newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the library version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "gophercursor %s\n", focustime.Version)
			return err
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gophercursor:", err)
		os.Exit(1)
	}
}
