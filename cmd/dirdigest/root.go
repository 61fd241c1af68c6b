package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/gingerrexayers/dirdigest-go/internal/dirdigest/commands"
	"github.com/gingerrexayers/dirdigest-go/internal/dirdigest/lib"
	"github.com/gingerrexayers/dirdigest-go/internal/dirdigest/types"
	"github.com/gingerrexayers/dirdigest-go/internal/dirdigest/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewRootCommand creates the dirdigest root command, which hashes a directory tree.
func NewRootCommand() *cobra.Command {
	var (
		algorithm  string
		quiet      bool
		verbose    bool
		ignoreFile string
	)

	cmd := &cobra.Command{
		Use:   "dirdigest <path>",
		Short: "Compute one digest over every file in a directory tree.",
		Long: `Walks <path>, sorts the regular files it finds by full path and hashes
their concatenated contents into a single hex digest printed on stdout.

Files that cannot be opened or read are reported on stderr and left out of
the digest; the run still completes.`,
		Version:           version,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: pathCompletions,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := lib.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}

			opts := commands.DigestOptions{
				Root:       args[0],
				Algorithm:  alg,
				IgnoreFile: ignoreFile,
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
				Logger:     newLogger(cmd.ErrOrStderr(), verbose),
			}

			if quiet || verbose || !isTerminal(cmd.ErrOrStderr()) {
				_, err := commands.Digest(opts)
				return err
			}
			return runWithProgress(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(lib.DefaultAlgorithm), "Hash algorithm to use (sha256|sha512|md5)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not show the progress display")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr")
	cmd.Flags().StringVar(&ignoreFile, "ignore-file", "", "File of gitignore-style patterns to exclude from the digest")
	_ = cmd.RegisterFlagCompletionFunc("algorithm", algorithmCompletions)

	return cmd
}

// runWithProgress draws the progress view on stderr and holds the digest line
// back until the view has been torn down, so stdout only ever gets the digest.
func runWithProgress(cmd *cobra.Command, opts commands.DigestOptions) error {
	var digestLine bytes.Buffer
	opts.Stdout = &digestLine
	// Per-file errors are printed by the view.
	opts.Stderr = io.Discard

	err := ui.Run(cmd.Context(), cmd.ErrOrStderr(), func(sink types.ProgressSink) error {
		opts.Progress = sink
		_, err := commands.Digest(opts)
		return err
	})
	if err != nil {
		return err
	}

	_, err = io.Copy(cmd.OutOrStdout(), &digestLine)
	return err
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
