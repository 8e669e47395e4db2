// Package cli is the command line shared by cmd/tally and tally.Main.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/tally/internal/config"
	"github.com/dkoosis/tally/internal/logging"
	"github.com/dkoosis/tally/internal/version"
	"github.com/dkoosis/tally/pkg/catalog"
	"github.com/dkoosis/tally/pkg/runner"
	"github.com/dkoosis/tally/pkg/style"
)

// Process exit statuses.
const (
	ExitOK       = 0
	ExitFailures = 1 // only with exit_on_failure
	ExitUsage    = 2
)

// Execute runs the command line against cat and returns the process exit
// status.
func Execute(args []string, cat *catalog.Catalog, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	status := ExitOK
	cmd := NewRootCommand(filepath.Base(os.Args[0]), cat, stdout, stderr, &status)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", cmd.Name(), err)
		return ExitUsage
	}
	return status
}

// NewRootCommand builds the root command. The run's exit status is stored
// in status.
func NewRootCommand(name string, cat *catalog.Catalog, stdout, stderr io.Writer, status *int) *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   name,
		Short: "Run the registered tests and report",
		Long: `Run every registered test in name order and print a report.

Each test ends as PASS, FAIL (a check failed), EXCEPTION (an unexpected
error) or UNKNOWN EXCEPTION (an opaque fault). The run always finishes.

Exit codes:
  0 - run completed (and, with --exit-on-failure, every test passed)
  1 - with --exit-on-failure, one or more tests did not pass
  2 - usage or configuration error`,
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			markSet(cmd, &flags)
			return runAll(cmd.Context(), flags, cat, stdout, stderr, status)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "config file (default .tally.yaml, then ~/.config/tally/.tally.yaml)")
	pf.StringVar(&flags.Run, "run", "", "only run tests whose name matches this glob")
	pf.BoolVar(&flags.Debug, "debug", false, "write debug logs to stderr")

	f := cmd.Flags()
	f.StringVar(&flags.Color, "color", string(config.ColorAuto), "style output: auto, always, never")
	f.BoolVar(&flags.ExitOnFailure, "exit-on-failure", false, "exit 1 when any test does not pass")
	f.DurationVar(&flags.Timeout, "timeout", 0, "per-test deadline, 0 for none")

	cmd.AddCommand(newListCommand(cat, &flags))
	return cmd
}

func markSet(cmd *cobra.Command, flags *config.Flags) {
	changed := cmd.Flags().Changed
	flags.ColorSet = changed("color")
	flags.ExitOnFailureSet = changed("exit-on-failure")
	flags.TimeoutSet = changed("timeout")
	flags.RunSet = changed("run")
	flags.DebugSet = changed("debug")
}

func runAll(ctx context.Context, flags config.Flags, cat *catalog.Catalog, stdout, stderr io.Writer, status *int) error {
	cfg, err := config.Resolve(flags)
	if err != nil {
		return err
	}

	log := logging.New(cfg.Debug, stderr)
	defer func() { _ = log.Sync() }()
	if cfg.File != "" {
		log.Debug("loaded config file: " + cfg.File)
	}

	cat.Seal()
	entries, err := cat.Select(cfg.Run)
	if err != nil {
		return err
	}

	r := runner.New(stdout,
		runner.WithStyler(style.Styler{Enabled: cfg.ColorEnabled(isTTYWriter(stdout))}),
		runner.WithLogger(log),
		runner.WithTimeout(cfg.Timeout),
	)
	sum := r.Run(ctx, entries)
	*status = sum.ExitCode(cfg.ExitOnFailure)
	return nil
}

func newListCommand(cat *catalog.Catalog, flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the registered test names in run order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			markSet(cmd, flags)
			cfg, err := config.Resolve(*flags)
			if err != nil {
				return err
			}
			cat.Seal()
			entries, err := cat.Select(cfg.Run)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e.Name)
			}
			return nil
		},
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
