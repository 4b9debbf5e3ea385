package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/demole/internal/action"
	"github.com/lakshaymaurya-felt/demole/internal/catalog"
	"github.com/lakshaymaurya-felt/demole/internal/confirm"
	"github.com/lakshaymaurya-felt/demole/internal/core"
	"github.com/lakshaymaurya-felt/demole/internal/engine"
	"github.com/lakshaymaurya-felt/demole/internal/logging"
	"github.com/lakshaymaurya-felt/demole/internal/ui"
)

var (
	// Global flags
	dryRun      bool
	autoConfirm bool
	verbose     bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "demole",
	Short: "Deep clean your Mac or Linux machine",
	Long: `Demole - Deep clean your Mac or Linux machine.

Walks a fixed catalogue of cache, log, and artifact locations, reports
their size, and reclaims the space. Destructive steps can be gated by
per-category confirmation; --dry-run previews the whole plan.`,
	RunE: runClean,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview every action without deleting anything")
	rootCmd.Flags().BoolVarP(&autoConfirm, "yes", "y", false, "Skip all confirmation prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace every action and skip reason")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// runClean drives the full cleanup pipeline. Exit codes: 0 for normal
// completion or a declined start prompt; the root-warning decline surfaces
// as ErrAborted and exits 1 via main.
func runClean(cmd *cobra.Command, args []string) error {
	// Flags parsed fine; errors from here on should not re-print usage.
	cmd.SilenceUsage = true

	cfg := &core.RunConfig{DryRun: dryRun, AutoConfirm: autoConfirm, Verbose: verbose}
	host := core.DetectHost()
	gate := confirm.NewGate(cfg.AutoConfirm, cmd.InOrStdin(), cmd.OutOrStdout())

	if !cfg.AutoConfirm && !gate.Confirm("Start deep cleanup?") {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing cleaned.")
		return nil
	}

	logger, err := logging.New(os.TempDir(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx := &core.RunContext{Config: cfg, Host: host, Log: logger}
	logger.Info("host: %s", host.Version)
	logger.Info("session log: %s", logger.Path())
	if cfg.DryRun {
		logger.Info("dry-run mode: nothing will be deleted")
	}

	executor := action.NewExecutor(ctx)
	runner := engine.NewRunner(ctx, executor, gate)
	pipeline := engine.NewPipeline(ctx, runner, gate, catalog.Phases(host))

	summary, err := pipeline.Run()
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

// printSummary renders the final free-space delta box. The delta is
// best-effort telemetry: other processes move the number too, so it is
// clamped at zero rather than reported as negative.
func printSummary(w io.Writer, s *engine.Summary) {
	var reclaimed uint64
	if s.FreeAfter.Bytes > s.FreeBefore.Bytes {
		reclaimed = s.FreeAfter.Bytes - s.FreeBefore.Bytes
	}

	body := fmt.Sprintf(
		"%s\n\nFree space before   %s\nFree space after    %s\nReclaimed           %s\nUnits completed     %d",
		ui.StyleTitle.Render("Cleanup complete"),
		ui.HumanSize(s.FreeBefore.Bytes),
		ui.HumanSize(s.FreeAfter.Bytes),
		ui.HumanSize(reclaimed),
		s.UnitsRun,
	)
	fmt.Fprintln(w, ui.StyleBox.Render(body))
}
