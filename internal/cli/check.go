package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtables/internal/logging"
	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/lint"
	"github.com/yaklabco/gomdtables/pkg/reporter"
	"github.com/yaklabco/gomdtables/pkg/runner"

	// Register built-in rules.
	_ "github.com/yaklabco/gomdtables/pkg/lint/rules"
)

// Sentinel errors used to carry the exit code out of Execute.
var (
	// ErrIssuesFound signals error-severity findings or failed files.
	ErrIssuesFound = errors.New("issues found")

	// ErrStrictWarnings signals warnings under --strict.
	ErrStrictWarnings = errors.New("warnings found in strict mode")
)

type checkFlags struct {
	fix       bool
	dryRun    bool
	format    string
	jobs      int
	ignore    []string
	strict    bool
	noBackups bool
	noContext bool
	compact   bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Markdown tables for alignment issues",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.fix, "fix", false, "rewrite misformatted tables in place")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes as diffs without writing")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")

	return cmd
}

const checkLongDescription = `Check Markdown pipe tables for misaligned pipes, padding problems,
malformed separator rows, inconsistent pipe styles, and column count
mismatches.

By default, checks all .md and .markdown files in the current directory
and subdirectories. Specify paths to check specific files or
directories.

Examples:
  gomdtables check                  # Check current directory
  gomdtables check docs/           # Check docs directory
  gomdtables check README.md       # Check single file
  gomdtables check --fix           # Check and realign tables
  gomdtables check --fix --dry-run # Show fixes without applying
  gomdtables check --format json   # Output as JSON for CI
  gomdtables check --strict        # Treat warnings as errors`

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(cmd, workDir, logger)
	if err != nil {
		return err
	}
	applyFlags(cfg, flags)

	logger.Debug("configuration resolved",
		"fix", cfg.Fix, "dry_run", cfg.DryRun, "jobs", cfg.Jobs, "format", cfg.Format)

	engine := lint.NewEngine(lint.DefaultRegistry)
	pipeline := lint.NewPipeline(engine)
	checkRunner := runner.New(pipeline)

	result, err := checkRunner.Run(ctx, runner.Options{
		Paths:       args,
		WorkingDir:  workDir,
		IgnoreGlobs: cfg.Ignore,
		Jobs:        cfg.Jobs,
		Config:      cfg,
	})
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(cfg.Format, reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		ShowDiffs:   cfg.DryRun,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitIssues:
		return ErrIssuesFound
	case ExitWarnings:
		return ErrStrictWarnings
	}
	return nil
}

type debugLogger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
}

// loadConfig resolves configuration from --config or upward discovery.
func loadConfig(cmd *cobra.Command, workDir string, logger debugLogger) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded configuration", logging.FieldPath, configPath)
		return cfg, nil
	}

	cfg, foundAt, err := config.Discover(workDir)
	if err != nil {
		return nil, err
	}
	if foundAt != "" {
		logger.Debug("loaded configuration", logging.FieldPath, foundAt)
	}
	return cfg, nil
}

// applyFlags overlays CLI flags on the loaded configuration. Flags win
// over file settings only when set to non-default values.
func applyFlags(cfg *config.Config, flags *checkFlags) {
	cfg.Fix = flags.fix || flags.dryRun
	cfg.DryRun = flags.dryRun
	cfg.NoBackups = flags.noBackups
	cfg.Strict = flags.strict
	if flags.format != "" {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cfg.Format == "" {
		cfg.Format = config.FormatText
	}
	if flags.jobs != 0 {
		cfg.Jobs = flags.jobs
	}
	cfg.Ignore = append(cfg.Ignore, flags.ignore...)
}
