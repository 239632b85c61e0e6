// Package cli provides the Cobra command structure for gomdtables.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtables/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdtables command with all
// subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug, quiet bool

	rootCmd := &cobra.Command{
		Use:   "gomdtables",
		Short: "Check and fix Markdown table alignment",
		Long: `gomdtables checks Markdown pipe tables for alignment and formatting
problems and fixes them in place.

Alignment is measured in terminal display columns, so tables containing
emoji, CJK text, or combining characters come out with their pipes
lined up in any monospaced editor. Fixing is safe by default: writes
are atomic, concurrent modifications are detected, and sidecar backups
keep the original content.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			switch {
			case debug:
				logging.SetLevel("debug")
			case quiet:
				logging.SetLevel("error")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
