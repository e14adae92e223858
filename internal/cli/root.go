// Package cli provides the Cobra command structure for mdhighlight.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhighlight/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdhighlight command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdhighlight",
		Short: "Syntax-highlight the code in Markdown documents",
		Long: `mdhighlight renders Markdown documents with their code syntax-highlighted.

Code blocks are tokenized with chroma and the resulting token spans are merged
into the document tree without disturbing emphasis, links or any other markup
already inside the code. The highlighted tree is written as HTML, as styled
terminal text, or as a YAML tree for further processing.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newStylesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
