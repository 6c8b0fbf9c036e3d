// Package cli provides the command-line interface built on cobra.
// Services are injected by the composition root before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/courseloft/syllaboard/internal/logger"
)

// version is set by Execute from the build.
var version = "dev"

// verbose is the --verbose persistent flag value.
var verbose bool

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "syllaboard",
	Short: "Turn a course syllabus into a populated monday.com board",
	Long: `Syllaboard extracts assignments from a course syllabus using an LLM
and provisions a monday.com board with one item per assignment.

Run "syllaboard serve" to start the HTTP API, or "syllaboard extract"
to extract assignments from a document on the command line.

Configuration is read from ~/.syllaboard/config.toml; override the
location with the SYLLABOARD_CONFIG environment variable.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

// Execute runs the CLI with the given build version.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}
