package main

import (
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the "check" alias: analyze with text output and
// the default warning fail-on threshold, the quick CI-friendly entry
// point most callers actually want.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files-or-dirs...]",
		Short: "Alias for 'analyze --format text'",
		Long: `check is a shorthand for the most common invocation: plain-text
output, failing the run on any diagnostic.

Examples:
  mc-analyzer check .
  mc-analyzer check src/main.mc`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewAnalyzeCommand().runAnalyze(cmd, args)
		},
	}
}
