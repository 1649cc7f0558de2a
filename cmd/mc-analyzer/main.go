package main

import (
	"os"

	"github.com/ludo-technologies/mc-analyzer/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mc-analyzer",
	Short: "A static analyzer for the MC language",
	Long: `mc-analyzer parses MC source, builds a control-flow graph per
function, and runs five dataflow checks over it: always-returns,
unreachable code, definite assignment, dead stores, and division by a
variable not provably non-zero.`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file path")

	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
