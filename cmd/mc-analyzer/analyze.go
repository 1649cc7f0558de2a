package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mc-analyzer/internal/config"
	"github.com/ludo-technologies/mc-analyzer/internal/service"
)

// AnalyzeCommand runs the full pipeline over one or more files or
// directories and prints a formatted report.
type AnalyzeCommand struct {
	format     string
	failOn     string
	noProgress bool
	exclude    []string
}

// NewAnalyzeCommand creates a new analyze command with its defaults.
func NewAnalyzeCommand() *AnalyzeCommand {
	return &AnalyzeCommand{format: "text", failOn: "warning"}
}

// CreateCobraCommand builds the cobra.Command wrapping runAnalyze.
func (a *AnalyzeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [files-or-dirs...]",
		Short: "Analyze MC source files and print diagnostics",
		Long: `Run the lexer, parser, semantic checker, and all five CFG
dataflow analyses over every .mc file reachable from the given paths.

Examples:
  # Analyze a single file
  mc-analyzer analyze prog.mc

  # Analyze a whole tree, machine-readable output
  mc-analyzer analyze --format json ./src

  # Only fail the run on error-severity diagnostics
  mc-analyzer analyze --fail-on error ./src`,
		Args: cobra.ArbitraryArgs,
		RunE: a.runAnalyze,
	}

	cmd.Flags().StringVar(&a.format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&a.failOn, "fail-on", "warning", "Minimum severity that fails the run: warning or error")
	cmd.Flags().BoolVar(&a.noProgress, "no-progress", false, "Disable the progress bar")
	cmd.Flags().StringSliceVar(&a.exclude, "exclude", nil, "Glob pattern(s) of files to skip")

	return cmd
}

func (a *AnalyzeCommand) runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	configPath, _ := cmd.Flags().GetString("config")

	// cmd.Flags() already carries format/fail-on/no-progress/exclude (this
	// command's own flags) and verbose/config (persistent, merged in by
	// cobra before RunE runs); config.Load binds all of them through
	// viper, so the resolved Config already reflects whatever the caller
	// passed on the command line layered over the file and environment.
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	var files []string
	for _, path := range args {
		found, err := service.DiscoverFiles(path, cfg.Exclude)
		if err != nil {
			return fmt.Errorf("discover files under %s: %w", path, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .mc files found under %v", args)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner := service.NewRunner(cfg)
	progress := service.NewProgressReporter()
	report := runner.RunAll(ctx, files, progress)

	formatter, err := service.ForFormat(cfg.Format)
	if err != nil {
		return err
	}
	if err := formatter.Write(report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if report.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

// NewAnalyzeCmd creates and returns the analyze cobra command.
func NewAnalyzeCmd() *cobra.Command {
	return NewAnalyzeCommand().CreateCobraCommand()
}
