package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/ludo-technologies/mc-analyzer/internal/analyzer"
	"github.com/ludo-technologies/mc-analyzer/internal/config"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
	"github.com/ludo-technologies/mc-analyzer/internal/parser"
	"github.com/ludo-technologies/mc-analyzer/internal/sema"
)

// Runner drives the full pipeline — lex, parse, check, analyze — over
// one or many .mc files.
type Runner struct {
	cfg *config.Config
}

// NewRunner creates a Runner bound to cfg.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// AnalyzeSource runs the full pipeline over already-read source text and
// returns the diagnostics surviving the configured disable list, in the
// stable position order diagnostic.Collector produces. A program-level
// semantic failure halts further CFG analysis for that file.
func (r *Runner) AnalyzeSource(src string) []diagnostic.Diagnostic {
	diags := &diagnostic.Collector{}
	prog := parser.Parse(src, diags)
	if diags.HasErrors() {
		return r.filtered(diags)
	}
	if !sema.NewChecker(diags).CheckProgram(prog) {
		return r.filtered(diags)
	}
	analyzer.AnalyzeProgram(prog, diags)
	return r.filtered(diags)
}

func (r *Runner) filtered(diags *diagnostic.Collector) []diagnostic.Diagnostic {
	all := diags.Diagnostics()
	if r.cfg == nil || len(r.cfg.Disabled) == 0 {
		return all
	}
	out := all[:0:0]
	for _, d := range all {
		if r.cfg.IsDisabled(config.Analysis(d.Stage)) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// AnalyzeFile reads and analyzes a single file, reporting I/O failures
// as a FileReport error rather than a panic.
func (r *Runner) AnalyzeFile(path string) FileReport {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileReport{Path: path, Err: err.Error()}
	}
	return FileReport{Path: path, Diagnostics: r.AnalyzeSource(string(data))}
}

// DiscoverFiles walks root (a single file or a directory) and returns
// every .mc file found, sorted for stable output, excluding any path
// matching one of the doublestar exclude globs.
func DiscoverFiles(root string, exclude []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var (
		files []string
		errs  error
	)
	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			errs = multierr.Append(errs, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".mc") {
			return nil
		}
		if matchesAny(exclude, path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		errs = multierr.Append(errs, walkErr)
	}
	sort.Strings(files)
	return files, errs
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.PathMatch(p, path); ok {
			return true
		}
	}
	return false
}

// maxWorkers bounds the directory-mode worker pool; each file's
// pipeline is independent, so bounded parallelism is safe and keeps
// resource use predictable on large trees.
const maxWorkers = 8

// RunAll analyzes every file in paths, using a bounded worker pool when
// there is more than one file, and returns an aggregate RunReport
// stamped with a fresh run id. progress may be nil; when non-nil it is
// started, incremented once per completed file, and finished before
// RunAll returns.
func (r *Runner) RunAll(ctx context.Context, paths []string, progress *ProgressReporter) RunReport {
	reports := make([]FileReport, len(paths))

	noProgress := r.cfg != nil && r.cfg.NoProgress
	if progress != nil {
		progress.Start(len(paths), noProgress)
		defer progress.Finish()
	}

	if len(paths) <= 1 {
		for i, p := range paths {
			reports[i] = r.AnalyzeFile(p)
			if progress != nil {
				progress.Increment()
			}
		}
	} else {
		sem := make(chan struct{}, maxWorkers)
		var wg sync.WaitGroup
		for i, p := range paths {
			wg.Add(1)
			go func(i int, p string) {
				defer wg.Done()
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					reports[i] = FileReport{Path: p, Err: ctx.Err().Error()}
					if progress != nil {
						progress.Increment()
					}
					return
				}
				reports[i] = r.AnalyzeFile(p)
				if progress != nil {
					progress.Increment()
				}
			}(i, p)
		}
		wg.Wait()
	}

	report := RunReport{ID: uuid.NewString(), Files: reports}
	report.Summarize(r.cfg != nil && r.cfg.FailOn == "error")
	return report
}
