package service

import (
	"fmt"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter displays a bar while a multi-file run is in flight,
// tracking the single "analyze N files" task mc-analyzer ever runs.
type ProgressReporter struct {
	mu     sync.Mutex
	bar    *progressbar.ProgressBar
	active bool
}

// NewProgressReporter creates an idle reporter; Start must be called
// before Increment has any effect.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{}
}

// Start begins tracking total files, rendering a bar to stderr only
// when the run is interactive and worth showing: more than one file,
// and not disabled by --no-progress.
func (p *ProgressReporter) Start(total int, disabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if disabled || total <= 1 || !isInteractive(os.Stderr) {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
	p.active = true
}

// Increment advances the bar by one completed file.
func (p *ProgressReporter) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active && p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Finish closes out the bar, if one was started.
func (p *ProgressReporter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active && p.bar != nil {
		_ = p.bar.Finish()
	}
}

func isInteractive(f *os.File) bool {
	if os.Getenv("CI") != "" {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
