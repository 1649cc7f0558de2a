// Package diagnostic is the shared diagnostic type produced by every
// pipeline stage, from the lexer through the five CFG analyses.
package diagnostic

import (
	"fmt"
	"sort"

	"github.com/ludo-technologies/mc-analyzer/internal/ast"
)

// Severity distinguishes diagnostics that should fail a build from ones
// that merely warn.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is a message attached to an optional node; equality and
// ordering are purely by position.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      ast.Position
	Stage    string
}

// String renders the stable, downstream-tested format:
// "<message> at <line>:<column>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %d:%d", d.Message, d.Pos.Line, d.Pos.Col)
}

// Collector accumulates diagnostics for a single file's pipeline run.
type Collector struct {
	diags []Diagnostic
}

// New adds a diagnostic attached to node's position.
func (c *Collector) New(severity Severity, stage, message string, node ast.Node) {
	pos := ast.Position{}
	if node != nil {
		pos = node.Pos()
	}
	c.diags = append(c.diags, Diagnostic{
		Severity: severity,
		Message:  message,
		Pos:      pos,
		Stage:    stage,
	})
}

// Warningf records a Warning-severity diagnostic, the common case for the
// five CFG analyses.
func (c *Collector) Warningf(stage string, node ast.Node, format string, args ...interface{}) {
	c.New(Warning, stage, fmt.Sprintf(format, args...), node)
}

// Errorf records an Error-severity diagnostic.
func (c *Collector) Errorf(stage string, node ast.Node, format string, args ...interface{}) {
	c.New(Error, stage, fmt.Sprintf(format, args...), node)
}

// Add appends an already-built Diagnostic verbatim, used to merge
// diagnostics collected in an isolated sub-collector (e.g. one function's
// recover-guarded analysis pass) into the file-level collector.
func (c *Collector) Add(d Diagnostic) {
	c.diags = append(c.diags, d)
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Diagnostics returns the diagnostics recorded so far. Nothing depends
// on collection order, but output is stabilized by position for
// readability.
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pos.Line != out[j].Pos.Line {
			return out[i].Pos.Line < out[j].Pos.Line
		}
		return out[i].Pos.Col < out[j].Pos.Col
	})
	return out
}

// Len returns the number of diagnostics recorded so far.
func (c *Collector) Len() int {
	return len(c.diags)
}
