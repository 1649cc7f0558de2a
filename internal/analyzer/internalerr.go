package analyzer

import "fmt"

// InternalError marks a bug in the analyzer itself — an unhandled AST
// kind reaching the CFG builder, or any other panic raised while
// building or analyzing a function's CFG — as distinct from a user
// diagnostic. It
// wraps its cause instead of swallowing it so errors.Is/As still work
// across the boundary.
type InternalError struct {
	Func  string
	Cause error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error analyzing function '%s': %v", e.Func, e.Cause)
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}
