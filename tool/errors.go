package tool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/taskrig/driver"
)

// Exit codes for tool processes. Usage mistakes are distinguished for shell
// scripting; every internal failure collapses to the fatal code.
const (
	ExitSuccess = 0
	ExitUsage   = 2
	ExitFatal   = 255
)

// ErrInterrupted marks a run stopped by the user. Interrupts are a normal way
// to leave an interactive tool, so they exit successfully after a newline.
var ErrInterrupted = errors.New("interrupted")

// BindFailure is one field conversion failure recorded by the binder.
type BindFailure struct {
	Task    string
	Field   string
	Adapter string
	Message string
}

func (f BindFailure) String() string {
	if f.Adapter != "" {
		return fmt.Sprintf("%s: %s (%s): %s", f.Task, f.Field, f.Adapter, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Task, f.Field, f.Message)
}

// BindingError aggregates every field failure from one binding pass. The
// binder never stops at the first bad argument; the user sees all of them at
// once.
type BindingError struct {
	Failures []BindFailure
}

func (e *BindingError) Error() string {
	lines := make([]string, len(e.Failures))
	for i, failure := range e.Failures {
		lines[i] = failure.String()
	}
	return fmt.Sprintf("%d argument failure(s):\n%s", len(e.Failures), strings.Join(lines, "\n"))
}

// ExecutionError wraps a task callback or cleanup failure with the failing
// task's full name.
type ExecutionError struct {
	Task string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("task %s: %s", e.Task, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ExitCodeFor maps a run error to the process exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInterrupted):
		return ExitSuccess
	case driver.IsUsageError(err):
		return ExitUsage
	default:
		return ExitFatal
	}
}
