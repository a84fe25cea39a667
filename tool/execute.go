package tool

import (
	"github.com/ariel-frischer/taskrig/internal/diag"
	"github.com/ariel-frischer/taskrig/task"
)

// executeStack runs the task callbacks from the outermost stack entry to the
// innermost; groups contribute no callback. Cleanups run in reverse
// registration order, and only after every callback succeeded: a callback
// failure or a canceled context stops the sequence and skips the cleanups.
// Every cleanup failure is reported and the first one wins.
func executeStack(rt *runtime, stack []*task.RuntimeTask, bound []task.Values) error {
	for i, node := range stack {
		if rt.ctx.Err() != nil {
			return ErrInterrupted
		}
		run := node.Run()
		if run == nil {
			continue
		}
		diag.Debug("running task %s", node.FullName())
		if err := run(rt, bound[i]); err != nil {
			return &ExecutionError{Task: node.FullName(), Err: err}
		}
	}
	if rt.ctx.Err() != nil {
		return ErrInterrupted
	}

	var cleanupErr error
	for i := len(rt.cleanups) - 1; i >= 0; i-- {
		if err := rt.cleanups[i](); err != nil {
			diag.Error("cleanup failed: %s", err)
			if cleanupErr == nil {
				cleanupErr = &ExecutionError{Task: "cleanup", Err: err}
			}
		}
	}
	return cleanupErr
}
