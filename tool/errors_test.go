package tool

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ariel-frischer/taskrig/driver"
	"github.com/ariel-frischer/taskrig/task"
)

func TestExitCodeFor(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"success":           {nil, ExitSuccess},
		"interrupt":         {ErrInterrupted, ExitSuccess},
		"wrapped interrupt": {fmt.Errorf("run: %w", ErrInterrupted), ExitSuccess},
		"usage":             {driver.Usagef("tool", "bad flag"), ExitUsage},
		"schema":            {task.Schemaf("t", "f", "bad"), ExitFatal},
		"binding":           {&BindingError{Failures: []BindFailure{{}}}, ExitFatal},
		"execution":         {&ExecutionError{Task: "t", Err: errors.New("boom")}, ExitFatal},
		"plain":             {errors.New("anything"), ExitFatal},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCodeFor(tc.err))
		})
	}
}

func TestBindingErrorMessage(t *testing.T) {
	err := &BindingError{Failures: []BindFailure{
		{Task: "app.case", Field: "count", Adapter: "to_int", Message: `bad integer "x"`},
		{Task: "app.case", Field: "name", Message: "invalid choice"},
	}}
	assert.Contains(t, err.Error(), "2 argument failure(s)")
	assert.Contains(t, err.Error(), `app.case: count (to_int): bad integer "x"`)
	assert.Contains(t, err.Error(), "app.case: name: invalid choice")
}

func TestExecutionErrorUnwraps(t *testing.T) {
	inner := errors.New("inner")
	err := &ExecutionError{Task: "app.run", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "task app.run: inner", err.Error())
}
