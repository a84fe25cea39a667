package tool

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/taskrig/task"
)

func executionStack(t *testing.T, outerRun, innerRun task.RunFunc) []*task.RuntimeTask {
	t.Helper()
	registry := task.NewRegistry()
	require.NoError(t, registry.Register("exec.outer", task.Registration{Run: outerRun}))
	require.NoError(t, registry.Register("exec.inner", task.Registration{Run: innerRun}))
	root, err := task.Resolve(registry, task.Spec{
		Name:  "outer",
		Ref:   "exec.outer",
		Tasks: []task.Spec{{Name: "inner", Ref: "exec.inner"}},
	})
	require.NoError(t, err)
	stack, err := root.ResolveStack([]string{"inner"})
	require.NoError(t, err)
	return stack
}

func newTestRuntime() *runtime {
	return &runtime{ctx: context.Background(), out: &bytes.Buffer{}}
}

func TestExecuteOuterToInner(t *testing.T) {
	var order []string
	stack := executionStack(t,
		func(task.Runtime, task.Values) error {
			order = append(order, "outer")
			return nil
		},
		func(task.Runtime, task.Values) error {
			order = append(order, "inner")
			return nil
		},
	)

	rt := newTestRuntime()
	err := executeStack(rt, stack, []task.Values{{}, {}})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestExecuteCleanupRunsInReverseOrder(t *testing.T) {
	var order []string
	stack := executionStack(t,
		func(rt task.Runtime, _ task.Values) error {
			rt.WhenDone(func() error {
				order = append(order, "cleanup-outer")
				return nil
			})
			order = append(order, "outer")
			return nil
		},
		func(rt task.Runtime, _ task.Values) error {
			rt.WhenDone(func() error {
				order = append(order, "cleanup-inner")
				return nil
			})
			order = append(order, "inner")
			return nil
		},
	)

	rt := newTestRuntime()
	err := executeStack(rt, stack, []task.Values{{}, {}})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "cleanup-inner", "cleanup-outer"}, order)
}

func TestExecuteOuterFailureSkipsInnerAndCleanups(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	stack := executionStack(t,
		func(rt task.Runtime, _ task.Values) error {
			rt.WhenDone(func() error {
				order = append(order, "cleanup")
				return nil
			})
			return boom
		},
		func(task.Runtime, task.Values) error {
			order = append(order, "inner")
			return nil
		},
	)

	rt := newTestRuntime()
	err := executeStack(rt, stack, []task.Values{{}, {}})
	require.Error(t, err)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "outer", execErr.Task)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, order, "a failed task stops deeper tasks and skips cleanups")
}

func TestExecuteInterruptStopsSequence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var order []string
	stack := executionStack(t,
		func(rt task.Runtime, _ task.Values) error {
			rt.WhenDone(func() error {
				order = append(order, "cleanup")
				return nil
			})
			order = append(order, "outer")
			cancel()
			return nil
		},
		func(task.Runtime, task.Values) error {
			order = append(order, "inner")
			return nil
		},
	)

	rt := &runtime{ctx: ctx, out: &bytes.Buffer{}}
	err := executeStack(rt, stack, []task.Values{{}, {}})
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, []string{"outer"}, order, "cancellation stops deeper tasks and skips cleanups")
}

func TestExecuteCleanupFailureSurfacesButAllRun(t *testing.T) {
	var order []string
	stack := executionStack(t,
		func(rt task.Runtime, _ task.Values) error {
			rt.WhenDone(func() error {
				order = append(order, "first-registered")
				return nil
			})
			rt.WhenDone(func() error {
				order = append(order, "failing")
				return errors.New("cleanup boom")
			})
			return nil
		},
		func(task.Runtime, task.Values) error { return nil },
	)

	rt := newTestRuntime()
	err := executeStack(rt, stack, []task.Values{{}, {}})
	require.Error(t, err)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "cleanup", execErr.Task)
	assert.Equal(t, []string{"failing", "first-registered"}, order)
}

func TestExecuteSkipsGroups(t *testing.T) {
	registry := task.NewRegistry()
	ran := false
	require.NoError(t, registry.Register("exec.leaf", task.Registration{
		Run: func(task.Runtime, task.Values) error {
			ran = true
			return nil
		},
	}))
	root, err := task.Resolve(registry, task.Group("app", "",
		task.Spec{Name: "leaf", Ref: "exec.leaf"},
	))
	require.NoError(t, err)
	stack, err := root.ResolveStack([]string{"leaf"})
	require.NoError(t, err)

	rt := newTestRuntime()
	require.NoError(t, executeStack(rt, stack, []task.Values{{}, {}}))
	assert.True(t, ran)
}
