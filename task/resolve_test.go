package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/taskrig/field"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	registry := NewRegistry()
	require.NoError(t, registry.Register("app.greet", Registration{
		Run: noopRun,
		Doc: `Greet someone.

A longer explanation.

:param name: who to greet`,
		Fields: []field.Spec{
			{Name: "name"},
			{Name: "loud", Type: field.Bool, Description: "shout it"},
		},
	}))
	require.NoError(t, registry.Register("app.other", Registration{Run: noopRun}))
	return registry
}

func TestResolveLeaf(t *testing.T) {
	registry := testRegistry(t)
	root, err := Resolve(registry, Spec{Name: "greet", Ref: "app.greet"})
	require.NoError(t, err)

	assert.Equal(t, "greet", root.Name())
	assert.Equal(t, "greet", root.FullName())
	assert.False(t, root.IsGroup())
	assert.NotNil(t, root.Run())
	assert.Equal(t, "Greet someone.", root.Description())
	assert.Equal(t, []string{"A longer explanation."}, root.Notes())
}

func TestResolveFillsFieldDescriptionsFromDoc(t *testing.T) {
	registry := testRegistry(t)
	root, err := Resolve(registry, Spec{Name: "greet", Ref: "app.greet"})
	require.NoError(t, err)

	name, ok := root.Field("name")
	require.True(t, ok)
	assert.Equal(t, "who to greet", name.Description)

	loud, ok := root.Field("loud")
	require.True(t, ok)
	assert.Equal(t, "shout it", loud.Description, "explicit description wins")
}

func TestResolveSpecDescriptionOverridesDoc(t *testing.T) {
	registry := testRegistry(t)
	root, err := Resolve(registry, Spec{Name: "greet", Ref: "app.greet", Description: "Say hello."})
	require.NoError(t, err)
	assert.Equal(t, "Say hello.", root.Description())
}

func TestResolveUnknownRef(t *testing.T) {
	registry := testRegistry(t)
	_, err := Resolve(registry, Spec{Name: "bad", Ref: "app.nope"})
	assert.True(t, IsSchemaError(err))
}

func TestResolveEmptyGroup(t *testing.T) {
	registry := testRegistry(t)
	_, err := Resolve(registry, Spec{Name: "group"})
	assert.True(t, IsSchemaError(err))
}

func TestSubTasksSortedAndNamed(t *testing.T) {
	registry := testRegistry(t)
	root, err := Resolve(registry, Group("app", "",
		Spec{Name: "zebra", Ref: "app.greet"},
		Spec{Name: "alpha", Ref: "app.other"},
	))
	require.NoError(t, err)

	children, err := root.SubTasks()
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "alpha", children[0].Name())
	assert.Equal(t, "zebra", children[1].Name())
	assert.Equal(t, "app.zebra", children[1].FullName())
}

func TestSubTaskVisibilitySuffixes(t *testing.T) {
	registry := testRegistry(t)
	root, err := Resolve(registry, Group("app", "",
		Spec{Name: "plain", Ref: "app.greet"},
		Spec{Name: "demoted[s]", Ref: "app.greet"},
		Spec{Name: "gone[hidden]", Ref: "app.greet"},
	))
	require.NoError(t, err)

	demoted, err := root.SubTask("demoted")
	require.NoError(t, err)
	require.NotNil(t, demoted)
	assert.Equal(t, Secondary, demoted.Visibility())

	gone, err := root.SubTask("gone")
	require.NoError(t, err)
	require.NotNil(t, gone)
	assert.Equal(t, Hidden, gone.Visibility())

	plain, err := root.SubTask("plain")
	require.NoError(t, err)
	require.NotNil(t, plain)
	assert.Equal(t, Normal, plain.Visibility())
}

func TestSubTasksDropDuplicates(t *testing.T) {
	registry := testRegistry(t)
	root, err := Resolve(registry, Group("app", "",
		Spec{Name: "twin", Ref: "app.greet"},
		Spec{Name: "twin", Ref: "app.other"},
	))
	require.NoError(t, err)

	children, err := root.SubTasks()
	require.NoError(t, err)
	assert.Len(t, children, 1)
}

func TestSubTasksBadIdentifier(t *testing.T) {
	registry := testRegistry(t)
	root, err := Resolve(registry, Group("app", "",
		Spec{Name: "9bad", Ref: "app.greet"},
	))
	require.NoError(t, err)

	_, err = root.SubTasks()
	assert.True(t, IsSchemaError(err))
}

func TestResolveStack(t *testing.T) {
	registry := testRegistry(t)
	root, err := Resolve(registry, Group("app", "",
		Group("inner", "",
			Spec{Name: "leaf", Ref: "app.greet"},
		),
	))
	require.NoError(t, err)

	stack, err := root.ResolveStack([]string{"inner", "leaf"})
	require.NoError(t, err)
	require.Len(t, stack, 3)
	assert.Equal(t, "app", stack[0].Name())
	assert.Equal(t, "inner", stack[1].Name())
	assert.Equal(t, "app.inner.leaf", stack[2].FullName())

	_, err = root.ResolveStack([]string{"missing"})
	assert.Error(t, err)
}

func TestHintsMergeConflictingTrailing(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register("app.trail", Registration{
		Run:    noopRun,
		Fields: []field.Spec{{Name: "a", Repeat: &field.Repetition{}}, {Name: "b", Repeat: &field.Repetition{}}},
		Hints:  CLIHints{TrailingField: "a"},
	}))

	_, err := Resolve(registry, Spec{
		Name:  "trail",
		Ref:   "app.trail",
		Hints: CLIHints{TrailingField: "b"},
	})
	assert.True(t, IsSchemaError(err))
}

func TestHintsMergeOptionFlags(t *testing.T) {
	base := CLIHints{OptionFlags: map[string][]string{"x": {"-x"}}}
	overlay := CLIHints{OptionFlags: map[string][]string{"x": {"--extra"}, "y": {"-y"}}}

	merged, err := base.Merge(overlay)
	require.NoError(t, err)
	assert.Equal(t, []string{"--extra"}, merged.OptionFlags["x"])
	assert.Equal(t, []string{"-y"}, merged.OptionFlags["y"])
}

func TestWithVisibilityCopies(t *testing.T) {
	original := Spec{Name: "shared", Ref: "app.greet"}
	demoted := original.WithVisibility(Secondary)
	assert.Equal(t, Normal, original.Visibility)
	assert.Equal(t, Secondary, demoted.Visibility)
}
