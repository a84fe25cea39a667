package tool

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/taskrig/field"
	"github.com/ariel-frischer/taskrig/fields"
	"github.com/ariel-frischer/taskrig/task"
)

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func definitionRegistry(t *testing.T) *task.Registry {
	t.Helper()
	registry := task.NewRegistry()
	require.NoError(t, registry.Register("def.echo", task.Registration{
		Run: func(rt task.Runtime, args task.Values) error {
			rt.Message("%s", args.String("text"))
			return nil
		},
		Doc: `Echo text.

:param text: text to echo
:param loud: reserved`,
		Fields: []field.Spec{
			fields.Text("text"),
			fields.Boolean("loud"),
		},
	}))
	return registry
}

func TestLoadDefinition(t *testing.T) {
	path := writeDefinition(t, `{
  "tool_name": "deftool",
  "description": "A declared tool.",
  "version": "1.0.0",
  "root": {
    "description": "A declared tool.",
    "tasks": [
      {
        "name": "echo",
        "ref": "def.echo",
        "options": {"loud": ["-L", "--loud"]}
      },
      {
        "name": "quiet",
        "ref": "def.echo",
        "visibility": "secondary"
      }
    ]
  }
}`)

	loaded, err := LoadDefinition(path, definitionRegistry(t))
	require.NoError(t, err)
	assert.Equal(t, "deftool", loaded.Meta.Name)
	assert.Equal(t, "1.0.0", loaded.Meta.Version)
	assert.Equal(t, "deftool", loaded.Root.Name, "root name defaults to the tool name")
	require.Len(t, loaded.Root.Tasks, 2)
	assert.Equal(t, task.Secondary, loaded.Root.Tasks[1].Visibility)
	assert.Equal(t, []string{"-L", "--loud"}, loaded.Root.Tasks[0].Hints.OptionFlags["loud"])
}

func TestLoadedDefinitionRuns(t *testing.T) {
	path := writeDefinition(t, `{
  "tool_name": "deftool",
  "description": "A declared tool.",
  "root": {
    "tasks": [{"name": "echo", "ref": "def.echo"}]
  }
}`)

	loaded, err := LoadDefinition(path, definitionRegistry(t))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	loaded.SetOutput(out, out)
	require.NoError(t, loaded.Run(context.Background(), []string{"echo", "hello"}))
	assert.Contains(t, out.String(), "hello")
}

func TestLoadDefinitionBadVisibility(t *testing.T) {
	path := writeDefinition(t, `{
  "tool_name": "deftool",
  "description": "A declared tool.",
  "root": {
    "tasks": [{"name": "echo", "ref": "def.echo", "visibility": "sideways"}]
  }
}`)

	_, err := LoadDefinition(path, definitionRegistry(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestLoadDefinitionMissingMetadata(t *testing.T) {
	path := writeDefinition(t, `{
  "root": {"tasks": [{"name": "echo", "ref": "def.echo"}]}
}`)

	_, err := LoadDefinition(path, definitionRegistry(t))
	assert.Error(t, err)
}

func TestLoadDefinitionMissingFile(t *testing.T) {
	_, err := LoadDefinition(filepath.Join(t.TempDir(), "nope.json"), definitionRegistry(t))
	assert.Error(t, err)
}

func TestLoadDefinitionEnvOverride(t *testing.T) {
	path := writeDefinition(t, `{
  "tool_name": "deftool",
  "description": "A declared tool.",
  "version": "1.0.0",
  "root": {
    "tasks": [{"name": "echo", "ref": "def.echo"}]
  }
}`)

	t.Setenv("DEFTOOL_VERSION", "9.9.9")
	loaded, err := LoadDefinition(path, definitionRegistry(t))
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", loaded.Meta.Version)
}
