// Package tool assembles a runnable command-line tool from a task registry
// and a declared task tree, and orchestrates a full invocation: pre-parse,
// alias expansion, resolution, compilation, the full parse, argument binding,
// and execution with cleanup.
package tool

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/ariel-frischer/taskrig/alias"
	"github.com/ariel-frischer/taskrig/task"
)

// Meta is the static identity of a tool.
type Meta struct {
	Name        string `koanf:"tool_name" validate:"required,excludesall=0x20"`
	Description string `koanf:"description" validate:"required"`
	Version     string `koanf:"version"`

	// AliasPath locates the tool's alias catalog file. Empty disables
	// aliases.
	AliasPath string `koanf:"alias_path"`

	// DisabledGlobals names global options this tool opts out of.
	DisabledGlobals []string `koanf:"disabled_globals"`
}

// Tool pairs a validated Meta with the implementation registry and the
// declared root task tree.
type Tool struct {
	Meta     Meta
	Registry *task.Registry
	Root     task.Spec

	aliases *alias.Catalog
	out     io.Writer
	errOut  io.Writer
}

// New validates the metadata, opens the alias catalog when configured, and
// returns the assembled tool. The root spec's name defaults to the tool name.
func New(meta Meta, registry *task.Registry, root task.Spec) (*Tool, error) {
	if err := validator.New().Struct(meta); err != nil {
		return nil, fmt.Errorf("invalid tool metadata: %w", err)
	}
	if root.Name == "" {
		root.Name = meta.Name
	}
	t := &Tool{
		Meta:     meta,
		Registry: registry,
		Root:     root,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
	if meta.AliasPath != "" {
		catalog, err := alias.Open(meta.AliasPath)
		if err != nil {
			return nil, err
		}
		t.aliases = catalog
	}
	return t, nil
}

// SetOutput redirects tool output. Test helper only.
func (t *Tool) SetOutput(out, errOut io.Writer) {
	t.out = out
	t.errOut = errOut
}

// Aliases returns the tool's alias catalog, or nil when aliases are disabled.
func (t *Tool) Aliases() *alias.Catalog { return t.aliases }
