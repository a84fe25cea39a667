package tool

import (
	"fmt"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/taskrig/task"
)

// specNode is the serialized form of one task declaration in a tool
// definition file.
type specNode struct {
	Name        string              `koanf:"name"`
	Ref         string              `koanf:"ref"`
	Description string              `koanf:"description"`
	Visibility  string              `koanf:"visibility"`
	Notes       []string            `koanf:"notes"`
	Footnotes   map[string]string   `koanf:"footnotes"`
	Options     map[string][]string `koanf:"options"`
	Trailing    string              `koanf:"trailing"`
	Tasks       []specNode          `koanf:"tasks"`
}

// LoadDefinition builds a tool from a JSON definition file. Top-level keys
// populate the tool metadata and the "root" key declares the task tree;
// implementation references must already be registered. Metadata keys can be
// overridden through <TOOLNAME>_* environment variables.
func LoadDefinition(path string, registry *task.Registry) (*Tool, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		return nil, fmt.Errorf("loading tool definition %s: %w", path, err)
	}

	var meta Meta
	if err := k.Unmarshal("", &meta); err != nil {
		return nil, fmt.Errorf("reading tool definition %s: %w", path, err)
	}

	if meta.Name != "" {
		prefix := strings.ToUpper(meta.Name) + "_"
		k.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, prefix))
		}), nil)
		if err := k.Unmarshal("", &meta); err != nil {
			return nil, fmt.Errorf("reading tool definition %s: %w", path, err)
		}
	}

	var rootNode specNode
	if err := k.Unmarshal("root", &rootNode); err != nil {
		return nil, fmt.Errorf("reading tool definition %s: %w", path, err)
	}
	root, err := rootNode.toSpec()
	if err != nil {
		return nil, fmt.Errorf("tool definition %s: %w", path, err)
	}

	return New(meta, registry, root)
}

func (n specNode) toSpec() (task.Spec, error) {
	visibility, err := parseVisibility(n.Visibility)
	if err != nil {
		return task.Spec{}, fmt.Errorf("task %q: %w", n.Name, err)
	}
	spec := task.Spec{
		Name:        n.Name,
		Ref:         n.Ref,
		Description: n.Description,
		Visibility:  visibility,
		Notes:       n.Notes,
		Footnotes:   n.Footnotes,
		Hints: task.CLIHints{
			OptionFlags:   n.Options,
			TrailingField: n.Trailing,
		},
	}
	for _, child := range n.Tasks {
		childSpec, err := child.toSpec()
		if err != nil {
			return task.Spec{}, err
		}
		spec.Tasks = append(spec.Tasks, childSpec)
	}
	return spec, nil
}

func parseVisibility(name string) (task.Visibility, error) {
	switch name {
	case "", "normal":
		return task.Normal, nil
	case "secondary":
		return task.Secondary, nil
	case "hidden":
		return task.Hidden, nil
	}
	return task.Normal, fmt.Errorf("unknown visibility %q", name)
}
