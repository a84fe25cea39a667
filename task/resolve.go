package task

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ariel-frischer/taskrig/field"
	"github.com/ariel-frischer/taskrig/internal/diag"
)

// Child references may carry a visibility suffix: "name[s]"/"name[secondary]"
// demotes to the secondary help block, "name[h]"/"name[hidden]" hides the
// entry unless hidden output is requested.
var identPattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9\-_]*)(?:\[(s|secondary|h|hidden)\])?$`)

// RuntimeTask is the resolved, per-invocation counterpart of a Spec: the
// implementation reference is resolved to its registration, hints are merged,
// and field/sub-task lists are derived. Sub-tasks and fields are computed at
// most once per instance.
type RuntimeTask struct {
	name       string
	fullName   string
	visibility Visibility
	spec       Spec
	reg        *Registration
	registry   *Registry

	docParsed bool
	doc       parsedDoc

	subTasksDone bool
	subTasks     []*RuntimeTask
	subTasksErr  error

	fieldsDone bool
	fields     []field.Spec

	hints CLIHints
}

// Resolve builds the runtime task tree root from a declared spec. The
// implementation reference, when present, must resolve against the registry;
// an unresolved reference is a fatal schema-authoring error, not a user-input
// error.
func Resolve(registry *Registry, spec Spec) (*RuntimeTask, error) {
	return resolveNode(registry, spec, spec.Name, "", spec.Visibility)
}

func resolveNode(registry *Registry, spec Spec, name, parentFullName string, visibility Visibility) (*RuntimeTask, error) {
	fullName := name
	if parentFullName != "" {
		fullName = parentFullName + "." + name
	}
	node := &RuntimeTask{
		name:       name,
		fullName:   fullName,
		visibility: visibility,
		spec:       spec,
		registry:   registry,
	}
	if spec.Ref != "" {
		registration, ok := registry.Resolve(spec.Ref)
		if !ok {
			return nil, Schemaf(fullName, "", "unresolved implementation reference %q", spec.Ref)
		}
		node.reg = registration
		merged, err := registration.Hints.Merge(spec.Hints)
		if err != nil {
			if se, ok := err.(*SchemaError); ok {
				se.Task = fullName
			}
			return nil, err
		}
		node.hints = merged
	} else {
		if len(spec.Tasks) == 0 {
			return nil, Schemaf(fullName, "", "group declares no implementation and no sub-tasks")
		}
		node.hints = spec.Hints
	}
	return node, nil
}

// Name returns the command name as typed by the user.
func (t *RuntimeTask) Name() string { return t.name }

// FullName returns the dotted path from the root task.
func (t *RuntimeTask) FullName() string { return t.fullName }

// Visibility returns the resolved display tier.
func (t *RuntimeTask) Visibility() Visibility { return t.visibility }

// IsGroup reports whether the node only holds children and is not itself
// invocable.
func (t *RuntimeTask) IsGroup() bool { return t.reg == nil }

// Run returns the resolved callback, or nil for groups.
func (t *RuntimeTask) Run() RunFunc {
	if t.reg == nil {
		return nil
	}
	return t.reg.Run
}

// Hints returns the merged driver configuration for this task.
func (t *RuntimeTask) Hints() CLIHints { return t.hints }

func (t *RuntimeTask) parsedDoc() parsedDoc {
	if !t.docParsed {
		t.docParsed = true
		if t.reg != nil {
			t.doc = parseDoc(t.reg.Doc)
		}
	}
	return t.doc
}

// Description prefers the explicit spec override, then the first paragraph of
// the implementation's doc block.
func (t *RuntimeTask) Description() string {
	if t.spec.Description != "" {
		return t.spec.Description
	}
	return t.parsedDoc().description
}

// Notes prefers explicit spec notes over doc-block paragraphs.
func (t *RuntimeTask) Notes() []string {
	if len(t.spec.Notes) > 0 {
		return t.spec.Notes
	}
	return t.parsedDoc().notes
}

// Footnotes merges doc-block footnote declarations with explicit spec
// footnotes; explicit entries win.
func (t *RuntimeTask) Footnotes() map[string]string {
	doc := t.parsedDoc()
	if len(doc.footnotes) == 0 && len(t.spec.Footnotes) == 0 {
		return nil
	}
	merged := make(map[string]string, len(doc.footnotes)+len(t.spec.Footnotes))
	for label, text := range doc.footnotes {
		merged[label] = text
	}
	for label, text := range t.spec.Footnotes {
		merged[label] = text
	}
	return merged
}

// Fields returns the resolved field list in declared order. Field
// descriptions left empty at registration are filled from the doc block's
// ":param" lines. Computed once per instance.
func (t *RuntimeTask) Fields() []field.Spec {
	if t.fieldsDone {
		return t.fields
	}
	t.fieldsDone = true
	if t.reg == nil {
		return nil
	}
	doc := t.parsedDoc()
	t.fields = make([]field.Spec, len(t.reg.Fields))
	for i, spec := range t.reg.Fields {
		if spec.Description == "" {
			spec.Description = doc.params[spec.Name]
		}
		t.fields[i] = spec
	}
	return t.fields
}

// Field looks up a resolved field by name.
func (t *RuntimeTask) Field(name string) (field.Spec, bool) {
	for _, spec := range t.Fields() {
		if spec.Name == name {
			return spec, true
		}
	}
	return field.Spec{}, false
}

// SubTasks resolves and returns the child tasks, sorted by name for stable
// help ordering. Duplicate sibling names are dropped with a diagnostic, not
// merged. Computed once per instance; an unresolved child reference fails
// resolution outright.
func (t *RuntimeTask) SubTasks() ([]*RuntimeTask, error) {
	if t.subTasksDone {
		return t.subTasks, t.subTasksErr
	}
	t.subTasksDone = true
	seen := make(map[string]bool, len(t.spec.Tasks))
	for _, childSpec := range t.spec.Tasks {
		name, visibility, err := parseIdent(childSpec.Name, childSpec.Visibility)
		if err != nil {
			t.subTasksErr = Schemaf(t.fullName, "", "%s", err)
			t.subTasks = nil
			return nil, t.subTasksErr
		}
		if seen[name] {
			diag.Warning("task %q: duplicate sub-task %q dropped", t.fullName, name)
			continue
		}
		seen[name] = true
		child, err := resolveNode(t.registry, childSpec, name, t.fullName, visibility)
		if err != nil {
			t.subTasksErr = err
			t.subTasks = nil
			return nil, err
		}
		t.subTasks = append(t.subTasks, child)
	}
	sort.Slice(t.subTasks, func(i, j int) bool {
		return t.subTasks[i].name < t.subTasks[j].name
	})
	return t.subTasks, nil
}

// SubTask looks up a resolved child by name.
func (t *RuntimeTask) SubTask(name string) (*RuntimeTask, error) {
	children, err := t.SubTasks()
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if child.name == name {
			return child, nil
		}
	}
	return nil, nil
}

// ResolveStack walks the resolved tree along names and returns the ordered
// task stack from this node (inclusive) to the most specific named command.
func (t *RuntimeTask) ResolveStack(names []string) ([]*RuntimeTask, error) {
	stack := []*RuntimeTask{t}
	current := t
	for _, name := range names {
		child, err := current.SubTask(name)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, fmt.Errorf("unknown command %q under %q",
				name, strings.ReplaceAll(current.fullName, ".", " "))
		}
		stack = append(stack, child)
		current = child
	}
	return stack, nil
}

func parseIdent(ident string, declared Visibility) (string, Visibility, error) {
	match := identPattern.FindStringSubmatch(ident)
	if match == nil {
		return "", Normal, fmt.Errorf("bad task identifier %q", ident)
	}
	name := match[1]
	switch match[2] {
	case "s", "secondary":
		return name, Secondary, nil
	case "h", "hidden":
		return name, Hidden, nil
	default:
		return name, declared, nil
	}
}
