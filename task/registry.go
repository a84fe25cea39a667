package task

import (
	"sort"

	"github.com/ariel-frischer/taskrig/field"
)

// Registration is the record attached to one implementation reference: the
// callback, its static field descriptor list (declared order defines
// positional ordering), the raw documentation block, and declaration-time
// driver hints.
type Registration struct {
	// Run is the task callback.
	Run RunFunc

	// Fields is the ordered field descriptor list.
	Fields []field.Spec

	// Doc is the implementation's documentation block. The first paragraph
	// becomes the task description, later paragraphs become notes, and
	// ":param <name>: <text>" lines populate per-field descriptions.
	Doc string

	// Hints is the declaration-level driver configuration. Spec-level hints
	// merge over these during resolution.
	Hints CLIHints
}

// Registry maps implementation references to registration records. It is an
// explicit value threaded through resolution, never ambient package state,
// so resolvers are testable against a fake registry.
type Registry struct {
	records map[string]*Registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*Registration)}
}

// Register records an implementation under ref. Re-registering a reference is
// a schema-authoring error.
func (r *Registry) Register(ref string, registration Registration) error {
	if ref == "" {
		return Schemaf("", "", "empty implementation reference")
	}
	if _, exists := r.records[ref]; exists {
		return Schemaf("", "", "implementation %q already registered", ref)
	}
	for _, spec := range registration.Fields {
		if spec.Name == "" {
			return Schemaf(ref, "", "field with empty name")
		}
		if spec.Repeat != nil {
			if err := spec.Repeat.Validate(); err != nil {
				return Schemaf(ref, spec.Name, "%s", err)
			}
		}
	}
	stored := registration
	r.records[ref] = &stored
	return nil
}

// Resolve looks up a registration by reference.
func (r *Registry) Resolve(ref string) (*Registration, bool) {
	registration, ok := r.records[ref]
	return registration, ok
}

// Refs lists the registered references, sorted.
func (r *Registry) Refs() []string {
	refs := make([]string, 0, len(r.records))
	for ref := range r.records {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}
