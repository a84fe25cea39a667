// Package task defines the declarative task tree model (specs, hints,
// visibility), the implementation registry, and the per-invocation resolved
// task tree consumed by the CLI driver.
package task

import "fmt"

// Visibility is the display tier of a task in help output.
type Visibility int

const (
	// Normal tasks appear in the primary sub-command block.
	Normal Visibility = iota
	// Secondary tasks appear in a separate block below the primary one.
	Secondary
	// Hidden tasks only appear when hidden entries are explicitly requested.
	Hidden
)

// String returns the visibility tier's display name.
func (v Visibility) String() string {
	switch v {
	case Normal:
		return "normal"
	case Secondary:
		return "secondary"
	case Hidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// CLIHints is the typed driver configuration attached to a task declaration.
// It replaces free-form hint dictionaries: every recognized key is an explicit
// field, validated when the task is compiled.
type CLIHints struct {
	// OptionFlags maps a field name to its flag strings, marking that field
	// as a flagged option instead of a positional argument.
	OptionFlags map[string][]string `json:"options"`

	// TrailingField names the single field that receives all arguments left
	// over after normal parsing.
	TrailingField string `json:"trailing"`
}

// Merge overlays other on top of h and returns the result. Option flags from
// other win per field. Conflicting trailing-field declarations are a
// schema-authoring error: a task can capture trailing arguments into at most
// one field.
func (h CLIHints) Merge(other CLIHints) (CLIHints, error) {
	merged := CLIHints{TrailingField: h.TrailingField}
	if len(h.OptionFlags)+len(other.OptionFlags) > 0 {
		merged.OptionFlags = make(map[string][]string, len(h.OptionFlags)+len(other.OptionFlags))
		for name, flags := range h.OptionFlags {
			merged.OptionFlags[name] = flags
		}
		for name, flags := range other.OptionFlags {
			merged.OptionFlags[name] = flags
		}
	}
	if other.TrailingField != "" {
		if merged.TrailingField != "" && merged.TrailingField != other.TrailingField {
			return CLIHints{}, &SchemaError{
				Message: fmt.Sprintf("conflicting trailing-capture fields %q and %q",
					merged.TrailingField, other.TrailingField),
			}
		}
		merged.TrailingField = other.TrailingField
	}
	return merged, nil
}

// Spec declares one node of a task tree. A Spec with an implementation
// reference is an invocable task; a Spec without one is a group that exists
// only to hold children.
//
// Specs are declared once and treated as read-only. Reusing a shared Spec in
// multiple trees goes through the With* methods, which copy; the shared
// original is never mutated.
type Spec struct {
	// Name is the command name typed by the user. It may carry a visibility
	// suffix ("name[s]", "name[hidden]") when referenced as a child.
	Name string

	// Ref names the registered implementation. Empty for groups.
	Ref string

	// Description overrides the first doc-block paragraph when set.
	Description string

	// Visibility is the display tier; child references with a visibility
	// suffix override it.
	Visibility Visibility

	// Notes are extra help paragraphs shown after the description.
	Notes []string

	// Footnotes maps labels to text referenced as "[^label]" in any
	// description text rendered for this task.
	Footnotes map[string]string

	// Hints is the typed driver configuration (option flags, trailing
	// capture). Merged over the registration's hints during resolution.
	Hints CLIHints

	// Tasks are the child declarations.
	Tasks []Spec
}

// Group declares a non-invocable task node holding children.
func Group(name, description string, children ...Spec) Spec {
	return Spec{Name: name, Description: description, Tasks: children}
}

// WithVisibility returns a copy of the spec with a different display tier.
// Used when grafting a shared subtree into a tree that wants it demoted or
// hidden.
func (s Spec) WithVisibility(visibility Visibility) Spec {
	copied := s
	copied.Visibility = visibility
	return copied
}

// WithRef returns a copy of the spec bound to a different registered
// implementation.
func (s Spec) WithRef(ref string) Spec {
	copied := s
	copied.Ref = ref
	return copied
}
