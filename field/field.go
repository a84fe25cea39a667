// Package field describes one typed, validated argument or option belonging
// to a task: its element type, repetition range, default value, permitted
// choices, and the ordered adapter chain that validates and converts raw
// command-line tokens into typed values.
package field

import "fmt"

// Type identifies the scalar element type of a field. For repeated fields the
// type describes a single element, not the collected slice.
type Type int

const (
	String Type = iota
	Bool
	Int
	Float
	// StringList marks an element that itself expands to a list of strings,
	// e.g. a comma-separated token.
	StringList
)

// String returns the type tag's display name.
func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case StringList:
		return "string list"
	default:
		return "unknown"
	}
}

// Adapter is a single validate/convert step in a field's processing chain.
// Convert receives the raw value (a string token, or a bool for boolean
// options) or the output of the previous adapter, and returns the converted
// value or a failure. Failures are distinguished as type failures (the raw
// shape is structurally wrong) or value failures (the shape is right but the
// content is invalid); see TypeErrorf and ValueErrorf.
type Adapter struct {
	Name    string
	Convert func(value any) (any, error)
}

// Repetition declares how many elements a field collects. A nil bound means
// unbounded on that side.
type Repetition struct {
	Min *int
	Max *int
}

// RepeatCount builds a Repetition requiring exactly count elements.
func RepeatCount(count int) *Repetition {
	return &Repetition{Min: &count, Max: &count}
}

// RepeatRange builds a Repetition from optional bounds. Pass nil for an
// unbounded side.
func RepeatRange(min, max *int) *Repetition {
	return &Repetition{Min: min, Max: max}
}

// Validate checks the declared bounds. Both bounds set requires min <= max;
// a set maximum must allow at least one element.
func (r *Repetition) Validate() error {
	if r.Min != nil && *r.Min < 0 {
		return fmt.Errorf("repetition minimum %d is negative", *r.Min)
	}
	if r.Max != nil && *r.Max < 1 {
		return fmt.Errorf("repetition maximum %d allows no elements", *r.Max)
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("repetition minimum %d exceeds maximum %d", *r.Min, *r.Max)
	}
	return nil
}

// Default wraps a declared default value so that "no default" (nil *Default)
// is distinguishable from a default of nil/zero.
type Default struct {
	Value any
}

// DefaultValue wraps value as a field default.
func DefaultValue(value any) *Default {
	return &Default{Value: value}
}

// Spec is the immutable description of one field. Specs are created once at
// declaration time; the resolver and driver only ever read them.
type Spec struct {
	// Name is the field name used for positional ordering, option naming,
	// and bound-value lookup.
	Name string

	// Type tags the scalar element type.
	Type Type

	// Description is the help text. When empty, the resolver fills it from
	// the implementation's doc block (":param <name>: ..." lines).
	Description string

	// Repeat declares the element count range; nil means a single value.
	Repeat *Repetition

	// Default is used when the field is absent from the parsed input. The
	// adapter chain does not run against defaults.
	Default *Default

	// Choices restricts the raw token to a finite set. Compared against the
	// token text before adapters run.
	Choices []string

	// Adapters is the ordered validate/convert chain, applied per element
	// for repeated fields.
	Adapters []Adapter
}

// Repeated reports whether the field collects more than one element, i.e.
// whether bound values are slices.
func (s Spec) Repeated() bool {
	if s.Repeat == nil {
		return false
	}
	if s.Repeat.Max != nil && *s.Repeat.Max == 1 {
		return false
	}
	return true
}
