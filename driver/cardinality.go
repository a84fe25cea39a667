package driver

import (
	"fmt"

	"github.com/ariel-frischer/taskrig/field"
	"github.com/ariel-frischer/taskrig/task"
)

// Arity classifies how many command-line tokens a field consumes.
type Arity int

const (
	// ExactlyOne takes a single required token.
	ExactlyOne Arity = iota
	// ZeroOrOne takes a single optional token.
	ZeroOrOne
	// ZeroOrMore takes any number of tokens, possibly none.
	ZeroOrMore
	// OneOrMore requires at least one token.
	OneOrMore
	// ExactCount requires exactly Count tokens.
	ExactCount
)

// Cardinality is the derived token-count rule for one field.
type Cardinality struct {
	Arity Arity
	Count int
}

// Min returns the fewest tokens the field accepts.
func (c Cardinality) Min() int {
	switch c.Arity {
	case ExactlyOne, OneOrMore:
		return 1
	case ExactCount:
		return c.Count
	default:
		return 0
	}
}

// CanTakeMore reports whether the field accepts more tokens beyond have.
func (c Cardinality) CanTakeMore(have int) bool {
	switch c.Arity {
	case ExactlyOne, ZeroOrOne:
		return have < 1
	case ExactCount:
		return have < c.Count
	default:
		return true
	}
}

// List reports whether bound values are slices rather than scalars.
func (c Cardinality) List() bool {
	switch c.Arity {
	case ZeroOrMore, OneOrMore, ExactCount:
		return true
	default:
		return false
	}
}

// Notation renders the usage-line placeholder for a field with this
// cardinality, e.g. "NAME", "[NAME]", "[NAME ...]", "NAME ...".
func (c Cardinality) Notation(placeholder string) string {
	switch c.Arity {
	case ExactlyOne:
		return placeholder
	case ZeroOrOne:
		return "[" + placeholder + "]"
	case ZeroOrMore:
		return "[" + placeholder + " ...]"
	case OneOrMore:
		return placeholder + " ..."
	case ExactCount:
		return fmt.Sprintf("%s{%d}", placeholder, c.Count)
	default:
		return placeholder
	}
}

// cardinalityOf derives the token-count rule from a field's repetition range
// and default. A field with no repetition is a scalar: required without a
// default, optional with one. Unsupported bound combinations are
// schema-authoring errors.
func cardinalityOf(taskName string, spec field.Spec) (Cardinality, error) {
	repeat := spec.Repeat
	if repeat == nil {
		if spec.Default != nil {
			return Cardinality{Arity: ZeroOrOne}, nil
		}
		return Cardinality{Arity: ExactlyOne}, nil
	}

	min := repeat.Min
	max := repeat.Max
	minUnsetOrZero := min == nil || *min == 0
	switch {
	case minUnsetOrZero && max == nil:
		return Cardinality{Arity: ZeroOrMore}, nil
	case minUnsetOrZero && max != nil && *max == 1:
		return Cardinality{Arity: ZeroOrOne}, nil
	case min != nil && *min == 1 && max == nil:
		return Cardinality{Arity: OneOrMore}, nil
	case min != nil && max != nil && *min == *max:
		return Cardinality{Arity: ExactCount, Count: *min}, nil
	}
	return Cardinality{}, task.Schemaf(taskName, spec.Name,
		"unsupported repetition range (min=%s, max=%s)", boundString(min), boundString(max))
}

func boundString(bound *int) string {
	if bound == nil {
		return "unbounded"
	}
	return fmt.Sprintf("%d", *bound)
}
