package task

import (
	"context"
	"io"
)

// Values holds the bound, typed field values handed to one task callback.
// Keys are the declared field names.
type Values map[string]any

// String returns the named value as a string, or "" when absent.
func (v Values) String(name string) string {
	value, _ := v[name].(string)
	return value
}

// Strings returns the named value as a string slice, or nil when absent.
func (v Values) Strings(name string) []string {
	value, _ := v[name].([]string)
	return value
}

// Bool returns the named value as a bool, or false when absent.
func (v Values) Bool(name string) bool {
	value, _ := v[name].(bool)
	return value
}

// Int returns the named value as an int64, or 0 when absent.
func (v Values) Int(name string) int64 {
	value, _ := v[name].(int64)
	return value
}

// Float returns the named value as a float64, or 0 when absent.
func (v Values) Float(name string) float64 {
	value, _ := v[name].(float64)
	return value
}

// Ints returns a repeated integer field's values, or nil when absent.
// Repeated fields whose adapters produce typed elements bind as []any.
func (v Values) Ints(name string) []int64 {
	items, _ := v[name].([]any)
	if items == nil {
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		if n, ok := item.(int64); ok {
			out = append(out, n)
		}
	}
	return out
}

// Floats returns a repeated numeric field's values, or nil when absent.
// Integer elements are widened.
func (v Values) Floats(name string) []float64 {
	items, _ := v[name].([]any)
	if items == nil {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		switch n := item.(type) {
		case float64:
			out = append(out, n)
		case int64:
			out = append(out, float64(n))
		}
	}
	return out
}

// Has reports whether the field was bound at all.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Globals are the process-wide behavior flags toggled during pre-parse. They
// are written once per run and read-only afterward.
type Globals struct {
	Debug     bool
	DryRun    bool
	Verbose   bool
	Pause     bool
	KeepFiles bool
}

// AliasCatalog is the alias collaborator consulted for the first non-flag
// token of the argument vector before full parsing.
type AliasCatalog interface {
	// Resolve expands an alias name to its replacement tokens.
	Resolve(name string) ([]string, bool)
	// Set stores or replaces an alias expansion.
	Set(name, description string, command []string) error
	// Delete removes an alias; it reports whether the alias existed.
	Delete(name string) (bool, error)
	// Names lists the catalog's alias names, sorted.
	Names() []string
	// Describe returns the stored description and expansion for an alias.
	Describe(name string) (description string, command []string, ok bool)
}

// RunFunc is a task callback. It receives the runtime facade and the bound
// values for the fields declared on its own task only.
type RunFunc func(rt Runtime, args Values) error

// Runtime is the facade handed to task callbacks. The concrete implementation
// lives with the tool orchestrator; callbacks depend only on this interface.
type Runtime interface {
	// Context is canceled on interrupt.
	Context() context.Context

	// Globals returns the behavior flags resolved during pre-parse.
	Globals() Globals

	// Out is the destination for normal task output.
	Out() io.Writer

	// Message writes a line of normal output.
	Message(format string, args ...any)

	// WhenDone registers a cleanup callback invoked after a successful full
	// run, in last-registered-first order.
	WhenDone(cleanup func() error)

	// Progress runs fn behind a progress indicator with the given message.
	Progress(message string, fn func() error) error

	// FormatHelp renders help for the named command path (empty for the
	// tool root), including hidden entries when showHidden is set.
	FormatHelp(names []string, showHidden bool) (string, error)

	// Aliases exposes the tool's alias catalog, or nil when the hosting
	// tool has none.
	Aliases() AliasCatalog
}
