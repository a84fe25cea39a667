package driver

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ariel-frischer/taskrig/field"
	"github.com/ariel-frischer/taskrig/task"
)

// Option is a compiled flagged option: one field plus its flag strings and the
// derived token-count rule.
type Option struct {
	Field     field.Spec
	Card      Cardinality
	Name      string
	Shorthand string
	Flags     []string

	boolHolder   *bool
	valueHolder  *string
	arrayHolder  *[]string
	compiledFlag *pflag.Flag
}

// IsBool reports whether the option is a presence flag taking no value token.
func (o *Option) IsBool() bool { return o.Field.Type == field.Bool }

// sortKey orders options the way the help formatter lists them: by the
// lowercased flag letters, then short flags before long ones, then lowercase
// before uppercase.
func (o *Option) sortKey() (string, int, int) {
	primary := o.Shorthand
	dashes := 1
	if primary == "" {
		primary = o.Name
		dashes = 2
	}
	caseBit := 0
	if primary != strings.ToLower(primary) {
		caseBit = 1
	}
	return strings.ToLower(primary), dashes, caseBit
}

// Positional is a compiled positional argument: one field plus the derived
// token-count rule. Positionals consume tokens in declared order.
type Positional struct {
	Field field.Spec
	Card  Cardinality
}

// Placeholder returns the upper-cased metavar used in usage lines and
// argument tables.
func (p *Positional) Placeholder() string {
	return strings.ToUpper(p.Field.Name)
}

// Command is one compiled node of the concrete parser tree. It pairs the
// resolved task with its classified options and positionals and its compiled
// children.
type Command struct {
	Task        *task.RuntimeTask
	Options     []*Option
	Positionals []*Positional
	Trailing    *Positional
	Sub         []*Command

	parent *Command
	cobra  *cobra.Command
}

// Name returns the command name as typed by the user.
func (c *Command) Name() string { return c.Task.Name() }

// Path returns the space-joined command path from the root, root included.
func (c *Command) Path() string {
	if c.parent == nil {
		return c.Name()
	}
	return c.parent.Path() + " " + c.Name()
}

// Names returns the command path with the root excluded, i.e. the tokens the
// user typed to reach this command.
func (c *Command) Names() []string {
	if c.parent == nil {
		return nil
	}
	return append(c.parent.Names(), c.Name())
}

// classify splits a task's fields into flagged options, ordinary positionals,
// and the optional trailing-capture positional, validating the hints against
// the declared fields.
func classify(node *task.RuntimeTask) ([]*Option, []*Positional, *Positional, error) {
	hints := node.Hints()
	var options []*Option
	var positionals []*Positional
	var trailing *Positional

	for _, spec := range node.Fields() {
		card, err := cardinalityOf(node.FullName(), spec)
		if err != nil {
			return nil, nil, nil, err
		}
		if flags, ok := hints.OptionFlags[spec.Name]; ok {
			option := &Option{Field: spec, Card: card, Flags: flags}
			option.Name, option.Shorthand = splitFlags(flags)
			if option.Name == "" && option.Shorthand == "" {
				return nil, nil, nil, task.Schemaf(node.FullName(), spec.Name,
					"option declares no usable flags %v", flags)
			}
			if option.Name == "" {
				option.Name = option.Shorthand
			}
			options = append(options, option)
			continue
		}
		positional := &Positional{Field: spec, Card: card}
		if spec.Name == hints.TrailingField {
			trailing = positional
			continue
		}
		positionals = append(positionals, positional)
	}

	for name := range hints.OptionFlags {
		if _, ok := node.Field(name); !ok {
			return nil, nil, nil, task.Schemaf(node.FullName(), name,
				"option flags declared for unknown field")
		}
	}

	if hints.TrailingField != "" {
		if trailing == nil {
			if _, isOption := hints.OptionFlags[hints.TrailingField]; isOption {
				return nil, nil, nil, task.Schemaf(node.FullName(), hints.TrailingField,
					"trailing-capture field cannot be a flagged option")
			}
			return nil, nil, nil, task.Schemaf(node.FullName(), hints.TrailingField,
				"trailing-capture field is not declared")
		}
		if trailing.Field.Repeat == nil {
			return nil, nil, nil, task.Schemaf(node.FullName(), hints.TrailingField,
				"trailing-capture field must declare a repetition range")
		}
	}

	sort.SliceStable(options, func(i, j int) bool {
		li, di, ci := options[i].sortKey()
		lj, dj, cj := options[j].sortKey()
		if li != lj {
			return li < lj
		}
		if di != dj {
			return di < dj
		}
		return ci < cj
	})
	return options, positionals, trailing, nil
}

// splitFlags extracts the long name and shorthand from declared flag strings.
// The longest "--flag" wins as the name; the first "-f" wins as the shorthand.
func splitFlags(flags []string) (name, shorthand string) {
	for _, flag := range flags {
		switch {
		case strings.HasPrefix(flag, "--"):
			candidate := strings.TrimPrefix(flag, "--")
			if len(candidate) > len(name) {
				name = candidate
			}
		case strings.HasPrefix(flag, "-") && len(flag) == 2:
			if shorthand == "" {
				shorthand = strings.TrimPrefix(flag, "-")
			}
		}
	}
	return name, shorthand
}
