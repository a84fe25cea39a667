package driver

import (
	"context"
	"strings"

	"github.com/ariel-frischer/taskrig/task"
)

// Result is the outcome of a successful full parse: the matched command, the
// task stack from the root to it, and the raw captured values keyed by
// upper-cased field name. Values hold strings and string slices straight from
// the command line (bools for presence flags); typing happens in the binder.
type Result struct {
	Command *Command
	Stack   []*task.RuntimeTask
	Names   []string
	Values  map[string]any
}

// Parse runs the full parsing phase over the (alias-expanded, pre-parsed)
// argument vector. A nil result with a nil error means help was rendered and
// the run is complete.
func (t *Tree) Parse(ctx context.Context, args []string) (*Result, error) {
	t.result = nil
	t.cobraRoot.SetArgs(args)
	t.cobraRoot.SetContext(ctx)
	if err := t.cobraRoot.Execute(); err != nil {
		if IsUsageError(err) {
			return nil, err
		}
		// Unknown-command and similar errors come back as plain cobra errors.
		return nil, &UsageError{Command: t.Root.Name(), Message: err.Error()}
	}
	return t.result, nil
}

// capture is the single RunE body for every compiled command: it validates
// and allocates positional tokens, records option values, and stores the
// parse result for the binder. Nothing is executed here.
func (t *Tree) capture(command *Command, args []string) error {
	if command.Task.Run() == nil {
		if len(args) > 0 {
			return Usagef(command.Path(), "unknown command %q", args[0])
		}
		return Usagef(command.Path(), "a sub-command is required")
	}

	if command.Trailing != nil {
		rest, helped, err := t.parseLeadingOptions(command, args)
		if err != nil {
			return err
		}
		if helped {
			return nil
		}
		args = rest
	}

	values := make(map[string]any)
	if err := allocatePositionals(command, args, values); err != nil {
		return err
	}

	for _, option := range command.Options {
		key := strings.ToUpper(option.Field.Name)
		switch {
		case option.IsBool():
			// Presence flags always bind, true or false.
			values[key] = *option.boolHolder
		case option.compiledFlag != nil && option.compiledFlag.Changed:
			if option.Card.List() {
				values[key] = append([]string(nil), (*option.arrayHolder)...)
			} else {
				values[key] = *option.valueHolder
			}
		}
	}

	stack := make([]*task.RuntimeTask, 0, 4)
	for c := command; c != nil; c = c.parent {
		stack = append([]*task.RuntimeTask{c.Task}, stack...)
	}

	t.result = &Result{
		Command: command,
		Stack:   stack,
		Names:   command.Names(),
		Values:  values,
	}
	return nil
}

// parseLeadingOptions is the flag-parsing pass for trailing-capture commands,
// which compile with cobra's own flag parsing disabled. Declared options are
// consumed from the front of the vector and parsed through the command's flag
// set; the first token that is not a declared option starts the positional
// region, whatever its shape. A "--" token ends the option region explicitly.
func (t *Tree) parseLeadingOptions(command *Command, args []string) (rest []string, helped bool, err error) {
	flags := command.cobra.Flags()
	var leading []string
	i := 0
scan:
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "--":
			i++
			break scan
		case strings.HasPrefix(arg, "--"):
			name := strings.TrimPrefix(arg, "--")
			hasValue := false
			if eq := strings.Index(name, "="); eq >= 0 {
				name, hasValue = name[:eq], true
			}
			flag := flags.Lookup(name)
			if flag == nil {
				break scan
			}
			leading = append(leading, arg)
			i++
			if !hasValue && flag.Value.Type() != "bool" && i < len(args) {
				leading = append(leading, args[i])
				i++
			}
		case len(arg) > 1 && arg[0] == '-':
			flag := flags.ShorthandLookup(arg[1:2])
			if flag == nil {
				break scan
			}
			leading = append(leading, arg)
			i++
			if len(arg) == 2 && flag.Value.Type() != "bool" && i < len(args) {
				leading = append(leading, args[i])
				i++
			}
		default:
			break scan
		}
	}

	if err := flags.Parse(leading); err != nil {
		return nil, false, &UsageError{Command: command.Path(), Message: err.Error()}
	}
	if help, _ := flags.GetBool("help"); help {
		t.renderHelp(command.cobra, nil)
		return nil, true, nil
	}
	return args[i:], false, nil
}

// allocatePositionals distributes the positional tokens across the command's
// positional fields. Each field first receives its minimum token count; with
// a trailing-capture field every leftover token goes to it, otherwise extras
// are handed out left to right to fields that can still take more. Tokens
// that no field can absorb are a usage error.
func allocatePositionals(command *Command, tokens []string, values map[string]any) error {
	counts := make([]int, len(command.Positionals))
	required := 0
	for i, positional := range command.Positionals {
		counts[i] = positional.Card.Min()
		required += counts[i]
	}

	if len(tokens) < required {
		have := len(tokens)
		for i, positional := range command.Positionals {
			if have < counts[i] {
				return Usagef(command.Path(), "missing required argument %s", positional.Placeholder())
			}
			have -= counts[i]
		}
	}

	extra := len(tokens) - required
	if command.Trailing == nil {
		for i := range counts {
			for extra > 0 && command.Positionals[i].Card.CanTakeMore(counts[i]) {
				counts[i]++
				extra--
			}
		}
		if extra > 0 {
			return Usagef(command.Path(), "unexpected arguments: %s",
				strings.Join(tokens[len(tokens)-extra:], " "))
		}
	}

	next := 0
	for i, positional := range command.Positionals {
		take := tokens[next : next+counts[i]]
		next += counts[i]
		key := strings.ToUpper(positional.Field.Name)
		if positional.Card.List() {
			values[key] = append([]string(nil), take...)
		} else if len(take) == 1 {
			values[key] = take[0]
		}
	}

	if command.Trailing != nil {
		remainder := append([]string(nil), tokens[next:]...)
		if minCount := command.Trailing.Card.Min(); len(remainder) < minCount {
			return Usagef(command.Path(), "missing required argument %s", command.Trailing.Placeholder())
		}
		values[strings.ToUpper(command.Trailing.Field.Name)] = remainder
	}
	return nil
}
