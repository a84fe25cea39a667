package driver

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/taskrig/task"
)

// HelpFunc renders help text for the command at the given path (empty for the
// tool root), including hidden entries when showHidden is set.
type HelpFunc func(names []string, showHidden bool) (string, error)

// Tree is the compiled concrete parser: the classified command tree plus the
// cobra commands that drive the full parsing phase. Compile once per
// invocation, Parse once.
type Tree struct {
	Root *Command

	cobraRoot *cobra.Command
	byCobra   map[*cobra.Command]*Command
	help      HelpFunc
	result    *Result
}

// Compile builds the concrete parser tree from a resolved task tree. Field
// classification and cardinality derivation happen here; any schema-authoring
// mistake surfaces as a fatal error before the user's arguments are looked at.
func Compile(root *task.RuntimeTask, help HelpFunc) (*Tree, error) {
	tree := &Tree{
		byCobra: make(map[*cobra.Command]*Command),
		help:    help,
	}
	command, err := tree.build(root, nil)
	if err != nil {
		return nil, err
	}
	if command.Task.Run() == nil && len(command.Sub) == 0 {
		return nil, task.Schemaf(root.FullName(), "", "program defines no tasks")
	}
	tree.Root = command
	tree.cobraRoot.SetHelpFunc(tree.renderHelp)
	tree.cobraRoot.CompletionOptions.DisableDefaultCmd = true
	tree.cobraRoot.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Command: tree.pathOf(cmd), Message: err.Error()}
	})
	return tree, nil
}

func (t *Tree) build(node *task.RuntimeTask, parent *Command) (*Command, error) {
	options, positionals, trailing, err := classify(node)
	if err != nil {
		return nil, err
	}
	command := &Command{
		Task:        node,
		Options:     options,
		Positionals: positionals,
		Trailing:    trailing,
		parent:      parent,
	}

	cobraCmd := &cobra.Command{
		Use:           useLine(node.Name(), command),
		Short:         node.Description(),
		Hidden:        node.Visibility() == task.Hidden,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return t.capture(command, args)
		},
	}
	cobraCmd.DisableFlagsInUseLine = true
	command.cobra = cobraCmd

	for _, option := range options {
		flags := cobraCmd.Flags()
		switch {
		case option.IsBool():
			option.boolHolder = flags.BoolP(option.Name, option.Shorthand, false, option.Field.Description)
		case option.Card.List():
			option.arrayHolder = flags.StringArrayP(option.Name, option.Shorthand, nil, option.Field.Description)
		default:
			option.valueHolder = flags.StringP(option.Name, option.Shorthand, "", option.Field.Description)
		}
		option.compiledFlag = flags.Lookup(option.Name)
	}
	if trailing != nil {
		// Trailing capture owns flag parsing so that flag-shaped tokens in
		// any trailing position survive; capture parses the declared leading
		// options itself.
		cobraCmd.DisableFlagParsing = true
	}

	t.byCobra[cobraCmd] = command
	if parent == nil {
		t.cobraRoot = cobraCmd
	} else {
		parent.cobra.AddCommand(cobraCmd)
	}

	children, err := node.SubTasks()
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		sub, err := t.build(child, command)
		if err != nil {
			return nil, err
		}
		command.Sub = append(command.Sub, sub)
	}
	return command, nil
}

func (t *Tree) pathOf(cmd *cobra.Command) string {
	if command, ok := t.byCobra[cmd]; ok {
		return command.Path()
	}
	return cmd.CommandPath()
}

// Lookup walks the compiled tree along names (root excluded) and returns the
// matching command, or a usage error naming the first unknown token.
func (t *Tree) Lookup(names []string) (*Command, error) {
	current := t.Root
	for _, name := range names {
		var next *Command
		for _, sub := range current.Sub {
			if sub.Name() == name {
				next = sub
				break
			}
		}
		if next == nil {
			return nil, Usagef(current.Path(), "unknown command %q", name)
		}
		current = next
	}
	return current, nil
}

func (t *Tree) renderHelp(cmd *cobra.Command, _ []string) {
	command, ok := t.byCobra[cmd]
	if !ok {
		command = t.Root
	}
	if t.help == nil {
		return
	}
	text, err := t.help(command.Names(), false)
	if err != nil {
		cmd.PrintErrln(err)
		return
	}
	cmd.Print(text)
}

// useLine builds the cobra Use string: command name followed by the
// positional notation in declared order.
func useLine(name string, command *Command) string {
	parts := []string{name}
	for _, positional := range command.Positionals {
		parts = append(parts, positional.Card.Notation(positional.Placeholder()))
	}
	if command.Trailing != nil {
		parts = append(parts, command.Trailing.Card.Notation(command.Trailing.Placeholder()))
	}
	return strings.Join(parts, " ")
}
