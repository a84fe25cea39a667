package tool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/taskrig/field"
	"github.com/ariel-frischer/taskrig/fields"
	"github.com/ariel-frischer/taskrig/task"
)

// Builtin implementation references registered by RegisterBuiltins.
const (
	RefHelp        = "builtin.help"
	RefAliasList   = "builtin.alias.list"
	RefAliasSet    = "builtin.alias.set"
	RefAliasDelete = "builtin.alias.delete"
)

var errNoAliases = errors.New("this tool does not enable aliases")

// RegisterBuiltins adds the shared help and alias implementations to a
// registry. Tools graft the corresponding specs (HelpSpec, AliasSpec) into
// their trees wherever they want them, with whatever visibility suits.
func RegisterBuiltins(registry *task.Registry) error {
	registrations := map[string]task.Registration{
		RefHelp: {
			Run: runHelp,
			Doc: `Display help for the tool or a specific command.

:param all: include hidden commands in listings
:param help_names: command name path to show help for`,
			Fields: []field.Spec{
				fields.Boolean("all"),
				fields.Text("help_names", fields.Repeat(nil, nil)),
			},
			Hints: task.CLIHints{
				OptionFlags: map[string][]string{"all": {"-a", "--all"}},
			},
		},
		RefAliasList: {
			Run: runAliasList,
			Doc: `List saved command aliases.`,
		},
		RefAliasSet: {
			Run: runAliasSet,
			Doc: `Save a command alias.

Alias names start with '/', '.', or '~'.

:param alias: name of the alias to save
:param description: description stored with the alias
:param command: command tokens the alias expands to`,
			Fields: []field.Spec{
				fields.Text("alias"),
				fields.Text("description", fields.Default("")),
				fields.Text("command", fields.Repeat(intPtr(1), nil)),
			},
			Hints: task.CLIHints{
				OptionFlags:   map[string][]string{"description": {"-d", "--description"}},
				TrailingField: "command",
			},
		},
		RefAliasDelete: {
			Run: runAliasDelete,
			Doc: `Delete a saved command alias.

:param alias: name of the alias to delete`,
			Fields: []field.Spec{
				fields.Text("alias"),
			},
		},
	}
	for ref, registration := range registrations {
		if err := registry.Register(ref, registration); err != nil {
			return err
		}
	}
	return nil
}

// HelpSpec declares the builtin help task.
func HelpSpec() task.Spec {
	return task.Spec{Name: "help", Ref: RefHelp, Visibility: task.Secondary}
}

// AliasSpec declares the builtin alias management group.
func AliasSpec() task.Spec {
	return task.Spec{
		Name:        "alias",
		Description: "Manage command aliases.",
		Visibility:  task.Secondary,
		Tasks: []task.Spec{
			{Name: "list", Ref: RefAliasList},
			{Name: "set", Ref: RefAliasSet},
			{Name: "delete", Ref: RefAliasDelete},
		},
	}
}

func runHelp(rt task.Runtime, args task.Values) error {
	text, err := rt.FormatHelp(args.Strings("help_names"), args.Bool("all"))
	if err != nil {
		return err
	}
	rt.Message("%s", strings.TrimRight(text, "\n"))
	return nil
}

func runAliasList(rt task.Runtime, _ task.Values) error {
	catalog := rt.Aliases()
	if catalog == nil {
		return errNoAliases
	}
	names := catalog.Names()
	if len(names) == 0 {
		rt.Message("No aliases saved.")
		return nil
	}
	for _, name := range names {
		description, command, _ := catalog.Describe(name)
		if description != "" {
			rt.Message("%s  %s  (%s)", name, strings.Join(command, " "), description)
		} else {
			rt.Message("%s  %s", name, strings.Join(command, " "))
		}
	}
	return nil
}

func runAliasSet(rt task.Runtime, args task.Values) error {
	catalog := rt.Aliases()
	if catalog == nil {
		return errNoAliases
	}
	name := args.String("alias")
	command := args.Strings("command")
	if err := catalog.Set(name, args.String("description"), command); err != nil {
		return err
	}
	rt.Message("Alias %s saved.", name)
	return nil
}

func runAliasDelete(rt task.Runtime, args task.Values) error {
	catalog := rt.Aliases()
	if catalog == nil {
		return errNoAliases
	}
	name := args.String("alias")
	deleted, err := catalog.Delete(name)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("alias %q not found", name)
	}
	rt.Message("Alias %s deleted.", name)
	return nil
}

func intPtr(value int) *int { return &value }
