package tool

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/taskrig/alias"
	"github.com/ariel-frischer/taskrig/driver"
	"github.com/ariel-frischer/taskrig/internal/diag"
	"github.com/ariel-frischer/taskrig/task"
)

// Run executes one full invocation: pre-parse for global flags, alias
// expansion, task-tree resolution, parser compilation, the full parse,
// argument binding, and the execution sequence with cleanup.
func (t *Tool) Run(ctx context.Context, args []string) error {
	globals, remaining := driver.PreParse(args, t.Meta.DisabledGlobals)

	wasAlias := len(remaining) > 0 && alias.IsAliasName(remaining[0])
	expanded, err := alias.Expand(t.aliases, remaining)
	if err != nil {
		return driver.Usagef(t.Meta.Name, "%s", err)
	}
	if wasAlias {
		// The expansion may carry its own global flags.
		var fromAlias task.Globals
		fromAlias, expanded = driver.PreParse(expanded, t.Meta.DisabledGlobals)
		globals = mergeGlobals(globals, fromAlias)
	}
	diag.Configure(globals.Debug, globals.Verbose)

	root, err := task.Resolve(t.Registry, t.Root)
	if err != nil {
		return err
	}

	formatter := &driver.Formatter{
		ToolName:    t.Meta.Name,
		ToolVersion: t.Meta.Version,
		Globals:     driver.EnabledGlobals(t.Meta.DisabledGlobals),
	}
	tree, err := driver.Compile(root, formatter.Format)
	if err != nil {
		return err
	}
	formatter.Tree = tree

	result, err := tree.Parse(ctx, expanded)
	if err != nil {
		return err
	}
	if result == nil {
		// Help was rendered.
		return nil
	}

	if globals.Pause {
		fmt.Fprintf(t.errOut, "Press Enter to continue...")
		bufio.NewReader(os.Stdin).ReadString('\n')
	}

	bound, err := bindStack(result.Stack, result.Values)
	if err != nil {
		return err
	}

	rt := &runtime{
		ctx:     ctx,
		globals: globals,
		out:     t.out,
		help:    formatter.Format,
		aliases: aliasCatalogOrNil(t.aliases),
	}
	if err := executeStack(rt, result.Stack, bound); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ErrInterrupted
	}
	return nil
}

// Main runs the tool against os.Args with interrupt handling and maps the
// outcome to a process exit code.
func (t *Tool) Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := t.Run(ctx, os.Args[1:])
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInterrupted) || ctx.Err() != nil:
		// A quiet exit: the user asked to stop.
		fmt.Fprintln(t.out)
		return ExitSuccess
	case driver.IsUsageError(err):
		diag.Error("%s", err)
		diag.Message("Run '%s --help' for usage.", t.Meta.Name)
		return ExitUsage
	default:
		diag.Error("%s", err)
		return ExitFatal
	}
}

func mergeGlobals(a, b task.Globals) task.Globals {
	return task.Globals{
		Debug:     a.Debug || b.Debug,
		DryRun:    a.DryRun || b.DryRun,
		Verbose:   a.Verbose || b.Verbose,
		Pause:     a.Pause || b.Pause,
		KeepFiles: a.KeepFiles || b.KeepFiles,
	}
}

// aliasCatalogOrNil avoids handing callbacks a typed-nil interface value.
func aliasCatalogOrNil(catalog *alias.Catalog) task.AliasCatalog {
	if catalog == nil {
		return nil
	}
	return catalog
}
