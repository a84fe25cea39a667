package tool

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"github.com/ariel-frischer/taskrig/driver"
	"github.com/ariel-frischer/taskrig/task"
)

// runtime is the concrete task.Runtime handed to callbacks. One instance
// serves a whole invocation; cleanups registered by any task in the stack
// accumulate here.
type runtime struct {
	ctx      context.Context
	globals  task.Globals
	out      io.Writer
	help     driver.HelpFunc
	aliases  task.AliasCatalog
	cleanups []func() error
}

func (r *runtime) Context() context.Context { return r.ctx }

func (r *runtime) Globals() task.Globals { return r.globals }

func (r *runtime) Out() io.Writer { return r.out }

func (r *runtime) Message(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *runtime) WhenDone(cleanup func() error) {
	r.cleanups = append(r.cleanups, cleanup)
}

// Progress runs fn behind a terminal spinner. Without a terminal, or in dry
// run mode, the message is printed plainly instead.
func (r *runtime) Progress(message string, fn func() error) error {
	stdout, isFile := r.out.(*os.File)
	if !isFile || !term.IsTerminal(int(stdout.Fd())) || r.globals.DryRun {
		r.Message("%s...", message)
		return fn()
	}
	indicator := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr))
	indicator.Suffix = " " + message
	indicator.Start()
	defer indicator.Stop()
	return fn()
}

func (r *runtime) FormatHelp(names []string, showHidden bool) (string, error) {
	return r.help(names, showHidden)
}

func (r *runtime) Aliases() task.AliasCatalog { return r.aliases }
