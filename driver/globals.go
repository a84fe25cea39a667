package driver

import "github.com/ariel-frischer/taskrig/task"

// GlobalOption describes one of the process-wide behavior flags. Global
// options are extracted during pre-parse, before the command tree is
// compiled, and are never inherited as task-specific options.
type GlobalOption struct {
	Name        string
	Shorthand   string
	Flag        string
	Description string
}

// GlobalOptions is the full global-option set, filtered per tool by the
// tool's disabled-globals list.
var GlobalOptions = []GlobalOption{
	{Name: "debug", Flag: "debug", Description: "enable debug mode for additional diagnostics"},
	{Name: "dry-run", Flag: "dry-run", Description: "display actions without executing them (dry run)"},
	{Name: "verbose", Shorthand: "v", Flag: "verbose", Description: "display additional (verbose) messages"},
	{Name: "pause", Flag: "pause", Description: "pause before significant activity"},
	{Name: "keep-files", Flag: "keep-files", Description: "keep (do not delete) temporary files"},
}

// EnabledGlobals returns the global options active for a tool, preserving
// declaration order.
func EnabledGlobals(disabled []string) []GlobalOption {
	disabledSet := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		disabledSet[name] = true
	}
	var enabled []GlobalOption
	for _, option := range GlobalOptions {
		if !disabledSet[option.Name] {
			enabled = append(enabled, option)
		}
	}
	return enabled
}

// PreParse performs the first, permissive parsing phase: enabled global flags
// are extracted from the argument vector so diagnostic and behavior modes can
// be flipped before the full command tree is compiled. Every other token,
// including flags the pre-parse does not recognize, passes through unchanged
// and in order for alias expansion and the full parse. Tokens after a literal
// "--" are never inspected.
func PreParse(args []string, disabledGlobals []string) (task.Globals, []string) {
	forms := make(map[string]string)
	for _, option := range EnabledGlobals(disabledGlobals) {
		forms["--"+option.Flag] = option.Name
		if option.Shorthand != "" {
			forms["-"+option.Shorthand] = option.Name
		}
	}

	seen := make(map[string]bool)
	remaining := make([]string, 0, len(args))
	passthrough := false
	for _, token := range args {
		if !passthrough {
			if token == "--" {
				passthrough = true
			} else if name, ok := forms[token]; ok {
				seen[name] = true
				continue
			}
		}
		remaining = append(remaining, token)
	}

	return task.Globals{
		Debug:     seen["debug"],
		DryRun:    seen["dry-run"],
		Verbose:   seen["verbose"],
		Pause:     seen["pause"],
		KeepFiles: seen["keep-files"],
	}, remaining
}
