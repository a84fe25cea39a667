// Package diag writes user-facing diagnostics with consistent coloring and
// honors the process-wide debug/verbose flags resolved during pre-parse.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu         sync.Mutex
	debugMode  bool
	verbose    bool
	configured bool

	errWriter io.Writer = os.Stderr
	outWriter io.Writer = os.Stdout

	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// Configure sets the diagnostic flags for this run. The flags are write-once:
// the first call wins, matching the pre-parse contract that behavior flags
// are fixed before the full parse begins.
func Configure(debug, verboseMode bool) {
	mu.Lock()
	defer mu.Unlock()
	if configured {
		return
	}
	configured = true
	debugMode = debug
	verbose = verboseMode
}

// Reset clears the write-once state. Test helper only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	configured = false
	debugMode = false
	verbose = false
}

// SetOutput redirects diagnostic output. Test helper only.
func SetOutput(out, err io.Writer) {
	outWriter = out
	errWriter = err
}

// DebugEnabled reports whether debug diagnostics are active.
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debugMode
}

// Message writes a normal informational line.
func Message(format string, args ...any) {
	fmt.Fprintf(outWriter, format+"\n", args...)
}

// Verbose writes an informational line only when verbose mode is active.
func Verbose(format string, args ...any) {
	mu.Lock()
	enabled := verbose || debugMode
	mu.Unlock()
	if enabled {
		fmt.Fprintf(outWriter, format+"\n", args...)
	}
}

// Debug writes a trace line only when debug mode is active.
func Debug(format string, args ...any) {
	mu.Lock()
	enabled := debugMode
	mu.Unlock()
	if enabled {
		debugColor.Fprintf(errWriter, "debug: "+format+"\n", args...)
	}
}

// Warning reports a recoverable problem.
func Warning(format string, args ...any) {
	warnColor.Fprintf(errWriter, "warning: "+format+"\n", args...)
}

// Error reports a failure.
func Error(format string, args ...any) {
	errorColor.Fprintf(errWriter, "error: "+format+"\n", args...)
}
