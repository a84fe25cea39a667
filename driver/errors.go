package driver

import (
	"errors"
	"fmt"
)

// UsageError reports a user-facing command-line mistake: an unknown flag, a
// missing required argument, unexpected trailing tokens. Usage errors map to
// exit code 2 and carry the command path for the "see help" hint.
type UsageError struct {
	Command string
	Message string
}

func (e *UsageError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Message)
	}
	return e.Message
}

// Usagef builds a UsageError for the named command path.
func Usagef(command, format string, args ...any) error {
	return &UsageError{Command: command, Message: fmt.Sprintf(format, args...)}
}

// IsUsageError reports whether err is a command-line usage error.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
