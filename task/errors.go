package task

import (
	"errors"
	"fmt"
)

// SchemaError reports a malformed task or field declaration: an unresolved
// implementation reference, an invalid repetition range, a duplicate or
// ill-formed trailing-capture field. Schema errors indicate a programming
// mistake in the tool's own declarations, so they are always fatal and are
// never batched the way binding failures are.
type SchemaError struct {
	Task    string
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Task != "" && e.Field != "":
		return fmt.Sprintf("task %q field %q: %s", e.Task, e.Field, e.Message)
	case e.Task != "":
		return fmt.Sprintf("task %q: %s", e.Task, e.Message)
	default:
		return e.Message
	}
}

// Schemaf builds a SchemaError naming the offending task and field; pass
// empty strings when not applicable.
func Schemaf(taskName, fieldName, format string, args ...any) error {
	return &SchemaError{
		Task:    taskName,
		Field:   fieldName,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsSchemaError reports whether err is a schema-authoring error.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
