package tool

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/taskrig/field"
	"github.com/ariel-frischer/taskrig/task"
)

// bindStack converts the raw parse values into typed per-task value maps, one
// per stack entry. Every field failure is recorded and binding continues, so
// a single bad invocation reports all of its problems at once.
func bindStack(stack []*task.RuntimeTask, raw map[string]any) ([]task.Values, error) {
	bound := make([]task.Values, len(stack))
	var failures []BindFailure

	for i, node := range stack {
		values := make(task.Values)
		for _, spec := range node.Fields() {
			rawValue, ok := raw[strings.ToUpper(spec.Name)]
			if !ok {
				if spec.Default != nil {
					// Defaults are declared typed; the adapter chain only
					// runs against command-line tokens.
					values[spec.Name] = spec.Default.Value
				}
				continue
			}
			converted, failure := convertField(node.FullName(), spec, rawValue)
			if failure != nil {
				failures = append(failures, *failure)
				continue
			}
			values[spec.Name] = converted
		}
		bound[i] = values
	}

	if len(failures) > 0 {
		return nil, &BindingError{Failures: failures}
	}
	return bound, nil
}

func convertField(taskName string, spec field.Spec, rawValue any) (any, *BindFailure) {
	switch value := rawValue.(type) {
	case []string:
		if failure := checkChoices(taskName, spec, value...); failure != nil {
			return nil, failure
		}
		if len(spec.Adapters) == 0 {
			return value, nil
		}
		converted := make([]any, len(value))
		for i, element := range value {
			adapted, failure := runAdapters(taskName, spec, element)
			if failure != nil {
				return nil, failure
			}
			converted[i] = adapted
		}
		return converted, nil
	case string:
		if failure := checkChoices(taskName, spec, value); failure != nil {
			return nil, failure
		}
		return runAdapters(taskName, spec, value)
	default:
		// Booleans arrive pre-typed from the parser.
		return runAdapters(taskName, spec, value)
	}
}

// checkChoices validates raw tokens against the declared choice set before
// any adapter runs.
func checkChoices(taskName string, spec field.Spec, tokens ...string) *BindFailure {
	if len(spec.Choices) == 0 {
		return nil
	}
	for _, token := range tokens {
		allowed := false
		for _, choice := range spec.Choices {
			if token == choice {
				allowed = true
				break
			}
		}
		if !allowed {
			return &BindFailure{
				Task:    taskName,
				Field:   spec.Name,
				Message: fmt.Sprintf("invalid choice %q (choose from %s)", token, strings.Join(spec.Choices, ", ")),
			}
		}
	}
	return nil
}

func runAdapters(taskName string, spec field.Spec, value any) (any, *BindFailure) {
	current := value
	for _, adapter := range spec.Adapters {
		converted, err := adapter.Convert(current)
		if err != nil {
			return nil, &BindFailure{
				Task:    taskName,
				Field:   spec.Name,
				Adapter: adapter.Name,
				Message: err.Error(),
			}
		}
		current = converted
	}
	return current, nil
}
