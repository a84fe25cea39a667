// Command extool is the demonstration tool: a small task tree exercising
// flagged options, repeated positionals, trailing capture, sub-command
// groups, and the builtin help and alias tasks.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ariel-frischer/taskrig/field"
	"github.com/ariel-frischer/taskrig/fields"
	"github.com/ariel-frischer/taskrig/internal/build"
	"github.com/ariel-frischer/taskrig/internal/diag"
	"github.com/ariel-frischer/taskrig/task"
	"github.com/ariel-frischer/taskrig/tool"
)

func main() {
	os.Exit(run())
}

func run() int {
	registry := task.NewRegistry()
	if err := tool.RegisterBuiltins(registry); err != nil {
		diag.Error("%s", err)
		return tool.ExitFatal
	}
	if err := registerTasks(registry); err != nil {
		diag.Error("%s", err)
		return tool.ExitFatal
	}

	aliasPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		aliasPath = filepath.Join(home, ".extool", "aliases.json")
	}

	t, err := tool.New(tool.Meta{
		Name:        "extool",
		Description: "Example tool exercising the task framework.",
		Version:     build.Version,
		AliasPath:   aliasPath,
	}, registry, rootSpec())
	if err != nil {
		diag.Error("%s", err)
		return tool.ExitFatal
	}
	return t.Main()
}

func rootSpec() task.Spec {
	return task.Spec{
		Description: "Example tool exercising the task framework.",
		Tasks: []task.Spec{
			{Name: "case", Ref: "extool.case"},
			{Name: "calc", Ref: "extool.calc"},
			{Name: "words", Ref: "extool.words"},
			task.Group("time", "Date and time commands.",
				task.Spec{Name: "now", Ref: "extool.time.now"},
				task.Spec{Name: "month", Ref: "extool.time.month"},
				task.Spec{Name: "year", Ref: "extool.time.year"},
			),
			tool.HelpSpec(),
			tool.AliasSpec(),
		},
	}
}

func registerTasks(registry *task.Registry) error {
	registrations := map[string]task.Registration{
		"extool.case": {
			Run: runCase,
			Doc: `Convert text block case.

Exactly one of the case options must be chosen.

:param upper: convert to upper case
:param lower: convert to lower case
:param blocks: text block(s) to convert`,
			Fields: []field.Spec{
				fields.Boolean("upper"),
				fields.Boolean("lower"),
				fields.Text("blocks", fields.Repeat(intPtr(1), nil)),
			},
			Hints: task.CLIHints{
				OptionFlags: map[string][]string{
					"upper": {"-u", "--upper"},
					"lower": {"-l", "--lower"},
				},
			},
		},
		"extool.calc": {
			Run: runCalc,
			Doc: `Evaluate a simple arithmetic expression.

Supports +, -, *, and / with the usual precedence. The whole expression is
captured, so operators do not need quoting.

:param terms: expression terms to evaluate`,
			Fields: []field.Spec{
				fields.Text("terms", fields.Repeat(intPtr(1), nil)),
			},
			Hints: task.CLIHints{TrailingField: "terms"},
		},
		"extool.words": {
			Run: runWords,
			Doc: `Count words in text block(s).

:param blocks: text block(s) to count`,
			Fields: []field.Spec{
				fields.Text("blocks", fields.Repeat(intPtr(1), nil)),
			},
		},
		"extool.time.now": {
			Run: runTimeNow,
			Doc: `Display the current date and time.

:param format: output layout in Go reference-time form`,
			Fields: []field.Spec{
				fields.Text("format", fields.Default(time.RFC1123)),
			},
			Hints: task.CLIHints{
				OptionFlags: map[string][]string{"format": {"-f", "--format"}},
			},
		},
		"extool.time.month": {
			Run: func(rt task.Runtime, _ task.Values) error {
				rt.Message("%s", time.Now().Month())
				return nil
			},
			Doc: `Display the current month.`,
		},
		"extool.time.year": {
			Run: func(rt task.Runtime, _ task.Values) error {
				rt.Message("%d", time.Now().Year())
				return nil
			},
			Doc: `Display the current year.`,
		},
	}
	for ref, registration := range registrations {
		if err := registry.Register(ref, registration); err != nil {
			return err
		}
	}
	return nil
}

func runTimeNow(rt task.Runtime, args task.Values) error {
	rt.Message("%s", time.Now().Format(args.String("format")))
	return nil
}

func runCase(rt task.Runtime, args task.Values) error {
	upper := args.Bool("upper")
	lower := args.Bool("lower")
	if upper == lower {
		return fmt.Errorf("choose exactly one of --upper or --lower")
	}
	blocks := args.Strings("blocks")
	converted := make([]string, len(blocks))
	for i, block := range blocks {
		if upper {
			converted[i] = strings.ToUpper(block)
		} else {
			converted[i] = strings.ToLower(block)
		}
	}
	rt.Message("%s", strings.Join(converted, " "))
	return nil
}

func runWords(rt task.Runtime, args task.Values) error {
	count := 0
	for _, block := range args.Strings("blocks") {
		count += len(strings.Fields(block))
	}
	rt.Message("%d", count)
	return nil
}

func runCalc(rt task.Runtime, args task.Values) error {
	tokens := splitTerms(args.Strings("terms"))
	result, err := evaluate(tokens)
	if err != nil {
		return err
	}
	rt.Message("%s", strconv.FormatFloat(result, 'f', -1, 64))
	return nil
}

// splitTerms breaks tokens like "1+2" into separate number and operator
// tokens so expressions work with or without spaces.
func splitTerms(terms []string) []string {
	var tokens []string
	for _, term := range terms {
		current := strings.Builder{}
		for i, r := range term {
			switch r {
			case '+', '*', '/':
				if current.Len() > 0 {
					tokens = append(tokens, current.String())
					current.Reset()
				}
				tokens = append(tokens, string(r))
			case '-':
				// A leading minus is a sign, not an operator.
				if current.Len() == 0 && (len(tokens) == 0 || isOperator(tokens[len(tokens)-1])) && i == 0 {
					current.WriteRune(r)
					continue
				}
				if current.Len() > 0 {
					tokens = append(tokens, current.String())
					current.Reset()
				}
				tokens = append(tokens, string(r))
			default:
				current.WriteRune(r)
			}
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
		}
	}
	return tokens
}

func isOperator(token string) bool {
	switch token {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// evaluate computes an alternating number/operator token sequence with
// multiplication and division bound tighter than addition and subtraction.
func evaluate(tokens []string) (float64, error) {
	if len(tokens) == 0 || len(tokens)%2 == 0 {
		return 0, fmt.Errorf("malformed expression: %s", strings.Join(tokens, " "))
	}
	numbers := make([]float64, 0, len(tokens)/2+1)
	operators := make([]string, 0, len(tokens)/2)
	for i, token := range tokens {
		if i%2 == 0 {
			number, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return 0, fmt.Errorf("bad number %q", token)
			}
			numbers = append(numbers, number)
			continue
		}
		if !isOperator(token) {
			return 0, fmt.Errorf("bad operator %q", token)
		}
		operators = append(operators, token)
	}

	// First pass: fold * and / into their left operand.
	foldedNumbers := []float64{numbers[0]}
	var foldedOperators []string
	for i, operator := range operators {
		right := numbers[i+1]
		switch operator {
		case "*":
			foldedNumbers[len(foldedNumbers)-1] *= right
		case "/":
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			foldedNumbers[len(foldedNumbers)-1] /= right
		default:
			foldedOperators = append(foldedOperators, operator)
			foldedNumbers = append(foldedNumbers, right)
		}
	}

	result := foldedNumbers[0]
	for i, operator := range foldedOperators {
		if operator == "+" {
			result += foldedNumbers[i+1]
		} else {
			result -= foldedNumbers[i+1]
		}
	}
	return result, nil
}

func intPtr(value int) *int { return &value }
