package driver

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ariel-frischer/taskrig/field"
	"github.com/ariel-frischer/taskrig/task"
)

const (
	helpIndent   = "  "
	helpGutter   = 2
	defaultWidth = 80
	maxHelpWidth = 100
)

// Formatter renders help text for any command in a compiled tree. Output is
// sectioned: usage line, description, sub-command blocks by visibility tier,
// argument and option tables, note paragraphs, and a footnote block with
// references renumbered in first-use order.
type Formatter struct {
	ToolName    string
	ToolVersion string
	Tree        *Tree
	Globals     []GlobalOption

	// Width overrides terminal-width detection when positive.
	Width int
}

// Format renders help for the command at the given path; an empty path means
// the tool root. Hidden sub-commands are listed only when showHidden is set.
func (f *Formatter) Format(names []string, showHidden bool) (string, error) {
	command, err := f.Tree.Lookup(names)
	if err != nil {
		return "", err
	}

	width := f.width()
	footnotes := NewFootnoteBuilder()
	footnotes.AddDeclarations(command.Task.Footnotes())

	var sections []string
	if len(names) == 0 && f.ToolVersion != "" {
		sections = append(sections, f.ToolName+" "+f.ToolVersion)
	}
	sections = append(sections, "Usage:\n"+helpIndent+f.usageLine(command))

	if description := command.Task.Description(); description != "" {
		sections = append(sections, wrapText(footnotes.Scan(description), width, ""))
	}

	primary, secondary, hidden := splitByVisibility(command.Sub)
	if block := f.commandBlock("Commands", primary, width, footnotes); block != "" {
		sections = append(sections, block)
	}
	if block := f.commandBlock("Additional commands", secondary, width, footnotes); block != "" {
		sections = append(sections, block)
	}
	if showHidden {
		if block := f.commandBlock("Hidden commands", hidden, width, footnotes); block != "" {
			sections = append(sections, block)
		}
	}

	if block := f.argumentBlock(command, width, footnotes); block != "" {
		sections = append(sections, block)
	}
	if block := f.optionBlock(command, width, footnotes); block != "" {
		sections = append(sections, block)
	}
	if len(names) == 0 {
		if block := f.globalBlock(width); block != "" {
			sections = append(sections, block)
		}
	}

	for _, note := range command.Task.Notes() {
		sections = append(sections, wrapText(footnotes.Scan(note), width, ""))
	}
	if block := footnotes.Format(); block != "" {
		sections = append(sections, block)
	}

	return strings.Join(sections, "\n\n") + "\n", nil
}

func (f *Formatter) width() int {
	if f.Width > 0 {
		return f.Width
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		if width > maxHelpWidth {
			return maxHelpWidth
		}
		return width
	}
	return defaultWidth
}

func (f *Formatter) usageLine(command *Command) string {
	parts := []string{f.ToolName}
	parts = append(parts, command.Names()...)
	if len(command.Options) > 0 || (command.parent == nil && len(f.Globals) > 0) {
		parts = append(parts, "[OPTION ...]")
	}
	for _, positional := range command.Positionals {
		parts = append(parts, positional.Card.Notation(positional.Placeholder()))
	}
	if command.Trailing != nil {
		parts = append(parts, command.Trailing.Card.Notation(command.Trailing.Placeholder()))
	}
	if len(command.Sub) > 0 {
		if command.Task.Run() == nil {
			parts = append(parts, "COMMAND ...")
		} else {
			parts = append(parts, "[COMMAND ...]")
		}
	}
	return strings.Join(parts, " ")
}

func splitByVisibility(commands []*Command) (primary, secondary, hidden []*Command) {
	for _, command := range commands {
		switch command.Task.Visibility() {
		case task.Secondary:
			secondary = append(secondary, command)
		case task.Hidden:
			hidden = append(hidden, command)
		default:
			primary = append(primary, command)
		}
	}
	return primary, secondary, hidden
}

func (f *Formatter) commandBlock(heading string, commands []*Command, width int, footnotes *FootnoteBuilder) string {
	if len(commands) == 0 {
		return ""
	}
	rows := make([][2]string, len(commands))
	for i, command := range commands {
		rows[i] = [2]string{command.Name(), footnotes.Scan(command.Task.Description())}
	}
	return heading + ":\n" + formatTable(rows, width)
}

func (f *Formatter) argumentBlock(command *Command, width int, footnotes *FootnoteBuilder) string {
	positionals := command.Positionals
	if command.Trailing != nil {
		positionals = append(append([]*Positional(nil), positionals...), command.Trailing)
	}
	if len(positionals) == 0 {
		return ""
	}
	rows := make([][2]string, len(positionals))
	for i, positional := range positionals {
		rows[i] = [2]string{
			positional.Placeholder(),
			footnotes.Scan(describeField(positional.Field)),
		}
	}
	return "Arguments:\n" + formatTable(rows, width)
}

func (f *Formatter) optionBlock(command *Command, width int, footnotes *FootnoteBuilder) string {
	if len(command.Options) == 0 {
		return ""
	}
	rows := make([][2]string, len(command.Options))
	for i, option := range command.Options {
		label := strings.Join(option.Flags, ", ")
		if !option.IsBool() {
			label += " " + strings.ToUpper(option.Field.Name)
		}
		rows[i] = [2]string{label, footnotes.Scan(describeField(option.Field))}
	}
	return "Options:\n" + formatTable(rows, width)
}

func (f *Formatter) globalBlock(width int) string {
	if len(f.Globals) == 0 {
		return ""
	}
	rows := make([][2]string, len(f.Globals))
	for i, option := range f.Globals {
		label := "--" + option.Flag
		if option.Shorthand != "" {
			label = "-" + option.Shorthand + ", " + label
		}
		rows[i] = [2]string{label, option.Description}
	}
	return "Global options:\n" + formatTable(rows, width)
}

// describeField renders a field's help cell: the description plus choice and
// default annotations when present.
func describeField(spec field.Spec) string {
	description := spec.Description
	if len(spec.Choices) > 0 {
		description += fmt.Sprintf(" (choices: %s)", strings.Join(spec.Choices, ", "))
	}
	if spec.Default != nil {
		description += fmt.Sprintf(" (default: %v)", spec.Default.Value)
	}
	return strings.TrimSpace(description)
}

// formatTable renders two-column rows with an aligned gutter, wrapping the
// right column to the available width.
func formatTable(rows [][2]string, width int) string {
	labelWidth := 0
	for _, row := range rows {
		if len(row[0]) > labelWidth {
			labelWidth = len(row[0])
		}
	}
	descIndent := len(helpIndent) + labelWidth + helpGutter

	var lines []string
	for _, row := range rows {
		label := helpIndent + row[0] + strings.Repeat(" ", labelWidth-len(row[0])+helpGutter)
		if row[1] == "" {
			lines = append(lines, strings.TrimRight(label, " "))
			continue
		}
		wrapped := wrapText(row[1], width-descIndent, "")
		for j, line := range strings.Split(wrapped, "\n") {
			if j == 0 {
				lines = append(lines, label+line)
			} else {
				lines = append(lines, strings.Repeat(" ", descIndent)+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// wrapText greedily wraps text at word boundaries, prefixing every line with
// indent.
func wrapText(text string, width int, indent string) string {
	if width < 16 {
		width = 16
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	current := indent + words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = indent + word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)
	return strings.Join(lines, "\n")
}
