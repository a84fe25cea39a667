package driver

import (
	"fmt"
	"regexp"
	"strings"
)

var footnoteMarkerPattern = regexp.MustCompile(`\[\^(\w+)\]`)

// FootnoteBuilder collects footnote declarations and rewrites "[^label]"
// markers in scanned text into numbered references. Numbers are assigned in
// first-reference order, so the rendered footnote block reads top to bottom
// regardless of declaration order.
type FootnoteBuilder struct {
	declarations map[string]string
	numbers      map[string]int
	order        []string
}

// NewFootnoteBuilder returns an empty builder.
func NewFootnoteBuilder() *FootnoteBuilder {
	return &FootnoteBuilder{
		declarations: make(map[string]string),
		numbers:      make(map[string]int),
	}
}

// AddDeclarations merges label/text declarations; later declarations win.
func (b *FootnoteBuilder) AddDeclarations(declarations map[string]string) {
	for label, text := range declarations {
		b.declarations[label] = text
	}
}

// Scan rewrites footnote markers in text to numbered references, registering
// each label the first time it is seen.
func (b *FootnoteBuilder) Scan(text string) string {
	return footnoteMarkerPattern.ReplaceAllStringFunc(text, func(marker string) string {
		label := footnoteMarkerPattern.FindStringSubmatch(marker)[1]
		number, ok := b.numbers[label]
		if !ok {
			number = len(b.order) + 1
			b.numbers[label] = number
			b.order = append(b.order, label)
		}
		return fmt.Sprintf("[^%d]", number)
	})
}

// Format renders the footnote block for every referenced label, in reference
// order. A referenced label without a declaration still renders, with a
// placeholder noting the missing text.
func (b *FootnoteBuilder) Format() string {
	if len(b.order) == 0 {
		return ""
	}
	var lines []string
	for i, label := range b.order {
		text, ok := b.declarations[label]
		if !ok {
			text = fmt.Sprintf("%q footnote not found.", label)
		}
		lines = append(lines, fmt.Sprintf("[^%d]: %s", i+1, text))
	}
	return strings.Join(lines, "\n")
}
