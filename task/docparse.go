package task

import (
	"regexp"
	"strings"
)

// Inline documentation convention: the first paragraph of an implementation's
// doc block is the task description, later paragraphs are notes, and lines of
// the form ":param <name>: <text>" (continued by attached non-blank lines)
// carry per-field descriptions. Paragraphs of the form "[^label]: <text>"
// declare footnotes. The text is parsed, never executed.

var (
	docParamPattern    = regexp.MustCompile(`^\s*:param\s+(\w+)\s*:\s*(.*)\s*$`)
	docFootnotePattern = regexp.MustCompile(`^\[\^(\w+)\]:\s*(.*)$`)
)

type parsedDoc struct {
	description string
	notes       []string
	footnotes   map[string]string
	params      map[string]string
}

func parseDoc(doc string) parsedDoc {
	parsed := parsedDoc{
		footnotes: make(map[string]string),
		params:    make(map[string]string),
	}

	// First pass: pull out :param lines with their continuations; keep
	// everything else for paragraph splitting.
	var bodyLines []string
	currentParam := ""
	for _, line := range strings.Split(doc, "\n") {
		if match := docParamPattern.FindStringSubmatch(line); match != nil {
			currentParam = match[1]
			parsed.params[currentParam] = match[2]
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			currentParam = ""
			bodyLines = append(bodyLines, line)
			continue
		}
		if currentParam != "" {
			parsed.params[currentParam] += " " + trimmed
			continue
		}
		bodyLines = append(bodyLines, line)
	}

	// Second pass: split body into paragraphs; footnote declarations are
	// extracted, the first remaining paragraph is the description, the rest
	// become notes.
	var paragraphs []string
	newParagraph := true
	for _, line := range bodyLines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			newParagraph = true
			continue
		}
		if newParagraph {
			paragraphs = append(paragraphs, trimmed)
			newParagraph = false
		} else {
			paragraphs[len(paragraphs)-1] += " " + trimmed
		}
	}
	for _, paragraph := range paragraphs {
		if match := docFootnotePattern.FindStringSubmatch(paragraph); match != nil {
			parsed.footnotes[match[1]] = match[2]
			continue
		}
		if parsed.description == "" {
			parsed.description = paragraph
		} else {
			parsed.notes = append(parsed.notes, paragraph)
		}
	}
	return parsed
}
