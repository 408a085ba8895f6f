package sources

import (
	"strings"

	"github.com/nvinuesa/envporter/internal/model"
)

// Dotenv syntax markers.
const (
	commentMarker    = "#"
	assignmentMarker = "="
)

// ParseLine parses a single dotenv line.
// It returns false for blank lines, whole-line comments and lines without an
// assignment. No quoting or escaping is honored: everything after the first
// '#' is the comment, and the content is split on the first '='.
// The comment is only kept when parseComments is true.
func ParseLine(line string, parseComments bool) (model.Variable, bool) {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
		return model.Variable{}, false
	}

	content, comment, hasComment := strings.Cut(trimmed, commentMarker)
	content = strings.TrimSpace(content)

	key, value, ok := strings.Cut(content, assignmentMarker)
	if !ok {
		return model.Variable{}, false
	}

	var note *string
	if parseComments && hasComment {
		c := strings.TrimSpace(comment)
		note = &c
	}

	return model.NewVariable(strings.TrimSpace(key), strings.TrimSpace(value), note), true
}

// Parse parses dotenv text into variables, preserving line order.
// Lines that are not assignments are dropped silently.
func Parse(input string, parseComments bool) model.Variables {
	lines := splitLines(input)
	vars := make(model.Variables, 0, len(lines))

	for _, line := range lines {
		if v, ok := ParseLine(line, parseComments); ok {
			vars = append(vars, v)
		}
	}

	return vars
}

// IsAssignment reports whether a line would produce a variable.
func IsAssignment(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
		return false
	}
	content, _, _ := strings.Cut(trimmed, commentMarker)
	return strings.Contains(content, assignmentMarker)
}

// splitLines splits on '\n'. A trailing '\r' is left in place; the per-line
// trim removes it.
func splitLines(input string) []string {
	if input == "" {
		return nil
	}
	return strings.Split(input, "\n")
}
