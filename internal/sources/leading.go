package sources

import (
	"strings"
)

// AttachLeadingComments rewrites dotenv text so that a comment line placed
// directly above an assignment becomes that assignment's inline comment.
//
// The comment must sit on the line immediately before the assignment; a blank
// line breaks the association. A leading comment replaces any inline comment
// already present. Only the closest comment line is used. Comment lines
// themselves are kept, so the result parses to the same set of keys.
//
// This is a pre-pass: ParseLine stays single-line and stateless.
func AttachLeadingComments(input string) string {
	lines := splitLines(input)
	if len(lines) == 0 {
		return input
	}

	out := make([]string, len(lines))
	var pending string
	havePending := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, commentMarker) {
			out[i] = line
			pending = strings.TrimSpace(strings.TrimPrefix(trimmed, commentMarker))
			havePending = pending != ""
			continue
		}

		if havePending && IsAssignment(trimmed) {
			content, _, _ := strings.Cut(trimmed, commentMarker)
			out[i] = strings.TrimSpace(content) + " " + commentMarker + " " + pending
		} else {
			out[i] = line
		}
		havePending = false
	}

	return strings.Join(out, "\n")
}
