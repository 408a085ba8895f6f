// Package model defines the parsed dotenv data model shared by the source
// adapters and the import document generator.
package model

import (
	"github.com/google/uuid"
)

// Variable represents a single KEY=VALUE assignment read from a dotenv file.
// Variables are value objects: they are created once by the parser and never
// mutated afterwards.
type Variable struct {
	// Key is the variable name with surrounding whitespace removed.
	Key string

	// Value is the raw value with surrounding whitespace removed.
	// Quotes and interior whitespace are kept verbatim.
	Value string

	// Comment is the inline comment attached to the variable.
	// Nil when comment parsing is disabled or the line carried no comment.
	Comment *string

	// TempID uniquely identifies the variable for the lifetime of a single run.
	// The secret generated from this variable reuses it as its ID.
	TempID uuid.UUID
}

// NewVariable creates a Variable with a freshly generated TempID.
func NewVariable(key, value string, comment *string) Variable {
	return Variable{
		Key:     key,
		Value:   value,
		Comment: comment,
		TempID:  uuid.New(),
	}
}

// HasComment reports whether a comment is attached to the variable.
func (v Variable) HasComment() bool {
	return v.Comment != nil
}

// Note returns the attached comment, or an empty string when there is none.
func (v Variable) Note() string {
	if v.Comment == nil {
		return ""
	}
	return *v.Comment
}

// Variables is an ordered list of parsed variables, in file order.
type Variables []Variable

// Keys returns the variable keys in file order, duplicates included.
func (vs Variables) Keys() []string {
	keys := make([]string, 0, len(vs))
	for _, v := range vs {
		keys = append(keys, v.Key)
	}
	return keys
}

// Duplicates returns the keys that appear more than once, in order of their
// first repeated occurrence. Duplicates are legal; callers use this for warnings.
func (vs Variables) Duplicates() []string {
	seen := make(map[string]int, len(vs))
	var dups []string
	for _, v := range vs {
		seen[v.Key]++
		if seen[v.Key] == 2 {
			dups = append(dups, v.Key)
		}
	}
	return dups
}

// WithComments returns how many variables carry a comment.
func (vs Variables) WithComments() int {
	n := 0
	for _, v := range vs {
		if v.HasComment() {
			n++
		}
	}
	return n
}
