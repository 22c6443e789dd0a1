// Package query turns structured parameters or a constrained natural-language
// phrase into filter criteria, and evaluates those criteria against analyzed
// record properties.
package query

import (
	"strings"

	"github.com/calder-labs/strand/analysis"
	"github.com/calder-labs/strand/errors"
)

// Criteria expresses optional query constraints over analyzed properties.
// A nil field means no constraint on that axis. Criteria are transient and
// never persisted.
type Criteria struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// IsEmpty reports whether no constraint is set
func (c Criteria) IsEmpty() bool {
	return c.IsPalindrome == nil &&
		c.MinLength == nil &&
		c.MaxLength == nil &&
		c.WordCount == nil &&
		c.ContainsCharacter == nil
}

// Validate enforces the min_length <= max_length invariant. Violations are a
// distinct error condition, never silently ignored.
func (c Criteria) Validate() error {
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return errors.Wrapf(errors.ErrConflictingFilters,
			"min_length %d exceeds max_length %d", *c.MinLength, *c.MaxLength)
	}
	return nil
}

// Matches evaluates the criteria against a record's analyzed properties and
// raw value. Semantics are conjunctive: every set field must hold. Empty
// criteria match every record.
func (c Criteria) Matches(props analysis.Properties, value string) bool {
	if c.IsPalindrome != nil && props.IsPalindrome != *c.IsPalindrome {
		return false
	}
	if c.MinLength != nil && props.Length < *c.MinLength {
		return false
	}
	if c.MaxLength != nil && props.Length > *c.MaxLength {
		return false
	}
	if c.WordCount != nil && props.WordCount != *c.WordCount {
		return false
	}
	// Substring check against the raw value, not the frequency map
	if c.ContainsCharacter != nil && !strings.Contains(value, *c.ContainsCharacter) {
		return false
	}
	return true
}

func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
