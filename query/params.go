package query

import (
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/calder-labs/strand/errors"
)

// Structured query parameter names
const (
	ParamIsPalindrome      = "is_palindrome"
	ParamMinLength         = "min_length"
	ParamMaxLength         = "max_length"
	ParamWordCount         = "word_count"
	ParamContainsCharacter = "contains_character"
)

// ParseValues builds criteria from structured query parameters. Each field is
// independently type-checked: boolean token, integer token, or
// single-character token. A malformed field fails with ErrInvalidCriteria
// naming the offending field; unrecognized parameters are ignored.
func ParseValues(values url.Values) (Criteria, error) {
	var criteria Criteria

	if raw := values.Get(ParamIsPalindrome); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Criteria{}, errors.NewInvalidCriteriaError(ParamIsPalindrome, "%q is not a boolean", raw)
		}
		criteria.IsPalindrome = boolPtr(b)
	}

	for _, field := range []struct {
		name string
		dest **int
	}{
		{ParamMinLength, &criteria.MinLength},
		{ParamMaxLength, &criteria.MaxLength},
		{ParamWordCount, &criteria.WordCount},
	} {
		raw := values.Get(field.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Criteria{}, errors.NewInvalidCriteriaError(field.name, "%q is not an integer", raw)
		}
		*field.dest = intPtr(n)
	}

	if raw := values.Get(ParamContainsCharacter); raw != "" {
		if utf8.RuneCountInString(raw) != 1 {
			return Criteria{}, errors.NewInvalidCriteriaError(ParamContainsCharacter, "%q is not a single character", raw)
		}
		criteria.ContainsCharacter = strPtr(raw)
	}

	if err := criteria.Validate(); err != nil {
		return Criteria{}, err
	}

	return criteria, nil
}
