package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-labs/strand/errors"
)

func TestParseValuesEmpty(t *testing.T) {
	criteria, err := ParseValues(url.Values{})
	require.NoError(t, err)
	assert.True(t, criteria.IsEmpty())
}

func TestParseValuesAllFields(t *testing.T) {
	values := url.Values{}
	values.Set("is_palindrome", "true")
	values.Set("min_length", "3")
	values.Set("max_length", "10")
	values.Set("word_count", "1")
	values.Set("contains_character", "z")

	criteria, err := ParseValues(values)
	require.NoError(t, err)

	require.NotNil(t, criteria.IsPalindrome)
	assert.True(t, *criteria.IsPalindrome)
	require.NotNil(t, criteria.MinLength)
	assert.Equal(t, 3, *criteria.MinLength)
	require.NotNil(t, criteria.MaxLength)
	assert.Equal(t, 10, *criteria.MaxLength)
	require.NotNil(t, criteria.WordCount)
	assert.Equal(t, 1, *criteria.WordCount)
	require.NotNil(t, criteria.ContainsCharacter)
	assert.Equal(t, "z", *criteria.ContainsCharacter)
}

func TestParseValuesFalseBoolean(t *testing.T) {
	values := url.Values{}
	values.Set("is_palindrome", "false")

	criteria, err := ParseValues(values)
	require.NoError(t, err)
	require.NotNil(t, criteria.IsPalindrome)
	assert.False(t, *criteria.IsPalindrome)
}

func TestParseValuesMalformedFieldsNameTheField(t *testing.T) {
	tests := []struct {
		field string
		value string
	}{
		{"is_palindrome", "maybe"},
		{"min_length", "three"},
		{"max_length", "10.5"},
		{"word_count", ""},
		{"contains_character", "zz"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			if tt.value == "" {
				// An empty value means the field is absent; use an explicit
				// non-integer instead
				tt.value = "x"
			}
			values := url.Values{}
			values.Set(tt.field, tt.value)

			_, err := ParseValues(values)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidCriteriaError(err))
			assert.Contains(t, err.Error(), tt.field, "error must name the offending field")
		})
	}
}

func TestParseValuesMultiByteCharacterAccepted(t *testing.T) {
	values := url.Values{}
	values.Set("contains_character", "é")

	criteria, err := ParseValues(values)
	require.NoError(t, err)
	require.NotNil(t, criteria.ContainsCharacter)
	assert.Equal(t, "é", *criteria.ContainsCharacter)
}

func TestParseValuesConflictingBounds(t *testing.T) {
	values := url.Values{}
	values.Set("min_length", "20")
	values.Set("max_length", "5")

	_, err := ParseValues(values)
	require.Error(t, err)
	assert.True(t, errors.IsConflictingFiltersError(err))
	assert.False(t, errors.IsInvalidCriteriaError(err))
}

func TestParseValuesIgnoresUnknownParams(t *testing.T) {
	values := url.Values{}
	values.Set("sort", "asc")
	values.Set("min_length", "2")

	criteria, err := ParseValues(values)
	require.NoError(t, err)
	require.NotNil(t, criteria.MinLength)
	assert.Equal(t, 2, *criteria.MinLength)
}
