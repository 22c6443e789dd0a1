package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-labs/strand/errors"
)

func TestInterpretSingleWordPalindromes(t *testing.T) {
	criteria, err := Interpret("all single word palindromic strings")
	require.NoError(t, err)

	require.NotNil(t, criteria.WordCount)
	assert.Equal(t, 1, *criteria.WordCount)
	require.NotNil(t, criteria.IsPalindrome)
	assert.True(t, *criteria.IsPalindrome)
	assert.Nil(t, criteria.MinLength)
	assert.Nil(t, criteria.MaxLength)
	assert.Nil(t, criteria.ContainsCharacter)
}

func TestInterpretLongerThan(t *testing.T) {
	criteria, err := Interpret("strings longer than 10 characters")
	require.NoError(t, err)

	require.NotNil(t, criteria.MinLength)
	assert.Equal(t, 11, *criteria.MinLength)
	assert.Nil(t, criteria.MaxLength)
}

func TestInterpretShorterThan(t *testing.T) {
	criteria, err := Interpret("strings shorter than 5 characters")
	require.NoError(t, err)

	require.NotNil(t, criteria.MaxLength)
	assert.Equal(t, 4, *criteria.MaxLength)
	assert.Nil(t, criteria.MinLength)
}

func TestInterpretExactLength(t *testing.T) {
	for _, phrase := range []string{"length 10", "strings that are 10 long 10"} {
		criteria, err := Interpret(phrase)
		require.NoError(t, err, "phrase %q", phrase)

		require.NotNil(t, criteria.MinLength)
		require.NotNil(t, criteria.MaxLength)
		assert.Equal(t, 10, *criteria.MinLength)
		assert.Equal(t, 10, *criteria.MaxLength)
	}
}

func TestInterpretExactLengthDoesNotMatchLongerThan(t *testing.T) {
	// "longer than 10" must not also trigger the "long N" pattern
	criteria, err := Interpret("longer than 10")
	require.NoError(t, err)

	require.NotNil(t, criteria.MinLength)
	assert.Equal(t, 11, *criteria.MinLength)
	assert.Nil(t, criteria.MaxLength)
}

func TestInterpretOneWord(t *testing.T) {
	criteria, err := Interpret("1 word strings")
	require.NoError(t, err)

	require.NotNil(t, criteria.WordCount)
	assert.Equal(t, 1, *criteria.WordCount)
}

func TestInterpretContains(t *testing.T) {
	tests := []struct {
		phrase string
		want   string
	}{
		{"strings containing the letter z", "z"},
		{"strings that contain x", "x"},
		{"contains 7", "7"},
		{"Strings Containing The Letter Q", "q"},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			criteria, err := Interpret(tt.phrase)
			require.NoError(t, err)
			require.NotNil(t, criteria.ContainsCharacter)
			assert.Equal(t, tt.want, *criteria.ContainsCharacter)
		})
	}
}

func TestInterpretContainsRequiresSingleCharacter(t *testing.T) {
	// "contains apple" has no single-character token after the keyword, and
	// nothing else in the phrase matches
	_, err := Interpret("strings which contain apple")
	require.Error(t, err)
	assert.True(t, errors.IsUnparseableError(err))
}

func TestInterpretFirstVowel(t *testing.T) {
	criteria, err := Interpret("strings with the first vowel")
	require.NoError(t, err)

	// Fixed literal 'a', not a real vowel search
	require.NotNil(t, criteria.ContainsCharacter)
	assert.Equal(t, "a", *criteria.ContainsCharacter)
}

func TestInterpretCaseInsensitive(t *testing.T) {
	criteria, err := Interpret("ALL PALINDROMIC STRINGS LONGER THAN 3")
	require.NoError(t, err)

	require.NotNil(t, criteria.IsPalindrome)
	assert.True(t, *criteria.IsPalindrome)
	require.NotNil(t, criteria.MinLength)
	assert.Equal(t, 4, *criteria.MinLength)
}

func TestInterpretOverwriteSemantics(t *testing.T) {
	// "longer than 20" is applied first, then "length 10" overwrites
	// min_length. Last-match-wins, not an average or a conjunction.
	criteria, err := Interpret("longer than 20 with length 10")
	require.NoError(t, err)

	require.NotNil(t, criteria.MinLength)
	require.NotNil(t, criteria.MaxLength)
	assert.Equal(t, 10, *criteria.MinLength)
	assert.Equal(t, 10, *criteria.MaxLength)
}

func TestInterpretContainsOverwritesFirstVowelLast(t *testing.T) {
	// "first vowel" is the last pattern checked, so it wins the
	// contains_character axis
	criteria, err := Interpret("containing the letter z and the first vowel")
	require.NoError(t, err)

	require.NotNil(t, criteria.ContainsCharacter)
	assert.Equal(t, "a", *criteria.ContainsCharacter)
}

func TestInterpretConflictingFilters(t *testing.T) {
	_, err := Interpret("strings longer than 19 and shorter than 6")
	require.Error(t, err)
	assert.True(t, errors.IsConflictingFiltersError(err))
	assert.False(t, errors.IsUnparseableError(err), "conflict must stay distinct from unparseable")
}

func TestInterpretUnparseable(t *testing.T) {
	_, err := Interpret("no recognizable tokens here")
	require.Error(t, err)
	assert.True(t, errors.IsUnparseableError(err))
	assert.NotEmpty(t, errors.GetAllHints(err), "unparseable errors carry phrase suggestions")
}

func TestInterpretEmptyPhrase(t *testing.T) {
	_, err := Interpret("")
	require.Error(t, err)
	assert.True(t, errors.IsUnparseableError(err))
}
