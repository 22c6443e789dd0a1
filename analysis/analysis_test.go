package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintDeterministic(t *testing.T) {
	inputs := []string{"", "racecar", "hello world", "héllo", "a b  c"}

	for _, input := range inputs {
		first := Fingerprint(input)
		second := Fingerprint(input)
		assert.Equal(t, first, second, "fingerprint of %q must be stable", input)
		assert.Len(t, first, 64, "SHA-256 hex digest is 64 characters")
	}
}

func TestFingerprintDistinguishesValues(t *testing.T) {
	assert.NotEqual(t, Fingerprint("racecar"), Fingerprint("racecars"))
	assert.NotEqual(t, Fingerprint("a"), Fingerprint("A"))
	assert.NotEqual(t, Fingerprint(""), Fingerprint(" "))
}

func TestFingerprintKnownValue(t *testing.T) {
	// SHA-256 of the empty string is a published constant
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Fingerprint(""))
}

func TestAnalyzeRacecar(t *testing.T) {
	props := Analyze("racecar")

	assert.Equal(t, 7, props.Length)
	assert.True(t, props.IsPalindrome)
	assert.Equal(t, 4, props.UniqueCharacters)
	assert.Equal(t, 1, props.WordCount)
	assert.Equal(t, Fingerprint("racecar"), props.Fingerprint)
	assert.Equal(t, map[string]int{"r": 2, "a": 2, "c": 2, "e": 1}, props.CharacterFrequency)
}

func TestAnalyzeEmpty(t *testing.T) {
	props := Analyze("")

	assert.Equal(t, 0, props.Length)
	assert.True(t, props.IsPalindrome, "empty reversed equals empty")
	assert.Equal(t, 0, props.UniqueCharacters)
	assert.Equal(t, 0, props.WordCount)
	assert.Empty(t, props.CharacterFrequency)
}

func TestAnalyzePalindromeCaseInsensitive(t *testing.T) {
	assert.True(t, Analyze("RaceCar").IsPalindrome)
	assert.True(t, Analyze("Aba").IsPalindrome)
	assert.False(t, Analyze("hello").IsPalindrome)
}

func TestAnalyzePalindromeCountsEveryCharacter(t *testing.T) {
	// Spaces and punctuation are not stripped, so classic phrase palindromes
	// do not qualify
	assert.False(t, Analyze("never odd or even").IsPalindrome)
	assert.True(t, Analyze("a b a").IsPalindrome)
}

func TestAnalyzeWordCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{"\t\n ", 0},
		{"one", 1},
		{"  one  ", 1},
		{"two words", 2},
		{"many   runs\tof\nwhitespace here", 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.input).WordCount)
		})
	}
}

func TestAnalyzeFrequencyIncludesWhitespaceAndPunctuation(t *testing.T) {
	props := Analyze("a a!")

	assert.Equal(t, map[string]int{"a": 2, " ": 1, "!": 1}, props.CharacterFrequency)
	assert.Equal(t, 3, props.UniqueCharacters)
	assert.Equal(t, 4, props.Length)
}

func TestAnalyzeFrequencyPreservesCase(t *testing.T) {
	// The frequency map is built from the original string, not the
	// lower-cased copy used for the palindrome check
	props := Analyze("AaA")

	assert.Equal(t, map[string]int{"A": 2, "a": 1}, props.CharacterFrequency)
	assert.True(t, props.IsPalindrome)
}

func TestAnalyzeMultiByteRunes(t *testing.T) {
	props := Analyze("héllo")

	assert.Equal(t, 5, props.Length, "length counts runes, not bytes")
	assert.Equal(t, 1, props.CharacterFrequency["é"])
	assert.Equal(t, 2, props.CharacterFrequency["l"])
	require.Equal(t, 4, props.UniqueCharacters)
}
