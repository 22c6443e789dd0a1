package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/calder-labs/strand/errors"
)

// Recognized phrase patterns. Matching is case-insensitive (the phrase is
// lower-cased once before matching) and cumulative: every pattern is checked,
// and a later pattern writing the same axis silently overwrites the earlier
// match. Last-match-wins is deliberate; rejecting multiple length phrases as
// ambiguous was considered and not adopted.
var (
	// "palindrom" prefix covers palindrome/palindromic
	palindromePattern = regexp.MustCompile(`palindrom`)

	// "single word" / "1 word"
	singleWordPattern = regexp.MustCompile(`\b(?:single|1) word\b`)

	// "longer than N" -> min_length = N+1
	longerThanPattern = regexp.MustCompile(`\blonger than (\d+)\b`)

	// "shorter than N" -> max_length = N-1
	shorterThanPattern = regexp.MustCompile(`\bshorter than (\d+)\b`)

	// "length N" / "long N" -> exact length
	exactLengthPattern = regexp.MustCompile(`\b(?:length|long) (\d+)\b`)

	// "contain"/"contains"/"containing" [the letter] X, X a single
	// alphanumeric character
	containsPattern = regexp.MustCompile(`\bcontain(?:s|ing)?\s+(?:the letter\s+)?([a-z0-9])\b`)

	// "first vowel" -> the literal character 'a'. Not a real vowel search;
	// kept for compatibility.
	firstVowelPattern = regexp.MustCompile(`\bfirst vowel\b`)
)

// phraseSuggestions are offered as hints when a phrase matches nothing
var phraseSuggestions = []string{
	"palindromic strings",
	"single word strings",
	"strings longer than 10",
	"strings shorter than 5",
	"strings with length 7",
	"strings containing the letter z",
}

// Interpret translates a free-text phrase into filter criteria.
//
// Returns ErrUnparseable when no recognized pattern matches anything in the
// phrase, and ErrConflictingFilters when the composed criteria end up with
// min_length > max_length.
func Interpret(phrase string) (Criteria, error) {
	lowered := strings.ToLower(phrase)

	var criteria Criteria
	matched := false

	if palindromePattern.MatchString(lowered) {
		criteria.IsPalindrome = boolPtr(true)
		matched = true
	}

	if singleWordPattern.MatchString(lowered) {
		criteria.WordCount = intPtr(1)
		matched = true
	}

	if m := longerThanPattern.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			criteria.MinLength = intPtr(n + 1)
			matched = true
		}
	}

	if m := shorterThanPattern.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			criteria.MaxLength = intPtr(n - 1)
			matched = true
		}
	}

	if m := exactLengthPattern.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			criteria.MinLength = intPtr(n)
			criteria.MaxLength = intPtr(n)
			matched = true
		}
	}

	if m := containsPattern.FindStringSubmatch(lowered); m != nil {
		criteria.ContainsCharacter = strPtr(m[1])
		matched = true
	}

	if firstVowelPattern.MatchString(lowered) {
		criteria.ContainsCharacter = strPtr("a")
		matched = true
	}

	if !matched {
		return Criteria{}, errors.WithHintf(
			errors.Wrapf(errors.ErrUnparseable, "phrase %q", phrase),
			"recognized phrases include: %s", strings.Join(phraseSuggestions, "; "))
	}

	if err := criteria.Validate(); err != nil {
		return Criteria{}, err
	}

	return criteria, nil
}
