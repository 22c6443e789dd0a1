// Package analysis computes derived properties of a string value.
//
// All functions are pure: same input, same output, no side effects. The
// fingerprint doubles as record identity and idempotency key, so it must be
// stable across releases.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Properties holds the analyzed properties of a string value. Computed once
// at record creation and immutable afterwards.
type Properties struct {
	Length             int            `json:"length"`
	IsPalindrome       bool           `json:"is_palindrome"`
	UniqueCharacters   int            `json:"unique_characters"`
	WordCount          int            `json:"word_count"`
	Fingerprint        string         `json:"fingerprint"`
	CharacterFrequency map[string]int `json:"character_frequency"`
}

// Fingerprint returns the SHA-256 hex digest of the exact byte content of text.
// Deterministic; used both to name new records and to resolve lookups and
// deletes by raw value.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Analyze computes the full property set for text.
//
// Characters are counted at rune granularity with no Unicode normalization or
// grapheme-cluster awareness. Multi-rune grapheme clusters are therefore
// counted per rune; this is a known limitation kept for compatibility with
// previously stored properties.
func Analyze(text string) Properties {
	runes := []rune(text)

	// Frequency over the original string, not the lower-cased one. Every
	// character counts, including whitespace and punctuation.
	frequency := make(map[string]int, len(runes))
	for _, r := range runes {
		frequency[string(r)]++
	}

	return Properties{
		Length:             len(runes),
		IsPalindrome:       isPalindrome(text),
		UniqueCharacters:   len(frequency),
		WordCount:          countWords(text),
		Fingerprint:        Fingerprint(text),
		CharacterFrequency: frequency,
	}
}

// isPalindrome reports whether text lower-cased equals its own reverse under
// simple character-by-character reversal. The empty string is a palindrome.
func isPalindrome(text string) bool {
	lowered := []rune(strings.ToLower(text))
	for i, j := 0, len(lowered)-1; i < j; i, j = i+1, j-1 {
		if lowered[i] != lowered[j] {
			return false
		}
	}
	return true
}

// countWords counts maximal non-whitespace runs; 0 for empty or
// all-whitespace input.
func countWords(text string) int {
	return len(strings.Fields(text))
}
