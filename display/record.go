package display

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/calder-labs/strand/analysis"
	"github.com/calder-labs/strand/errors"
	"github.com/calder-labs/strand/query"
	"github.com/calder-labs/strand/store"
)

// RenderRecord prints a single record with its full property set
func RenderRecord(record store.Record) {
	pterm.DefaultSection.Println(truncate(record.Value, 60))
	renderProperties(record.Properties)
	pterm.Printf("  %s %s\n", pterm.Gray("created:"), record.CreatedAt.Format("2006-01-02 15:04:05 MST"))
}

// RenderProperties prints analyzed properties without a stored record context
func RenderProperties(props analysis.Properties) {
	renderProperties(props)
}

func renderProperties(props analysis.Properties) {
	pterm.Printf("  %s %s\n", pterm.Gray("fingerprint:"), props.Fingerprint)
	pterm.Printf("  %s %d\n", pterm.Gray("length:"), props.Length)
	pterm.Printf("  %s %v\n", pterm.Gray("palindrome:"), props.IsPalindrome)
	pterm.Printf("  %s %d\n", pterm.Gray("unique chars:"), props.UniqueCharacters)
	pterm.Printf("  %s %d\n", pterm.Gray("words:"), props.WordCount)
	pterm.Printf("  %s %s\n", pterm.Gray("frequency:"), formatFrequency(props.CharacterFrequency))
}

// RenderRecords prints a record table, one row per record
func RenderRecords(records []store.Record) {
	if len(records) == 0 {
		pterm.Info.Println("No matching records")
		return
	}

	rows := pterm.TableData{
		{"ID", "VALUE", "LEN", "WORDS", "PALINDROME", "CREATED"},
	}
	for _, record := range records {
		rows = append(rows, []string{
			shortID(record.ID),
			truncate(record.Value, 40),
			strconv.Itoa(record.Properties.Length),
			strconv.Itoa(record.Properties.WordCount),
			strconv.FormatBool(record.Properties.IsPalindrome),
			record.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Printf("\n%d record(s)\n", len(records))
}

// RenderCriteria prints the filters applied to a listing
func RenderCriteria(criteria query.Criteria) {
	if criteria.IsEmpty() {
		return
	}

	var parts []string
	if criteria.IsPalindrome != nil {
		parts = append(parts, fmt.Sprintf("palindrome=%v", *criteria.IsPalindrome))
	}
	if criteria.MinLength != nil {
		parts = append(parts, fmt.Sprintf("min_length=%d", *criteria.MinLength))
	}
	if criteria.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("max_length=%d", *criteria.MaxLength))
	}
	if criteria.WordCount != nil {
		parts = append(parts, fmt.Sprintf("word_count=%d", *criteria.WordCount))
	}
	if criteria.ContainsCharacter != nil {
		parts = append(parts, fmt.Sprintf("contains=%q", *criteria.ContainsCharacter))
	}
	pterm.Info.Println("Filters: " + strings.Join(parts, ", "))
}

// RenderError prints an error with any attached hints
func RenderError(err error) {
	pterm.Error.Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Printf("  %s %s\n", pterm.Gray("hint:"), hint)
	}
}

// formatFrequency renders a character frequency map in stable key order
func formatFrequency(freq map[string]int) string {
	keys := make([]string, 0, len(freq))
	for key := range freq {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", key, freq[key]))
	}
	return strings.Join(parts, " ")
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
