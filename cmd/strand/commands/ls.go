package commands

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calder-labs/strand/display"
	"github.com/calder-labs/strand/query"
	"github.com/calder-labs/strand/store"
)

// LsCmd lists stored strings, filtered by structured flags or by a free-text
// phrase given as positional arguments
var LsCmd = &cobra.Command{
	Use:   "ls [phrase...]",
	Short: "List stored strings, filtered by flags or a phrase",
	Long: `List stored strings. Filters can be given as structured flags or as a
plain-English phrase; the two forms cannot be mixed.

Phrases are interpreted against a small fixed pattern set: palindromes,
"single word", "longer than N", "shorter than N", "length N", "containing
the letter X", and "first vowel".

Examples:
  strand ls
  strand ls --palindrome --min-length 5
  strand ls all palindromes longer than 3
  strand ls single word strings containing the letter e`,
	RunE: runLs,
}

var (
	lsPalindrome bool
	lsMinLength  int
	lsMaxLength  int
	lsWordCount  int
	lsContains   string
)

func init() {
	LsCmd.Flags().BoolVar(&lsPalindrome, "palindrome", false, "Only palindromes (use --palindrome=false for non-palindromes)")
	LsCmd.Flags().IntVar(&lsMinLength, "min-length", 0, "Minimum length in characters")
	LsCmd.Flags().IntVar(&lsMaxLength, "max-length", 0, "Maximum length in characters")
	LsCmd.Flags().IntVar(&lsWordCount, "word-count", 0, "Exact word count")
	LsCmd.Flags().StringVar(&lsContains, "contains", "", "Single character the string must contain")
}

func runLs(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()

	var (
		records  []store.Record
		criteria query.Criteria
	)

	if len(args) > 0 {
		phrase := strings.Join(args, " ")
		records, criteria, err = svc.Query(ctx, phrase)
	} else {
		criteria, err = criteriaFromFlags(cmd)
		if err == nil {
			records, err = svc.List(ctx, criteria)
		}
	}
	if err != nil {
		display.RenderError(err)
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(map[string]interface{}{
			"records":  records,
			"count":    len(records),
			"criteria": criteria,
		})
	}

	display.RenderCriteria(criteria)
	display.RenderRecords(records)
	return nil
}

// criteriaFromFlags funnels the flag values through the same parser the HTTP
// query parameters use, so validation and error wording stay identical
func criteriaFromFlags(cmd *cobra.Command) (query.Criteria, error) {
	values := url.Values{}
	if cmd.Flags().Changed("palindrome") {
		values.Set("is_palindrome", strconv.FormatBool(lsPalindrome))
	}
	if cmd.Flags().Changed("min-length") {
		values.Set("min_length", strconv.Itoa(lsMinLength))
	}
	if cmd.Flags().Changed("max-length") {
		values.Set("max_length", strconv.Itoa(lsMaxLength))
	}
	if cmd.Flags().Changed("word-count") {
		values.Set("word_count", strconv.Itoa(lsWordCount))
	}
	if cmd.Flags().Changed("contains") {
		values.Set("contains_character", lsContains)
	}
	return query.ParseValues(values)
}
