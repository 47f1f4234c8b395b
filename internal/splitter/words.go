package splitter

import "strings"

// CountWords counts whitespace-separated words. Markdown punctuation counts
// as part of its word; exact prose length is not required for slide budgets.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
