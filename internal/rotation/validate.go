package rotation

import (
	"regexp"
	"strings"
)

// ContainsWholeWord reports whether word appears in text as a whole word,
// case-insensitively. Empty or whitespace-only text never matches.
func ContainsWholeWord(text, word string) bool {
	if strings.TrimSpace(text) == "" || word == "" {
		return false
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}
