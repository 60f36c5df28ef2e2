package rotation

import (
	"regexp"
	"sort"
	"strings"
)

// Match is one whole-word occurrence of a vocabulary word in free text,
// as byte offsets into the text.
type Match struct {
	WordIndex int    `json:"word_index"`
	Word      string `json:"word"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
}

// FindMatches scans free text for whole-word, case-insensitive occurrences
// of the given vocabulary words (catalog index → word text). Matches are
// ordered by position. The side-effecting highlight/detection surface sits on
// top of this.
func FindMatches(text string, vocabulary map[int]string) []Match {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var matches []Match
	for idx, word := range vocabulary {
		if word == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matches = append(matches, Match{
				WordIndex: idx,
				Word:      word,
				Start:     loc[0],
				End:       loc[1],
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].WordIndex < matches[j].WordIndex
	})
	return matches
}
