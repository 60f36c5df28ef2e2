package models

// WordEntry is one vocabulary word from the static catalog. Words are
// identified by their position in the catalog array; the catalog length is
// fixed per build.
type WordEntry struct {
	Word       string   `json:"word"`
	POS        string   `json:"pos"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
	Etymology  string   `json:"etymology,omitempty"`
	Related    []string `json:"related,omitempty"`
	Category   string   `json:"category,omitempty"`
	Difficulty int      `json:"difficulty,omitempty"`
}
