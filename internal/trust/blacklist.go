package trust

import "strings"

// BlacklistFilter detects prohibited-substance and scam-pattern text. A
// match is a terminal classification: the caller zeroes the entire result
// and no later adjustment (including brand floors) can override it.
type BlacklistFilter struct {
	keywords []string
}

// NewBlacklistFilter creates a filter over the given keyword list.
func NewBlacklistFilter(keywords []string) *BlacklistFilter {
	return &BlacklistFilter{keywords: lowered(keywords)}
}

// Match reports the first blacklisted keyword found in text, case-insensitively.
func (f *BlacklistFilter) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range f.keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
