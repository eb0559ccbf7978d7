package services

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultRankLimit is the number of terms returned when the caller does not
// ask for a specific limit.
const DefaultRankLimit = 50

// TermCount is one ranked corpus term with its frequency.
type TermCount struct {
	Term  string `json:"text"`
	Count int    `json:"size"`
}

// TextAnalyzer provides term-frequency ranking over a free-text corpus.
// It is stateless per call and deterministic for a given corpus and
// stop-word set.
type TextAnalyzer struct {
	stopWords map[string]bool
}

// NewTextAnalyzer creates a text analyzer with the fixed English stop-word set.
func NewTextAnalyzer() *TextAnalyzer {
	return &TextAnalyzer{stopWords: defaultStopWords()}
}

// Rank lower-cases, strips punctuation and tokenizes the corpus, discards
// tokens of length <= 2 and stop words, counts frequencies and returns the
// top limit terms by descending frequency. Ties keep first-occurrence order.
func (ta *TextAnalyzer) Rank(corpus string, limit int) []TermCount {
	if limit <= 0 {
		limit = DefaultRankLimit
	}

	counts := make(map[string]int)
	ordered := make([]string, 0)

	for _, token := range ta.tokenize(corpus) {
		if len(token) <= 2 || ta.stopWords[token] {
			continue
		}
		if _, seen := counts[token]; !seen {
			ordered = append(ordered, token)
		}
		counts[token]++
	}

	ranked := make([]TermCount, 0, len(ordered))
	for _, term := range ordered {
		ranked = append(ranked, TermCount{Term: term, Count: counts[term]})
	}

	// Stable sort preserves first-occurrence order between equal counts.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// tokenize lower-cases the text, removes punctuation and splits on
// whitespace. Word characters are letters, digits and underscore.
func (ta *TextAnalyzer) tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, text)

	return strings.Fields(cleaned)
}

// defaultStopWords returns the fixed set of common English stop words
// excluded from ranking.
func defaultStopWords() map[string]bool {
	words := []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "up", "about", "into", "over", "after",
		"is", "are", "was", "were", "be", "been", "being", "have", "has",
		"had", "do", "does", "did", "will", "would", "shall", "should",
		"can", "could", "may", "might", "must", "ought", "i", "you", "he",
		"she", "it", "we", "they", "them", "their", "this", "that", "these",
		"those", "am",
	}

	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
