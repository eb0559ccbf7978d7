package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextAnalyzer_Rank_CountsAndOrders(t *testing.T) {
	// Arrange
	analyzer := NewTextAnalyzer()
	corpus := "Learning about graphs. Graphs connect ideas; ideas need graphs!"

	// Act
	ranked := analyzer.Rank(corpus, 10)

	// Assert
	require.NotEmpty(t, ranked)
	assert.Equal(t, TermCount{Term: "graphs", Count: 3}, ranked[0])
	assert.Equal(t, TermCount{Term: "ideas", Count: 2}, ranked[1])
}

func TestTextAnalyzer_Rank_TiesKeepFirstOccurrenceOrder(t *testing.T) {
	// Arrange
	analyzer := NewTextAnalyzer()
	corpus := "zebra apple zebra apple mango"

	// Act
	ranked := analyzer.Rank(corpus, 10)

	// Assert: zebra appeared first, so it wins the tie with apple
	require.Len(t, ranked, 3)
	assert.Equal(t, "zebra", ranked[0].Term)
	assert.Equal(t, "apple", ranked[1].Term)
	assert.Equal(t, "mango", ranked[2].Term)
}

func TestTextAnalyzer_Rank_FiltersStopWordsAndShortTokens(t *testing.T) {
	// Arrange
	analyzer := NewTextAnalyzer()
	corpus := "the cat is on a mat and it was ok so we sat discussing discussion"

	// Act
	ranked := analyzer.Rank(corpus, 10)

	// Assert: stop words and tokens of length <= 2 never rank
	for _, tc := range ranked {
		assert.Greater(t, len(tc.Term), 2)
		assert.NotContains(t, []string{"the", "is", "and", "it", "was"}, tc.Term)
	}
}

func TestTextAnalyzer_Rank_StripsPunctuationAndLowercases(t *testing.T) {
	analyzer := NewTextAnalyzer()

	ranked := analyzer.Rank("Hello, HELLO! (hello)", 10)

	require.Len(t, ranked, 1)
	assert.Equal(t, TermCount{Term: "hello", Count: 3}, ranked[0])
}

func TestTextAnalyzer_Rank_RespectsLimit(t *testing.T) {
	// Arrange: more distinct terms than the limit, descending frequency
	analyzer := NewTextAnalyzer()
	var sb strings.Builder
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf",
		"hotel", "india", "juliet", "kilo", "lima", "mike", "november",
	}
	for i, w := range words {
		for j := 0; j <= len(words)-i; j++ {
			sb.WriteString(w)
			sb.WriteByte(' ')
		}
	}

	// Act
	ranked := analyzer.Rank(sb.String(), 5)

	// Assert
	require.Len(t, ranked, 5)
	assert.Equal(t, "alpha", ranked[0].Term)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Count, ranked[i].Count)
	}
}

func TestTextAnalyzer_Rank_EmptyCorpus(t *testing.T) {
	analyzer := NewTextAnalyzer()

	assert.Empty(t, analyzer.Rank("", 10))
	assert.Empty(t, analyzer.Rank("   \n\t  ", 10))
}

func TestTextAnalyzer_Rank_Deterministic(t *testing.T) {
	// Arrange
	analyzer := NewTextAnalyzer()
	corpus := "network network learning learning insight insight discussion discussion"

	// Act
	first := analyzer.Rank(corpus, DefaultRankLimit)
	second := analyzer.Rank(corpus, DefaultRankLimit)

	// Assert
	assert.Equal(t, first, second)
}
