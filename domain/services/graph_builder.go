package services

import (
	"strings"

	"github.com/xinran093/synthesisAI-V2/domain/core/aggregates"
	"github.com/xinran093/synthesisAI-V2/domain/core/entities"
)

// GraphBuilder derives a participant-interaction graph and a concatenated
// text corpus from an ordered sequence of comments. Build is a single pass:
// an id→author index is constructed upfront so every reply reference resolves
// in O(1) instead of re-scanning the full sequence per row.
type GraphBuilder struct{}

// NewGraphBuilder creates a builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{}
}

// Build consumes the full dataset and produces a fresh graph plus the corpus.
// A second dataset never patches a prior graph; callers replace it wholesale.
func (b *GraphBuilder) Build(comments []entities.Comment) (*aggregates.Graph, string) {
	graph := aggregates.NewGraph()

	// Reply resolution index: comment id → author id.
	idToAuthor := make(map[string]string, len(comments))
	for _, c := range comments {
		if c.HasID() {
			idToAuthor[c.ID] = c.AuthorID
		}
	}

	var corpus strings.Builder
	for _, c := range comments {
		if c.Text != "" {
			if corpus.Len() > 0 {
				corpus.WriteByte(' ')
			}
			corpus.WriteString(c.Text)
		}

		if c.HasAuthor() {
			// Errors are unreachable here: HasAuthor guarantees both fields.
			_ = graph.RecordAuthorship(c.AuthorID, c.AuthorName)
		}

		if !c.IsReply() || !c.HasAuthor() {
			continue
		}
		targetAuthor, resolved := idToAuthor[c.InReplyToID]
		if !resolved || targetAuthor == "" {
			// Unresolved reply reference: tolerated, produces no edge.
			continue
		}
		if targetAuthor == c.AuthorID {
			// Self-replies contribute to commentCount only.
			continue
		}
		_ = graph.AddInteraction(c.AuthorID, targetAuthor)
	}

	graph.PruneIsolatedPlaceholders()

	return graph, corpus.String()
}
