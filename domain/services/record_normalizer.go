package services

import (
	"strings"

	"github.com/xinran093/synthesisAI-V2/domain/core/entities"
)

// Column names as they appear in the discussion export.
const (
	ColumnAuthorID   = "Student ID"
	ColumnAuthorName = "First name"
	ColumnCommentID  = "Comment ID"
	ColumnInReplyTo  = "In response to comment ID"
	ColumnText       = "Comment text"
)

// RecordNormalizer turns one raw tabular row into a typed Comment. It is a
// pure function over the row: malformed rows never error, they degrade into
// comments with empty sentinels that are excluded from graph participation
// but still contribute their (possibly empty) text.
type RecordNormalizer struct{}

// NewRecordNormalizer creates a normalizer.
func NewRecordNormalizer() *RecordNormalizer {
	return &RecordNormalizer{}
}

// Normalize extracts the identifying fields and text from a raw row keyed by
// column name. Absent or blank columns map to empty strings.
func (n *RecordNormalizer) Normalize(row map[string]string) entities.Comment {
	return entities.Comment{
		ID:          field(row, ColumnCommentID),
		AuthorID:    field(row, ColumnAuthorID),
		AuthorName:  field(row, ColumnAuthorName),
		InReplyToID: field(row, ColumnInReplyTo),
		Text:        strings.TrimSpace(row[ColumnText]),
	}
}

func field(row map[string]string, name string) string {
	return strings.TrimSpace(row[name])
}
