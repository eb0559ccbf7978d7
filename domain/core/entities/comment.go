package entities

// Comment is one normalized discussion record. All fields come straight from
// a single tabular row; blank columns map to empty strings rather than
// failing the row.
type Comment struct {
	ID          string `json:"id"`
	AuthorID    string `json:"authorId"`
	AuthorName  string `json:"authorName"`
	InReplyToID string `json:"inReplyToId,omitempty"`
	Text        string `json:"text"`
}

// HasAuthor reports whether the comment can create or mutate a participant
// node. A comment without author identity still contributes its text to the
// corpus.
func (c Comment) HasAuthor() bool {
	return c.AuthorID != "" && c.AuthorName != ""
}

// HasID reports whether the comment can be the target of a reply.
func (c Comment) HasID() bool {
	return c.ID != ""
}

// IsReply reports whether the comment references another comment.
func (c Comment) IsReply() bool {
	return c.InReplyToID != ""
}
