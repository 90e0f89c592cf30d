package domain

import (
	"strings"
	"time"
)

// Comment is one reviewer note attached to an application.
// Comments are append-only and never edited or deleted.
type Comment struct {
	// ID is the unique identifier for the comment.
	ID string `json:"id"`

	// ApplicationID links the comment to its record.
	ApplicationID string `json:"applicationId"`

	// Text is the comment body, trimmed and never empty.
	Text string `json:"text"`

	// Reviewer is the generated label of the author.
	Reviewer string `json:"reviewer"`

	// CreatedAt is when the comment was added.
	CreatedAt time.Time `json:"timestamp"`
}

// NormaliseCommentText trims text and rejects it when nothing is left.
func NormaliseCommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyComment
	}
	return text, nil
}

// CommentsByApplication is the persisted mapping of ApplicationId to its
// comments in insertion order.
type CommentsByApplication map[string][]Comment
