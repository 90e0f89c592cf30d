package driving

import (
	"context"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// CommentService manages reviewer comments on applications.
type CommentService interface {
	// Add appends a comment by the local reviewer.
	// Whitespace-only text returns domain.ErrEmptyComment.
	Add(ctx context.Context, applicationID, text string) (*domain.Comment, error)

	// List returns the comments of one application, oldest first.
	List(ctx context.Context, applicationID string) ([]domain.Comment, error)

	// Counts returns the number of comments per application.
	Counts(ctx context.Context) (map[string]int, error)
}
