package driven

import (
	"context"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// CommentStore persists reviewer comments.
// Comments are append-only: there is no update or delete.
type CommentStore interface {
	// Append persists one comment.
	Append(ctx context.Context, comment domain.Comment) error

	// List returns the comments of an application in insertion order.
	// Unknown applications return an empty slice.
	List(ctx context.Context, applicationID string) ([]domain.Comment, error)

	// All returns every stored comment keyed by ApplicationId.
	All(ctx context.Context) (domain.CommentsByApplication, error)
}
