package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driven"
)

// Ensure CommentStore implements the interface.
var _ driven.CommentStore = (*CommentStore)(nil)

// CommentStore is an in-memory implementation of driven.CommentStore.
// Comments live for the process lifetime only.
type CommentStore struct {
	mu       sync.RWMutex
	comments domain.CommentsByApplication
}

// NewCommentStore creates a new in-memory comment store.
func NewCommentStore() *CommentStore {
	return &CommentStore{
		comments: make(domain.CommentsByApplication),
	}
}

// Append persists one comment.
func (s *CommentStore) Append(_ context.Context, comment domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.ApplicationID] = append(s.comments[comment.ApplicationID], comment)
	return nil
}

// List returns the comments of an application in insertion order.
func (s *CommentStore) List(_ context.Context, applicationID string) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := slices.Clone(s.comments[applicationID])
	if list == nil {
		list = []domain.Comment{}
	}
	return list, nil
}

// All returns every stored comment keyed by ApplicationId.
func (s *CommentStore) All(_ context.Context) (domain.CommentsByApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.CommentsByApplication, len(s.comments))
	for id, list := range s.comments {
		out[id] = slices.Clone(list)
	}
	return out, nil
}
