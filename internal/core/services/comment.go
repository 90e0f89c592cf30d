package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driven"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
)

// Ensure CommentService implements the interface.
var _ driving.CommentService = (*CommentService)(nil)

// CommentService appends and lists reviewer comments.
type CommentService struct {
	store    driven.CommentStore
	settings driving.SettingsService
	now      func() time.Time
}

// NewCommentService creates a new comment service.
// The settings service supplies the reviewer label; it may be nil, in which
// case comments are attributed to "Reviewer".
func NewCommentService(store driven.CommentStore, settings driving.SettingsService) *CommentService {
	return &CommentService{
		store:    store,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Add appends a comment by the local reviewer.
func (s *CommentService) Add(ctx context.Context, applicationID, text string) (*domain.Comment, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return nil, fmt.Errorf("%w: application id is required", domain.ErrInvalidInput)
	}

	body, err := domain.NormaliseCommentText(text)
	if err != nil {
		return nil, err
	}

	reviewer := strings.TrimSpace(domain.ReviewerLabelPrefix)
	if s.settings != nil {
		reviewer = s.settings.ReviewerLabel()
	}

	comment := domain.Comment{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		Text:          body,
		Reviewer:      reviewer,
		CreatedAt:     s.now(),
	}

	if err := s.store.Append(ctx, comment); err != nil {
		return nil, fmt.Errorf("append comment: %w", err)
	}

	return &comment, nil
}

// List returns the comments of one application, oldest first.
func (s *CommentService) List(ctx context.Context, applicationID string) ([]domain.Comment, error) {
	comments, err := s.store.List(ctx, strings.TrimSpace(applicationID))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

// Counts returns the number of comments per application.
func (s *CommentService) Counts(ctx context.Context) (map[string]int, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	counts := make(map[string]int, len(all))
	for id, list := range all {
		if len(list) > 0 {
			counts[id] = len(list)
		}
	}
	return counts, nil
}
