package mcp

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
	"github.com/custodia-labs/appreview/internal/logger"
)

func TestServer_handleBrowse(t *testing.T) {
	ctx := context.Background()

	t.Run("loads and lists the shortlisted collection", func(t *testing.T) {
		f := setup(t)
		addComment(t, f, "BHAR-00002", "strong team")

		_, output, err := f.server.handleBrowse(ctx, nil, BrowseInput{})
		require.NoError(t, err)

		assert.Equal(t, 2, output.Total)
		assert.Equal(t, 1, output.Page)
		require.Len(t, output.Applications, 2)
		assert.Equal(t, "BHAR-00001", output.Applications[0].ID)
		assert.Equal(t, "Sunleaf Agritech", output.Applications[0].Title)
		assert.Equal(t, 1, output.Applications[1].Comments)
	})

	t.Run("search and sort", func(t *testing.T) {
		f := setup(t)

		_, output, err := f.server.handleBrowse(ctx, nil, BrowseInput{Search: "pulse"})
		require.NoError(t, err)
		require.Len(t, output.Applications, 1)
		assert.Equal(t, "BHAR-00002", output.Applications[0].ID)

		_, output, err = f.server.handleBrowse(ctx, nil, BrowseInput{Sort: "alphabetical"})
		require.NoError(t, err)
		assert.Equal(t, "Pulse Labs", output.Applications[0].Title)
	})

	t.Run("facet filter", func(t *testing.T) {
		f := setup(t)

		_, output, err := f.server.handleBrowse(ctx, nil, BrowseInput{Segments: []string{"Health"}})
		require.NoError(t, err)
		require.Len(t, output.Applications, 1)
		assert.Equal(t, "BHAR-00002", output.Applications[0].ID)
	})

	t.Run("no matches", func(t *testing.T) {
		f := setup(t)

		_, output, err := f.server.handleBrowse(ctx, nil, BrowseInput{Search: "zzz"})
		require.NoError(t, err)
		assert.Equal(t, 0, output.Total)
		assert.Empty(t, output.Applications)
		assert.Equal(t, domain.EmptyMessage, output.Label)
	})

	t.Run("unknown sort key", func(t *testing.T) {
		f := setup(t)

		_, _, err := f.server.handleBrowse(ctx, nil, BrowseInput{Sort: "newest"})
		require.Error(t, err)
	})

	t.Run("page out of range", func(t *testing.T) {
		f := setup(t)

		_, _, err := f.server.handleBrowse(ctx, nil, BrowseInput{Page: 5})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("all collection needs the password", func(t *testing.T) {
		f := setup(t)

		_, _, err := f.server.handleBrowse(ctx, nil, BrowseInput{Collection: "all"})
		require.ErrorIs(t, err, domain.ErrAccessDenied)

		_, output, err := f.server.handleBrowse(ctx, nil, BrowseInput{
			Collection: "all",
			Password:   domain.DefaultExtendedPassword,
		})
		require.NoError(t, err)
		require.Len(t, output.Applications, 1)
		assert.Equal(t, "ALL-00001", output.Applications[0].ID)

		assert.False(t, f.access.IsUnlocked(domain.GateExtended))
	})

	t.Run("unknown collection", func(t *testing.T) {
		f := setup(t)

		_, _, err := f.server.handleBrowse(ctx, nil, BrowseInput{Collection: "archive"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("dataset failure", func(t *testing.T) {
		f := setup(t)
		f.source.Fail(domain.CollectionShortlisted, assert.AnError)

		_, _, err := f.server.handleBrowse(ctx, nil, BrowseInput{})
		require.ErrorIs(t, err, domain.ErrDatasetUnavailable)
	})
}

func TestServer_handleGet(t *testing.T) {
	ctx := context.Background()

	t.Run("documents hidden without password", func(t *testing.T) {
		f := setup(t)
		addComment(t, f, "BHAR-00001", "promising pilot")

		_, output, err := f.server.handleGet(ctx, nil, GetInput{ID: "BHAR-00001"})
		require.NoError(t, err)

		assert.Equal(t, "BHAR-00001", output.ID)
		assert.Equal(t, "Sunleaf Agritech", output.Title)
		assert.Equal(t, 1, output.Comments)
		assert.True(t, output.DocumentsLocked)
		assert.Contains(t, output.Markdown, "Sunleaf Agritech")
		assert.NotContains(t, output.Markdown, "deck.pdf")
	})

	t.Run("documents password reveals links", func(t *testing.T) {
		f := setup(t)

		_, output, err := f.server.handleGet(ctx, nil, GetInput{
			ID:                "BHAR-00001",
			DocumentsPassword: domain.DefaultDocumentsPassword,
		})
		require.NoError(t, err)
		assert.False(t, output.DocumentsLocked)
		assert.Contains(t, output.Markdown, "https://example.com/deck.pdf")
	})

	t.Run("wrong documents password keeps them hidden", func(t *testing.T) {
		f := setup(t)

		_, output, err := f.server.handleGet(ctx, nil, GetInput{ID: "BHAR-00001", DocumentsPassword: "nope"})
		require.NoError(t, err)
		assert.True(t, output.DocumentsLocked)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := setup(t)

		_, _, err := f.server.handleGet(ctx, nil, GetInput{ID: "BHAR-99999"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleComments(t *testing.T) {
	ctx := context.Background()

	t.Run("add then list", func(t *testing.T) {
		f := setup(t)

		_, added, err := f.server.handleAddComment(ctx, nil, AddCommentInput{ID: "BHAR-00002", Text: "  follow up  "})
		require.NoError(t, err)
		assert.NotEmpty(t, added.ID)
		assert.Equal(t, "follow up", added.Text)
		assert.Contains(t, added.Reviewer, domain.ReviewerLabelPrefix)
		assert.NotEmpty(t, added.CreatedAt)

		_, listed, err := f.server.handleListComments(ctx, nil, CommentsInput{ID: "BHAR-00002"})
		require.NoError(t, err)
		assert.Equal(t, 1, listed.Count)
		assert.Equal(t, added, listed.Comments[0])
	})

	t.Run("empty comment rejected", func(t *testing.T) {
		f := setup(t)

		_, _, err := f.server.handleAddComment(ctx, nil, AddCommentInput{ID: "BHAR-00002", Text: "   "})
		require.ErrorIs(t, err, domain.ErrEmptyComment)
	})

	t.Run("unknown application rejected", func(t *testing.T) {
		f := setup(t)

		_, _, err := f.server.handleAddComment(ctx, nil, AddCommentInput{ID: "BHAR-99999", Text: "hello"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no comments yet", func(t *testing.T) {
		f := setup(t)

		_, listed, err := f.server.handleListComments(ctx, nil, CommentsInput{ID: "BHAR-00001"})
		require.NoError(t, err)
		assert.Equal(t, 0, listed.Count)
		assert.Empty(t, listed.Comments)
	})
}

type countsUnavailable struct {
	driving.CommentService
}

func (countsUnavailable) Counts(context.Context) (map[string]int, error) {
	return nil, errors.New("store offline")
}

func TestServer_handleBrowse_CountsErrorLogged(t *testing.T) {
	f := setup(t)
	f.server.ports.Comment = countsUnavailable{CommentService: f.comments}

	var logs bytes.Buffer
	logger.SetOutput(&logs)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	_, output, err := f.server.handleBrowse(context.Background(), nil, BrowseInput{})
	require.NoError(t, err)
	require.Len(t, output.Applications, 2)
	assert.Zero(t, output.Applications[1].Comments)
	assert.Contains(t, logs.String(), "[WARN] mcp: comment counts: store offline")
}
