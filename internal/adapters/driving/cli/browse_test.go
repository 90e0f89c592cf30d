package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
	"github.com/custodia-labs/appreview/internal/logger"
)

func TestBrowse_Table(t *testing.T) {
	svc := setupTestServices(t)
	_, err := svc.comments.Add(context.Background(), "BHAR-00002", "call back")
	require.NoError(t, err)

	out, _, err := run(t, "", "browse")
	require.NoError(t, err)

	assert.Contains(t, out, "Shortlisted applications")
	assert.Contains(t, out, "BHAR-00001")
	assert.Contains(t, out, "Sunleaf Agritech")
	assert.Contains(t, out, "1 comment(s)")
	assert.Contains(t, out, "Showing 1–3 of 3 · page 1 of 1")
}

func TestBrowse_JSON(t *testing.T) {
	setupTestServices(t)

	out, _, err := run(t, "", "browse", "--sort", "most-funded", "--json")
	require.NoError(t, err)

	var page render.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Items, 3)
	assert.Equal(t, "BHAR-00002", page.Items[0].ApplicationID)
	assert.Equal(t, "BHAR-00001", page.Items[1].ApplicationID)
	assert.Equal(t, domain.SortMostFunded, page.State.Sort)
}

func TestBrowse_SearchAndFacets(t *testing.T) {
	setupTestServices(t)

	out, _, err := run(t, "", "browse", "-q", "pulse")
	require.NoError(t, err)
	assert.Contains(t, out, "BHAR-00002")
	assert.NotContains(t, out, "BHAR-00001")

	out, _, err = run(t, "", "browse", "--segment", "Agri", "--sort", "alphabetical")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 1–2 of 2")
	assert.Less(t, strings.Index(out, "Aqua Grid"), strings.Index(out, "Sunleaf Agritech"))
}

func TestBrowse_Empty(t *testing.T) {
	setupTestServices(t)

	out, _, err := run(t, "", "browse", "-q", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, domain.EmptyMessage)
}

func TestBrowse_Errors(t *testing.T) {
	setupTestServices(t)

	_, _, err := run(t, "", "browse", "--sort", "newest")
	require.ErrorIs(t, err, domain.ErrUnknownSortKey)

	_, _, err = run(t, "", "browse", "--page", "4")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "page 4 is out of range (1-1)")
}

func TestBrowse_AllCollection(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		setupTestServices(t)
		_, _, err := run(t, "", "browse", "--all", "--password", "nope")
		require.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("password flag", func(t *testing.T) {
		setupTestServices(t)
		out, _, err := run(t, "", "browse", "--all", "--password", domain.DefaultExtendedPassword)
		require.NoError(t, err)
		assert.Contains(t, out, "All applications")
		assert.Contains(t, out, "ALL-00002")
	})

	t.Run("prompted password", func(t *testing.T) {
		svc := setupTestServices(t)
		out, stderr, err := run(t, domain.DefaultExtendedPassword+"\n", "browse", "--all")
		require.NoError(t, err)
		assert.Contains(t, stderr, domain.GateExtended.Prompt())
		assert.Contains(t, out, "ALL-00001")
		assert.True(t, svc.access.IsUnlocked(domain.GateExtended))
	})
}

func TestBrowse_LoadFailure(t *testing.T) {
	svc := setupTestServices(t)
	svc.source.Fail(domain.CollectionShortlisted, assert.AnError)

	_, _, err := run(t, "", "browse")
	require.ErrorIs(t, err, domain.ErrDatasetUnavailable)
	assert.Contains(t, err.Error(), "loading Shortlisted applications")
}

func TestBrowse_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, _, err := run(t, "", "browse")
	require.ErrorIs(t, err, errNotConfigured)
}

func TestPagerLine(t *testing.T) {
	buttons := []domain.PageButton{
		{Number: 1, Current: true},
		{Number: 2},
		{Ellipsis: true},
		{Number: 9},
	}
	want := buttons[0].String() + " " + buttons[1].String() + " " + buttons[2].String() + " " + buttons[3].String()
	assert.Equal(t, want, pagerLine(buttons))
	assert.Empty(t, pagerLine(nil))
}

type failingCounts struct {
	driving.CommentService
}

func (failingCounts) Counts(context.Context) (map[string]int, error) {
	return nil, errors.New("store offline")
}

func TestBrowse_CommentCountsErrorLogged(t *testing.T) {
	svc := setupTestServices(t)
	commentService = failingCounts{CommentService: svc.comments}

	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	out, _, err := run(t, "", "--verbose", "browse")
	require.NoError(t, err)
	assert.Contains(t, out, "Sunleaf Agritech")
	assert.NotContains(t, out, "comment(s)")
	assert.Contains(t, logs.String(), "[WARN] browse: comment counts: store offline")
}
