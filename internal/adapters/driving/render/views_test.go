package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/pipeline"
)

func TestNewPage(t *testing.T) {
	var records []domain.Record
	for _, id := range []string{"BHAR-00001", "BHAR-00002"} {
		rec, err := domain.NewRecord(map[string]any{"ApplicationId": id, "Company Name": "Co " + id})
		require.NoError(t, err)
		records = append(records, rec)
	}
	state := domain.NewViewState(domain.ViewModeList)
	page := pipeline.Paginate(records, domain.DefaultPageSize, 1)

	out := NewPage(domain.CollectionShortlisted, state, page, map[string]int{"BHAR-00002": 3})

	assert.Equal(t, domain.CollectionShortlisted, out.Collection)
	assert.Equal(t, 1, out.Number)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, "Showing 1–2 of 2", out.Label)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "BHAR-00001", out.Items[0].ApplicationID)
	assert.Zero(t, out.Items[0].Comments)
	assert.Equal(t, 3, out.Items[1].Comments)
}

func TestNewPage_Empty(t *testing.T) {
	page := pipeline.Paginate(nil, domain.DefaultPageSize, 1)

	out := NewPage(domain.CollectionAll, domain.NewViewState(""), page, nil)

	assert.True(t, out.Empty)
	assert.Equal(t, domain.EmptyMessage, out.Label)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}

func TestNewDetail(t *testing.T) {
	s := domain.Summary{
		ApplicationID: "BHAR-00001",
		Documents:     []domain.DocumentRef{{Label: "Website", URL: "https://example.com"}},
	}

	locked := NewDetail(domain.CollectionShortlisted, s, nil, false)
	assert.True(t, locked.DocumentsLocked)
	assert.Empty(t, locked.Application.Documents)
	assert.NotNil(t, locked.Comments)

	open := NewDetail(domain.CollectionShortlisted, s, nil, true)
	assert.False(t, open.DocumentsLocked)
	assert.Len(t, open.Application.Documents, 1)
}
