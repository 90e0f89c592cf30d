package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/services"
)

type fixture struct {
	server   *Server
	source   *memory.DatasetSource
	catalog  *services.CatalogService
	comments *services.CommentService
	access   *services.AccessService
}

func setup(t *testing.T) *fixture {
	t.Helper()

	src := memory.NewDatasetSource()
	src.Put(domain.CollectionShortlisted,
		map[string]any{
			"ApplicationId":                     "BHAR-00001",
			"Company Name":                      "Sunleaf Agritech",
			"Applicant Name":                    "Asha Rao",
			"Segment":                           "Agri",
			"Total Funding Raised":              500,
			"Presentation Deck (Max 15 slides)": "https://example.com/deck.pdf",
		},
		map[string]any{
			"ApplicationId":        "BHAR-00002",
			"Company Name":         "Pulse Labs",
			"Segment":              "Health",
			"Total Funding Raised": 100,
		},
	)
	src.Put(domain.CollectionAll,
		map[string]any{"ApplicationId": "ALL-00001", "Company Name": "Hidden Works"},
	)

	settings := services.NewSettingsService(memory.NewConfigStore())
	catalog := services.NewCatalogService(src)
	comments := services.NewCommentService(memory.NewCommentStore(), settings)
	access := services.NewAccessService(settings)

	server, err := NewServer(&Ports{Catalog: catalog, Comment: comments, Access: access})
	require.NoError(t, err)

	return &fixture{server: server, source: src, catalog: catalog, comments: comments, access: access}
}

// makeReadResourceRequest builds a ReadResourceRequest for uri.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func addComment(t *testing.T, f *fixture, id, text string) {
	t.Helper()
	_, err := f.comments.Add(context.Background(), id, text)
	require.NoError(t, err)
}
