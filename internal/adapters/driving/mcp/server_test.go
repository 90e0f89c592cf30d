package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/appreview/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("missing catalog returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCatalogService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		f := setup(t)
		assert.NotNil(t, f.server)
		assert.NotNil(t, f.server.renderer)
	})
}

func TestPorts_Validate(t *testing.T) {
	settings := services.NewSettingsService(memory.NewConfigStore())
	catalog := services.NewCatalogService(memory.NewDatasetSource())
	comments := services.NewCommentService(memory.NewCommentStore(), settings)

	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{name: "empty", ports: &Ports{}, want: ErrMissingCatalogService},
		{name: "catalog only", ports: &Ports{Catalog: catalog}, want: ErrMissingCommentService},
		{name: "catalog and comments", ports: &Ports{Catalog: catalog, Comment: comments}},
		{
			name:  "all ports",
			ports: &Ports{Catalog: catalog, Comment: comments, Access: services.NewAccessService(settings)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
