package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/adapters/driving/mcp"
)

func TestMCPCmd(t *testing.T) {
	serve, _, err := rootCmd.Find([]string{"mcp", "serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())

	port := serve.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)
}

func TestMCPServe_MissingServices(t *testing.T) {
	SetServices(nil)

	_, _, err := run(t, "", "mcp", "serve")
	require.ErrorIs(t, err, mcp.ErrMissingCatalogService)
}
