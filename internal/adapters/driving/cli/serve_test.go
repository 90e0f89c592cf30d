package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/appreview/internal/core/domain"
)

func stubRunServer(t *testing.T) *string {
	t.Helper()
	var addr string
	original := runServer
	runServer = func(_ *cobra.Command, s *httpapi.Server) error {
		addr = s.Addr()
		return nil
	}
	t.Cleanup(func() { runServer = original })
	return &addr
}

func TestServe_AddrFromSettings(t *testing.T) {
	setupTestServices(t)
	addr := stubRunServer(t)

	_, _, err := run(t, "", "serve")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultServerAddr, *addr)
}

func TestServe_AddrFlag(t *testing.T) {
	setupTestServices(t)
	addr := stubRunServer(t)

	_, _, err := run(t, "", "serve", "--addr", "0.0.0.0:9000")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", *addr)
}

func TestServe_MissingServices(t *testing.T) {
	SetServices(nil)
	stubRunServer(t)

	_, _, err := run(t, "", "serve")
	require.ErrorIs(t, err, httpapi.ErrMissingCatalogService)
}
