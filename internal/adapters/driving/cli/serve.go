package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/appreview/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the applications over HTTP",
	Long: `Serve both collections over HTTP until interrupted.

Routes:
  GET  /                             shortlisted applications (JSON page)
  GET  /{id}                         one application; unknown ids redirect to /
  GET  /allapplications[/{id}]       the password protected collection
  GET  /api/applications[/{id}]      JSON API (?collection=all needs a password)
  GET  /api/facets                   facet values with counts
  GET  /api/status                   load status of both collections
  GET  /api/applications/{id}/comments
  POST /api/applications/{id}/comments  {"text": "..."}
  GET  /metrics                      Prometheus metrics

Query parameters: q, segment, trl, funding, recognition (repeatable),
sort, page, format=markdown.

The collection password is read from basic auth, the X-Appreview-Password
header or ?password=. Document links need X-Appreview-Documents-Password
or ?documents_password=.

With server.refresh_interval set (see "appreview settings set
refresh-interval"), both datasets are reloaded in the background; a failed
reload keeps serving the previous copy.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServer starts the server. Tests replace it.
var runServer = func(cmd *cobra.Command, s *httpapi.Server) error {
	cmd.Printf("Serving on http://%s\n", s.Addr())
	return s.Run(cmd.Context())
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr from settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := serveAddr
	if addr == "" && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			addr = settings.Server.Addr
		}
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Catalog:  catalogService,
		Comment:  commentService,
		Access:   accessService,
		Renderer: renderer,
	}, httpapi.Config{Addr: addr, Refresher: refresher})
	if err != nil {
		return err
	}
	return runServer(cmd, server)
}
