// Package cli provides the cobra command tree for appreview.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/appreview/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
	"github.com/custodia-labs/appreview/internal/logger"
)

// version is overridden at build time with SetVersion.
var version = "dev"

// Options are the root flags that shape how services are built.
type Options struct {
	ConfigDir string
	DataDir   string
	Dataset   string
	Verbose   bool
}

// Services are the driving ports the commands run against.
type Services struct {
	Catalog  driving.CatalogService
	Comment  driving.CommentService
	Access   driving.AccessService
	Settings driving.SettingsService
	Renderer *render.Renderer

	// Refresher reloads datasets while `serve` runs. Optional.
	Refresher httpapi.Refresher

	// Close releases stores opened by the bootstrap. Optional.
	Close func() error
}

// Bootstrap builds services from the root flags.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	opts      Options
	bootstrap Bootstrap
	closer    func() error

	catalogService  driving.CatalogService
	commentService  driving.CommentService
	accessService   driving.AccessService
	settingsService driving.SettingsService
	renderer        *render.Renderer
	refresher       httpapi.Refresher
)

var errNotConfigured = errors.New("service not configured")

var rootCmd = &cobra.Command{
	Use:   "appreview",
	Short: "Review innovation applications from the terminal",
	Long: `appreview loads the shortlisted and full application datasets and lets
reviewers search, filter, sort and comment on them.

Run "appreview tui" for the interactive browser, "appreview serve" for the
HTTP interface, or use the commands below for scripting.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.appreview)")
	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory for comment storage (default: config dir)")
	rootCmd.PersistentFlags().StringVar(&opts.Dataset, "dataset", "", "shortlisted dataset file, overriding dataset.path")
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	if bootstrap == nil {
		return nil
	}

	svc, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("starting appreview: %w", err)
	}
	SetServices(svc)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closer == nil {
		return nil
	}
	err := closer()
	closer = nil
	return err
}

// SetBootstrap installs the function that builds services before a command runs.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices sets the services used by commands.
func SetServices(svc *Services) {
	if svc == nil {
		svc = &Services{}
	}
	catalogService = svc.Catalog
	commentService = svc.Comment
	accessService = svc.Access
	settingsService = svc.Settings
	renderer = svc.Renderer
	refresher = svc.Refresher
	closer = svc.Close
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Command output goes to stdout; cobra's
// Print helpers would otherwise fall back to stderr.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func requireCatalog() error {
	if catalogService == nil {
		return fmt.Errorf("catalog %w", errNotConfigured)
	}
	return nil
}
