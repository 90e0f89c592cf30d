package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui"
)

var tuiOpen string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive application browser.

The browser opens on the shortlisted applications. Search, facet filters,
sorting and paging update the list as you type; enter opens an application
and c adds a comment to it.

Controls:
  /        - Search
  f        - Filters
  s        - Sort
  ←/→      - Previous / next page
  v        - Toggle grid / list
  Enter    - Open
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

// runApp starts the program. Tests replace it to inspect the app.
var runApp = func(app *tui.App) error {
	return app.Run()
}

func init() {
	tuiCmd.Flags().StringVar(&tuiOpen, "open", "", "open this application id once the dataset has loaded")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in TUI: %v", r)
		}
	}()

	ports := tui.NewPorts(catalogService, commentService, accessService)
	ports.Settings = settingsService
	ports.Renderer = renderer

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).Open(tuiOpen)

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
