package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change where datasets and comments live, the browse layout
and the access passwords.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change a setting",
}

var settingsViewModeCmd = &cobra.Command{
	Use:       "view-mode [grid|list]",
	Short:     "Set the browse layout",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{domain.ViewModeGrid.String(), domain.ViewModeList.String()},
	RunE:      runSettingsViewMode,
}

var settingsCommentsCmd = &cobra.Command{
	Use:   "comments-backend [sqlite|file|memory]",
	Short: "Set where comments are stored",
	Long: `Set where comments are stored.

Available backends:
  sqlite - SQLite database in the data directory
  file   - a single JSON file in the data directory
  memory - kept until the process exits

The new backend is used the next time appreview starts.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsComments,
}

var settingsDatasetCmd = &cobra.Command{
	Use:   "dataset-path [file]",
	Short: "Set the shortlisted dataset file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setDatasetPath(cmd, domain.CollectionShortlisted, args[0])
	},
}

var settingsExtendedDatasetCmd = &cobra.Command{
	Use:   "dataset-extended-path [file]",
	Short: "Set the all-applications dataset file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setDatasetPath(cmd, domain.CollectionAll, args[0])
	},
}

var settingsRefreshCmd = &cobra.Command{
	Use:   "refresh-interval [duration]",
	Short: "Set how often serve reloads the datasets (0 disables)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsRefresh,
}

var settingsPasswordCmd = &cobra.Command{
	Use:       "password [extended|documents]",
	Short:     "Change a gate password",
	Long:      `Change the password of a gate. The new password is read from the terminal.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{domain.GateExtended.String(), domain.GateDocuments.String()},
	RunE:      runSettingsPassword,
}

func init() {
	settingsSetCmd.AddCommand(settingsViewModeCmd)
	settingsSetCmd.AddCommand(settingsCommentsCmd)
	settingsSetCmd.AddCommand(settingsDatasetCmd)
	settingsSetCmd.AddCommand(settingsExtendedDatasetCmd)
	settingsSetCmd.AddCommand(settingsRefreshCmd)
	settingsSetCmd.AddCommand(settingsPasswordCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func requireSettings() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Dataset]")
	cmd.Printf("  Shortlisted: %s\n", datasetLocation(settings.Dataset.Path, settings.Dataset.URL))
	cmd.Printf("  All applications: %s\n", datasetLocation(settings.Dataset.ExtendedPath, settings.Dataset.ExtendedURL))
	cmd.Println()

	cmd.Println("[Browse]")
	cmd.Printf("  Layout: %s\n", settings.ViewMode)
	cmd.Println()

	cmd.Println("[Comments]")
	cmd.Printf("  Backend: %s\n", settings.CommentBackend.Description())
	cmd.Printf("  Reviewer: %s\n", settingsService.ReviewerLabel())
	cmd.Println()

	cmd.Println("[Access]")
	cmd.Printf("  All applications password: %s\n", passwordState(settings.Access.ExtendedPassword, domain.DefaultExtendedPassword))
	cmd.Printf("  Documents password: %s\n", passwordState(settings.Access.DocumentsPassword, domain.DefaultDocumentsPassword))
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  Refresh: %s\n", refreshState(settings.Server.RefreshInterval))

	return nil
}

func datasetLocation(path, url string) string {
	if url != "" {
		return url
	}
	if path == "" {
		return "(not set)"
	}
	return path
}

// passwordState never prints the password itself.
func passwordState(password, def string) string {
	switch password {
	case "":
		return "(not set)"
	case def:
		return "default"
	default:
		return "custom"
	}
}

func runSettingsViewMode(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	mode, err := domain.ParseViewMode(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetViewMode(mode); err != nil {
		return fmt.Errorf("failed to set view mode: %w", err)
	}
	cmd.Printf("Layout set to %s\n", mode)
	return nil
}

func runSettingsComments(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	backend := domain.CommentBackend(strings.ToLower(strings.TrimSpace(args[0])))
	if !backend.IsValid() {
		names := make([]string, 0, 3)
		for _, b := range domain.AllCommentBackends() {
			names = append(names, b.String())
		}
		return fmt.Errorf("%w: unknown comment backend %q (want %s)",
			domain.ErrInvalidInput, args[0], strings.Join(names, ", "))
	}
	if err := settingsService.SetCommentBackend(backend); err != nil {
		return fmt.Errorf("failed to set comment backend: %w", err)
	}
	cmd.Printf("Comment storage set to %s\n", backend.Description())
	cmd.Println("Takes effect the next time appreview starts.")
	return nil
}

func setDatasetPath(cmd *cobra.Command, c domain.Collection, path string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if err := settingsService.SetDatasetPath(c, path); err != nil {
		return fmt.Errorf("failed to set dataset path: %w", err)
	}
	cmd.Printf("%s dataset set to %s\n", c.Label(), path)
	return nil
}

func refreshState(d time.Duration) string {
	if d <= 0 {
		return "off"
	}
	return "every " + d.String()
}

func runSettingsRefresh(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	d, err := time.ParseDuration(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := settingsService.SetRefreshInterval(d); err != nil {
		return fmt.Errorf("failed to set refresh interval: %w", err)
	}
	cmd.Printf("Dataset refresh %s\n", refreshState(d))
	return nil
}

func runSettingsPassword(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	gate, err := domain.ParseGate(args[0])
	if err != nil {
		return err
	}

	password, err := readPassword(cmd, "New password: ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	confirm, err := readPassword(cmd, "Confirm password: ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	if err := settingsService.SetGatePassword(gate, password); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	cmd.Printf("Password for %s updated\n", gate)
	return nil
}
