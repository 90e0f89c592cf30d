package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/domain"
)

var (
	showAll       bool
	showPassword  string
	showDocuments bool
	showMarkdown  bool
	showJSON      bool
)

var showCmd = &cobra.Command{
	Use:   "show [application-id]",
	Short: "Show one application",
	Long: `Shows the full record of one application with its comments.

Document links are hidden unless --documents is given and the documents
password is entered.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showAll, "all", false, "look the id up in all applications (password protected)")
	showCmd.Flags().StringVar(&showPassword, "password", "", "password for --all (prompted when empty)")
	showCmd.Flags().BoolVar(&showDocuments, "documents", false, "include document links (prompts for the documents password)")
	showCmd.Flags().BoolVar(&showMarkdown, "markdown", false, "print markdown instead of styled terminal output")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	c := collectionOf(showAll)
	if err := openCollection(cmd, c, showPassword); err != nil {
		return err
	}

	ctx := cmd.Context()
	summary, err := catalogService.Summary(ctx, c, args[0])
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}

	if showDocuments {
		if err := unlock(cmd, domain.GateDocuments, ""); err != nil {
			return err
		}
	}

	var comments []domain.Comment
	if commentService != nil {
		if comments, err = commentService.List(ctx, summary.ApplicationID); err != nil {
			return fmt.Errorf("listing comments: %w", err)
		}
	}

	unlocked := accessService != nil && accessService.IsUnlocked(domain.GateDocuments)
	detail := render.NewDetail(c, summary, comments, unlocked)
	if showJSON {
		return printJSON(cmd, detail)
	}

	r := renderer
	if r == nil {
		r = render.New(nil, "")
	}
	if showMarkdown {
		md, err := r.DetailMarkdown(detail.Application, detail.Comments)
		if err != nil {
			return err
		}
		cmd.Println(md)
		return nil
	}

	out, err := r.Detail(detail.Application, detail.Comments, terminalWidth(cmd))
	if err != nil {
		return err
	}
	cmd.Print(out)
	return nil
}
