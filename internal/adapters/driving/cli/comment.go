package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	commentAll      bool
	commentPassword string
	commentJSON     bool
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Read and add reviewer comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add [application-id] [text...]",
	Short: "Add a comment to an application",
	Long: `Adds a comment signed with this reviewer's label.

The application must exist in the selected collection; whitespace-only
comments are rejected.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCommentAdd,
}

var commentListCmd = &cobra.Command{
	Use:   "list [application-id]",
	Short: "List the comments of an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentList,
}

func init() {
	commentAddCmd.Flags().BoolVar(&commentAll, "all", false, "the id belongs to all applications (password protected)")
	commentAddCmd.Flags().StringVar(&commentPassword, "password", "", "password for --all (prompted when empty)")
	commentAddCmd.Flags().BoolVar(&commentJSON, "json", false, "output the new comment as JSON")
	commentListCmd.Flags().BoolVar(&commentJSON, "json", false, "output as JSON")
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentListCmd)
	rootCmd.AddCommand(commentCmd)
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	if commentService == nil {
		return errors.New("comment service not configured")
	}

	id := strings.TrimSpace(args[0])
	c := collectionOf(commentAll)
	if err := openCollection(cmd, c, commentPassword); err != nil {
		return err
	}
	if _, err := catalogService.Get(cmd.Context(), c, id); err != nil {
		return fmt.Errorf("comment failed: %w", err)
	}

	comment, err := commentService.Add(cmd.Context(), id, strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("comment failed: %w", err)
	}

	if commentJSON {
		return printJSON(cmd, comment)
	}
	cmd.Printf("Added comment %s to %s as %s\n", comment.ID, comment.ApplicationID, comment.Reviewer)
	return nil
}

func runCommentList(cmd *cobra.Command, args []string) error {
	if commentService == nil {
		return errors.New("comment service not configured")
	}

	comments, err := commentService.List(cmd.Context(), strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}

	if commentJSON {
		return printJSON(cmd, comments)
	}

	if len(comments) == 0 {
		cmd.Println("No comments yet.")
		return nil
	}
	for _, c := range comments {
		cmd.Printf("%s · %s\n", c.Reviewer, c.CreatedAt.Format("2006-01-02 15:04"))
		cmd.Printf("  %s\n\n", c.Text)
	}
	return nil
}
