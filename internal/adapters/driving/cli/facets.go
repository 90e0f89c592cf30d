package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

var (
	facetsAll      bool
	facetsPassword string
	facetsJSON     bool
)

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "List filter values with counts",
	Args:  cobra.NoArgs,
	RunE:  runFacets,
}

func init() {
	facetsCmd.Flags().BoolVar(&facetsAll, "all", false, "use all applications (password protected)")
	facetsCmd.Flags().StringVar(&facetsPassword, "password", "", "password for --all (prompted when empty)")
	facetsCmd.Flags().BoolVar(&facetsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(facetsCmd)
}

func runFacets(cmd *cobra.Command, _ []string) error {
	c := collectionOf(facetsAll)
	if err := openCollection(cmd, c, facetsPassword); err != nil {
		return err
	}

	opts, err := catalogService.Facets(cmd.Context(), c)
	if err != nil {
		return err
	}

	if facetsJSON {
		return printJSON(cmd, opts)
	}

	for _, facet := range domain.AllFacets() {
		cmd.Printf("[%s]\n", facet.Label())
		values := opts[facet]
		if len(values) == 0 {
			cmd.Println("  (none)")
		}
		for _, v := range values {
			cmd.Printf("  %-40s %d\n", v.Value, v.Count)
		}
		cmd.Println()
	}
	return nil
}
