package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/pipeline"
	"github.com/custodia-labs/appreview/internal/logger"
)

var (
	browseAll         bool
	browsePassword    string
	browseSearch      string
	browseSegments    []string
	browseTRLs        []string
	browseFunding     []string
	browseRecognition []string
	browseSort        string
	browsePage        int
	browseJSON        bool
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List applications",
	Long: `Lists one page of applications after search, facet filters and sorting.

Facet flags take comma separated values and may be repeated; values of one
facet are ORed, different facets are ANDed. Recognition values are
"Award Winners", "Media recognized" and "Others".

Sort keys: most-funded, largest-team, highest-trl, most-awarded,
most-recognized, alphabetical.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	f := browseCmd.Flags()
	f.BoolVar(&browseAll, "all", false, "browse all applications (password protected)")
	f.StringVar(&browsePassword, "password", "", "password for --all (prompted when empty)")
	f.StringVarP(&browseSearch, "search", "q", "", "search id, applicant, company and innovation title")
	f.StringSliceVar(&browseSegments, "segment", nil, "filter by segment")
	f.StringSliceVar(&browseTRLs, "trl", nil, "filter by technology readiness level")
	f.StringSliceVar(&browseFunding, "funding", nil, "filter by funding status")
	f.StringSliceVar(&browseRecognition, "recognition", nil, "filter by recognition category")
	f.StringVarP(&browseSort, "sort", "s", "", "sort key")
	f.IntVarP(&browsePage, "page", "p", 1, "page number")
	f.BoolVar(&browseJSON, "json", false, "output the page as JSON")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	sortKey, err := domain.ParseSortKey(browseSort)
	if err != nil {
		return err
	}

	c := collectionOf(browseAll)
	if err := openCollection(cmd, c, browsePassword); err != nil {
		return err
	}

	state := domain.NewViewState(domain.ViewModeList).
		WithSearch(browseSearch).
		SetFacet(domain.FacetSegment, browseSegments).
		SetFacet(domain.FacetTRL, browseTRLs).
		SetFacet(domain.FacetFunding, browseFunding).
		SetFacet(domain.FacetRecognition, browseRecognition).
		WithSort(sortKey)

	ctx := cmd.Context()
	page, err := catalogService.Browse(ctx, c, state)
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if browsePage != 1 {
		next := state.GoToPage(browsePage, page.TotalPages)
		if next.Page != browsePage {
			return fmt.Errorf("%w: page %d is out of range (1-%d)", domain.ErrInvalidInput, browsePage, max(page.TotalPages, 1))
		}
		state = next
		if page, err = catalogService.Browse(ctx, c, state); err != nil {
			return fmt.Errorf("browse failed: %w", err)
		}
	}

	var counts map[string]int
	if commentService != nil {
		if counts, err = commentService.Counts(ctx); err != nil {
			logger.Warn("browse: comment counts: %v", err)
		}
	}

	if browseJSON {
		return printJSON(cmd, render.NewPage(c, state, page, counts))
	}
	outputBrowseTable(cmd, c, page, counts)
	return nil
}

func outputBrowseTable(cmd *cobra.Command, c domain.Collection, page domain.Page, counts map[string]int) {
	cmd.Println(c.Label())
	cmd.Println()

	if page.Empty {
		cmd.Println(domain.EmptyMessage)
		return
	}

	for _, rec := range page.Items {
		s := pipeline.Summarize(rec)
		cmd.Printf("  %-12s %s\n", s.ApplicationID, s.Title())
		cmd.Printf("               %s · TRL %s · %s\n", s.Segment, s.TRL, s.Funding)
		if n := counts[s.ApplicationID]; n > 0 {
			cmd.Printf("               %d comment(s)\n", n)
		}
	}

	cmd.Println()
	cmd.Printf("%s · page %d of %d\n", page.Label, page.Number, page.TotalPages)
	cmd.Println(pagerLine(page.Buttons))
}

func pagerLine(buttons []domain.PageButton) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}
