package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/pipeline"
	"github.com/custodia-labs/appreview/internal/logger"
)

// BrowseInput is the input schema for the browse_applications tool.
type BrowseInput struct {
	Collection  string   `json:"collection,omitempty" jsonschema:"shortlisted (default) or all"`
	Password    string   `json:"password,omitempty" jsonschema:"password for the all collection"`
	Search      string   `json:"search,omitempty" jsonschema:"text matched against id, applicant, company and innovation title"`
	Segments    []string `json:"segments,omitempty" jsonschema:"segment values to keep"`
	TRLs        []string `json:"trls,omitempty" jsonschema:"technology readiness levels to keep"`
	Funding     []string `json:"funding,omitempty" jsonschema:"funding statuses to keep"`
	Recognition []string `json:"recognition,omitempty" jsonschema:"Award Winners, Media recognized or Others"`
	Sort        string   `json:"sort,omitempty" jsonschema:"most-funded, largest-team, highest-trl, most-awarded, most-recognized or alphabetical"`
	Page        int      `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
}

// BrowseOutput is the output schema for the browse_applications tool.
type BrowseOutput struct {
	Label        string              `json:"label"`
	Page         int                 `json:"page"`
	TotalPages   int                 `json:"total_pages"`
	Total        int                 `json:"total"`
	Applications []ApplicationOutput `json:"applications"`
}

// ApplicationOutput is one application in a browse result.
type ApplicationOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Applicant string `json:"applicant"`
	Segment   string `json:"segment"`
	TRL       string `json:"trl"`
	Funding   string `json:"funding"`
	TeamSize  string `json:"team_size"`
	Comments  int    `json:"comments"`
}

// GetInput is the input schema for the get_application tool.
type GetInput struct {
	ID                string `json:"id" jsonschema:"the ApplicationId"`
	Collection        string `json:"collection,omitempty" jsonschema:"shortlisted (default) or all"`
	Password          string `json:"password,omitempty" jsonschema:"password for the all collection"`
	DocumentsPassword string `json:"documents_password,omitempty" jsonschema:"password that reveals document links"`
}

// DetailOutput is the output schema for the get_application tool.
type DetailOutput struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Comments        int    `json:"comments"`
	DocumentsLocked bool   `json:"documents_locked"`
	Markdown        string `json:"markdown"`
}

// CommentsInput is the input schema for the list_comments tool.
type CommentsInput struct {
	ID string `json:"id" jsonschema:"the ApplicationId"`
}

// CommentsOutput is the output schema for the list_comments tool.
type CommentsOutput struct {
	Comments []CommentOutput `json:"comments"`
	Count    int             `json:"count"`
}

// CommentOutput is one reviewer comment.
type CommentOutput struct {
	ID        string `json:"id"`
	Reviewer  string `json:"reviewer"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// AddCommentInput is the input schema for the add_comment tool.
type AddCommentInput struct {
	ID         string `json:"id" jsonschema:"the ApplicationId"`
	Text       string `json:"text" jsonschema:"the comment text"`
	Collection string `json:"collection,omitempty" jsonschema:"shortlisted (default) or all"`
	Password   string `json:"password,omitempty" jsonschema:"password for the all collection"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "browse_applications",
		Description: "Search, filter, sort and page through applications",
	}, s.handleBrowse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_application",
		Description: "Read one application with its reviewer comments",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_comments",
		Description: "List the reviewer comments of an application, oldest first",
	}, s.handleListComments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_comment",
		Description: "Add a reviewer comment to an application",
	}, s.handleAddComment)
}

func (s *Server) handleBrowse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BrowseInput,
) (*mcp.CallToolResult, BrowseOutput, error) {
	sortKey, err := domain.ParseSortKey(input.Sort)
	if err != nil {
		return nil, BrowseOutput{}, err
	}
	c, err := s.open(ctx, input.Collection, input.Password)
	if err != nil {
		return nil, BrowseOutput{}, err
	}

	state := domain.NewViewState(domain.ViewModeList).
		WithSearch(input.Search).
		SetFacet(domain.FacetSegment, input.Segments).
		SetFacet(domain.FacetTRL, input.TRLs).
		SetFacet(domain.FacetFunding, input.Funding).
		SetFacet(domain.FacetRecognition, input.Recognition).
		WithSort(sortKey)

	page, err := s.ports.Catalog.Browse(ctx, c, state)
	if err != nil {
		return nil, BrowseOutput{}, err
	}
	if input.Page > 1 {
		next := state.GoToPage(input.Page, page.TotalPages)
		if next.Page != input.Page {
			return nil, BrowseOutput{}, fmt.Errorf("%w: page %d is out of range (1-%d)",
				domain.ErrInvalidInput, input.Page, max(page.TotalPages, 1))
		}
		if page, err = s.ports.Catalog.Browse(ctx, c, next); err != nil {
			return nil, BrowseOutput{}, err
		}
	}

	counts, err := s.ports.Comment.Counts(ctx)
	if err != nil {
		logger.Warn("mcp: comment counts: %v", err)
	}

	output := BrowseOutput{
		Label:        page.Label,
		Page:         page.Number,
		TotalPages:   page.TotalPages,
		Total:        page.Total,
		Applications: make([]ApplicationOutput, len(page.Items)),
	}
	for i, rec := range page.Items {
		sum := pipeline.Summarize(rec)
		output.Applications[i] = ApplicationOutput{
			ID:        sum.ApplicationID,
			Title:     sum.Title(),
			Applicant: sum.ApplicantName,
			Segment:   sum.Segment,
			TRL:       sum.TRL,
			Funding:   sum.Funding,
			TeamSize:  sum.TeamSize,
			Comments:  counts[sum.ApplicationID],
		}
	}

	return nil, output, nil
}

func (s *Server) handleGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetInput,
) (*mcp.CallToolResult, DetailOutput, error) {
	c, err := s.open(ctx, input.Collection, input.Password)
	if err != nil {
		return nil, DetailOutput{}, err
	}
	sum, err := s.ports.Catalog.Summary(ctx, c, input.ID)
	if err != nil {
		return nil, DetailOutput{}, err
	}
	comments, err := s.ports.Comment.List(ctx, sum.ApplicationID)
	if err != nil {
		return nil, DetailOutput{}, err
	}

	locked := s.check(domain.GateDocuments, input.DocumentsPassword) != nil
	if locked {
		sum = sum.Redacted()
	}

	md, err := s.renderer.DetailMarkdown(sum, comments)
	if err != nil {
		return nil, DetailOutput{}, fmt.Errorf("rendering %s: %w", sum.ApplicationID, err)
	}

	return nil, DetailOutput{
		ID:              sum.ApplicationID,
		Title:           sum.Title(),
		Comments:        len(comments),
		DocumentsLocked: locked,
		Markdown:        md,
	}, nil
}

func (s *Server) handleListComments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CommentsInput,
) (*mcp.CallToolResult, CommentsOutput, error) {
	comments, err := s.ports.Comment.List(ctx, strings.TrimSpace(input.ID))
	if err != nil {
		return nil, CommentsOutput{}, err
	}

	output := CommentsOutput{
		Comments: make([]CommentOutput, len(comments)),
		Count:    len(comments),
	}
	for i := range comments {
		output.Comments[i] = commentOutput(&comments[i])
	}
	return nil, output, nil
}

func (s *Server) handleAddComment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddCommentInput,
) (*mcp.CallToolResult, CommentOutput, error) {
	c, err := s.open(ctx, input.Collection, input.Password)
	if err != nil {
		return nil, CommentOutput{}, err
	}
	rec, err := s.ports.Catalog.Get(ctx, c, input.ID)
	if err != nil {
		return nil, CommentOutput{}, err
	}

	comment, err := s.ports.Comment.Add(ctx, rec.ApplicationID(), input.Text)
	if err != nil {
		return nil, CommentOutput{}, err
	}
	return nil, commentOutput(comment), nil
}

func commentOutput(c *domain.Comment) CommentOutput {
	return CommentOutput{
		ID:        c.ID,
		Reviewer:  c.Reviewer,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
