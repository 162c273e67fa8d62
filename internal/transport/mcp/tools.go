package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/marksearch/internal/domain"
	"github.com/kailas-cloud/marksearch/internal/domain/search/request"
)

// SearchInput is the input schema for search_bookmarks.
type SearchInput struct {
	Query    string  `json:"query" jsonschema:"free text matched against bookmark titles, URLs and folder names"`
	Limit    int     `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
	MinScore float64 `json:"min_score,omitempty" jsonschema:"drop results scoring below this cosine similarity, 0 to 1"`
}

// SearchOutput is the output schema for search_bookmarks.
type SearchOutput struct {
	Results []BookmarkOutput `json:"results"`
	Count   int              `json:"count"`
}

// BookmarkOutput is a single ranked bookmark.
type BookmarkOutput struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Folder []string `json:"folder"`
	Score  float64  `json:"score"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_bookmarks",
		Description: "Rank saved bookmarks by similarity to a query",
	}, s.handleSearch)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req, err := request.New(input.Query, input.Limit, input.MinScore)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	results, err := s.searcher.Search(ctx, &req)
	if err != nil {
		s.logger.Warn("search_bookmarks failed", zap.Error(err))
		return nil, SearchOutput{}, fmt.Errorf("search bookmarks: %w", err)
	}

	output := SearchOutput{
		Results: make([]BookmarkOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		b := results[i].Bookmark()
		folder := b.Folder()
		if folder == nil {
			folder = []string{}
		}
		output.Results[i] = BookmarkOutput{
			ID:     b.ID(),
			Title:  b.Title(),
			URL:    b.URL(),
			Folder: folder,
			Score:  results[i].Score(),
		}
	}
	return nil, output, nil
}
