// Package mcp exposes bookmark search to AI assistants over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/marksearch/internal/domain/search/request"
	"github.com/kailas-cloud/marksearch/internal/domain/search/result"
	"github.com/kailas-cloud/marksearch/internal/version"
)

// ErrMissingSearcher is returned when no search service is provided.
var ErrMissingSearcher = errors.New("mcp: searcher is required")

// Searcher ranks bookmarks against a query.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
}

// Server is the MCP server for bookmark search.
type Server struct {
	searcher Searcher
	logger   *zap.Logger
	server   *mcp.Server
}

// NewServer creates an MCP server with the search_bookmarks tool registered.
func NewServer(searcher Searcher, logger *zap.Logger) (*Server, error) {
	if searcher == nil {
		return nil, ErrMissingSearcher
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		searcher: searcher,
		logger:   logger,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "marksearch",
			Version: version.Version,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

// Handler serves the protocol over streamable HTTP, for mounting on the API router.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// Run serves the protocol over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
