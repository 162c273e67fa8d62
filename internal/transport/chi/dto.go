package chi

import (
	"github.com/kailas-cloud/marksearch/internal/domain/bookmark"
	"github.com/kailas-cloud/marksearch/internal/domain/search/result"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeBookmarkNotFound ErrorCode = "bookmark_not_found"
	ErrorCodeReadOnlySource   ErrorCode = "read_only_source"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// BookmarkRequest is the body of POST /bookmarks and PUT /bookmarks/{id}.
type BookmarkRequest struct {
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Folder []string `json:"folder,omitempty"`
}

// BookmarkResponse is a bookmark as rendered by the API.
type BookmarkResponse struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Folder []string `json:"folder"`
}

// BookmarkListResponse wraps GET /bookmarks.
type BookmarkListResponse struct {
	Items []BookmarkResponse `json:"items"`
	Total int                `json:"total"`
}

// SearchResultItem is one ranked bookmark.
type SearchResultItem struct {
	BookmarkResponse
	Score float64 `json:"score"`
}

// SearchResponse wraps GET /search.
type SearchResponse struct {
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
	Limit int                `json:"limit"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func bookmarkToResponse(b bookmark.Bookmark) BookmarkResponse {
	folder := b.Folder()
	if folder == nil {
		folder = []string{}
	}
	return BookmarkResponse{
		ID:     b.ID(),
		Title:  b.Title(),
		URL:    b.URL(),
		Folder: folder,
	}
}

func searchResultToResponse(r *result.Result) SearchResultItem {
	return SearchResultItem{
		BookmarkResponse: bookmarkToResponse(r.Bookmark()),
		Score:            r.Score(),
	}
}
