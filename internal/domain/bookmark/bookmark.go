package bookmark

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/kailas-cloud/marksearch/internal/domain"
	"github.com/kailas-cloud/marksearch/internal/domain/ranking"
)

// Compile-time check: Bookmark can be ranked.
var _ ranking.Document = Bookmark{}

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Field limits.
const (
	MaxIDLength    = 128
	MaxTitleLength = 1024
	MaxURLLength   = 8192
)

// Bookmark is a saved link with the folder path it was found under (immutable value object).
type Bookmark struct {
	id     string
	title  string
	url    string
	folder []string
}

// New validates and creates a Bookmark.
// ID: ^[a-zA-Z0-9_-]+$, 1-128 chars. URL: required, absolute. Title: optional, max 1KB.
func New(id, title, rawURL string, folder []string) (Bookmark, error) {
	if id == "" {
		return Bookmark{}, fmt.Errorf("bookmark ID is required")
	}
	if len(id) > MaxIDLength {
		return Bookmark{}, fmt.Errorf("bookmark ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(id) {
		return Bookmark{}, fmt.Errorf("bookmark ID must be alphanumeric with underscores and hyphens")
	}
	if len(title) > MaxTitleLength {
		return Bookmark{}, fmt.Errorf("title too long (max %d bytes)", MaxTitleLength)
	}
	if rawURL == "" {
		return Bookmark{}, fmt.Errorf("url is required")
	}
	if len(rawURL) > MaxURLLength {
		return Bookmark{}, fmt.Errorf("url too long (max %d bytes)", MaxURLLength)
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return Bookmark{}, fmt.Errorf("url must be absolute: %q", rawURL)
	}
	for _, f := range folder {
		if strings.TrimSpace(f) == "" {
			return Bookmark{}, fmt.Errorf("folder segments must not be blank")
		}
	}

	return Bookmark{id: id, title: title, url: rawURL, folder: cloneStrings(folder)}, nil
}

// Reconstruct creates a Bookmark without validation (storage hydration, file import).
func Reconstruct(id, title, rawURL string, folder []string) Bookmark {
	return Bookmark{id: id, title: title, url: rawURL, folder: folder}
}

// ID returns the bookmark identifier.
func (b Bookmark) ID() string { return b.id }

// Title returns the display title.
func (b Bookmark) Title() string { return b.title }

// URL returns the bookmarked address.
func (b Bookmark) URL() string { return b.url }

// Folder returns the ancestry path, outermost folder first.
func (b Bookmark) Folder() []string { return b.folder }

// FolderPath joins the ancestry path for display.
func (b Bookmark) FolderPath() string { return strings.Join(b.folder, domain.FolderSeparator) }

// SearchableText is the text the ranker sees: title, URL and folder path.
func (b Bookmark) SearchableText() string {
	return b.title + " " + b.url + " " + b.FolderPath()
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
