package bookmark

import (
	"encoding/json"
	"fmt"
	"strconv"

	dombm "github.com/kailas-cloud/marksearch/internal/domain/bookmark"
)

// Hash field names.
const (
	fieldTitle  = "title"
	fieldURL    = "url"
	fieldFolder = "folder"
	fieldSeq    = "seq"
)

// bookmarkToHash converts a domain Bookmark to a map for HSET. seq is left to the caller.
func bookmarkToHash(b dombm.Bookmark) (map[string]string, error) {
	folder := b.Folder()
	if folder == nil {
		folder = []string{}
	}
	folderJSON, err := json.Marshal(folder)
	if err != nil {
		return nil, fmt.Errorf("marshal folder: %w", err)
	}
	return map[string]string{
		fieldTitle:  b.Title(),
		fieldURL:    b.URL(),
		fieldFolder: string(folderJSON),
	}, nil
}

// bookmarkFromHash hydrates a domain Bookmark from an HGETALL result map.
func bookmarkFromHash(id string, m map[string]string) (dombm.Bookmark, int64, error) {
	var folder []string
	if raw := m[fieldFolder]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &folder); err != nil {
			return dombm.Bookmark{}, 0, fmt.Errorf("unmarshal folder: %w", err)
		}
	}

	var seq int64
	if raw := m[fieldSeq]; raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return dombm.Bookmark{}, 0, fmt.Errorf("invalid seq: %w", err)
		}
		seq = n
	}

	return dombm.Reconstruct(id, m[fieldTitle], m[fieldURL], folder), seq, nil
}
