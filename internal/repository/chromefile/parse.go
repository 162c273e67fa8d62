package chromefile

import (
	"encoding/json"
	"fmt"
	"sort"

	dombm "github.com/kailas-cloud/marksearch/internal/domain/bookmark"
)

// Chrome keeps these roots in a fixed order in its UI.
var knownRoots = []string{"bookmark_bar", "other", "synced"}

type file struct {
	Roots map[string]json.RawMessage `json:"roots"`
}

type node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Children []node `json:"children"`
}

// Parse decodes a Chrome/Chromium Bookmarks file and flattens it in display order.
func Parse(data []byte) ([]dombm.Bookmark, error) {
	roots, err := ParseTree(data)
	if err != nil {
		return nil, err
	}
	out := dombm.Flatten(roots...)
	if out == nil {
		out = []dombm.Bookmark{}
	}
	return out, nil
}

// ParseTree decodes a Chrome/Chromium Bookmarks file into one tree per root.
// Roots that are not bookmark nodes (older files carry metadata there) are skipped.
func ParseTree(data []byte) ([]dombm.Node, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bookmarks file: %w", err)
	}
	if f.Roots == nil {
		return nil, fmt.Errorf("decode bookmarks file: missing roots")
	}

	var names []string
	for _, name := range knownRoots {
		if _, ok := f.Roots[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range f.Roots {
		if !isKnownRoot(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	roots := make([]dombm.Node, 0, len(names))
	for _, name := range names {
		var n node
		if err := json.Unmarshal(f.Roots[name], &n); err != nil {
			continue
		}
		if converted, ok := toNode(n); ok {
			roots = append(roots, converted)
		}
	}
	return roots, nil
}

func toNode(n node) (dombm.Node, bool) {
	switch {
	case n.Type == "url" || (n.Type == "" && n.URL != ""):
		if n.URL == "" {
			return nil, false
		}
		return dombm.Leaf{ID: n.ID, Title: n.Name, URL: n.URL}, true
	case n.Type == "folder" || (n.Type == "" && n.Children != nil):
		children := make([]dombm.Node, 0, len(n.Children))
		for _, c := range n.Children {
			if converted, ok := toNode(c); ok {
				children = append(children, converted)
			}
		}
		return dombm.Folder{ID: n.ID, Title: n.Name, Children: children}, true
	default:
		return nil, false
	}
}

func isKnownRoot(name string) bool {
	for _, k := range knownRoots {
		if k == name {
			return true
		}
	}
	return false
}
