package chromefile

import (
	"testing"
)

const sampleFile = `{
  "checksum": "abc",
  "roots": {
    "synced": {"id": "3", "name": "Mobile bookmarks", "type": "folder", "children": [
      {"id": "30", "name": "Phone link", "type": "url", "url": "https://m.example"}
    ]},
    "bookmark_bar": {"id": "1", "name": "Bookmarks bar", "type": "folder", "children": [
      {"id": "10", "name": "Go", "type": "url", "url": "https://go.dev"},
      {"id": "11", "name": "Dev", "type": "folder", "children": [
        {"id": "12", "name": "chi", "type": "url", "url": "https://go-chi.io"},
        {"id": "13", "name": "broken", "type": "url", "url": ""}
      ]}
    ]},
    "other": {"id": "2", "name": "Other bookmarks", "type": "folder", "children": [
      {"id": "20", "name": "News", "type": "url", "url": "https://news.example"},
      {"id": "21", "name": "sep", "type": "separator"}
    ]},
    "zz_custom": {"id": "4", "name": "Custom", "type": "folder", "children": [
      {"id": "40", "name": "Extra", "type": "url", "url": "https://extra.example"}
    ]},
    "sync_transaction_version": "7"
  },
  "version": 1
}`

func TestParse_OrderAndPaths(t *testing.T) {
	got, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		id, title, path string
	}{
		{"10", "Go", "Bookmarks bar"},
		{"12", "chi", "Bookmarks bar > Dev"},
		{"20", "News", "Other bookmarks"},
		{"30", "Phone link", "Mobile bookmarks"},
		{"40", "Extra", "Custom"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d bookmarks, want %d", len(got), len(want))
	}
	for i, w := range want {
		b := got[i]
		if b.ID() != w.id || b.Title() != w.title || b.FolderPath() != w.path {
			t.Errorf("[%d] = (%s, %q, %q), want (%s, %q, %q)",
				i, b.ID(), b.Title(), b.FolderPath(), w.id, w.title, w.path)
		}
	}
}

func TestParse_UntypedNodes(t *testing.T) {
	data := `{"roots": {"bookmark_bar": {"name": "Bar", "children": [
		{"id": "1", "name": "x", "url": "https://x.example"}
	]}}}`

	got, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].FolderPath() != "Bar" {
		t.Fatalf("unexpected result: %d bookmarks", len(got))
	}
}

func TestParse_EmptyRoots(t *testing.T) {
	got, err := Parse([]byte(`{"roots": {}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty slice", got)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, data := range []string{"", "not json", `{"version": 1}`, `[]`} {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("Parse(%q): expected error", data)
		}
	}
}
