package bookmark

// Node is an element of a bookmark tree: either a Leaf or a Folder.
type Node interface {
	node()
}

// Leaf is a single bookmark inside a tree.
type Leaf struct {
	ID    string
	Title string
	URL   string
}

// Folder groups nodes. A folder with an empty title adds no segment to its children's paths.
type Folder struct {
	ID       string
	Title    string
	Children []Node
}

func (Leaf) node()   {}
func (Folder) node() {}

type frame struct {
	node Node
	path []string
}

// Flatten walks the trees pre-order and returns every leaf with its folder path.
// Leaves come out in document order.
func Flatten(roots ...Node) []Bookmark {
	var out []Bookmark

	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: roots[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n := f.node.(type) {
		case Leaf:
			out = append(out, Reconstruct(n.ID, n.Title, n.URL, f.path))
		case *Leaf:
			if n != nil {
				out = append(out, Reconstruct(n.ID, n.Title, n.URL, f.path))
			}
		case Folder:
			stack = pushChildren(stack, n, f.path)
		case *Folder:
			if n != nil {
				stack = pushChildren(stack, *n, f.path)
			}
		}
	}
	return out
}

func pushChildren(stack []frame, f Folder, parent []string) []frame {
	path := parent
	if f.Title != "" {
		// Full slice expression so siblings never share a backing array.
		path = append(parent[:len(parent):len(parent)], f.Title)
	}
	for i := len(f.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: f.Children[i], path: path})
	}
	return stack
}
