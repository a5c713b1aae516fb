// build.go - Pure tree construction: caller items in, navigable model out (arb-3f2k)
package tree

import (
	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// Node represents one processed item in the built tree
type Node struct {
	Item     *model.Item // Points into the model's own copy of the input
	Children []*Node     // Child nodes in input order
	Depth    int         // Nesting level (0 = root)
}

// IsBranch returns true if the node can hold children, including an
// empty-but-present children slice.
func (n *Node) IsBranch() bool {
	return n.Item != nil && !n.Item.IsLeaf()
}

// Model is the rebuilt-on-every-change view of the caller's items.
//
// Parent linkage is deliberately a child-id to parent-id map rather than
// back-pointers on Node: lookups stay O(1), nothing in the structure can
// dangle after a rebuild, and the zero value of a root is simply absence
// from the map.
type Model struct {
	Roots   []*Node           // Root nodes in input order
	Index   map[string]*Node  // Item ID -> node, every node in the tree
	Parents map[string]string // Child ID -> parent ID; roots are absent
}

// Build constructs a fresh model from a forest of items. A single root is
// a one-element forest. The input is deep-copied first, so later caller
// mutations cannot reach into the built model.
//
// Malformed input degrades rather than errors: items with empty IDs are
// dropped, and when an ID occurs twice only the first occurrence is kept.
func Build(items []model.Item) *Model {
	m := &Model{
		Index:   make(map[string]*Node),
		Parents: make(map[string]string),
	}

	if len(items) == 0 {
		return m
	}

	forest := make([]model.Item, len(items))
	for i := range items {
		forest[i] = items[i].Clone()
	}

	seen := make(map[string]bool)
	for i := range forest {
		if node := m.buildNode(&forest[i], 0, "", seen); node != nil {
			m.Roots = append(m.Roots, node)
		}
	}

	return m
}

// buildNode recursively builds a tree node and its children, registering
// each in the index and parent maps. The seen map drops revisited IDs.
func (m *Model) buildNode(item *model.Item, depth int, parentID string, seen map[string]bool) *Node {
	if item.ID == "" || seen[item.ID] {
		return nil
	}
	seen[item.ID] = true

	node := &Node{
		Item:  item,
		Depth: depth,
	}

	m.Index[item.ID] = node
	if parentID != "" {
		m.Parents[item.ID] = parentID
	}

	for i := range item.Children {
		if child := m.buildNode(&item.Children[i], depth+1, item.ID, seen); child != nil {
			node.Children = append(node.Children, child)
		}
	}

	return node
}

// AncestorPath returns the ancestor IDs of id ordered nearest parent
// first, ending at a root. Roots and unknown IDs yield nil.
func (m *Model) AncestorPath(id string) []string {
	if _, ok := m.Index[id]; !ok {
		return nil
	}

	var path []string
	current := id
	for {
		parent, ok := m.Parents[current]
		if !ok {
			break
		}
		path = append(path, parent)
		current = parent
	}
	return path
}

// Visible returns the nodes currently visible in depth-first order. A
// child appears only when every ancestor on its path is expanded.
func (m *Model) Visible(s *State) []*Node {
	out := make([]*Node, 0, len(m.Index))
	for _, root := range m.Roots {
		out = m.appendVisible(out, root, s)
	}
	return out
}

// appendVisible adds a node and its visible descendants to out.
func (m *Model) appendVisible(out []*Node, node *Node, s *State) []*Node {
	out = append(out, node)
	if node.IsBranch() && s.IsExpanded(node.Item.ID) {
		for _, child := range node.Children {
			out = m.appendVisible(out, child, s)
		}
	}
	return out
}

// Next returns the ID following id in the visible order, or "" when id
// is last, hidden, or unknown.
func (m *Model) Next(s *State, id string) string {
	visible := m.Visible(s)
	for i, node := range visible {
		if node.Item.ID == id {
			if i+1 < len(visible) {
				return visible[i+1].Item.ID
			}
			return ""
		}
	}
	return ""
}

// Prev returns the ID preceding id in the visible order, or "" when id
// is first, hidden, or unknown.
func (m *Model) Prev(s *State, id string) string {
	visible := m.Visible(s)
	for i, node := range visible {
		if node.Item.ID == id {
			if i > 0 {
				return visible[i-1].Item.ID
			}
			return ""
		}
	}
	return ""
}

// Walk visits every node depth first, ignoring expansion state.
func (m *Model) Walk(fn func(*Node)) {
	var visit func(node *Node)
	visit = func(node *Node) {
		fn(node)
		for _, child := range node.Children {
			visit(child)
		}
	}
	for _, root := range m.Roots {
		visit(root)
	}
}

// Size returns the total number of nodes in the tree.
func (m *Model) Size() int {
	return len(m.Index)
}

// RootCount returns the number of root nodes.
func (m *Model) RootCount() int {
	return len(m.Roots)
}
