package tree

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// genForest draws a random forest with unique IDs and returns it together
// with the child-to-parent assignment it was built from.
func genForest(t *rapid.T) ([]model.Item, map[string]string) {
	n := rapid.IntRange(1, 40).Draw(t, "nodes")

	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("n%02d", i)
	}

	// Each node after the first either becomes a root or attaches to an
	// earlier node, which keeps the shape acyclic by construction.
	parentOf := make(map[string]string)
	for i := 1; i < n; i++ {
		if rapid.Bool().Draw(t, "isRoot") {
			continue
		}
		parent := rapid.IntRange(0, i-1).Draw(t, "parent")
		parentOf[ids[i]] = ids[parent]
	}

	childrenOf := make(map[string][]string)
	var roots []string
	for _, id := range ids {
		if parent, ok := parentOf[id]; ok {
			childrenOf[parent] = append(childrenOf[parent], id)
		} else {
			roots = append(roots, id)
		}
	}

	var materialize func(id string) model.Item
	materialize = func(id string) model.Item {
		item := model.Item{ID: id, Name: strings.ToUpper(id)}
		for _, child := range childrenOf[id] {
			item.Children = append(item.Children, materialize(child))
		}
		return item
	}

	forest := make([]model.Item, 0, len(roots))
	for _, root := range roots {
		forest = append(forest, materialize(root))
	}
	return forest, parentOf
}

// TestPropParentDerivation checks the parent map equals the nesting the
// forest was generated from, for arbitrary shapes
func TestPropParentDerivation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		forest, parentOf := genForest(t)
		m := Build(forest)

		if len(m.Parents) != len(parentOf) {
			t.Fatalf("parent map has %d entries, want %d", len(m.Parents), len(parentOf))
		}
		for child, parent := range parentOf {
			if got := m.Parents[child]; got != parent {
				t.Fatalf("parent of %s = %q, want %q", child, got, parent)
			}
		}
	})
}

// TestPropVisiblePrefix checks a node flattens in exactly when every
// ancestor on its path is expanded
func TestPropVisiblePrefix(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		forest, _ := genForest(t)
		m := Build(forest)
		s := NewState()

		// Walk order is deterministic, so the draw sequence replays cleanly.
		m.Walk(func(node *Node) {
			if node.IsBranch() && rapid.Bool().Draw(t, "expand") {
				s.Expand(node.Item.ID)
			}
		})

		visible := make(map[string]bool)
		for _, node := range m.Visible(s) {
			visible[node.Item.ID] = true
		}

		for id := range m.Index {
			ancestorsOpen := true
			for _, ancestor := range m.AncestorPath(id) {
				if !s.IsExpanded(ancestor) {
					ancestorsOpen = false
					break
				}
			}
			if visible[id] != ancestorsOpen {
				t.Fatalf("node %s: visible=%v but ancestors open=%v", id, visible[id], ancestorsOpen)
			}
		}
	})
}

// TestPropNextPrevInverse checks stepping forward then back returns to the
// starting node everywhere except the boundaries
func TestPropNextPrevInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		forest, _ := genForest(t)
		m := Build(forest)
		s := NewState()

		m.Walk(func(node *Node) {
			if node.IsBranch() && rapid.Bool().Draw(t, "expand") {
				s.Expand(node.Item.ID)
			}
		})

		visible := m.Visible(s)
		for i, node := range visible {
			id := node.Item.ID
			next := m.Next(s, id)
			if i == len(visible)-1 {
				if next != "" {
					t.Fatalf("last node %s has Next %q", id, next)
				}
				continue
			}
			if next == "" {
				t.Fatalf("interior node %s has no Next", id)
			}
			if back := m.Prev(s, next); back != id {
				t.Fatalf("Prev(Next(%s)) = %q", id, back)
			}
		}
		if len(visible) > 0 {
			if prev := m.Prev(s, visible[0].Item.ID); prev != "" {
				t.Fatalf("first node has Prev %q", prev)
			}
		}
	})
}

// TestPropRebuildStable checks building twice from the same input yields
// identical index keys and parent entries
func TestPropRebuildStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		forest, _ := genForest(t)

		first := Build(forest)
		second := Build(forest)

		if len(first.Index) != len(second.Index) {
			t.Fatalf("index sizes differ: %d vs %d", len(first.Index), len(second.Index))
		}
		for id := range first.Index {
			if _, ok := second.Index[id]; !ok {
				t.Fatalf("rebuild lost index key %s", id)
			}
		}
		if len(first.Parents) != len(second.Parents) {
			t.Fatalf("parent maps differ in size: %d vs %d", len(first.Parents), len(second.Parents))
		}
		for child, parent := range first.Parents {
			if second.Parents[child] != parent {
				t.Fatalf("parent of %s changed: %q vs %q", child, parent, second.Parents[child])
			}
		}
	})
}

// TestPropExpandTo checks the auto-expand walk opens exactly the ancestor
// set of the target, nothing more
func TestPropExpandTo(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		forest, _ := genForest(t)
		m := Build(forest)

		ids := make([]string, 0, m.Size())
		m.Walk(func(node *Node) {
			ids = append(ids, node.Item.ID)
		})
		target := rapid.SampledFrom(ids).Draw(t, "target")

		s := NewState()
		s.ExpandTo(m, target)

		want := make(map[string]bool)
		for _, ancestor := range m.AncestorPath(target) {
			want[ancestor] = true
		}

		if s.ExpandedCount() != len(want) {
			t.Fatalf("expanded %v, want exactly %d ancestors", s.ExpandedIDs(), len(want))
		}
		for id := range want {
			if !s.IsExpanded(id) {
				t.Fatalf("ancestor %s not expanded", id)
			}
		}
	})
}
