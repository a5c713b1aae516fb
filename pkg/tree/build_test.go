package tree

import (
	"fmt"
	"testing"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// sampleForest returns the canonical test tree:
//
//	a
//	├── b
//	│   ├── d
//	│   └── e
//	└── c
func sampleForest() []model.Item {
	return []model.Item{
		{ID: "a", Name: "A", Children: []model.Item{
			{ID: "b", Name: "B", Children: []model.Item{
				{ID: "d", Name: "D"},
				{ID: "e", Name: "E"},
			}},
			{ID: "c", Name: "C"},
		}},
	}
}

// TestBuildEmpty verifies Build handles a nil forest
func TestBuildEmpty(t *testing.T) {
	m := Build(nil)

	if m.RootCount() != 0 {
		t.Errorf("expected 0 roots, got %d", m.RootCount())
	}
	if m.Size() != 0 {
		t.Errorf("expected 0 nodes, got %d", m.Size())
	}
	if len(m.Parents) != 0 {
		t.Errorf("expected empty parent map, got %d entries", len(m.Parents))
	}
}

// TestBuildForest verifies multiple roots stay roots in input order
func TestBuildForest(t *testing.T) {
	items := []model.Item{
		{ID: "x", Name: "X"},
		{ID: "y", Name: "Y"},
		{ID: "z", Name: "Z"},
	}

	m := Build(items)

	if m.RootCount() != 3 {
		t.Errorf("expected 3 roots, got %d", m.RootCount())
	}
	for i, want := range []string{"x", "y", "z"} {
		if m.Roots[i].Item.ID != want {
			t.Errorf("root %d: expected %s, got %s", i, want, m.Roots[i].Item.ID)
		}
	}
	if len(m.Parents) != 0 {
		t.Errorf("roots must not appear in the parent map, got %d entries", len(m.Parents))
	}
}

// TestBuildNesting verifies structure, depth and index for a nested tree
func TestBuildNesting(t *testing.T) {
	m := Build(sampleForest())

	if m.RootCount() != 1 {
		t.Fatalf("expected 1 root, got %d", m.RootCount())
	}
	if m.Size() != 5 {
		t.Errorf("expected 5 indexed nodes, got %d", m.Size())
	}

	root := m.Roots[0]
	if root.Item.ID != "a" || root.Depth != 0 {
		t.Errorf("expected root a at depth 0, got %s at depth %d", root.Item.ID, root.Depth)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected a to have 2 children, got %d", len(root.Children))
	}
	if root.Children[0].Item.ID != "b" || root.Children[1].Item.ID != "c" {
		t.Errorf("expected children b, c in order, got %s, %s",
			root.Children[0].Item.ID, root.Children[1].Item.ID)
	}

	d := m.Index["d"]
	if d == nil {
		t.Fatal("expected d in index")
	}
	if d.Depth != 2 {
		t.Errorf("expected d at depth 2, got %d", d.Depth)
	}
	if d.Item.Name != "D" {
		t.Errorf("expected index to resolve names, got %s", d.Item.Name)
	}
}

// TestBuildParentDerivation verifies every non-root maps to the ID it was
// nested under, and nothing else
func TestBuildParentDerivation(t *testing.T) {
	m := Build(sampleForest())

	want := map[string]string{
		"b": "a",
		"c": "a",
		"d": "b",
		"e": "b",
	}
	if len(m.Parents) != len(want) {
		t.Errorf("expected %d parent entries, got %d", len(want), len(m.Parents))
	}
	for child, parent := range want {
		if got := m.Parents[child]; got != parent {
			t.Errorf("parent of %s: expected %s, got %s", child, parent, got)
		}
	}
	if _, ok := m.Parents["a"]; ok {
		t.Error("root a must not have a parent entry")
	}
}

// TestBuildDuplicateIDs verifies only the first occurrence of an ID survives
func TestBuildDuplicateIDs(t *testing.T) {
	items := []model.Item{
		{ID: "a", Name: "first"},
		{ID: "a", Name: "second"},
		{ID: "b", Name: "B", Children: []model.Item{
			{ID: "a", Name: "third"},
		}},
	}

	m := Build(items)

	if m.Size() != 2 {
		t.Errorf("expected 2 nodes after deduplication, got %d", m.Size())
	}
	if m.Index["a"].Item.Name != "first" {
		t.Errorf("expected first occurrence kept, got %s", m.Index["a"].Item.Name)
	}
	if len(m.Index["b"].Children) != 0 {
		t.Errorf("expected duplicate child dropped, got %d children", len(m.Index["b"].Children))
	}
}

// TestBuildEmptyIDDropped verifies items without an ID never enter the model
func TestBuildEmptyIDDropped(t *testing.T) {
	items := []model.Item{
		{ID: "a", Name: "A", Children: []model.Item{
			{ID: "", Name: "nameless"},
			{ID: "b", Name: "B"},
		}},
		{ID: "", Name: "nameless root"},
	}

	m := Build(items)

	if m.Size() != 2 {
		t.Errorf("expected 2 nodes, got %d", m.Size())
	}
	if m.RootCount() != 1 {
		t.Errorf("expected 1 root, got %d", m.RootCount())
	}
	if len(m.Index["a"].Children) != 1 {
		t.Errorf("expected 1 surviving child, got %d", len(m.Index["a"].Children))
	}
}

// TestBuildDeepNesting verifies arbitrary depth with correct Depth values
func TestBuildDeepNesting(t *testing.T) {
	const levels = 12

	root := model.Item{ID: fmt.Sprintf("n%d", levels-1), Name: "leaf"}
	for i := levels - 2; i >= 0; i-- {
		root = model.Item{
			ID:       fmt.Sprintf("n%d", i),
			Name:     "level",
			Children: []model.Item{root},
		}
	}

	m := Build([]model.Item{root})

	if m.Size() != levels {
		t.Fatalf("expected %d nodes, got %d", levels, m.Size())
	}
	node := m.Roots[0]
	for depth := 0; ; depth++ {
		if node.Depth != depth {
			t.Errorf("expected depth %d, got %d", depth, node.Depth)
		}
		if len(node.Children) == 0 {
			if depth != levels-1 {
				t.Errorf("expected chain of %d levels, ended at %d", levels, depth+1)
			}
			break
		}
		node = node.Children[0]
	}
}

// TestBuildCopiesInput verifies caller mutations after Build cannot reach
// into the model
func TestBuildCopiesInput(t *testing.T) {
	items := sampleForest()
	m := Build(items)

	items[0].Name = "mutated"
	items[0].Children[0].Children[0].Name = "mutated"

	if m.Index["a"].Item.Name != "A" {
		t.Errorf("expected model to keep its own copy, got %s", m.Index["a"].Item.Name)
	}
	if m.Index["d"].Item.Name != "D" {
		t.Errorf("expected nested copy intact, got %s", m.Index["d"].Item.Name)
	}
}

// TestBuildIdempotent verifies rebuilding from identical input yields the
// same index keys and parent map
func TestBuildIdempotent(t *testing.T) {
	items := sampleForest()

	first := Build(items)
	second := Build(items)

	if first.Size() != second.Size() {
		t.Fatalf("expected equal sizes, got %d and %d", first.Size(), second.Size())
	}
	for id := range first.Index {
		if _, ok := second.Index[id]; !ok {
			t.Errorf("rebuild lost index key %s", id)
		}
	}
	if len(first.Parents) != len(second.Parents) {
		t.Fatalf("expected equal parent maps, got %d and %d entries",
			len(first.Parents), len(second.Parents))
	}
	for child, parent := range first.Parents {
		if second.Parents[child] != parent {
			t.Errorf("parent of %s changed across rebuilds: %s vs %s",
				child, parent, second.Parents[child])
		}
	}
}

// TestAncestorPath verifies the nearest-first walk to the root
func TestAncestorPath(t *testing.T) {
	m := Build(sampleForest())

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{"DeepLeaf", "d", []string{"b", "a"}},
		{"MidBranch", "b", []string{"a"}},
		{"Root", "a", nil},
		{"Unknown", "missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.AncestorPath(tt.id)
			if len(got) != len(tt.want) {
				t.Fatalf("AncestorPath(%s) = %v, want %v", tt.id, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("AncestorPath(%s)[%d] = %s, want %s", tt.id, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestVisibleRespectsExpansion verifies collapsed subtrees never flatten in
func TestVisibleRespectsExpansion(t *testing.T) {
	m := Build(sampleForest())
	s := NewState()

	ids := func() []string {
		var out []string
		for _, node := range m.Visible(s) {
			out = append(out, node.Item.ID)
		}
		return out
	}

	assertOrder := func(got, want []string) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("visible = %v, want %v", got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("visible = %v, want %v", got, want)
			}
		}
	}

	// Everything collapsed: only the root shows.
	assertOrder(ids(), []string{"a"})

	s.Expand("a")
	assertOrder(ids(), []string{"a", "b", "c"})

	s.Expand("b")
	assertOrder(ids(), []string{"a", "b", "d", "e", "c"})

	// Collapsing the root hides b's subtree even though b stays in the
	// expanded set.
	s.Collapse("a")
	assertOrder(ids(), []string{"a"})
	if !s.IsExpanded("b") {
		t.Error("collapsing an ancestor must not evict descendants from the set")
	}
}

// TestNextPrev verifies visible-order stepping with boundary no-ops
func TestNextPrev(t *testing.T) {
	m := Build(sampleForest())
	s := NewState()
	s.Expand("a")
	s.Expand("b")

	// Visible order: a, b, d, e, c
	tests := []struct {
		id       string
		wantNext string
		wantPrev string
	}{
		{"a", "b", ""},
		{"b", "d", "a"},
		{"d", "e", "b"},
		{"e", "c", "d"},
		{"c", "", "e"},
	}
	for _, tt := range tests {
		if got := m.Next(s, tt.id); got != tt.wantNext {
			t.Errorf("Next(%s) = %q, want %q", tt.id, got, tt.wantNext)
		}
		if got := m.Prev(s, tt.id); got != tt.wantPrev {
			t.Errorf("Prev(%s) = %q, want %q", tt.id, got, tt.wantPrev)
		}
	}

	// A hidden node is not part of the walk at all.
	s.Collapse("b")
	if got := m.Next(s, "d"); got != "" {
		t.Errorf("Next on hidden node = %q, want empty", got)
	}
	if got := m.Next(s, "b"); got != "c" {
		t.Errorf("Next(b) with b collapsed = %q, want c", got)
	}
}

// TestWalkVisitsAll verifies Walk ignores expansion state
func TestWalkVisitsAll(t *testing.T) {
	m := Build(sampleForest())

	var visited []string
	m.Walk(func(node *Node) {
		visited = append(visited, node.Item.ID)
	})

	want := []string{"a", "b", "d", "e", "c"}
	if len(visited) != len(want) {
		t.Fatalf("walk visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("walk visited %v, want %v", visited, want)
		}
	}
}

// TestIsBranch verifies the leaf/branch split tracks children presence,
// not children count
func TestIsBranch(t *testing.T) {
	items := []model.Item{
		{ID: "leaf", Name: "Leaf"},
		{ID: "empty", Name: "Empty", Children: []model.Item{}},
		{ID: "full", Name: "Full", Children: []model.Item{{ID: "kid", Name: "Kid"}}},
	}

	m := Build(items)

	if m.Index["leaf"].IsBranch() {
		t.Error("leaf must not be a branch")
	}
	if !m.Index["empty"].IsBranch() {
		t.Error("empty-but-present children must still make a branch")
	}
	if !m.Index["full"].IsBranch() {
		t.Error("full must be a branch")
	}
}
