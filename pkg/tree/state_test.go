package tree

import (
	"testing"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// TestStateSelection verifies the select/clear lifecycle
func TestStateSelection(t *testing.T) {
	s := NewState()

	if s.HasSelection() {
		t.Error("fresh state must have no selection")
	}
	if s.Selected() != "" {
		t.Errorf("expected empty selection, got %q", s.Selected())
	}

	s.Select("a")
	if !s.HasSelection() || s.Selected() != "a" {
		t.Errorf("expected a selected, got %q", s.Selected())
	}

	s.Select("b")
	if s.Selected() != "b" {
		t.Errorf("expected selection replaced with b, got %q", s.Selected())
	}

	s.ClearSelection()
	if s.HasSelection() {
		t.Error("expected selection cleared")
	}
}

// TestStateExpansionMembership verifies open state is exactly set membership
func TestStateExpansionMembership(t *testing.T) {
	s := NewState()

	if s.IsExpanded("a") {
		t.Error("fresh state must have nothing expanded")
	}

	s.Expand("a")
	if !s.IsExpanded("a") {
		t.Error("expected a expanded after Expand")
	}
	if s.ExpandedCount() != 1 {
		t.Errorf("expected 1 expanded, got %d", s.ExpandedCount())
	}

	// Expanding twice is idempotent.
	s.Expand("a")
	if s.ExpandedCount() != 1 {
		t.Errorf("expected 1 expanded after double Expand, got %d", s.ExpandedCount())
	}

	s.Collapse("a")
	if s.IsExpanded("a") {
		t.Error("expected a collapsed after Collapse")
	}
	if s.ExpandedCount() != 0 {
		t.Errorf("expected empty set, got %d", s.ExpandedCount())
	}

	// Collapsing an absent id is a no-op.
	s.Collapse("never-expanded")
	if s.ExpandedCount() != 0 {
		t.Errorf("expected empty set, got %d", s.ExpandedCount())
	}
}

// TestStateToggle verifies Toggle flips membership both ways
func TestStateToggle(t *testing.T) {
	s := NewState()

	s.Toggle("a")
	if !s.IsExpanded("a") {
		t.Error("expected a expanded after first toggle")
	}
	s.Toggle("a")
	if s.IsExpanded("a") {
		t.Error("expected a collapsed after second toggle")
	}
}

// TestStateExpandedIDs verifies the sorted snapshot of the set
func TestStateExpandedIDs(t *testing.T) {
	s := NewState()
	s.Expand("c")
	s.Expand("a")
	s.Expand("b")

	got := s.ExpandedIDs()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("ExpandedIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ExpandedIDs = %v, want %v", got, want)
		}
	}
}

// TestStateExpandAll verifies every branch expands, leaves never do
func TestStateExpandAll(t *testing.T) {
	items := []model.Item{
		{ID: "a", Name: "A", Children: []model.Item{
			{ID: "b", Name: "B", Children: []model.Item{
				{ID: "d", Name: "D"},
			}},
			{ID: "empty", Name: "Empty", Children: []model.Item{}},
		}},
		{ID: "c", Name: "C"},
	}
	m := Build(items)
	s := NewState()

	s.ExpandAll(m)

	for _, id := range []string{"a", "b", "empty"} {
		if !s.IsExpanded(id) {
			t.Errorf("expected branch %s expanded", id)
		}
	}
	for _, id := range []string{"c", "d"} {
		if s.IsExpanded(id) {
			t.Errorf("leaf %s must never enter the expanded set", id)
		}
	}

	s.CollapseAll()
	if s.ExpandedCount() != 0 {
		t.Errorf("expected empty set after CollapseAll, got %d", s.ExpandedCount())
	}
}

// TestStateExpandTo verifies exactly the ancestor set opens for a deep id
func TestStateExpandTo(t *testing.T) {
	m := Build(sampleForest())
	s := NewState()

	s.ExpandTo(m, "d")

	want := map[string]bool{"a": true, "b": true}
	if s.ExpandedCount() != len(want) {
		t.Errorf("expected exactly %d expanded, got %v", len(want), s.ExpandedIDs())
	}
	for id := range want {
		if !s.IsExpanded(id) {
			t.Errorf("expected ancestor %s expanded", id)
		}
	}
	if s.IsExpanded("d") {
		t.Error("the target itself must not be expanded")
	}
	if s.IsExpanded("c") {
		t.Error("siblings off the path must not be expanded")
	}
}

// TestStateExpandToRoot verifies a root target opens nothing
func TestStateExpandToRoot(t *testing.T) {
	m := Build(sampleForest())
	s := NewState()

	s.ExpandTo(m, "a")

	if s.ExpandedCount() != 0 {
		t.Errorf("expected empty set for a root target, got %v", s.ExpandedIDs())
	}
}

// TestStateExpandToUnknown verifies an unknown id leaves the set untouched
func TestStateExpandToUnknown(t *testing.T) {
	m := Build(sampleForest())
	s := NewState()
	s.Expand("a")

	s.ExpandTo(m, "missing")

	if s.ExpandedCount() != 1 || !s.IsExpanded("a") {
		t.Errorf("expected set unchanged, got %v", s.ExpandedIDs())
	}
}

// TestStateDrag verifies the single drag source lifecycle
func TestStateDrag(t *testing.T) {
	s := NewState()

	if s.Dragged() != "" {
		t.Errorf("fresh state must have no drag, got %q", s.Dragged())
	}

	s.StartDrag("a")
	if s.Dragged() != "a" {
		t.Errorf("expected a dragged, got %q", s.Dragged())
	}

	// A new drag replaces the old source rather than stacking.
	s.StartDrag("b")
	if s.Dragged() != "b" {
		t.Errorf("expected b dragged, got %q", s.Dragged())
	}

	s.ClearDrag()
	if s.Dragged() != "" {
		t.Errorf("expected drag cleared, got %q", s.Dragged())
	}
}
