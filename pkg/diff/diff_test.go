package diff

import (
	"strings"
	"testing"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

func baseForest() []model.Item {
	return []model.Item{
		{ID: "a", Name: "Alpha", Children: []model.Item{
			{ID: "b", Name: "Bravo"},
			{ID: "c", Name: "Charlie"},
		}},
	}
}

// TestCompare_NoChanges verifies identical forests produce an empty
// result
func TestCompare_NoChanges(t *testing.T) {
	result := Compare(baseForest(), baseForest())

	if result.HasChanges {
		t.Errorf("expected no changes, got %v", result.Changes)
	}
	if result.Brief() != "no changes" {
		t.Errorf("expected 'no changes', got %q", result.Brief())
	}
	if !strings.Contains(result.Summary(), "No changes") {
		t.Errorf("unexpected summary: %q", result.Summary())
	}
}

// TestCompare_Added verifies new IDs are reported as additions
func TestCompare_Added(t *testing.T) {
	newForest := baseForest()
	newForest[0].Children = append(newForest[0].Children, model.Item{ID: "d", Name: "Delta"})

	result := Compare(baseForest(), newForest)

	if result.AddedCount != 1 {
		t.Fatalf("expected 1 addition, got %d: %v", result.AddedCount, result.Changes)
	}
	change := result.Changes[0]
	if change.Type != ChangeAdded || change.ID != "d" || change.NewName != "Delta" {
		t.Errorf("unexpected change: %+v", change)
	}
}

// TestCompare_Removed verifies vanished IDs are reported as removals
func TestCompare_Removed(t *testing.T) {
	newForest := baseForest()
	newForest[0].Children = newForest[0].Children[:1]

	result := Compare(baseForest(), newForest)

	if result.RemovedCount != 1 {
		t.Fatalf("expected 1 removal, got %d: %v", result.RemovedCount, result.Changes)
	}
	change := result.Changes[0]
	if change.Type != ChangeRemoved || change.ID != "c" || change.OldName != "Charlie" {
		t.Errorf("unexpected change: %+v", change)
	}
}

// TestCompare_Renamed verifies a name change on a surviving ID
func TestCompare_Renamed(t *testing.T) {
	newForest := baseForest()
	newForest[0].Children[0].Name = "Bravo Two"

	result := Compare(baseForest(), newForest)

	if result.RenamedCount != 1 {
		t.Fatalf("expected 1 rename, got %d: %v", result.RenamedCount, result.Changes)
	}
	change := result.Changes[0]
	if change.Type != ChangeRenamed || change.OldName != "Bravo" || change.NewName != "Bravo Two" {
		t.Errorf("unexpected change: %+v", change)
	}
}

// TestCompare_Moved verifies a parent change, including moves to the top
// level
func TestCompare_Moved(t *testing.T) {
	newForest := []model.Item{
		{ID: "a", Name: "Alpha", Children: []model.Item{
			{ID: "b", Name: "Bravo"},
		}},
		{ID: "c", Name: "Charlie"},
	}

	result := Compare(baseForest(), newForest)

	if result.MovedCount != 1 {
		t.Fatalf("expected 1 move, got %d: %v", result.MovedCount, result.Changes)
	}
	change := result.Changes[0]
	if change.Type != ChangeMoved || change.ID != "c" {
		t.Fatalf("unexpected change: %+v", change)
	}
	if change.OldParent != "a" || change.NewParent != "" {
		t.Errorf("expected move a to top level, got %q to %q", change.OldParent, change.NewParent)
	}
	if !strings.Contains(change.Message, "top level") {
		t.Errorf("expected readable move message, got %q", change.Message)
	}
}

// TestCompare_Reshaped verifies the leaf versus branch transition is
// reported
func TestCompare_Reshaped(t *testing.T) {
	newForest := baseForest()
	newForest[0].Children[0].Children = []model.Item{}

	result := Compare(baseForest(), newForest)

	if result.ReshapedCount != 1 {
		t.Fatalf("expected 1 reshape, got %d: %v", result.ReshapedCount, result.Changes)
	}
	if !strings.Contains(result.Changes[0].Message, "became a branch") {
		t.Errorf("unexpected message: %q", result.Changes[0].Message)
	}
}

// TestCompare_MixedBrief verifies the toast line aggregates counts in a
// fixed order
func TestCompare_MixedBrief(t *testing.T) {
	newForest := []model.Item{
		{ID: "a", Name: "Alpha Prime", Children: []model.Item{
			{ID: "b", Name: "Bravo"},
			{ID: "d", Name: "Delta"},
		}},
	}

	result := Compare(baseForest(), newForest)

	brief := result.Brief()
	if brief != "1 added, 1 removed, 1 renamed" {
		t.Errorf("unexpected brief: %q", brief)
	}
	if !result.HasChanges {
		t.Error("expected HasChanges")
	}
}

// TestCompare_DeterministicOrder verifies kinds group in order and IDs
// sort within each kind
func TestCompare_DeterministicOrder(t *testing.T) {
	oldForest := []model.Item{
		{ID: "keep", Name: "Keep"},
		{ID: "z-gone", Name: "Z"},
		{ID: "a-gone", Name: "A"},
	}
	newForest := []model.Item{
		{ID: "keep", Name: "Keep"},
		{ID: "z-new", Name: "Z"},
		{ID: "a-new", Name: "A"},
	}

	result := Compare(oldForest, newForest)

	got := make([]string, len(result.Changes))
	for i, c := range result.Changes {
		got[i] = string(c.Type) + ":" + c.ID
	}
	want := []string{"added:a-new", "added:z-new", "removed:a-gone", "removed:z-gone"}
	if len(got) != len(want) {
		t.Fatalf("changes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("changes = %v, want %v", got, want)
		}
	}
}

// TestCompare_EmptyInputs verifies nil forests compare cleanly
func TestCompare_EmptyInputs(t *testing.T) {
	if Compare(nil, nil).HasChanges {
		t.Error("expected no changes for two empty forests")
	}

	result := Compare(nil, baseForest())
	if result.AddedCount != 3 {
		t.Errorf("expected everything added, got %d", result.AddedCount)
	}

	result = Compare(baseForest(), nil)
	if result.RemovedCount != 3 {
		t.Errorf("expected everything removed, got %d", result.RemovedCount)
	}
}
