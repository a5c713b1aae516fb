package analysis

import (
	"testing"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

func TestComputeForestHashStable(t *testing.T) {
	items := []model.Item{
		{ID: "a", Name: "Alpha", Children: []model.Item{{ID: "b", Name: "Bravo"}}},
	}

	first := ComputeForestHash(items)
	second := ComputeForestHash(items)
	if first != second {
		t.Errorf("expected identical input to hash identically, got %q vs %q", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected sha256 hex digest, got %q", first)
	}
}

func TestComputeForestHashDetectsChanges(t *testing.T) {
	base := []model.Item{{ID: "a", Name: "Alpha"}}
	renamed := []model.Item{{ID: "a", Name: "Alpha Two"}}
	reshaped := []model.Item{{ID: "a", Name: "Alpha", Children: []model.Item{}}}

	baseHash := ComputeForestHash(base)
	if ComputeForestHash(renamed) == baseHash {
		t.Error("expected rename to change the hash")
	}
	if ComputeForestHash(reshaped) == baseHash {
		t.Error("expected leaf-to-branch change to change the hash")
	}
}

func TestComputeForestHashIgnoresCallbacks(t *testing.T) {
	plain := []model.Item{{ID: "a", Name: "Alpha"}}
	wired := []model.Item{{ID: "a", Name: "Alpha", OnClick: func() {}, Icon: model.TextGlyph("X")}}

	if ComputeForestHash(plain) != ComputeForestHash(wired) {
		t.Error("expected callbacks and glyphs to be excluded from the hash")
	}
}
