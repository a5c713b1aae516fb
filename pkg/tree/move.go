// move.go - Forest surgery for drop-to-move in caller-owned item slices (arb-3f2k)
package tree

import (
	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// Move returns a copy of the forest with the sourceID subtree detached
// and appended to targetID's children. An empty targetID appends the
// subtree at the top level, matching the container drop sentinel. The
// input slice is never mutated; on refusal the result is nil and the
// caller keeps its original forest.
//
// A move is refused when the source is missing, when source and target
// are the same item, or when the target sits inside the source subtree
// (detaching the source takes the target with it). Dropping onto a leaf
// is allowed and turns the leaf into a branch.
func Move(items []model.Item, sourceID, targetID string) ([]model.Item, bool) {
	if sourceID == "" || sourceID == targetID {
		return nil, false
	}

	forest := make([]model.Item, len(items))
	for i := range items {
		forest[i] = items[i].Clone()
	}

	forest, source := detachItem(forest, sourceID)
	if source == nil {
		return nil, false
	}

	if targetID == "" {
		return append(forest, *source), true
	}
	if !attachItem(forest, targetID, *source) {
		return nil, false
	}
	return forest, true
}

// detachItem removes the subtree rooted at id from the forest, returning
// the pruned forest and the detached subtree, or nil when id is absent.
// Removing a branch's last child leaves an empty branch, not a leaf.
func detachItem(items []model.Item, id string) ([]model.Item, *model.Item) {
	for i := range items {
		if items[i].ID == id {
			detached := items[i]
			return append(items[:i], items[i+1:]...), &detached
		}
		if items[i].Children != nil {
			children, detached := detachItem(items[i].Children, id)
			if detached != nil {
				items[i].Children = children
				return items, detached
			}
		}
	}
	return items, nil
}

// attachItem appends child to the children of id, reporting whether the
// target was found.
func attachItem(items []model.Item, id string, child model.Item) bool {
	for i := range items {
		if items[i].ID == id {
			items[i].Children = append(items[i].Children, child)
			return true
		}
		if attachItem(items[i].Children, id, child) {
			return true
		}
	}
	return false
}
