// state.go - Selection, expansion and drag state for one tree instance (arb-3f2k)
package tree

import "sort"

// State holds the transient view state a tree widget owns: at most one
// selected ID, the set of expanded branch IDs, and at most one in-flight
// drag source. A node renders open exactly when its ID is in the
// expanded set; there is no per-node open flag anywhere else.
type State struct {
	selected string
	expanded map[string]bool
	dragged  string
}

// NewState creates an empty state: nothing selected, everything
// collapsed, no drag in flight.
func NewState() *State {
	return &State{
		expanded: make(map[string]bool),
	}
}

// Selected returns the selected ID, or "" when nothing is selected.
func (s *State) Selected() string {
	return s.selected
}

// HasSelection returns true when an item is selected.
func (s *State) HasSelection() bool {
	return s.selected != ""
}

// Select marks id as the selected item.
func (s *State) Select(id string) {
	s.selected = id
}

// ClearSelection removes any selection.
func (s *State) ClearSelection() {
	s.selected = ""
}

// IsExpanded reports set membership, which is the only source of truth
// for a branch's open state.
func (s *State) IsExpanded(id string) bool {
	return s.expanded[id]
}

// Expand adds id to the expanded set.
func (s *State) Expand(id string) {
	s.expanded[id] = true
}

// Collapse removes id from the expanded set.
func (s *State) Collapse(id string) {
	delete(s.expanded, id)
}

// Toggle flips id's membership in the expanded set.
func (s *State) Toggle(id string) {
	if s.expanded[id] {
		delete(s.expanded, id)
	} else {
		s.expanded[id] = true
	}
}

// ExpandedCount returns the number of expanded branches.
func (s *State) ExpandedCount() int {
	return len(s.expanded)
}

// ExpandedIDs returns the expanded set as a sorted slice.
func (s *State) ExpandedIDs() []string {
	ids := make([]string, 0, len(s.expanded))
	for id := range s.expanded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ExpandAll expands every branch in the model, including empty ones.
func (s *State) ExpandAll(m *Model) {
	m.Walk(func(node *Node) {
		if node.IsBranch() {
			s.expanded[node.Item.ID] = true
		}
	})
}

// CollapseAll empties the expanded set.
func (s *State) CollapseAll() {
	s.expanded = make(map[string]bool)
}

// ExpandTo expands exactly the ancestors of id so the node itself
// becomes visible. The node's own branch state and every other branch
// are untouched. Unknown IDs leave the set unchanged.
func (s *State) ExpandTo(m *Model, id string) {
	for _, ancestor := range m.AncestorPath(id) {
		s.expanded[ancestor] = true
	}
}

// Dragged returns the drag source ID, or "" when no drag is in flight.
func (s *State) Dragged() string {
	return s.dragged
}

// StartDrag marks id as the single drag source.
func (s *State) StartDrag(id string) {
	s.dragged = id
}

// ClearDrag ends any in-flight drag.
func (s *State) ClearDrag() {
	s.dragged = ""
}
