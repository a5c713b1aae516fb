// Package diff compares two versions of a forest and reports what
// changed. The TUI uses it to summarize a live reload in a toast.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Dicklesworthstone/arbor/pkg/model"
	"github.com/Dicklesworthstone/arbor/pkg/tree"
)

// ChangeType categorizes a single detected change.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeRenamed  ChangeType = "renamed"
	ChangeMoved    ChangeType = "moved"
	ChangeReshaped ChangeType = "reshaped" // leaf became branch or vice versa
)

// Change represents one difference between the old and new forest.
type Change struct {
	Type      ChangeType `json:"type"`
	ID        string     `json:"id"`
	Message   string     `json:"message"`
	OldName   string     `json:"old_name,omitempty"`
	NewName   string     `json:"new_name,omitempty"`
	OldParent string     `json:"old_parent,omitempty"`
	NewParent string     `json:"new_parent,omitempty"`
}

// Result contains the complete comparison.
type Result struct {
	// HasChanges is true if any changes were detected
	HasChanges bool `json:"has_changes"`

	// Changes lists all detected differences
	Changes []Change `json:"changes"`

	// Summary counts per change type
	AddedCount    int `json:"added_count"`
	RemovedCount  int `json:"removed_count"`
	RenamedCount  int `json:"renamed_count"`
	MovedCount    int `json:"moved_count"`
	ReshapedCount int `json:"reshaped_count"`
}

// Compare builds both forests and diffs them by ID. Output order is
// deterministic: additions, removals, then in-place changes, each sorted
// by ID.
func Compare(oldItems, newItems []model.Item) *Result {
	oldModel := tree.Build(oldItems)
	newModel := tree.Build(newItems)

	result := &Result{Changes: make([]Change, 0)}

	for _, id := range sortedIDs(newModel) {
		if _, ok := oldModel.Index[id]; ok {
			continue
		}
		item := newModel.Index[id].Item
		result.Changes = append(result.Changes, Change{
			Type:    ChangeAdded,
			ID:      id,
			NewName: item.Name,
			Message: fmt.Sprintf("%s (%s) added", item.Name, id),
		})
	}

	for _, id := range sortedIDs(oldModel) {
		if _, ok := newModel.Index[id]; ok {
			continue
		}
		item := oldModel.Index[id].Item
		result.Changes = append(result.Changes, Change{
			Type:    ChangeRemoved,
			ID:      id,
			OldName: item.Name,
			Message: fmt.Sprintf("%s (%s) removed", item.Name, id),
		})
	}

	for _, id := range sortedIDs(oldModel) {
		newNode, ok := newModel.Index[id]
		if !ok {
			continue
		}
		oldNode := oldModel.Index[id]

		if oldNode.Item.Name != newNode.Item.Name {
			result.Changes = append(result.Changes, Change{
				Type:    ChangeRenamed,
				ID:      id,
				OldName: oldNode.Item.Name,
				NewName: newNode.Item.Name,
				Message: fmt.Sprintf("%s renamed to %s", oldNode.Item.Name, newNode.Item.Name),
			})
		}

		oldParent := oldModel.Parents[id]
		newParent := newModel.Parents[id]
		if oldParent != newParent {
			result.Changes = append(result.Changes, Change{
				Type:      ChangeMoved,
				ID:        id,
				OldParent: oldParent,
				NewParent: newParent,
				Message:   fmt.Sprintf("%s moved from %s to %s", newNode.Item.Name, parentLabel(oldParent), parentLabel(newParent)),
			})
		}

		if oldNode.IsBranch() != newNode.IsBranch() {
			kind := "branch"
			if !newNode.IsBranch() {
				kind = "leaf"
			}
			result.Changes = append(result.Changes, Change{
				Type:    ChangeReshaped,
				ID:      id,
				Message: fmt.Sprintf("%s became a %s", newNode.Item.Name, kind),
			})
		}
	}

	for _, change := range result.Changes {
		switch change.Type {
		case ChangeAdded:
			result.AddedCount++
		case ChangeRemoved:
			result.RemovedCount++
		case ChangeRenamed:
			result.RenamedCount++
		case ChangeMoved:
			result.MovedCount++
		case ChangeReshaped:
			result.ReshapedCount++
		}
	}
	result.HasChanges = len(result.Changes) > 0

	return result
}

func sortedIDs(m *tree.Model) []string {
	ids := make([]string, 0, len(m.Index))
	for id := range m.Index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func parentLabel(id string) string {
	if id == "" {
		return "top level"
	}
	return id
}

// Brief returns a one-line summary suitable for a status toast, like
// "2 added, 1 removed".
func (r *Result) Brief() string {
	if !r.HasChanges {
		return "no changes"
	}

	var parts []string
	if r.AddedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d added", r.AddedCount))
	}
	if r.RemovedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", r.RemovedCount))
	}
	if r.RenamedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d renamed", r.RenamedCount))
	}
	if r.MovedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d moved", r.MovedCount))
	}
	if r.ReshapedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d reshaped", r.ReshapedCount))
	}
	return strings.Join(parts, ", ")
}

// Summary returns a human-readable report of all changes.
func (r *Result) Summary() string {
	if !r.HasChanges {
		return "No changes detected.\n"
	}

	var sb strings.Builder
	sb.WriteString("Tree Changes\n")
	sb.WriteString("============\n\n")
	sb.WriteString(r.Brief())
	sb.WriteString("\n\nDetails:\n")
	for _, change := range r.Changes {
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", change.Type, change.Message))
	}
	sb.WriteString("\n")

	return sb.String()
}
