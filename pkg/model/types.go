package model

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Item represents one caller-supplied node in a tree
type Item struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Icon         Glyph    `json:"-"`
	SelectedIcon Glyph    `json:"-"`
	OpenIcon     Glyph    `json:"-"`
	Children     []Item   `json:"children,omitempty"`
	Actions      []Action `json:"actions,omitempty"`
	OnClick      func()   `json:"-"`
	Draggable    bool     `json:"draggable,omitempty"`
	Droppable    *bool    `json:"droppable,omitempty"`
}

// IsLeaf returns true if the item has no children field at all.
// An empty-but-present children slice is an expandable (empty) branch,
// not a leaf.
func (i *Item) IsLeaf() bool {
	return i.Children == nil
}

// CanDrop returns true if the item accepts drops. Droppable defaults to
// true when unset.
func (i *Item) CanDrop() bool {
	return i.Droppable == nil || *i.Droppable
}

// Clone creates a deep copy of the item and its subtree
func (i Item) Clone() Item {
	clone := i

	if i.Droppable != nil {
		v := *i.Droppable
		clone.Droppable = &v
	}

	if i.Actions != nil {
		clone.Actions = make([]Action, len(i.Actions))
		copy(clone.Actions, i.Actions)
	}

	if i.Children != nil {
		clone.Children = make([]Item, len(i.Children))
		for idx, child := range i.Children {
			clone.Children[idx] = child.Clone()
		}
	}

	return clone
}

// Validate checks if the item data is logically valid
func (i *Item) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("item ID cannot be empty")
	}
	if i.Name == "" {
		return fmt.Errorf("item name cannot be empty")
	}
	return nil
}

// ValidateForest checks every item in the forest and rejects duplicate IDs.
// The tree builder itself tolerates malformed input by dropping revisited
// nodes; this is the loader-facing strict check.
func ValidateForest(items []Item) error {
	seen := make(map[string]bool)
	var walk func(item *Item) error
	walk = func(item *Item) error {
		if err := item.Validate(); err != nil {
			return err
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate item ID: %s", item.ID)
		}
		seen[item.ID] = true
		for idx := range item.Children {
			if err := walk(&item.Children[idx]); err != nil {
				return err
			}
		}
		return nil
	}
	for idx := range items {
		if err := walk(&items[idx]); err != nil {
			return err
		}
	}
	return nil
}

// Action is auxiliary row content surfaced when its item is selected or hovered
type Action struct {
	Label string `json:"label"`
	Do    func() `json:"-"`
}

// Glyph is a renderable icon fragment. The set of implementations is
// deliberately closed: the renderer only ever calls Render, and callers
// pick from the concrete types below rather than supplying arbitrary
// payloads.
type Glyph interface {
	Render() string
}

// TextGlyph renders a plain string (typically a single rune or emoji)
type TextGlyph string

// Render returns the glyph text unstyled
func (g TextGlyph) Render() string {
	return string(g)
}

// ColorGlyph renders text in a fixed terminal color
type ColorGlyph struct {
	Text  string
	Color string
}

// Render returns the glyph text with its foreground color applied
func (g ColorGlyph) Render() string {
	if g.Color == "" {
		return g.Text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color)).Render(g.Text)
}

// RootDropTarget returns the synthetic item passed to drop callbacks when
// something is dropped on the container area beneath the last tree row.
// Its empty ID distinguishes it from any real item, which must carry a
// non-empty ID.
func RootDropTarget() *Item {
	return &Item{Name: "root"}
}
