// loader.go - Forest files (JSON or YAML) in, validated items out
package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// wireItem is the on-disk shape of a tree item. Icons travel as plain
// strings and are turned into glyphs during conversion. Children must
// stay a nil-able slice: an absent key is a leaf, an explicit empty list
// is an expandable empty branch.
type wireItem struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Icon         string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	IconColor    string     `json:"iconColor,omitempty" yaml:"iconColor,omitempty"`
	SelectedIcon string     `json:"selectedIcon,omitempty" yaml:"selectedIcon,omitempty"`
	OpenIcon     string     `json:"openIcon,omitempty" yaml:"openIcon,omitempty"`
	Children     []wireItem `json:"children,omitempty" yaml:"children,omitempty"`
	Actions      []string   `json:"actions,omitempty" yaml:"actions,omitempty"`
	Draggable    bool       `json:"draggable,omitempty" yaml:"draggable,omitempty"`
	Droppable    *bool      `json:"droppable,omitempty" yaml:"droppable,omitempty"`
}

// LoadFile reads a forest from path, picking the decoder by extension.
func LoadFile(path string) ([]model.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return nil, fmt.Errorf("unsupported data format %q (want .json, .yaml, or .yml)", filepath.Ext(path))
	}
}

// LoadJSON decodes a forest from JSON. The document may be a single root
// object or an array of roots.
func LoadJSON(data []byte) ([]model.Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var wires []wireItem
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &wires); err != nil {
			return nil, fmt.Errorf("parse forest: %w", err)
		}
	} else {
		var single wireItem
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("parse root: %w", err)
		}
		wires = []wireItem{single}
	}

	return finish(wires)
}

// LoadYAML decodes a forest from YAML. The document may be a sequence of
// roots or a single root mapping.
func LoadYAML(data []byte) ([]model.Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var wires []wireItem
	if err := yaml.Unmarshal(data, &wires); err != nil {
		var single wireItem
		if serr := yaml.Unmarshal(data, &single); serr != nil {
			return nil, fmt.Errorf("parse forest: %w", err)
		}
		wires = []wireItem{single}
	}

	return finish(wires)
}

// finish converts the wire shape and runs the strict forest checks, so
// bad files fail here instead of rendering wrong.
func finish(wires []wireItem) ([]model.Item, error) {
	items := convertAll(wires)
	if err := model.ValidateForest(items); err != nil {
		return nil, fmt.Errorf("validate forest: %w", err)
	}
	return items, nil
}

func convertAll(wires []wireItem) []model.Item {
	if wires == nil {
		return nil
	}
	items := make([]model.Item, len(wires))
	for i, w := range wires {
		items[i] = convert(w)
	}
	return items
}

func convert(w wireItem) model.Item {
	item := model.Item{
		ID:           w.ID,
		Name:         w.Name,
		Icon:         glyphFor(w.Icon, w.IconColor),
		SelectedIcon: glyphFor(w.SelectedIcon, ""),
		OpenIcon:     glyphFor(w.OpenIcon, ""),
		Children:     convertAll(w.Children),
		Draggable:    w.Draggable,
		Droppable:    w.Droppable,
	}
	for _, label := range w.Actions {
		item.Actions = append(item.Actions, model.Action{Label: label})
	}
	return item
}

func glyphFor(text, color string) model.Glyph {
	if text == "" {
		return nil
	}
	if color != "" {
		return model.ColorGlyph{Text: text, Color: color}
	}
	return model.TextGlyph(text)
}
