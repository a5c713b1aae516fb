package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// hashNode is the canonical encoding fed to the hash. Every field is
// explicit, so a leaf (children null) and an empty branch (children [])
// encode differently, and callbacks and glyphs never participate.
type hashNode struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Draggable bool       `json:"draggable"`
	Droppable *bool      `json:"droppable"`
	Actions   []string   `json:"actions"`
	Children  []hashNode `json:"children"`
}

func toHashNodes(items []model.Item) []hashNode {
	if items == nil {
		return nil
	}
	nodes := make([]hashNode, len(items))
	for i := range items {
		item := &items[i]
		var labels []string
		for _, action := range item.Actions {
			labels = append(labels, action.Label)
		}
		nodes[i] = hashNode{
			ID:        item.ID,
			Name:      item.Name,
			Draggable: item.Draggable,
			Droppable: item.Droppable,
			Actions:   labels,
			Children:  toHashNodes(item.Children),
		}
	}
	return nodes
}

// ComputeForestHash returns a stable content hash of the forest, used to
// skip rebuilds when a file write did not change the data.
func ComputeForestHash(items []model.Item) string {
	data, err := json.Marshal(toHashNodes(items))
	if err != nil {
		// Plain strings and bools, this cannot fail in practice.
		return fmt.Sprintf("unhashable:%d", len(items))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
