// Package export renders a forest to shareable formats: plain outline,
// markdown, self-contained HTML, SVG, and PNG. Exports always show the
// full tree regardless of on-screen expansion.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dicklesworthstone/arbor/pkg/model"
	"github.com/Dicklesworthstone/arbor/pkg/tree"
)

// exportRow is one laid-out line of the fully expanded tree.
type exportRow struct {
	node   *tree.Node
	prefix string
	y      int
}

// flattenAll lays out every node depth-first with box-drawing prefixes,
// the same shapes the TUI draws.
func flattenAll(m *tree.Model) []exportRow {
	var rows []exportRow

	var walk func(node *tree.Node, ancestorsLast []bool, last bool)
	walk = func(node *tree.Node, ancestorsLast []bool, last bool) {
		rows = append(rows, exportRow{
			node:   node,
			prefix: buildExportPrefix(node, ancestorsLast, last),
			y:      len(rows),
		})
		nextAncestors := make([]bool, len(ancestorsLast)+1)
		copy(nextAncestors, ancestorsLast)
		nextAncestors[len(ancestorsLast)] = last
		for i, child := range node.Children {
			walk(child, nextAncestors, i == len(node.Children)-1)
		}
	}

	for i, root := range m.Roots {
		walk(root, nil, i == len(m.Roots)-1)
	}
	return rows
}

func buildExportPrefix(node *tree.Node, ancestorsLast []bool, last bool) string {
	if node.Depth == 0 {
		return ""
	}

	var sb strings.Builder
	for _, ancestorLast := range ancestorsLast[1:] {
		if ancestorLast {
			sb.WriteString("    ")
		} else {
			sb.WriteString("│   ")
		}
	}
	if last {
		sb.WriteString("└── ")
	} else {
		sb.WriteString("├── ")
	}
	return sb.String()
}

func marker(node *tree.Node) string {
	if node.IsBranch() {
		return "▸"
	}
	return "•"
}

// GenerateExportFilename creates a timestamped filename like
// tree_20240101_120000.svg.
func GenerateExportFilename(base, ext string) string {
	safeName := strings.ReplaceAll(base, " ", "_")
	safeName = strings.ReplaceAll(safeName, "/", "_")
	return fmt.Sprintf("%s_%s.%s", safeName, time.Now().Format("20060102_150405"), ext)
}

// treeExtent reports the deepest nesting level and the widest name in
// runes, used to size image canvases.
func treeExtent(rows []exportRow) (deepest, widestName int) {
	for _, row := range rows {
		if row.node.Depth > deepest {
			deepest = row.node.Depth
		}
		if n := len([]rune(row.node.Item.Name)); n > widestName {
			widestName = n
		}
	}
	return deepest, widestName
}

// build is shared by all generators so every format sees the same
// cleaned model.
func build(items []model.Item) (*tree.Model, []exportRow, error) {
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("no items to export")
	}
	m := tree.Build(items)
	return m, flattenAll(m), nil
}
