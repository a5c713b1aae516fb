package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Dicklesworthstone/arbor/pkg/analysis"
	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// GenerateMarkdown creates a markdown export of the tree with a summary
// header and a nested bullet list of every item.
func GenerateMarkdown(items []model.Item, title string) (string, error) {
	m, rows, err := build(items)
	if err != nil {
		return "", err
	}
	shape := analysis.Analyze(m)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total Items:** %d\n", shape.NodeCount))
	sb.WriteString(fmt.Sprintf("- **Top-Level Items:** %d\n", shape.RootCount))
	sb.WriteString(fmt.Sprintf("- **Branches:** %d\n", shape.BranchCount))
	sb.WriteString(fmt.Sprintf("- **Leaves:** %d\n", shape.LeafCount))
	sb.WriteString(fmt.Sprintf("- **Max Depth:** %d\n", shape.MaxDepth))
	if shape.DraggableCount > 0 {
		sb.WriteString(fmt.Sprintf("- **Draggable:** %d\n", shape.DraggableCount))
	}
	sb.WriteString("\n")

	sb.WriteString("## Contents\n\n")
	for _, row := range rows {
		item := row.node.Item
		sb.WriteString(strings.Repeat("  ", row.node.Depth))
		sb.WriteString("- ")
		if row.node.IsBranch() {
			sb.WriteString(fmt.Sprintf("**%s**", item.Name))
		} else {
			sb.WriteString(item.Name)
		}
		sb.WriteString(fmt.Sprintf(" `%s`", item.ID))
		sb.WriteString(itemNotes(item))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if insights := shape.Insights(); len(insights) > 0 {
		sb.WriteString("## Structure\n\n")
		for _, insight := range insights {
			sb.WriteString(fmt.Sprintf("- **%s:** %s\n", insight.Label, insight.Detail))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func itemNotes(item *model.Item) string {
	var notes []string
	if item.Draggable {
		notes = append(notes, "draggable")
	}
	if !item.CanDrop() {
		notes = append(notes, "drop-locked")
	}
	if !item.IsLeaf() && len(item.Children) == 0 {
		notes = append(notes, "empty")
	}
	if len(notes) == 0 {
		return ""
	}
	return fmt.Sprintf(" *(%s)*", strings.Join(notes, ", "))
}

// SaveMarkdownToFile saves the markdown export to the given path.
func SaveMarkdownToFile(items []model.Item, filename, title string) error {
	content, err := GenerateMarkdown(items, title)
	if err != nil {
		return fmt.Errorf("generate markdown: %w", err)
	}
	return os.WriteFile(filename, []byte(content), 0644)
}
