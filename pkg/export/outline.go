package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// GenerateOutline creates a plain-text rendering of the full tree, the
// same box-drawing shapes the TUI draws but with every branch open.
func GenerateOutline(items []model.Item, title string) (string, error) {
	_, rows, err := build(items)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(title + "\n")
		sb.WriteString(strings.Repeat("=", len([]rune(title))) + "\n\n")
	}

	for _, row := range rows {
		item := row.node.Item
		sb.WriteString(row.prefix)
		sb.WriteString(marker(row.node))
		sb.WriteString(" ")
		sb.WriteString(item.Name)
		if row.node.IsBranch() && len(row.node.Children) == 0 {
			sb.WriteString(" (empty)")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// SaveOutlineToFile writes the outline export to the given path.
func SaveOutlineToFile(items []model.Item, filename, title string) error {
	content, err := GenerateOutline(items, title)
	if err != nil {
		return fmt.Errorf("generate outline: %w", err)
	}
	return os.WriteFile(filename, []byte(content), 0644)
}
