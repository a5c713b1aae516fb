package export

import (
	"fmt"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// Formats lists the supported export format names.
func Formats() []string {
	return []string{"outline", "markdown", "html", "svg", "png"}
}

// Extension maps a format name to its file extension.
func Extension(format string) string {
	switch format {
	case "markdown", "md":
		return "md"
	case "html":
		return "html"
	case "svg":
		return "svg"
	case "png":
		return "png"
	default:
		return "txt"
	}
}

// Save writes the tree to filename in the named format.
func Save(items []model.Item, format, filename, title string) error {
	switch format {
	case "outline", "txt", "text":
		return SaveOutlineToFile(items, filename, title)
	case "markdown", "md":
		return SaveMarkdownToFile(items, filename, title)
	case "html":
		return SaveHTMLToFile(items, filename, title)
	case "svg":
		return SaveSVGToFile(items, filename, title)
	case "png":
		return SavePNGToFile(items, filename, title)
	default:
		return fmt.Errorf("unsupported export format %q (want outline, markdown, html, svg, or png)", format)
	}
}
