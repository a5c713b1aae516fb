package export

import (
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Dicklesworthstone/arbor/pkg/analysis"
	"github.com/Dicklesworthstone/arbor/pkg/model"
	"github.com/Dicklesworthstone/arbor/pkg/tree"
)

const htmlStyles = `
  :root { --primary: #5A56E0; --muted: #6C757D; --border: #DDDDDD; --bg: #FFFFFF; --fg: #1A1A1A; }
  @media (prefers-color-scheme: dark) {
    :root { --primary: #7D79F6; --muted: #9AA0A6; --border: #3C3C3C; --bg: #1E1E2E; --fg: #E8E8E8; }
  }
  body { font-family: ui-monospace, Menlo, Consolas, monospace; background: var(--bg); color: var(--fg); margin: 2rem auto; max-width: 60rem; padding: 0 1rem; }
  h1 { color: var(--primary); border-bottom: 2px solid var(--border); padding-bottom: .4rem; }
  .meta { color: var(--muted); font-size: .85rem; }
  .chips { margin: 1rem 0; }
  .chip { display: inline-block; border: 1px solid var(--border); border-radius: 1rem; padding: .15rem .7rem; margin-right: .4rem; font-size: .8rem; color: var(--muted); }
  ul.tree, ul.tree ul { list-style: none; padding-left: 1.4rem; border-left: 1px solid var(--border); }
  ul.tree { border-left: none; padding-left: 0; }
  ul.tree li { margin: .2rem 0; }
  details > summary { cursor: pointer; font-weight: 600; }
  .id { color: var(--muted); font-size: .8rem; margin-left: .5rem; }
  .badge { color: var(--primary); font-size: .75rem; margin-left: .4rem; }
  .empty { color: var(--muted); font-style: italic; }
`

// GenerateHTML creates a self-contained HTML page with a collapsible
// rendering of the tree. No external assets, works offline.
func GenerateHTML(items []model.Item, title string) (string, error) {
	m, _, err := build(items)
	if err != nil {
		return "", err
	}
	shape := analysis.Analyze(m)

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal items: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString("<style>" + htmlStyles + "</style>\n")
	sb.WriteString("</head>\n<body>\n")

	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(title)))
	sb.WriteString(fmt.Sprintf("<p class=\"meta\">Generated: %s</p>\n", time.Now().Format("2006-01-02 15:04:05")))

	sb.WriteString("<div class=\"chips\">\n")
	sb.WriteString(fmt.Sprintf("<span class=\"chip\">%d items</span>\n", shape.NodeCount))
	sb.WriteString(fmt.Sprintf("<span class=\"chip\">%d branches</span>\n", shape.BranchCount))
	sb.WriteString(fmt.Sprintf("<span class=\"chip\">%d leaves</span>\n", shape.LeafCount))
	sb.WriteString(fmt.Sprintf("<span class=\"chip\">depth %d</span>\n", shape.MaxDepth))
	sb.WriteString("</div>\n")

	sb.WriteString("<ul class=\"tree\">\n")
	for _, root := range m.Roots {
		writeHTMLNode(&sb, root)
	}
	sb.WriteString("</ul>\n")

	sb.WriteString("<script id=\"forest-data\" type=\"application/json\">\n")
	sb.Write(data)
	sb.WriteString("\n</script>\n")

	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

func writeHTMLNode(sb *strings.Builder, node *tree.Node) {
	item := node.Item
	label := html.EscapeString(item.Name) + fmt.Sprintf("<span class=\"id\">%s</span>", html.EscapeString(item.ID))
	if item.Draggable {
		label += "<span class=\"badge\">drag</span>"
	}

	if !node.IsBranch() {
		sb.WriteString(fmt.Sprintf("<li>%s</li>\n", label))
		return
	}

	sb.WriteString("<li><details open><summary>")
	sb.WriteString(label)
	sb.WriteString("</summary>\n")
	if len(node.Children) == 0 {
		sb.WriteString("<ul><li class=\"empty\">empty</li></ul>\n")
	} else {
		sb.WriteString("<ul>\n")
		for _, child := range node.Children {
			writeHTMLNode(sb, child)
		}
		sb.WriteString("</ul>\n")
	}
	sb.WriteString("</details></li>\n")
}

// SaveHTMLToFile saves the HTML export to the given path.
func SaveHTMLToFile(items []model.Item, filename, title string) error {
	content, err := GenerateHTML(items, title)
	if err != nil {
		return fmt.Errorf("generate html: %w", err)
	}
	return os.WriteFile(filename, []byte(content), 0644)
}
