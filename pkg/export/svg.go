package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

const (
	svgRowHeight = 24
	svgIndent    = 24
	svgPadX      = 20
	svgPadTop    = 56
	svgCharWidth = 8
	svgDotRadius = 4
)

// GenerateSVG creates a vector rendering of the full tree, one row per
// item with connector lines between parents and children.
func GenerateSVG(items []model.Item, title string) (string, error) {
	m, rows, err := build(items)
	if err != nil {
		return "", err
	}

	deepest, widestName := treeExtent(rows)
	width := svgPadX*2 + (deepest+1)*svgIndent + widestName*svgCharWidth + 40
	height := svgPadTop + len(rows)*svgRowHeight + svgRowHeight

	rowY := make(map[string]int, len(rows))
	for _, row := range rows {
		rowY[row.node.Item.ID] = svgPadTop + row.y*svgRowHeight
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#FFFFFF")
	canvas.Text(svgPadX, 30, title, "font-family:monospace;font-size:16px;font-weight:bold;fill:#5A56E0")
	canvas.Line(svgPadX, 40, width-svgPadX, 40, "stroke:#DDDDDD;stroke-width:1")

	for _, row := range rows {
		item := row.node.Item
		x := svgPadX + row.node.Depth*svgIndent
		y := rowY[item.ID]

		if parentID, ok := m.Parents[item.ID]; ok {
			px := svgPadX + (row.node.Depth-1)*svgIndent
			py := rowY[parentID]
			canvas.Line(px, py+svgDotRadius, px, y, "stroke:#CCCCCC;stroke-width:1")
			canvas.Line(px, y, x-svgDotRadius-2, y, "stroke:#CCCCCC;stroke-width:1")
		}

		dotStyle := "fill:#6C757D"
		if row.node.IsBranch() {
			dotStyle = "fill:#5A56E0"
		}
		canvas.Circle(x, y, svgDotRadius, dotStyle)

		labelStyle := "font-family:monospace;font-size:13px;fill:#1A1A1A"
		if row.node.IsBranch() {
			labelStyle = "font-family:monospace;font-size:13px;font-weight:bold;fill:#1A1A1A"
		}
		canvas.Text(x+svgDotRadius+6, y+4, item.Name, labelStyle)

		idX := x + svgDotRadius + 6 + (len([]rune(item.Name))+1)*svgCharWidth
		canvas.Text(idX, y+4, item.ID, "font-family:monospace;font-size:10px;fill:#999999")
	}

	canvas.End()
	return buf.String(), nil
}

// SaveSVGToFile saves the SVG export to the given path.
func SaveSVGToFile(items []model.Item, filename, title string) error {
	content, err := GenerateSVG(items, title)
	if err != nil {
		return fmt.Errorf("generate svg: %w", err)
	}
	return os.WriteFile(filename, []byte(content), 0644)
}
