package export

import (
	"bytes"
	"fmt"
	"os"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

const (
	pngRowHeight = 20
	pngIndent    = 22
	pngPadX      = 16
	pngPadTop    = 44
	pngCharWidth = 7
	pngDotRadius = 3
)

// GeneratePNG creates a raster rendering of the full tree using a
// built-in bitmap font, so it needs no font files at runtime.
func GeneratePNG(items []model.Item, title string) ([]byte, error) {
	m, rows, err := build(items)
	if err != nil {
		return nil, err
	}

	deepest, widestName := treeExtent(rows)
	width := pngPadX*2 + (deepest+1)*pngIndent + widestName*pngCharWidth + 60
	height := pngPadTop + len(rows)*pngRowHeight + pngRowHeight

	dc := gg.NewContext(width, height)
	dc.SetRGB255(255, 255, 255)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetRGB255(90, 86, 224)
	dc.DrawString(title, float64(pngPadX), 22)
	dc.SetRGB255(221, 221, 221)
	dc.SetLineWidth(1)
	dc.DrawLine(float64(pngPadX), 30, float64(width-pngPadX), 30)
	dc.Stroke()

	rowY := make(map[string]float64, len(rows))
	for _, row := range rows {
		rowY[row.node.Item.ID] = float64(pngPadTop + row.y*pngRowHeight)
	}

	for _, row := range rows {
		item := row.node.Item
		x := float64(pngPadX + row.node.Depth*pngIndent)
		y := rowY[item.ID]

		if parentID, ok := m.Parents[item.ID]; ok {
			px := float64(pngPadX + (row.node.Depth-1)*pngIndent)
			py := rowY[parentID]
			dc.SetRGB255(204, 204, 204)
			dc.DrawLine(px, py+pngDotRadius, px, y)
			dc.DrawLine(px, y, x-pngDotRadius-2, y)
			dc.Stroke()
		}

		if row.node.IsBranch() {
			dc.SetRGB255(90, 86, 224)
		} else {
			dc.SetRGB255(108, 117, 125)
		}
		dc.DrawCircle(x, y, pngDotRadius)
		dc.Fill()

		dc.SetRGB255(26, 26, 26)
		dc.DrawString(item.Name, x+pngDotRadius+6, y+4)

		idX := x + pngDotRadius + 6 + float64((len([]rune(item.Name))+1)*pngCharWidth)
		dc.SetRGB255(150, 150, 150)
		dc.DrawString(item.ID, idX, y+4)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// SavePNGToFile saves the PNG export to the given path.
func SavePNGToFile(items []model.Item, filename, title string) error {
	content, err := GeneratePNG(items, title)
	if err != nil {
		return fmt.Errorf("generate png: %w", err)
	}
	return os.WriteFile(filename, content, 0644)
}
