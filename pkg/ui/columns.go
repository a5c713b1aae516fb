package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/arbor/pkg/tree"
)

// ColumnsModel renders the forest as Miller columns: each column lists
// one nesting level, and the highlighted branch in a column feeds the
// column to its right. It shares the host's tree model and never
// mutates it.
type ColumnsModel struct {
	model      *tree.Model
	path       []string // Highlighted id per column, left to right
	focusedCol int      // Index into path
	theme      Theme
	width      int
	height     int
}

// NewColumnsModel creates a columns view over the given model.
func NewColumnsModel(m *tree.Model, theme Theme) ColumnsModel {
	c := ColumnsModel{model: m, theme: theme}
	c.reset()
	return c
}

func (c *ColumnsModel) reset() {
	c.path = nil
	c.focusedCol = 0
	if c.model != nil && len(c.model.Roots) > 0 {
		c.path = []string{c.model.Roots[0].Item.ID}
	}
}

// SetModel swaps in a rebuilt model, keeping as much of the drill path
// as still resolves.
func (c *ColumnsModel) SetModel(m *tree.Model) {
	c.model = m
	if m == nil {
		c.path = nil
		c.focusedCol = 0
		return
	}

	// Keep the longest path prefix whose ids still sit in their columns.
	valid := 0
	for i, id := range c.path {
		if !containsID(c.columnEntries(i), id) {
			break
		}
		valid = i + 1
	}
	c.path = c.path[:valid]

	if len(c.path) == 0 {
		c.reset()
		return
	}
	if c.focusedCol >= len(c.path) {
		c.focusedCol = len(c.path) - 1
	}
}

// SetSize updates the view dimensions.
func (c *ColumnsModel) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// FocusID drills straight to the given id, one column per ancestor.
func (c *ColumnsModel) FocusID(id string) bool {
	if c.model == nil {
		return false
	}
	if _, ok := c.model.Index[id]; !ok {
		return false
	}

	ancestors := c.model.AncestorPath(id)
	path := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		path = append(path, ancestors[i])
	}
	path = append(path, id)

	c.path = path
	c.focusedCol = len(path) - 1
	return true
}

// columnEntries returns the nodes listed in the given column.
func (c *ColumnsModel) columnEntries(col int) []*tree.Node {
	if c.model == nil {
		return nil
	}
	if col == 0 {
		return c.model.Roots
	}
	parent := c.nodeAtColumn(col - 1)
	if parent == nil || !parent.IsBranch() {
		return nil
	}
	return parent.Children
}

// nodeAtColumn returns the highlighted node of the given column.
func (c *ColumnsModel) nodeAtColumn(col int) *tree.Node {
	if c.model == nil || col < 0 || col >= len(c.path) {
		return nil
	}
	return c.model.Index[c.path[col]]
}

func containsID(nodes []*tree.Node, id string) bool {
	for _, node := range nodes {
		if node.Item.ID == id {
			return true
		}
	}
	return false
}

// MoveDown moves the highlight down within the focused column. Deeper
// columns belong to the old highlight and are discarded.
func (c *ColumnsModel) MoveDown() {
	c.moveHighlight(1)
}

// MoveUp moves the highlight up within the focused column.
func (c *ColumnsModel) MoveUp() {
	c.moveHighlight(-1)
}

func (c *ColumnsModel) moveHighlight(delta int) {
	entries := c.columnEntries(c.focusedCol)
	if len(entries) == 0 || c.focusedCol >= len(c.path) {
		return
	}

	idx := 0
	for i, node := range entries {
		if node.Item.ID == c.path[c.focusedCol] {
			idx = i
			break
		}
	}

	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(entries)-1 {
		idx = len(entries) - 1
	}

	if c.path[c.focusedCol] != entries[idx].Item.ID {
		c.path[c.focusedCol] = entries[idx].Item.ID
		c.path = c.path[:c.focusedCol+1]
	}
}

// MoveRight drills into the highlighted branch, focusing its first
// child (or the remembered one when stepping back right).
func (c *ColumnsModel) MoveRight() {
	if c.focusedCol < len(c.path)-1 {
		// A deeper highlight is still valid, just refocus it.
		c.focusedCol++
		return
	}

	node := c.nodeAtColumn(c.focusedCol)
	if node == nil || !node.IsBranch() || len(node.Children) == 0 {
		return
	}
	c.path = append(c.path, node.Children[0].Item.ID)
	c.focusedCol++
}

// MoveLeft steps focus back to the parent column without forgetting the
// deeper highlight.
func (c *ColumnsModel) MoveLeft() {
	if c.focusedCol > 0 {
		c.focusedCol--
	}
}

// JumpToFirstColumn focuses the root column.
func (c *ColumnsModel) JumpToFirstColumn() {
	c.focusedCol = 0
}

// JumpToLastColumn focuses the deepest drilled column.
func (c *ColumnsModel) JumpToLastColumn() {
	if len(c.path) > 0 {
		c.focusedCol = len(c.path) - 1
	}
}

// MoveToTop highlights the first entry of the focused column.
func (c *ColumnsModel) MoveToTop() {
	entries := c.columnEntries(c.focusedCol)
	if len(entries) == 0 || c.focusedCol >= len(c.path) {
		return
	}
	if c.path[c.focusedCol] != entries[0].Item.ID {
		c.path[c.focusedCol] = entries[0].Item.ID
		c.path = c.path[:c.focusedCol+1]
	}
}

// MoveToBottom highlights the last entry of the focused column.
func (c *ColumnsModel) MoveToBottom() {
	entries := c.columnEntries(c.focusedCol)
	if len(entries) == 0 || c.focusedCol >= len(c.path) {
		return
	}
	last := entries[len(entries)-1].Item.ID
	if c.path[c.focusedCol] != last {
		c.path[c.focusedCol] = last
		c.path = c.path[:c.focusedCol+1]
	}
}

// SelectedID returns the id highlighted in the focused column.
func (c *ColumnsModel) SelectedID() string {
	if c.focusedCol >= 0 && c.focusedCol < len(c.path) {
		return c.path[c.focusedCol]
	}
	return ""
}

// SelectedNode returns the node highlighted in the focused column.
func (c *ColumnsModel) SelectedNode() *tree.Node {
	return c.nodeAtColumn(c.focusedCol)
}

// Depth returns the number of drilled columns.
func (c *ColumnsModel) Depth() int {
	return len(c.path)
}

// View renders the columns side by side. The preview column (children
// of the deepest highlight) is shown but not focusable.
func (c ColumnsModel) View(width, height int) string {
	if c.model == nil || len(c.model.Roots) == 0 {
		return c.theme.Renderer.NewStyle().
			Foreground(c.theme.Muted).
			Padding(1, 2).
			Render("No items to display.")
	}

	columnCount := len(c.path)
	if last := c.nodeAtColumn(len(c.path) - 1); last != nil && last.IsBranch() {
		columnCount++ // preview column
	}

	const minColWidth = 22
	maxCols := width / minColWidth
	if maxCols < 1 {
		maxCols = 1
	}

	// Slide the window so the focused column stays visible.
	firstCol := 0
	if columnCount > maxCols {
		firstCol = columnCount - maxCols
		if c.focusedCol < firstCol {
			firstCol = c.focusedCol
		}
	}
	visibleCols := columnCount - firstCol
	if visibleCols > maxCols {
		visibleCols = maxCols
	}

	colWidth := width/visibleCols - 2
	if colWidth < minColWidth-2 {
		colWidth = minColWidth - 2
	}

	rendered := make([]string, 0, visibleCols)
	for col := firstCol; col < firstCol+visibleCols; col++ {
		rendered = append(rendered, c.renderColumn(col, colWidth, height))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (c ColumnsModel) renderColumn(col, width, height int) string {
	t := c.theme
	entries := c.columnEntries(col)

	highlightID := ""
	if col < len(c.path) {
		highlightID = c.path[col]
	}
	focused := col == c.focusedCol

	title := "Top Level"
	if col > 0 {
		if parent := c.nodeAtColumn(col - 1); parent != nil {
			title = parent.Item.Name
		}
	}
	title = runewidth.Truncate(title, width-4, "…")

	headerStyle := t.Renderer.NewStyle().Bold(true).Foreground(t.Subtext)
	if focused {
		headerStyle = headerStyle.Foreground(t.Primary)
	}

	var lines []string
	lines = append(lines, headerStyle.Render(title))
	lines = append(lines, t.Renderer.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", width-2)))

	rowBudget := height - 4
	if rowBudget < 3 {
		rowBudget = 3
	}

	// Window the rows around the highlight.
	start := 0
	if len(entries) > rowBudget {
		highlightIdx := 0
		for i, node := range entries {
			if node.Item.ID == highlightID {
				highlightIdx = i
				break
			}
		}
		start = highlightIdx - rowBudget/2
		if start < 0 {
			start = 0
		}
		if start+rowBudget > len(entries) {
			start = len(entries) - rowBudget
		}
	}
	end := start + rowBudget
	if end > len(entries) {
		end = len(entries)
	}

	if len(entries) == 0 {
		lines = append(lines, t.Renderer.NewStyle().Foreground(t.Muted).Italic(true).Render("  (empty)"))
	}

	for _, node := range entries[start:end] {
		lines = append(lines, c.renderEntry(node, width, node.Item.ID == highlightID, focused))
	}

	if end < len(entries) {
		lines = append(lines, t.Renderer.NewStyle().Foreground(t.Muted).Render(fmt.Sprintf("  ↓ %d more", len(entries)-end)))
	}

	borderColor := t.Border
	if focused {
		borderColor = t.Primary
	}
	colStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width)

	return colStyle.Render(strings.Join(lines, "\n"))
}

func (c ColumnsModel) renderEntry(node *tree.Node, width int, highlighted, focusedCol bool) string {
	t := c.theme

	prefix := "  "
	style := t.Renderer.NewStyle().Foreground(t.Leaf)
	if node.IsBranch() {
		style = t.Renderer.NewStyle().Foreground(t.Branch)
	}
	if highlighted {
		prefix = "> "
		style = style.Bold(true)
		if focusedCol {
			style = style.Foreground(t.Primary)
		}
	}

	suffix := ""
	if node.IsBranch() {
		suffix = fmt.Sprintf(" ▸%d", len(node.Children))
	}

	nameWidth := width - 4 - lipgloss.Width(suffix)
	if nameWidth < 6 {
		nameWidth = 6
	}
	name := runewidth.Truncate(node.Item.Name, nameWidth, "…")

	suffixStyled := t.Renderer.NewStyle().Foreground(t.Muted).Render(suffix)
	return style.Render(prefix+name) + suffixStyled
}
