// treeview.go - Interactive collapsible tree widget (arb-c1vw)
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/arbor/pkg/model"
	"github.com/Dicklesworthstone/arbor/pkg/tree"
)

// TreeOptions configures a TreeView at construction time.
type TreeOptions struct {
	// Items is the forest to display. A single root is a one-element
	// forest; see NewTreeViewFromRoot.
	Items []model.Item

	// InitialSelectedID preselects an item and, unless ExpandAll is set,
	// expands exactly its ancestor path so it is visible on first render.
	// Unknown IDs select nothing and expand nothing.
	InitialSelectedID string

	// OnSelectChange fires on every selection change with the newly
	// selected item, or nil on deselection. It fires before the item's
	// own OnClick.
	OnSelectChange func(*model.Item)

	// ExpandAll opens every branch at build time and suppresses the
	// InitialSelectedID ancestor walk.
	ExpandAll bool

	// DefaultBranchGlyph and DefaultLeafGlyph replace the theme's role
	// glyphs for items that carry no icon of their own.
	DefaultBranchGlyph model.Glyph
	DefaultLeafGlyph   model.Glyph

	// OnDrop fires when a dragged item is released over a valid target.
	// The target is RootDropTarget() for drops on the container area
	// beneath the tree.
	OnDrop func(source, target *model.Item)
}

// TreeView renders a forest as collapsible rows and owns all transient
// view state: selection, the expanded set, in-flight drag, hover. The
// underlying model is rebuilt from scratch on every SetItems call, never
// patched.
type TreeView struct {
	opts  TreeOptions
	theme Theme
	keys  KeyMap

	model *tree.Model
	state *tree.State

	width   int
	height  int
	originX int
	originY int
	offset  int

	hoveredID    string
	pressedID    string
	dropOverID   string
	dropOverRoot bool
}

// treeRow pairs a visible node with its precomputed branch-drawing prefix.
type treeRow struct {
	node   *tree.Node
	prefix string
}

// NewTreeView builds a widget from the given options.
func NewTreeView(opts TreeOptions, theme Theme) TreeView {
	t := TreeView{
		opts:   opts,
		theme:  theme,
		keys:   DefaultKeyMap(),
		state:  tree.NewState(),
		width:  80,
		height: 20,
	}
	t.model = tree.Build(opts.Items)

	if opts.ExpandAll {
		t.state.ExpandAll(t.model)
	}
	if opts.InitialSelectedID != "" {
		if !opts.ExpandAll {
			t.state.ExpandTo(t.model, opts.InitialSelectedID)
		}
		if _, ok := t.model.Index[opts.InitialSelectedID]; ok {
			t.state.Select(opts.InitialSelectedID)
		}
	}

	return t
}

// NewTreeViewFromRoot builds a widget around a single root item.
func NewTreeViewFromRoot(root model.Item, opts TreeOptions, theme Theme) TreeView {
	opts.Items = []model.Item{root}
	return NewTreeView(opts, theme)
}

// SetItems replaces the widget's data and rebuilds the whole model.
// Selection and expansion survive by ID; entries for IDs absent from the
// new data simply stop matching anything.
func (t *TreeView) SetItems(items []model.Item) {
	t.model = tree.Build(items)
	t.clampOffset()
}

// SetRoot replaces the data with a single root item.
func (t *TreeView) SetRoot(root model.Item) {
	t.SetItems([]model.Item{root})
}

// SetSize updates the available dimensions.
func (t *TreeView) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.clampOffset()
}

// SetPosition tells the widget where its top-left cell sits on screen,
// which anchors mouse hit testing.
func (t *TreeView) SetPosition(x, y int) {
	t.originX = x
	t.originY = y
}

// Update handles key and mouse input. Keys are acted on only while an
// item is selected, so an unselected tree never swallows input the host
// may want.
func (t TreeView) Update(msg tea.Msg) (TreeView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		t.handleKey(msg)
	case tea.MouseMsg:
		t.handleMouse(msg)
	}
	return t, nil
}

// HandlesKey reports whether the widget would consume the given key in
// its current state. Hosts use this to keep shared bindings from firing
// twice.
func (t *TreeView) HandlesKey(msg tea.KeyMsg) bool {
	if !t.state.HasSelection() {
		return false
	}
	return key.Matches(msg,
		t.keys.Up, t.keys.Down, t.keys.Right, t.keys.Left,
		t.keys.Toggle, t.keys.Top, t.keys.Bottom,
		t.keys.PageUp, t.keys.PageDown, t.keys.Deselect)
}

func (t *TreeView) handleKey(msg tea.KeyMsg) {
	if !t.state.HasSelection() {
		return
	}

	switch {
	case key.Matches(msg, t.keys.Down):
		t.MoveDown()
	case key.Matches(msg, t.keys.Up):
		t.MoveUp()
	case key.Matches(msg, t.keys.Right):
		t.ExpandOrMoveToChild()
	case key.Matches(msg, t.keys.Left):
		t.CollapseOrJumpToParent()
	case key.Matches(msg, t.keys.Toggle):
		t.ToggleExpand()
	case key.Matches(msg, t.keys.Top):
		t.JumpToTop()
	case key.Matches(msg, t.keys.Bottom):
		t.JumpToBottom()
	case key.Matches(msg, t.keys.PageDown):
		t.PageDown()
	case key.Matches(msg, t.keys.PageUp):
		t.PageUp()
	case key.Matches(msg, t.keys.Deselect):
		t.Deselect()
	}
}

// selectNode makes node the selection and runs the callback chain:
// selection change first, then the item's own OnClick.
func (t *TreeView) selectNode(node *tree.Node) {
	if node == nil {
		return
	}
	t.state.Select(node.Item.ID)
	if t.opts.OnSelectChange != nil {
		t.opts.OnSelectChange(node.Item)
	}
	if node.Item.OnClick != nil {
		node.Item.OnClick()
	}
	t.ensureVisible()
}

// Select moves the selection to id if it exists in the model.
func (t *TreeView) Select(id string) bool {
	node, ok := t.model.Index[id]
	if !ok {
		return false
	}
	t.selectNode(node)
	return true
}

// Deselect clears the selection and notifies with nil.
func (t *TreeView) Deselect() {
	if !t.state.HasSelection() {
		return
	}
	t.state.ClearSelection()
	if t.opts.OnSelectChange != nil {
		t.opts.OnSelectChange(nil)
	}
}

// Reveal expands the ancestors of id and selects it, regardless of how
// deeply it was hidden.
func (t *TreeView) Reveal(id string) bool {
	if _, ok := t.model.Index[id]; !ok {
		return false
	}
	t.state.ExpandTo(t.model, id)
	return t.Select(id)
}

// MoveDown selects the next node in the visible order. At the bottom
// boundary nothing happens.
func (t *TreeView) MoveDown() {
	if next := t.model.Next(t.state, t.state.Selected()); next != "" {
		t.selectNode(t.model.Index[next])
	}
}

// MoveUp selects the previous node in the visible order. At the top
// boundary nothing happens.
func (t *TreeView) MoveUp() {
	if prev := t.model.Prev(t.state, t.state.Selected()); prev != "" {
		t.selectNode(t.model.Index[prev])
	}
}

// ExpandOrMoveToChild handles the → / l key:
// - collapsed branch: expand it, selection stays put
// - expanded branch with children: select the first child
// - leaf or expanded empty branch: do nothing
func (t *TreeView) ExpandOrMoveToChild() {
	node := t.selectedNode()
	if node == nil || !node.IsBranch() {
		return
	}

	if !t.state.IsExpanded(node.Item.ID) {
		t.state.Expand(node.Item.ID)
		return
	}
	if len(node.Children) > 0 {
		t.selectNode(node.Children[0])
	}
}

// CollapseOrJumpToParent handles the ← / h key:
// - expanded branch: collapse it, selection stays put
// - anything else with a parent: select the parent
// - collapsed or leaf root: do nothing
func (t *TreeView) CollapseOrJumpToParent() {
	node := t.selectedNode()
	if node == nil {
		return
	}

	if node.IsBranch() && t.state.IsExpanded(node.Item.ID) {
		t.state.Collapse(node.Item.ID)
		return
	}
	if parentID, ok := t.model.Parents[node.Item.ID]; ok {
		t.selectNode(t.model.Index[parentID])
	}
}

// ToggleExpand flips the selected branch between open and closed.
func (t *TreeView) ToggleExpand() {
	node := t.selectedNode()
	if node != nil && node.IsBranch() {
		t.state.Toggle(node.Item.ID)
		t.clampOffset()
	}
}

// ExpandAll opens every branch.
func (t *TreeView) ExpandAll() {
	t.state.ExpandAll(t.model)
	t.ensureVisible()
}

// CollapseAll closes every branch.
func (t *TreeView) CollapseAll() {
	t.state.CollapseAll()
	t.clampOffset()
}

// JumpToTop selects the first visible node.
func (t *TreeView) JumpToTop() {
	visible := t.model.Visible(t.state)
	if len(visible) > 0 {
		t.selectNode(visible[0])
	}
}

// JumpToBottom selects the last visible node.
func (t *TreeView) JumpToBottom() {
	visible := t.model.Visible(t.state)
	if len(visible) > 0 {
		t.selectNode(visible[len(visible)-1])
	}
}

// PageDown moves the selection down by half a viewport.
func (t *TreeView) PageDown() {
	t.pageBy(t.pageSize())
}

// PageUp moves the selection up by half a viewport.
func (t *TreeView) PageUp() {
	t.pageBy(-t.pageSize())
}

func (t *TreeView) pageSize() int {
	size := t.height / 2
	if size < 5 {
		size = 5
	}
	return size
}

func (t *TreeView) pageBy(delta int) {
	visible := t.model.Visible(t.state)
	idx := t.selectedIndex(visible)
	if idx < 0 {
		return
	}
	idx += delta
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	if idx < 0 {
		idx = 0
	}
	t.selectNode(visible[idx])
}

// ===== mouse handling =====

func (t *TreeView) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			t.mousePress(msg.X, msg.Y)
		case tea.MouseActionMotion:
			t.mouseDrag(msg.X, msg.Y)
		case tea.MouseActionRelease:
			t.mouseRelease()
		}
	case tea.MouseButtonNone:
		if msg.Action == tea.MouseActionMotion {
			t.mouseHover(msg.X, msg.Y)
		}
		if msg.Action == tea.MouseActionRelease {
			// Some terminals report release with no button attached.
			t.mouseRelease()
		}
	case tea.MouseButtonWheelUp:
		t.scrollBy(-3)
	case tea.MouseButtonWheelDown:
		t.scrollBy(3)
	}
}

// mousePress selects the hit row and, when the item allows it, arms the
// row as a drag source. A press on a non-draggable item can never become
// a drag.
func (t *TreeView) mousePress(x, y int) {
	t.pressedID = ""
	node := t.nodeAt(x, y)
	if node == nil {
		return
	}
	t.selectNode(node)
	if node.Item.Draggable {
		t.pressedID = node.Item.ID
	}
}

// mouseDrag runs on motion while the left button is held. The gesture
// becomes a drag the moment the pointer leaves the pressed row; from then
// on the row under the pointer is marked as the drop target iff it is
// droppable and not the source.
func (t *TreeView) mouseDrag(x, y int) {
	if t.pressedID == "" {
		return
	}

	node := t.nodeAt(x, y)

	if t.state.Dragged() == "" {
		if node != nil && node.Item.ID == t.pressedID {
			return
		}
		t.state.StartDrag(t.pressedID)
	}

	t.dropOverID = ""
	t.dropOverRoot = false
	switch {
	case node != nil:
		if node.Item.ID != t.state.Dragged() && node.Item.CanDrop() {
			t.dropOverID = node.Item.ID
		}
	case t.containerAt(x, y):
		t.dropOverRoot = true
	}
}

// mouseRelease finishes the gesture: fire the drop callback when the
// pointer sits on a valid target, then clear all drag state no matter
// what happened.
func (t *TreeView) mouseRelease() {
	defer func() {
		t.pressedID = ""
		t.dropOverID = ""
		t.dropOverRoot = false
		t.state.ClearDrag()
	}()

	sourceID := t.state.Dragged()
	if sourceID == "" {
		return
	}

	var target *model.Item
	switch {
	case t.dropOverID != "":
		if node, ok := t.model.Index[t.dropOverID]; ok {
			target = node.Item
		}
	case t.dropOverRoot:
		target = model.RootDropTarget()
	}
	if target == nil {
		return
	}

	source, ok := t.model.Index[sourceID]
	if !ok {
		return
	}
	if t.opts.OnDrop == nil || source.Item.ID == target.ID {
		return
	}
	t.opts.OnDrop(source.Item, target)
}

func (t *TreeView) mouseHover(x, y int) {
	t.hoveredID = ""
	if node := t.nodeAt(x, y); node != nil {
		t.hoveredID = node.Item.ID
	}
}

// nodeAt maps a screen cell to the visible node rendered there, or nil.
func (t *TreeView) nodeAt(x, y int) *tree.Node {
	if x < t.originX || x >= t.originX+t.width {
		return nil
	}
	idx := y - t.originY + t.offset
	visible := t.model.Visible(t.state)
	if idx < t.offset || idx >= len(visible) || idx-t.offset >= t.height {
		return nil
	}
	return visible[idx]
}

// containerAt reports whether the cell lies inside the widget but below
// the last rendered row, which is the sentinel root drop area.
func (t *TreeView) containerAt(x, y int) bool {
	if x < t.originX || x >= t.originX+t.width {
		return false
	}
	if y < t.originY || y >= t.originY+t.height {
		return false
	}
	idx := y - t.originY + t.offset
	return idx >= len(t.model.Visible(t.state))
}

func (t *TreeView) scrollBy(delta int) {
	t.offset += delta
	t.clampOffset()
}

// ===== rendering =====

// View renders the visible window of rows plus, while a drag is live, a
// drop hint line for the root container area.
func (t *TreeView) View() string {
	rows := t.visibleRows()
	if len(rows) == 0 {
		return t.renderEmptyState()
	}

	start := t.offset
	if start > len(rows)-1 {
		start = len(rows) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + t.height
	if end > len(rows) {
		end = len(rows)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		sb.WriteString(t.renderRow(rows[i]))
		sb.WriteString("\n")
	}

	if t.state.Dragged() != "" && end-start < t.height {
		sb.WriteString(t.renderRootTarget())
		sb.WriteString("\n")
	}

	return sb.String()
}

func (t *TreeView) renderEmptyState() string {
	r := t.theme.Renderer

	titleStyle := r.NewStyle().
		Foreground(t.theme.Primary).
		Bold(true)
	mutedStyle := r.NewStyle().
		Foreground(t.theme.Muted)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Tree"))
	sb.WriteString("\n\n")
	sb.WriteString(mutedStyle.Render("No items to display."))
	sb.WriteString("\n")
	return sb.String()
}

// visibleRows flattens the visible nodes together with box-drawing
// prefixes. The same depth-first order as Model.Visible, so index math is
// shared with hit testing.
func (t *TreeView) visibleRows() []treeRow {
	var rows []treeRow

	var walk func(node *tree.Node, ancestorsLast []bool, last bool)
	walk = func(node *tree.Node, ancestorsLast []bool, last bool) {
		rows = append(rows, treeRow{node: node, prefix: t.buildPrefix(node, ancestorsLast, last)})
		if node.IsBranch() && t.state.IsExpanded(node.Item.ID) {
			nextAncestors := make([]bool, len(ancestorsLast)+1)
			copy(nextAncestors, ancestorsLast)
			nextAncestors[len(ancestorsLast)] = last
			for i, child := range node.Children {
				walk(child, nextAncestors, i == len(node.Children)-1)
			}
		}
	}

	for i, root := range t.model.Roots {
		walk(root, nil, i == len(t.model.Roots)-1)
	}
	return rows
}

// buildPrefix builds the indentation and branch characters for a node.
// Each ancestor level contributes a vertical rule unless that ancestor
// was the last of its siblings.
func (t *TreeView) buildPrefix(node *tree.Node, ancestorsLast []bool, last bool) string {
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

// renderRow renders one tree row: prefix, expand indicator, resolved
// glyph, name, then actions when the row is selected or hovered.
func (t *TreeView) renderRow(row treeRow) string {
	node := row.node
	item := node.Item
	r := t.theme.Renderer

	isSelected := t.state.Selected() == item.ID
	isHovered := t.hoveredID == item.ID
	isDragged := t.state.Dragged() == item.ID
	isDropOver := t.dropOverID == item.ID

	var sb strings.Builder
	sb.WriteString(r.NewStyle().Foreground(t.theme.Muted).Render(row.prefix))

	indicatorStyle := r.NewStyle().Foreground(t.theme.Secondary)
	sb.WriteString(indicatorStyle.Render(t.indicator(node)))
	sb.WriteString(" ")

	sb.WriteString(t.resolveGlyph(node, isSelected))
	sb.WriteString(" ")

	name := item.Name
	maxNameWidth := t.width - lipgloss.Width(row.prefix) - 10
	if maxNameWidth < 12 {
		maxNameWidth = 12
	}
	name = runewidth.Truncate(name, maxNameWidth, "…")
	switch {
	case isDropOver:
		name = t.theme.DropOver.Render(name)
	case isDragged:
		name = r.NewStyle().Foreground(t.theme.Drag).Render(name)
	}
	sb.WriteString(name)

	if isDragged {
		sb.WriteString(r.NewStyle().Foreground(t.theme.Drag).Render(" ⇕"))
	}

	line := sb.String()

	if actions := t.renderActions(item, isSelected || isHovered); actions != "" {
		pad := t.width - lipgloss.Width(line) - lipgloss.Width(actions) - 1
		if pad > 0 {
			line += strings.Repeat(" ", pad) + actions
		}
	}

	if isSelected {
		line = t.theme.Selected.Render(line)
	}
	return line
}

// indicator returns the expand/collapse marker for a node.
func (t *TreeView) indicator(node *tree.Node) string {
	if !node.IsBranch() {
		return "•"
	}
	if t.state.IsExpanded(node.Item.ID) {
		return "▾"
	}
	return "▸"
}

// resolveGlyph picks the display glyph by fixed priority: selected icon
// when selected, open icon on expanded branches, the item's own icon,
// then the widget default for the node's role.
func (t *TreeView) resolveGlyph(node *tree.Node, isSelected bool) string {
	item := node.Item

	if isSelected && item.SelectedIcon != nil {
		return item.SelectedIcon.Render()
	}
	if node.IsBranch() && t.state.IsExpanded(item.ID) && item.OpenIcon != nil {
		return item.OpenIcon.Render()
	}
	if item.Icon != nil {
		return item.Icon.Render()
	}

	if node.IsBranch() && t.opts.DefaultBranchGlyph != nil {
		return t.opts.DefaultBranchGlyph.Render()
	}
	if !node.IsBranch() && t.opts.DefaultLeafGlyph != nil {
		return t.opts.DefaultLeafGlyph.Render()
	}

	glyph, color := t.theme.RoleGlyph(node.IsBranch())
	return t.theme.Renderer.NewStyle().Foreground(color).Render(glyph)
}

// renderActions renders the item's action labels, shown only while the
// row is selected or hovered.
func (t *TreeView) renderActions(item *model.Item, visible bool) string {
	if !visible || len(item.Actions) == 0 {
		return ""
	}

	r := t.theme.Renderer
	style := r.NewStyle().Foreground(t.theme.Subtext)

	parts := make([]string, 0, len(item.Actions))
	for _, action := range item.Actions {
		parts = append(parts, "["+action.Label+"]")
	}
	return style.Render(strings.Join(parts, " "))
}

// renderRootTarget renders the drop hint for the container area beneath
// the last row, highlighted while the pointer is over it.
func (t *TreeView) renderRootTarget() string {
	r := t.theme.Renderer
	hint := "⤓ drop here to move to top level"
	if t.dropOverRoot {
		return t.theme.DropOver.Render(hint)
	}
	return r.NewStyle().Foreground(t.theme.Muted).Render(hint)
}

// ===== scrolling =====

// ensureVisible adjusts the scroll offset so the selected row sits inside
// the viewport.
func (t *TreeView) ensureVisible() {
	visible := t.model.Visible(t.state)
	idx := t.selectedIndex(visible)
	if idx < 0 {
		return
	}
	if idx < t.offset {
		t.offset = idx
	}
	if t.height > 0 && idx >= t.offset+t.height {
		t.offset = idx - t.height + 1
	}
}

func (t *TreeView) clampOffset() {
	max := len(t.model.Visible(t.state)) - t.height
	if max < 0 {
		max = 0
	}
	if t.offset > max {
		t.offset = max
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

func (t *TreeView) selectedIndex(visible []*tree.Node) int {
	selected := t.state.Selected()
	if selected == "" {
		return -1
	}
	for i, node := range visible {
		if node.Item.ID == selected {
			return i
		}
	}
	return -1
}

func (t *TreeView) selectedNode() *tree.Node {
	if !t.state.HasSelection() {
		return nil
	}
	return t.model.Index[t.state.Selected()]
}

// ===== accessors =====

// SelectedItem returns the selected item, or nil when nothing is
// selected or the selection no longer exists in the data.
func (t *TreeView) SelectedItem() *model.Item {
	if node := t.selectedNode(); node != nil {
		return node.Item
	}
	return nil
}

// SelectedID returns the selected ID, or "".
func (t *TreeView) SelectedID() string {
	return t.state.Selected()
}

// IsExpanded reports whether the branch with id is open.
func (t *TreeView) IsExpanded(id string) bool {
	return t.state.IsExpanded(id)
}

// ExpandedIDs returns the expanded set as a sorted slice.
func (t *TreeView) ExpandedIDs() []string {
	return t.state.ExpandedIDs()
}

// DraggedID returns the in-flight drag source, or "".
func (t *TreeView) DraggedID() string {
	return t.state.Dragged()
}

// DropOverID returns the row currently marked as drop target, or "".
func (t *TreeView) DropOverID() string {
	return t.dropOverID
}

// DropOverRoot reports whether the container area is the marked target.
func (t *TreeView) DropOverRoot() bool {
	return t.dropOverRoot
}

// HoveredID returns the row under the pointer, or "".
func (t *TreeView) HoveredID() string {
	return t.hoveredID
}

// VisibleIDs returns the IDs of the currently visible nodes in order.
func (t *TreeView) VisibleIDs() []string {
	visible := t.model.Visible(t.state)
	ids := make([]string, len(visible))
	for i, node := range visible {
		ids[i] = node.Item.ID
	}
	return ids
}

// VisibleCount returns how many nodes are currently visible.
func (t *TreeView) VisibleCount() int {
	return len(t.model.Visible(t.state))
}

// Size returns the total node count regardless of expansion.
func (t *TreeView) Size() int {
	return t.model.Size()
}

// Model exposes the built tree for read-only consumers such as exports
// and analysis.
func (t *TreeView) Model() *tree.Model {
	return t.model
}
