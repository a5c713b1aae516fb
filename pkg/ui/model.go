// Package ui provides the collapsible tree widget and the demo shell
// around it. TreeView is the embeddable widget; Model is the full demo
// application cmd/arbor runs.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/arbor/pkg/analysis"
	"github.com/Dicklesworthstone/arbor/pkg/export"
	"github.com/Dicklesworthstone/arbor/pkg/model"
	"github.com/Dicklesworthstone/arbor/pkg/sample"
	"github.com/Dicklesworthstone/arbor/pkg/tree"
)

const (
	// SplitViewThreshold is the terminal width beyond which the detail
	// pane renders beside the tree instead of being hidden.
	SplitViewThreshold = 100

	toastDuration = 3 * time.Second
	historyDepth  = 50
)

type focus int

const (
	focusTree focus = iota
	focusDetail
)

// viewMode selects the main rendition of the forest.
type viewMode int

const (
	viewList viewMode = iota
	viewColumns
)

// overlay names the modal layer above the main view. overlayNone means
// regular browsing; overlayFilter routes keys to the filter input while
// the tree stays visible behind it.
type overlay int

const (
	overlayNone overlay = iota
	overlayFilter
	overlayPicker
	overlayEditor
	overlayHelp
	overlayTutorial
	overlayInsights
)

// dropEvent carries a drop out of the widget callback. The callback
// runs inside TreeView.Update while the host value is mid-copy, so it
// writes into this shared box instead of mutating the model directly.
type dropEvent struct {
	sourceID string
	targetID string
	valid    bool
}

// toastClearMsg expires the transient status toast.
type toastClearMsg struct {
	id int
}

// Options configures the demo shell.
type Options struct {
	// Items is the initial forest.
	Items []model.Item

	// Title labels exports and the footer. Defaults to the sample name
	// or "Tree".
	Title string

	// SampleName names the loaded built-in sample, "" for file data.
	SampleName string

	// DataPath is the watched data file, "" when browsing a sample.
	DataPath string

	// Theme picks the palette; a zero value falls back to the default.
	Theme Theme

	// ExportDir receives export files; "" means the working directory.
	ExportDir string

	// InitialSelectedID preselects an item on startup.
	InitialSelectedID string

	// ExpandAll opens every branch on startup.
	ExpandAll bool

	// Worker is the optional live-reload worker; the shell keeps its
	// diff baseline in sync with local edits.
	Worker *ReloadWorker
}

// Model is the demo application around the tree widget: one forest,
// two renditions of it (list and Miller columns), and a set of modal
// overlays for editing, picking samples, and introspection.
type Model struct {
	keys  KeyMap
	theme Theme

	items []model.Item // The demo's authoritative copy of the forest
	title string

	treeView TreeView
	columns  ColumnsModel
	viewport viewport.Model
	markdown *MarkdownRenderer

	picker   SamplePickerModel
	editor   EditorModel
	tutorial TutorialModel

	filterInput   textinput.Model
	filterApplied bool
	filterQuery   string
	filterMatches int

	history  *SelectionHistory
	exporter *TreeExporter
	worker   *ReloadWorker
	drops    *dropEvent

	shape *analysis.Shape

	overlayMode overlay
	focused     focus
	mode        viewMode
	isSplitView bool
	ready       bool
	width       int
	height      int

	treeWidth int

	toast    string
	toastSeq int

	exportsPending int
	exportFails    []string

	sampleName string
	dataPath   string
	exportDir  string
}

// NewModel builds the demo shell.
func NewModel(opts Options) Model {
	theme := opts.Theme
	if theme.IsZero() {
		theme = DefaultTheme(lipgloss.DefaultRenderer())
	}

	title := opts.Title
	if title == "" {
		title = opts.SampleName
	}
	if title == "" {
		title = "Tree"
	}

	drops := &dropEvent{}

	treeOpts := TreeOptions{
		Items:             opts.Items,
		InitialSelectedID: opts.InitialSelectedID,
		ExpandAll:         opts.ExpandAll,
		OnDrop: func(source, target *model.Item) {
			drops.sourceID = source.ID
			drops.targetID = target.ID
			drops.valid = true
		},
	}
	treeView := NewTreeView(treeOpts, theme)

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "name or id, fuzzy works too"
	input.CharLimit = 64

	m := Model{
		keys:        DefaultKeyMap(),
		theme:       theme,
		items:       opts.Items,
		title:       title,
		treeView:    treeView,
		columns:     NewColumnsModel(treeView.Model(), theme),
		markdown:    NewMarkdownRendererWithTheme(76, theme),
		picker:      NewSamplePickerModel(opts.SampleName, theme),
		tutorial:    NewTutorialModel(theme),
		filterInput: input,
		history:     NewSelectionHistory(historyDepth),
		exporter:    NewTreeExporter(opts.ExportDir, title),
		worker:      opts.Worker,
		drops:       drops,
		sampleName:  opts.SampleName,
		dataPath:    opts.DataPath,
		exportDir:   opts.ExportDir,
	}

	if id := treeView.SelectedID(); id != "" {
		m.history.Record(id)
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case toastClearMsg:
		if msg.id == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case TreeReloadedMsg:
		return m.handleReload(msg)

	case ReloadErrorMsg:
		return m, m.setToast("reload failed: " + msg.Err.Error())

	case ExportResultMsg:
		return m.handleExportResult(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

// resize recomputes the layout. The footer always takes the last line;
// in split view the tree gets 40% of the width and the detail pane the
// rest, both inside one-cell borders.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.isSplitView = width > SplitViewThreshold
	m.ready = true

	availableHeight := height - 1

	if m.isSplitView {
		m.treeWidth = int(float64(width) * 0.4)
		detailWidth := width - m.treeWidth - 4

		m.treeView.SetSize(m.treeWidth-4, availableHeight-2)
		m.treeView.SetPosition(2, 1)
		m.viewport = viewport.New(detailWidth, availableHeight-2)
		m.markdown.SetWidthWithTheme(detailWidth-2, m.theme)
	} else {
		m.treeWidth = width
		m.treeView.SetSize(width, availableHeight)
		m.treeView.SetPosition(0, 0)
		m.viewport = viewport.New(width, availableHeight-2)
		m.markdown.SetWidthWithTheme(width-2, m.theme)
	}

	m.picker.SetSize(width, availableHeight)
	m.editor.SetSize(width, availableHeight)
	m.tutorial.SetSize(width-8, height-4)

	m.updateViewportContent()
}

// handleReload swaps in the forest the background worker produced and
// summarizes the change in a toast.
func (m Model) handleReload(msg TreeReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Snapshot == nil {
		return m, nil
	}
	m.items = msg.Snapshot.Items
	m.shape = msg.Snapshot.Shape
	m.refreshTree()
	summary := "reloaded"
	if msg.Snapshot.Changes != nil {
		summary = "reloaded: " + msg.Snapshot.Changes.Brief()
	}
	return m, m.setToast(summary)
}

func (m Model) handleExportResult(msg ExportResultMsg) (tea.Model, tea.Cmd) {
	if m.exportsPending > 0 {
		m.exportsPending--
	}
	if !msg.Success && msg.Error != nil {
		m.exportFails = append(m.exportFails, fmt.Sprintf("%s: %v", msg.Format, msg.Error))
	}
	if m.exportsPending > 0 {
		return m, nil
	}

	fails := m.exportFails
	m.exportFails = nil
	if len(fails) > 0 {
		return m, m.setToast("export failed: " + fails[0])
	}
	return m, m.setToast(fmt.Sprintf("exported %d file(s) to %s", len(export.Formats()), m.exporter.Dir()))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, no matter which overlay has focus.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.overlayMode {
	case overlayEditor:
		return m.handleEditorKey(msg)
	case overlayPicker:
		return m.handlePickerKey(msg)
	case overlayTutorial:
		return m.handleTutorialKey(msg)
	case overlayHelp:
		switch msg.String() {
		case "esc", "q", "?":
			m.overlayMode = overlayNone
		}
		return m, nil
	case overlayInsights:
		switch msg.String() {
		case "esc", "q", "i":
			m.overlayMode = overlayNone
		}
		return m, nil
	case overlayFilter:
		return m.handleFilterKey(msg)
	}

	return m.handleBrowseKey(msg)
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.overlayMode = overlayNone
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	if m.editor.Aborted() {
		m.overlayMode = overlayNone
		return m, nil
	}
	if m.editor.Completed() {
		m.overlayMode = overlayNone
		result := m.editor.Result()
		edited, ok := ApplyEdit(m.items, result)
		if !ok {
			return m, m.setToast("edit lost: " + result.ID + " is gone")
		}
		m.items = edited
		m.refreshTree()
		m.syncWorkerBaseline()
		return m, m.setToast("updated " + result.Name)
	}

	return m, cmd
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "s":
		m.overlayMode = overlayNone
	case "up", "k":
		m.picker.MoveUp()
	case "down", "j":
		m.picker.MoveDown()
	case "enter":
		m.overlayMode = overlayNone
		if s := m.picker.SelectedSample(); s != nil {
			return m.loadSample(*s)
		}
	}
	return m, nil
}

func (m Model) handleTutorialKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.tutorial, cmd = m.tutorial.Update(msg)
	if m.tutorial.ShouldClose() {
		m.tutorial.ResetClose()
		m.overlayMode = overlayNone
	}
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.overlayMode = overlayNone
		m.filterInput.Blur()
		m.clearFilter()
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.filterInput.Value())
		m.overlayMode = overlayNone
		m.filterInput.Blur()
		if query == "" {
			m.clearFilter()
			return m, nil
		}
		m.filterApplied = true
		m.filterQuery = query
		m.refreshTree()
		return m, m.setToast(fmt.Sprintf("%d match(es) for %q", m.filterMatches, query))
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)

	// Narrow live while typing.
	query := strings.TrimSpace(m.filterInput.Value())
	if query == "" {
		m.filterApplied = false
		m.filterQuery = ""
		m.filterMatches = 0
		m.treeView.SetItems(m.items)
	} else {
		filtered, n := FilterForest(m.items, query)
		m.filterApplied = true
		m.filterQuery = query
		m.filterMatches = n
		m.treeView.SetItems(filtered)
	}
	m.columns.SetModel(m.treeView.Model())
	m.updateViewportContent()

	return m, cmd
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.overlayMode = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.Tutorial):
		m.overlayMode = overlayTutorial
		return m, m.tutorial.Init()

	case key.Matches(msg, m.keys.Samples):
		m.picker = NewSamplePickerModel(m.sampleName, m.theme)
		m.picker.SetSize(m.width, m.height-1)
		m.overlayMode = overlayPicker
		return m, nil

	case key.Matches(msg, m.keys.Insights):
		m.shape = analysis.Analyze(m.treeView.Model())
		m.overlayMode = overlayInsights
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.overlayMode = overlayFilter
		m.filterInput.SetValue(m.filterQuery)
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.Edit):
		item := m.selectedItem()
		if item == nil {
			return m, m.setToast("select an item to edit")
		}
		m.editor = NewEditorModel(item, m.theme)
		m.editor.SetSize(m.width, m.height-1)
		m.overlayMode = overlayEditor
		return m, m.editor.Init()

	case key.Matches(msg, m.keys.CopyID):
		id := m.selectedID()
		if id == "" {
			return m, m.setToast("nothing selected to copy")
		}
		if err := clipboard.WriteAll(id); err != nil {
			return m, m.setToast("clipboard unavailable: " + err.Error())
		}
		return m, m.setToast("copied " + id)

	case key.Matches(msg, m.keys.Export):
		m.exportsPending = len(export.Formats())
		m.exportFails = nil
		cmd := m.exporter.ExportAll(m.items)
		return m, tea.Batch(m.setToast("exporting to "+m.exporter.Dir()), cmd)

	case key.Matches(msg, m.keys.Back):
		if prev := m.history.Back(); prev != "" {
			m.revealID(prev)
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewTree):
		if m.mode == viewColumns {
			m.mode = viewList
			if id := m.columns.SelectedID(); id != "" {
				m.treeView.Reveal(id)
				m.updateViewportContent()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewCols):
		if m.mode == viewList {
			m.mode = viewColumns
			if id := m.treeView.SelectedID(); id != "" {
				m.columns.FocusID(id)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.ExpandAll):
		m.treeView.ExpandAll()
		return m, nil

	case key.Matches(msg, m.keys.CollapseAll):
		m.treeView.CollapseAll()
		return m, nil
	}

	if msg.String() == "tab" && m.isSplitView && m.mode == viewList {
		if m.focused == focusTree {
			m.focused = focusDetail
		} else {
			m.focused = focusTree
		}
		return m, nil
	}

	if m.mode == viewColumns {
		return m.handleColumnsKey(msg)
	}

	// Esc clears an applied filter before it clears the selection.
	if msg.String() == "esc" && m.filterApplied {
		m.clearFilter()
		return m, m.setToast("filter cleared")
	}

	if m.focused == focusDetail {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// An unselected tree swallows no keys, so bootstrap the selection
	// on the first navigation press.
	if m.treeView.SelectedID() == "" &&
		key.Matches(msg, m.keys.Down, m.keys.Up, m.keys.Top) {
		if ids := m.treeView.VisibleIDs(); len(ids) > 0 {
			m.treeView.Select(ids[0])
			m.history.Record(ids[0])
			m.updateViewportContent()
		}
		return m, nil
	}

	prev := m.treeView.SelectedID()
	m.treeView, _ = m.treeView.Update(msg)
	m.syncSelection(prev)
	return m, nil
}

func (m Model) handleColumnsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		m.columns.MoveDown()
	case "up", "k":
		m.columns.MoveUp()
	case "right", "l", "enter":
		m.columns.MoveRight()
	case "left", "h", "backspace":
		m.columns.MoveLeft()
	case "g", "home":
		m.columns.MoveToTop()
	case "G", "end":
		m.columns.MoveToBottom()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.overlayMode != overlayNone || m.mode != viewList {
		return m, nil
	}

	prev := m.treeView.SelectedID()
	m.treeView, _ = m.treeView.Update(msg)
	m.syncSelection(prev)

	if cmd := m.consumeDrop(); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// consumeDrop drains the drop box the widget callback filled and turns
// it into an actual subtree move.
func (m *Model) consumeDrop() tea.Cmd {
	if !m.drops.valid {
		return nil
	}
	sourceID, targetID := m.drops.sourceID, m.drops.targetID
	m.drops.valid = false

	moved, ok := tree.Move(m.items, sourceID, targetID)
	if !ok {
		return m.setToast("cannot move " + sourceID + " there")
	}
	m.items = moved
	m.refreshTree()
	m.syncWorkerBaseline()

	where := targetID
	if where == "" {
		where = "top level"
	}
	return m.setToast("moved " + sourceID + " under " + where)
}

// loadSample swaps the forest for a built-in sample and resets the
// per-forest state that no longer applies.
func (m Model) loadSample(s sample.Sample) (tea.Model, tea.Cmd) {
	m.items = s.Items
	m.sampleName = s.Name
	m.title = s.Name
	m.exporter = NewTreeExporter(m.exportDir, s.Name)
	m.history = NewSelectionHistory(historyDepth)
	m.clearFilter()
	m.syncWorkerBaseline()
	return m, m.setToast("loaded sample " + s.Name)
}

func (m *Model) clearFilter() {
	m.filterApplied = false
	m.filterQuery = ""
	m.filterMatches = 0
	m.filterInput.SetValue("")
	m.refreshTree()
}

// refreshTree pushes the current forest (narrowed when a filter is
// applied) into both renditions and refreshes the detail pane.
func (m *Model) refreshTree() {
	if m.filterApplied {
		filtered, n := FilterForest(m.items, m.filterQuery)
		m.filterMatches = n
		m.treeView.SetItems(filtered)
	} else {
		m.treeView.SetItems(m.items)
	}
	m.columns.SetModel(m.treeView.Model())
	m.updateViewportContent()
}

// syncSelection records a selection change in the history and refreshes
// the detail pane.
func (m *Model) syncSelection(prevID string) {
	current := m.treeView.SelectedID()
	if current == prevID {
		return
	}
	if current != "" {
		m.history.Record(current)
	}
	m.updateViewportContent()
}

// revealID expands down to id in whichever rendition is active.
func (m *Model) revealID(id string) {
	if m.mode == viewColumns {
		m.columns.FocusID(id)
		return
	}
	if m.treeView.Reveal(id) {
		m.updateViewportContent()
	}
}

func (m *Model) syncWorkerBaseline() {
	if m.worker != nil {
		m.worker.SetBaseline(m.items)
	}
}

func (m *Model) selectedItem() *model.Item {
	if m.mode == viewColumns {
		if node := m.columns.SelectedNode(); node != nil {
			return node.Item
		}
		return nil
	}
	return m.treeView.SelectedItem()
}

func (m *Model) selectedID() string {
	if m.mode == viewColumns {
		return m.columns.SelectedID()
	}
	return m.treeView.SelectedID()
}

// updateViewportContent rebuilds the detail pane for the selection.
func (m *Model) updateViewportContent() {
	item := m.treeView.SelectedItem()
	if item == nil {
		m.viewport.SetContent(m.theme.Renderer.NewStyle().
			Foreground(m.theme.Muted).
			Render("Nothing selected.\n\nMove with j/k or click a row."))
		return
	}

	var sb strings.Builder

	glyph := ""
	if item.Icon != nil {
		glyph = item.Icon.Render() + " "
	}
	sb.WriteString(fmt.Sprintf("# %s%s\n\n", glyph, item.Name))

	kind := "leaf"
	if !item.IsLeaf() {
		kind = fmt.Sprintf("branch, %d direct children", len(item.Children))
		if len(item.Children) == 0 {
			kind = "empty branch"
		}
	}
	drops := "accepts drops"
	if !item.CanDrop() {
		drops = "refuses drops"
	}
	drag := "fixed"
	if item.Draggable {
		drag = "draggable"
	}

	sb.WriteString("| Field | Value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| ID | `%s` |\n", item.ID))
	sb.WriteString(fmt.Sprintf("| Kind | %s |\n", kind))
	sb.WriteString(fmt.Sprintf("| Drag | %s |\n", drag))
	sb.WriteString(fmt.Sprintf("| Drop | %s |\n\n", drops))

	if ancestors := m.treeView.Model().AncestorPath(item.ID); len(ancestors) > 0 {
		parts := make([]string, 0, len(ancestors)+1)
		for i := len(ancestors) - 1; i >= 0; i-- {
			parts = append(parts, ancestors[i])
		}
		parts = append(parts, item.ID)
		sb.WriteString("### Location\n")
		sb.WriteString(strings.Join(parts, " / ") + "\n\n")
	}

	if len(item.Actions) > 0 {
		sb.WriteString("### Actions\n")
		for _, action := range item.Actions {
			sb.WriteString("- " + action.Label + "\n")
		}
		sb.WriteString("\n")
	}

	if len(item.Children) > 0 {
		sb.WriteString(fmt.Sprintf("### Children (%d)\n", len(item.Children)))
		shown := item.Children
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, child := range shown {
			sb.WriteString(fmt.Sprintf("- %s `%s`\n", child.Name, child.ID))
		}
		if rest := len(item.Children) - len(shown); rest > 0 {
			sb.WriteString(fmt.Sprintf("- and %d more\n", rest))
		}
	}

	rendered, err := m.markdown.Render(sb.String())
	if err != nil {
		m.viewport.SetContent(fmt.Sprintf("Error rendering detail: %v", err))
		return
	}
	m.viewport.SetContent(rendered)
}

func (m *Model) setToast(text string) tea.Cmd {
	m.toast = text
	m.toastSeq++
	id := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastClearMsg{id: id}
	})
}

// helpContext maps the current state to the context help topic.
func (m Model) helpContext() Context {
	switch {
	case m.overlayMode == overlayPicker:
		return ContextPicker
	case m.overlayMode == overlayEditor:
		return ContextEditor
	case m.overlayMode == overlayInsights:
		return ContextInsights
	case m.overlayMode == overlayFilter, m.filterApplied:
		return ContextFilter
	case m.mode == viewColumns:
		return ContextColumns
	}
	return ContextTree
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.overlayMode {
	case overlayPicker:
		body = m.picker.View()
	case overlayEditor:
		body = m.editor.View()
	case overlayHelp:
		body = lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center,
			RenderContextHelp(m.helpContext(), m.theme, m.width, m.height-1))
	case overlayTutorial:
		body = m.tutorial.CenterTutorial(m.width, m.height-1)
	case overlayInsights:
		body = renderInsightsOverlay(m.shape, m.theme, m.width, m.height-1)
	default:
		body = m.renderMain()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m Model) renderMain() string {
	if m.mode == viewColumns {
		return lipgloss.NewStyle().Height(m.height - 1).Render(m.columns.View(m.width, m.height-1))
	}

	if !m.isSplitView {
		return lipgloss.NewStyle().Height(m.height - 1).Render(m.treeView.View())
	}

	treePanel := m.panelStyle(m.focused == focusTree).
		Width(m.treeWidth - 2).
		Height(m.height - 3).
		Render(m.treeView.View())
	detailPanel := m.panelStyle(m.focused == focusDetail).
		Width(m.viewport.Width).
		Height(m.height - 3).
		Render(m.viewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, treePanel, detailPanel)
}

func (m Model) panelStyle(focused bool) lipgloss.Style {
	border := m.theme.Border
	if focused {
		border = m.theme.Primary
	}
	return m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func (m Model) renderFooter() string {
	r := m.theme.Renderer

	modeTxt := " TREE "
	if m.mode == viewColumns {
		modeTxt = " COLUMNS "
	}
	modeSection := r.NewStyle().
		Background(m.theme.Primary).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Render(modeTxt)

	source := " " + m.title + " "
	if m.dataPath != "" {
		source = " " + m.dataPath + " "
	}
	sourceSection := r.NewStyle().Foreground(m.theme.Subtext).Render(source)

	count := fmt.Sprintf(" %d nodes, %d visible ", m.treeView.Size(), m.treeView.VisibleCount())
	countSection := r.NewStyle().Foreground(m.theme.Secondary).Render(count)

	filterSection := ""
	if m.filterApplied && m.overlayMode != overlayFilter {
		filterSection = r.NewStyle().
			Foreground(m.theme.Highlight).
			Render(fmt.Sprintf(" /%s (%d) ", m.filterQuery, m.filterMatches))
	}

	toastSection := ""
	if m.toast != "" {
		toastSection = r.NewStyle().
			Foreground(m.theme.Drop).
			Bold(true).
			Render(" " + m.toast + " ")
	}

	var right string
	if m.overlayMode == overlayFilter {
		right = m.filterInput.View()
		if m.filterQuery != "" {
			right += r.NewStyle().Foreground(m.theme.Muted).
				Render(fmt.Sprintf("  %d match(es)", m.filterMatches))
		}
	} else {
		right = r.NewStyle().Foreground(m.theme.Subtext).Render(m.footerKeys())
	}

	leftWidth := lipgloss.Width(modeSection) + lipgloss.Width(sourceSection) +
		lipgloss.Width(countSection) + lipgloss.Width(filterSection) + lipgloss.Width(toastSection)
	remaining := m.width - leftWidth - lipgloss.Width(right)
	if remaining < 0 {
		remaining = 0
	}
	filler := r.NewStyle().Width(remaining).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		modeSection, sourceSection, countSection, filterSection, toastSection, filler, right)
}

func (m Model) footerKeys() string {
	switch m.overlayMode {
	case overlayPicker:
		return "j/k: pick | enter: load | esc: close "
	case overlayEditor:
		return "enter: next field | esc: discard "
	case overlayTutorial:
		return "n/p: pages | t: contents | esc: close "
	case overlayHelp, overlayInsights:
		return "esc: close "
	}
	if m.mode == viewColumns {
		return "h/j/k/l: navigate | 1: tree | ?: help | q: quit "
	}
	return "j/k: move | space: toggle | /: filter | s: samples | ?: help | q: quit "
}

// ===== exposed for testing and host control =====

// SelectedID returns the id selected in the active rendition.
func (m Model) SelectedID() string {
	return m.selectedID()
}

// Items returns the demo's current forest.
func (m Model) Items() []model.Item {
	return m.items
}

// CurrentToast returns the transient status text, "" when expired.
func (m Model) CurrentToast() string {
	return m.toast
}

// IsFiltering reports whether a filter is narrowing the tree.
func (m Model) IsFiltering() bool {
	return m.filterApplied
}

// FilterMatches returns the match count of the applied filter.
func (m Model) FilterMatches() int {
	return m.filterMatches
}

// InColumnsView reports whether the Miller columns rendition is active.
func (m Model) InColumnsView() bool {
	return m.mode == viewColumns
}

// OverlayOpen reports whether any modal overlay has focus.
func (m Model) OverlayOpen() bool {
	return m.overlayMode != overlayNone
}

// HistoryLen returns the number of recorded selections.
func (m Model) HistoryLen() int {
	return m.history.Len()
}

// VisibleCount returns the row count of the list rendition.
func (m Model) VisibleCount() int {
	return m.treeView.VisibleCount()
}
