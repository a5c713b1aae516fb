// keys.go - Key bindings for the tree widget and the demo shell
package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines every binding the application understands. The tree
// widget consumes only the navigation subset; the rest belongs to the
// demo shell around it.
type KeyMap struct {
	// Tree navigation
	Up          key.Binding
	Down        key.Binding
	Right       key.Binding
	Left        key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Top         key.Binding
	Bottom      key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Deselect    key.Binding

	// Shell
	Filter   key.Binding
	CopyID   key.Binding
	Edit     key.Binding
	Samples  key.Binding
	Insights key.Binding
	Back     key.Binding
	Export   key.Binding
	ViewTree key.Binding
	ViewCols key.Binding
	Help     key.Binding
	Tutorial key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand / first child"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse / parent"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle branch"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "collapse all"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "half page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "half page down"),
		),
		Deselect: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear selection"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		CopyID: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy id"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit node"),
		),
		Samples: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "samples"),
		),
		Insights: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insights"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "back"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
		ViewTree: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "tree view"),
		),
		ViewCols: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "columns view"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Tutorial: key.NewBinding(
			key.WithKeys("`"),
			key.WithHelp("`", "tutorial"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings for the one-line footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Right, k.Left, k.Filter, k.Help, k.Quit}
}

// FullHelp returns the grouped bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Right, k.Left, k.Toggle, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.ExpandAll, k.CollapseAll, k.Deselect, k.Filter, k.Back},
		{k.CopyID, k.Edit, k.Samples, k.Insights, k.Export},
		{k.ViewTree, k.ViewCols, k.Help, k.Tutorial, k.Quit},
	}
}
