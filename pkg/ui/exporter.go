package ui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/arbor/pkg/export"
	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// ExportResultMsg is returned after a background export completes
type ExportResultMsg struct {
	Format  string
	Path    string
	Success bool
	Error   error
}

// TreeExporter writes snapshots of the current forest to disk without
// blocking the event loop
type TreeExporter struct {
	dir   string
	title string
}

// NewTreeExporter creates an exporter writing into dir. An empty dir
// means the current working directory.
func NewTreeExporter(dir, title string) *TreeExporter {
	if dir == "" {
		dir = "."
	}
	if title == "" {
		title = "Tree"
	}
	return &TreeExporter{dir: dir, title: title}
}

// Dir returns the directory exports are written to.
func (e *TreeExporter) Dir() string {
	return e.dir
}

// Export renders the forest in the given format and writes a
// timestamped file. The items are cloned before the command runs so
// later edits in the UI cannot race the write.
func (e *TreeExporter) Export(items []model.Item, format string) tea.Cmd {
	forest := make([]model.Item, len(items))
	for i := range items {
		forest[i] = items[i].Clone()
	}
	dir, title := e.dir, e.title

	return func() tea.Msg {
		filename := export.GenerateExportFilename(title, export.Extension(format))
		path := filepath.Join(dir, filename)

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ExportResultMsg{
				Format: format,
				Path:   path,
				Error:  fmt.Errorf("create export dir: %w", err),
			}
		}
		if err := export.Save(forest, format, path, title); err != nil {
			return ExportResultMsg{Format: format, Path: path, Error: err}
		}
		return ExportResultMsg{Format: format, Path: path, Success: true}
	}
}

// ExportAll renders every supported format in one batch.
func (e *TreeExporter) ExportAll(items []model.Item) tea.Cmd {
	formats := export.Formats()
	cmds := make([]tea.Cmd, 0, len(formats))
	for _, format := range formats {
		cmds = append(cmds, e.Export(items, format))
	}
	return tea.Batch(cmds...)
}
