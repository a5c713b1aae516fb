package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/arbor/pkg/analysis"
	"github.com/Dicklesworthstone/arbor/pkg/config"
	"github.com/Dicklesworthstone/arbor/pkg/export"
	"github.com/Dicklesworthstone/arbor/pkg/loader"
	"github.com/Dicklesworthstone/arbor/pkg/logging"
	"github.com/Dicklesworthstone/arbor/pkg/model"
	"github.com/Dicklesworthstone/arbor/pkg/sample"
	"github.com/Dicklesworthstone/arbor/pkg/tree"
	"github.com/Dicklesworthstone/arbor/pkg/ui"
)

const version = "0.3.0"

// cliFlags captures the raw command line. set records which flags were
// given explicitly, so config file values only fill the gaps.
type cliFlags struct {
	data         string
	sampleName   string
	selectID     string
	expandAll    bool
	theme        string
	logFile      string
	watch        bool
	exportDir    string
	exportFormat string
	set          map[string]bool
}

// settings is the merged flag/config view the rest of main acts on.
type settings struct {
	dataPath     string
	sampleName   string
	selectID     string
	expandAll    bool
	themeName    string
	logFile      string
	watch        bool
	exportDir    string
	exportFormat string
}

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	robotHelp := flag.Bool("robot-help", false, "Show AI agent help")
	robotShape := flag.Bool("robot-shape", false, "Output forest shape metrics as JSON for AI agents")
	outline := flag.Bool("outline", false, "Print a plain text outline instead of launching the TUI")
	dataPath := flag.String("data", "", "Load the forest from a JSON or YAML file")
	sampleName := flag.String("sample", "", "Load a built-in sample forest (filesystem, org, menu, deep)")
	selectID := flag.String("select", "", "Select this item ID on startup")
	expandAll := flag.Bool("expand-all", false, "Open every branch on startup")
	themeName := flag.String("theme", "", "Color theme (default, mono)")
	logFile := flag.String("log-file", "", "Append debug logging to this file")
	watch := flag.Bool("watch", true, "Reload the tree when the data file changes")
	exportFormat := flag.String("export", "", "Export the tree and exit (outline, markdown, html, svg, png, or all)")
	exportDir := flag.String("out", "", "Output directory for exports")
	configPath := flag.String("config", "", "Load settings from this config file instead of searching for "+config.FileName)
	initConfig := flag.Bool("init-config", false, "Write an example "+config.FileName+" and exit")
	flag.Parse()

	if *help {
		fmt.Println("Usage: arbor [options]")
		fmt.Println("\nA collapsible tree viewer with drag and drop.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("arbor %s\n", version)
		os.Exit(0)
	}

	if *robotHelp {
		printRobotHelp()
		os.Exit(0)
	}

	if *initConfig {
		if err := writeExampleConfig(config.FileName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", config.FileName)
		os.Exit(0)
	}

	flags := cliFlags{
		data:         *dataPath,
		sampleName:   *sampleName,
		selectID:     *selectID,
		expandAll:    *expandAll,
		theme:        *themeName,
		logFile:      *logFile,
		watch:        *watch,
		exportDir:    *exportDir,
		exportFormat: *exportFormat,
		set:          map[string]bool{},
	}
	flag.Visit(func(f *flag.Flag) { flags.set[f.Name] = true })

	if flags.set["data"] && flags.set["sample"] {
		fmt.Fprintln(os.Stderr, "Error: --data and --sample are mutually exclusive")
		os.Exit(1)
	}

	cfg, cfgPath := loadConfig(*configPath)
	s := resolveSettings(flags, cfg, cfgPath)

	if s.logFile != "" {
		closeLog, err := logging.Init(s.logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			defer closeLog()
		}
	}

	items, title, err := loadForest(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tree: %v\n", err)
		if s.sampleName != "" {
			fmt.Fprintf(os.Stderr, "Built-in samples: %s\n", strings.Join(sample.Names(), ", "))
		}
		os.Exit(1)
	}

	if *robotShape {
		report := buildShapeReport(items, title)
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding shape: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		os.Exit(0)
	}

	if flags.set["export"] {
		if err := runBatchExport(items, s.exportFormat, s.exportDir, title); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Pipes and CI never get the TUI; fall back to the outline.
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if *outline || !isTTY {
		text, err := export.GenerateOutline(items, title)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering outline: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(text)
		if !isTTY && !*outline {
			fmt.Fprintln(os.Stderr, "stdout is not a terminal; printed an outline (pass --outline to silence this note)")
		}
		os.Exit(0)
	}

	theme, err := ui.ThemeByName(s.themeName, lipgloss.DefaultRenderer())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var worker *ui.ReloadWorker
	if s.watch && s.dataPath != "" {
		worker, err = ui.NewReloadWorker(ui.ReloadConfig{DataPath: s.dataPath})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
			worker = nil
		} else {
			worker.SetBaseline(items)
		}
	}

	m := ui.NewModel(ui.Options{
		Items:             items,
		Title:             title,
		SampleName:        s.sampleName,
		DataPath:          s.dataPath,
		Theme:             theme,
		ExportDir:         s.exportDir,
		InitialSelectedID: s.selectID,
		ExpandAll:         s.expandAll,
		Worker:            worker,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if worker != nil {
		worker.SetProgram(p)
		if err := worker.Start(); err != nil {
			logging.Warnf("live reload disabled: %v", err)
		}
		defer worker.Stop()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running arbor: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig returns the effective configuration and the path it came
// from. A missing file is not an error; a broken one is reported and
// replaced with the defaults so the TUI still starts.
func loadConfig(explicit string) (*config.Config, string) {
	if explicit != "" {
		cfg, err := config.Load(explicit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", explicit, err)
			os.Exit(1)
		}
		return cfg, explicit
	}

	path, err := config.Find("")
	if err != nil {
		defaults := config.DefaultConfig()
		return &defaults, ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring %s: %v\n", path, err)
		defaults := config.DefaultConfig()
		return &defaults, ""
	}
	return cfg, path
}

// resolveSettings merges explicit flags over config file values.
func resolveSettings(f cliFlags, cfg *config.Config, cfgPath string) settings {
	s := settings{
		dataPath:     cfg.ResolvedData(cfgPath),
		sampleName:   cfg.Sample,
		selectID:     cfg.Select,
		expandAll:    cfg.ExpandAll,
		themeName:    cfg.GetTheme(),
		logFile:      cfg.LogFile,
		watch:        cfg.IsWatchEnabled(),
		exportDir:    cfg.GetExportDir(),
		exportFormat: cfg.GetExportFormat(),
	}

	if f.set["data"] {
		s.dataPath = f.data
		s.sampleName = ""
	}
	if f.set["sample"] {
		s.sampleName = f.sampleName
		s.dataPath = ""
	}
	if f.set["select"] {
		s.selectID = f.selectID
	}
	if f.set["expand-all"] {
		s.expandAll = f.expandAll
	}
	if f.set["theme"] {
		s.themeName = f.theme
	}
	if f.set["log-file"] {
		s.logFile = f.logFile
	}
	if f.set["watch"] {
		s.watch = f.watch
	}
	if f.set["out"] {
		s.exportDir = f.exportDir
	}
	if f.set["export"] {
		s.exportFormat = f.exportFormat
	}

	return s
}

// loadForest resolves the forest source: a named sample, a data file,
// or the default sample when neither is given.
func loadForest(s settings) ([]model.Item, string, error) {
	if s.sampleName != "" {
		smp, ok := sample.ByName(s.sampleName)
		if !ok {
			return nil, "", fmt.Errorf("unknown sample %q", s.sampleName)
		}
		return smp.Items, smp.Name, nil
	}

	if s.dataPath != "" {
		items, err := loader.LoadFile(s.dataPath)
		if err != nil {
			return nil, "", err
		}
		title := strings.TrimSuffix(filepath.Base(s.dataPath), filepath.Ext(s.dataPath))
		return items, title, nil
	}

	smp := sample.DefaultSample()
	return smp.Items, smp.Name, nil
}

// shapeReport is the --robot-shape payload.
type shapeReport struct {
	GeneratedAt string             `json:"generated_at"`
	Source      string             `json:"source"`
	Shape       *analysis.Shape    `json:"shape"`
	Insights    []analysis.Insight `json:"insights"`
}

func buildShapeReport(items []model.Item, source string) shapeReport {
	shape := analysis.Analyze(tree.Build(items))
	return shapeReport{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      source,
		Shape:       shape,
		Insights:    shape.Insights(),
	}
}

// runBatchExport writes the tree in one or every format, fanning the
// renderers out since PNG rasterization dominates the runtime.
func runBatchExport(items []model.Item, format, dir, title string) error {
	formats := []string{format}
	if format == "all" {
		formats = export.Formats()
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	paths := make([]string, len(formats))
	var g errgroup.Group
	for i, f := range formats {
		g.Go(func() error {
			name := export.GenerateExportFilename(title, export.Extension(f))
			path := filepath.Join(dir, name)
			if err := export.Save(items, f, path, title); err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Printf("Exported %s\n", p)
	}
	return nil
}

// writeExampleConfig writes the documented example config, refusing to
// clobber an existing file.
func writeExampleConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	example := config.ExampleConfig()
	data, err := yaml.Marshal(&example)
	if err != nil {
		return err
	}
	header := "# arbor configuration. Flags override these values.\n"
	return os.WriteFile(path, []byte(header+string(data)), 0o644)
}

func printRobotHelp() {
	fmt.Println("arbor AI Agent Interface")
	fmt.Println("========================")
	fmt.Println("arbor renders hierarchical data as an interactive tree. These flags")
	fmt.Println("produce machine-friendly output without starting the TUI.")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  --robot-shape")
	fmt.Println("      Outputs structural metrics of the loaded forest as JSON.")
	fmt.Println("      Key fields:")
	fmt.Println("      - shape: node/branch/leaf counts, depth histogram, branching factor")
	fmt.Println("      - insights: human-readable observations, ordered facts first")
	fmt.Println("      Combine with --data FILE or --sample NAME to pick the forest.")
	fmt.Println("")
	fmt.Println("  --outline")
	fmt.Println("      Prints the forest as an indented text outline.")
	fmt.Println("      This is also the automatic behavior when stdout is not a terminal.")
	fmt.Println("")
	fmt.Println("  --export FORMAT --out DIR")
	fmt.Println("      Writes the tree to DIR and exits. FORMAT is one of outline,")
	fmt.Println("      markdown, html, svg, png, or all for every format at once.")
	fmt.Println("")
	fmt.Println("  --data FILE")
	fmt.Println("      Load a JSON or YAML forest. Schema: [{id, name, children: [...]}].")
	fmt.Println("      Duplicate or empty ids are rejected with a precise error.")
	fmt.Println("")
	fmt.Println("  --init-config")
	fmt.Println("      Writes an example " + config.FileName + " with every setting documented.")
}
