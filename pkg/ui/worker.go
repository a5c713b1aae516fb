// worker.go - Background reload pipeline for the watched data file
package ui

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/arbor/pkg/analysis"
	"github.com/Dicklesworthstone/arbor/pkg/diff"
	"github.com/Dicklesworthstone/arbor/pkg/loader"
	"github.com/Dicklesworthstone/arbor/pkg/logging"
	"github.com/Dicklesworthstone/arbor/pkg/model"
	"github.com/Dicklesworthstone/arbor/pkg/tree"
	"github.com/Dicklesworthstone/arbor/pkg/watcher"
)

// WorkerState represents the current state of the reload worker.
type WorkerState int

const (
	// WorkerIdle means the worker is waiting for file changes.
	WorkerIdle WorkerState = iota
	// WorkerProcessing means the worker is building a new snapshot.
	WorkerProcessing
	// WorkerStopped means the worker has been stopped.
	WorkerStopped
)

// WorkerError wraps errors with phase and retry context.
type WorkerError struct {
	Phase   string    // "load" or "analyze"
	Cause   error     // The underlying error
	Time    time.Time // When the error occurred
	Retries int       // Consecutive failures so far
}

func (e WorkerError) Error() string {
	return fmt.Sprintf("%s failed: %v (retries: %d)", e.Phase, e.Cause, e.Retries)
}

func (e WorkerError) Unwrap() error {
	return e.Cause
}

// ReloadSnapshot is one fully processed view of the watched file: the
// parsed forest, its shape metrics, and the diff against the forest the
// UI was showing before.
type ReloadSnapshot struct {
	Items    []model.Item
	Shape    *analysis.Shape
	Changes  *diff.Result
	Hash     string
	LoadedAt time.Time
}

// TreeReloadedMsg is sent to the UI when the watched file produced a
// new forest.
type TreeReloadedMsg struct {
	Snapshot *ReloadSnapshot
}

// ReloadErrorMsg is sent to the UI when reloading fails.
type ReloadErrorMsg struct {
	Err         *WorkerError
	Recoverable bool // True if the next file change may succeed
}

// ReloadWorker owns the file watcher and rebuilds the forest off the UI
// thread. Changes are coalesced: edits arriving while a rebuild runs
// mark the worker dirty and trigger one more pass when it finishes.
type ReloadWorker struct {
	dataPath      string
	debounceDelay time.Duration

	mu       sync.RWMutex
	state    WorkerState
	dirty    bool // True if a change came in while processing
	snapshot *ReloadSnapshot
	started  bool
	lastHash string       // Content hash of the last snapshot, for dedup
	baseline []model.Item // Forest the next diff compares against

	lastError  *WorkerError
	errorCount int

	watcher *watcher.Watcher
	program *tea.Program

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// ReloadConfig configures the ReloadWorker.
type ReloadConfig struct {
	DataPath      string
	DebounceDelay time.Duration
	Program       *tea.Program
}

// NewReloadWorker creates a new reload worker. An empty DataPath yields
// a worker with no watcher that never produces snapshots.
func NewReloadWorker(cfg ReloadConfig) (*ReloadWorker, error) {
	ctx, cancel := context.WithCancel(context.Background())

	if cfg.DebounceDelay == 0 {
		cfg.DebounceDelay = 200 * time.Millisecond
	}

	w := &ReloadWorker{
		dataPath:      cfg.DataPath,
		debounceDelay: cfg.DebounceDelay,
		program:       cfg.Program,
		state:         WorkerIdle,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}

	if cfg.DataPath != "" {
		fw, err := watcher.NewWatcher(cfg.DataPath,
			watcher.WithDebounceDuration(cfg.DebounceDelay),
		)
		if err != nil {
			cancel()
			return nil, err
		}
		w.watcher = fw
	}

	return w, nil
}

// SetProgram attaches the program snapshots are delivered to. The
// program is usually constructed after the worker, with the worker
// already wired into the model; call this before Start.
func (w *ReloadWorker) SetProgram(p *tea.Program) {
	w.program = p
}

// Start begins watching for file changes and processing in the
// background. Start is idempotent.
func (w *ReloadWorker) Start() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.mu.Unlock()

	if w.watcher != nil {
		if err := w.watcher.Start(); err != nil {
			return err
		}
		go w.processLoop()
	} else {
		// No watcher, close done immediately so Stop() doesn't block
		close(w.done)
	}

	return nil
}

// Stop halts the worker and cleans up resources. Stop is idempotent.
func (w *ReloadWorker) Stop() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	w.state = WorkerStopped
	wasStarted := w.started
	w.mu.Unlock()

	w.cancel()

	if w.watcher != nil {
		w.watcher.Stop()
	}

	if wasStarted {
		select {
		case <-w.done:
		case <-time.After(2 * time.Second):
			// Timeout waiting for graceful shutdown
		}
	}
}

// TriggerRefresh manually triggers a reload. Has no effect when the
// worker is stopped; when a rebuild is already running it marks the
// worker dirty instead.
func (w *ReloadWorker) TriggerRefresh() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	if w.state == WorkerProcessing {
		w.dirty = true
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	go w.process()
}

// SetBaseline sets the forest the next reload diffs against. The host
// seeds this with the initially loaded forest and after local edits.
func (w *ReloadWorker) SetBaseline(items []model.Item) {
	forest := make([]model.Item, len(items))
	for i := range items {
		forest[i] = items[i].Clone()
	}
	w.mu.Lock()
	w.baseline = forest
	w.mu.Unlock()
}

// Snapshot returns the current snapshot (may be nil).
func (w *ReloadWorker) Snapshot() *ReloadSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

// State returns the current worker state.
func (w *ReloadWorker) State() WorkerState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// processLoop watches for file changes and triggers processing.
func (w *ReloadWorker) processLoop() {
	defer close(w.done)

	if w.watcher == nil {
		return
	}

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-w.watcher.Changed():
			w.process()
		}
	}
}

// process builds a new snapshot from the current file.
func (w *ReloadWorker) process() {
	w.mu.Lock()
	if w.state != WorkerIdle {
		if w.state == WorkerProcessing {
			// Mark dirty so the running rebuild re-runs when done
			w.dirty = true
		}
		w.mu.Unlock()
		return
	}
	w.state = WorkerProcessing
	w.dirty = false
	w.mu.Unlock()

	// Returns nil when content is unchanged (dedup) or on error
	snapshot := w.buildSnapshot()

	w.mu.Lock()
	// Don't overwrite a stop that happened while we were processing
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	if snapshot != nil {
		w.snapshot = snapshot
	}
	wasDirty := w.dirty
	w.state = WorkerIdle
	w.mu.Unlock()

	if w.program != nil && snapshot != nil {
		w.program.Send(TreeReloadedMsg{Snapshot: snapshot})
	}

	if wasDirty {
		go w.process()
	}
}

// safeCompute executes fn and recovers from any panics. Returns a
// WorkerError if fn panics or errors, nil otherwise.
func (w *ReloadWorker) safeCompute(phase string, fn func() error) *WorkerError {
	var result *WorkerError
	func() {
		defer func() {
			if r := recover(); r != nil {
				result = &WorkerError{
					Phase: phase,
					Cause: fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
					Time:  time.Now(),
				}
			}
		}()
		if err := fn(); err != nil {
			result = &WorkerError{
				Phase: phase,
				Cause: err,
				Time:  time.Now(),
			}
		}
	}()
	return result
}

// recordError tracks an error and updates the consecutive-failure count.
func (w *ReloadWorker) recordError(err *WorkerError) {
	w.mu.Lock()
	w.lastError = err
	if err != nil {
		w.errorCount++
		err.Retries = w.errorCount
	} else {
		w.errorCount = 0
	}
	w.mu.Unlock()
}

// LastError returns the most recent error (nil if the last reload
// succeeded).
func (w *ReloadWorker) LastError() *WorkerError {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastError
}

// buildSnapshot loads the data file and constructs a new snapshot.
// Called from the worker goroutine, never the UI thread. Returns nil
// when dataPath is empty, loading fails, or content is unchanged.
func (w *ReloadWorker) buildSnapshot() *ReloadSnapshot {
	if w.dataPath == "" {
		return nil
	}

	start := time.Now()

	var items []model.Item
	loadErr := w.safeCompute("load", func() error {
		var err error
		items, err = loader.LoadFile(w.dataPath)
		return err
	})

	if loadErr != nil {
		logging.Warnf("reload: loading %s: %v", w.dataPath, loadErr)
		w.recordError(loadErr)
		if w.program != nil {
			w.program.Send(ReloadErrorMsg{
				Err:         loadErr,
				Recoverable: true, // File errors usually clear on the next save
			})
		}
		return nil
	}

	loadDuration := time.Since(start)

	hash := analysis.ComputeForestHash(items)

	w.mu.RLock()
	lastHash := w.lastHash
	baseline := w.baseline
	w.mu.RUnlock()

	if hash == lastHash && lastHash != "" {
		logging.Debugf("reload: content unchanged (hash=%s), skipping rebuild", hashPrefix(hash))
		w.recordError(nil)
		return nil
	}

	var snapshot *ReloadSnapshot
	analyzeStart := time.Now()
	analyzeErr := w.safeCompute("analyze", func() error {
		m := tree.Build(items)
		snapshot = &ReloadSnapshot{
			Items:    items,
			Shape:    analysis.Analyze(m),
			Changes:  diff.Compare(baseline, items),
			Hash:     hash,
			LoadedAt: time.Now(),
		}
		return nil
	})

	if analyzeErr != nil {
		logging.Warnf("reload: analysis error: %v", analyzeErr)
		w.recordError(analyzeErr)
		if w.program != nil {
			w.program.Send(ReloadErrorMsg{
				Err:         analyzeErr,
				Recoverable: true,
			})
		}
		return nil
	}

	w.recordError(nil)

	// The accepted forest becomes the base for the next diff
	w.mu.Lock()
	w.lastHash = hash
	w.baseline = items
	w.mu.Unlock()

	logging.Debugf("reload: %d roots (load=%v, analyze=%v, total=%v, hash=%s)",
		len(items), loadDuration, time.Since(analyzeStart), time.Since(start), hashPrefix(hash))

	return snapshot
}

// WatcherChanged returns the watcher's change notification channel, or
// nil when the worker has no watcher.
func (w *ReloadWorker) WatcherChanged() <-chan struct{} {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Changed()
}

// LastHash returns the content hash from the last successful reload.
func (w *ReloadWorker) LastHash() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastHash
}

// hashPrefix returns up to 16 characters of the hash for logging.
func hashPrefix(hash string) string {
	if len(hash) > 16 {
		return hash[:16]
	}
	return hash
}

// ResetHash clears the stored content hash, forcing the next reload to
// process even if content is unchanged.
func (w *ReloadWorker) ResetHash() {
	w.mu.Lock()
	w.lastHash = ""
	w.mu.Unlock()
}
