package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Dicklesworthstone/arbor/pkg/loader"
)

func writeForestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
}

const workerForestV1 = `[{"id":"src","name":"src","children":[{"id":"main","name":"main.go"}]}]`

func TestReloadWorker_NewWithoutPath(t *testing.T) {
	worker, err := NewReloadWorker(ReloadConfig{DataPath: ""})
	if err != nil {
		t.Fatalf("NewReloadWorker failed: %v", err)
	}
	defer worker.Stop()

	if worker.State() != WorkerIdle {
		t.Errorf("Expected idle state, got %v", worker.State())
	}
	if worker.Snapshot() != nil {
		t.Error("Expected nil snapshot initially")
	}
	if worker.WatcherChanged() != nil {
		t.Error("WatcherChanged should return nil when no watcher")
	}
}

func TestReloadWorker_StartStop(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "forest.json")
	writeForestFile(t, dataPath, workerForestV1)

	worker, err := NewReloadWorker(ReloadConfig{
		DataPath:      dataPath,
		DebounceDelay: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewReloadWorker failed: %v", err)
	}

	if err := worker.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Stop should be idempotent
	worker.Stop()
	worker.Stop()

	if worker.State() != WorkerStopped {
		t.Errorf("Expected stopped state, got %v", worker.State())
	}
}

func TestReloadWorker_TriggerRefresh(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "forest.json")
	writeForestFile(t, dataPath, workerForestV1)

	worker, err := NewReloadWorker(ReloadConfig{
		DataPath:      dataPath,
		DebounceDelay: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewReloadWorker failed: %v", err)
	}
	defer worker.Stop()

	worker.TriggerRefresh()
	time.Sleep(200 * time.Millisecond)

	snapshot := worker.Snapshot()
	if snapshot == nil {
		t.Fatal("Expected snapshot after refresh")
	}
	if len(snapshot.Items) != 1 {
		t.Errorf("Expected 1 root, got %d", len(snapshot.Items))
	}
	if snapshot.Shape == nil {
		t.Error("Expected shape metrics in snapshot")
	}
	if snapshot.Hash == "" {
		t.Error("Expected content hash in snapshot")
	}
	if snapshot.Changes == nil {
		t.Fatal("Expected diff result in snapshot")
	}
	// With no baseline everything counts as added
	if snapshot.Changes.AddedCount != 2 {
		t.Errorf("Expected 2 added against empty baseline, got %d", snapshot.Changes.AddedCount)
	}
}

func TestReloadWorker_ContentHashDedup(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "forest.json")
	writeForestFile(t, dataPath, workerForestV1)

	worker, err := NewReloadWorker(ReloadConfig{
		DataPath:      dataPath,
		DebounceDelay: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewReloadWorker failed: %v", err)
	}
	defer worker.Stop()

	worker.TriggerRefresh()
	time.Sleep(200 * time.Millisecond)

	snapshot1 := worker.Snapshot()
	if snapshot1 == nil {
		t.Fatal("Expected snapshot after first refresh")
	}
	hash1 := worker.LastHash()
	if hash1 == "" {
		t.Error("Expected non-empty hash after first refresh")
	}

	worker.TriggerRefresh()
	time.Sleep(200 * time.Millisecond)

	if worker.LastHash() != hash1 {
		t.Errorf("Hash changed unexpectedly: %s -> %s", hash1, worker.LastHash())
	}
	if worker.Snapshot() != snapshot1 {
		t.Error("Snapshot pointer changed when content was unchanged - dedup failed")
	}
}

func TestReloadWorker_DiffAgainstBaseline(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "forest.json")
	writeForestFile(t, dataPath, workerForestV1)

	worker, err := NewReloadWorker(ReloadConfig{
		DataPath:      dataPath,
		DebounceDelay: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewReloadWorker failed: %v", err)
	}
	defer worker.Stop()

	baseline, lerr := loader.LoadFile(dataPath)
	if lerr != nil {
		t.Fatalf("Failed to load baseline: %v", lerr)
	}
	worker.SetBaseline(baseline)

	// One node added, one removed relative to the baseline
	writeForestFile(t, dataPath,
		`[{"id":"src","name":"src","children":[{"id":"util","name":"util.go"}]}]`)

	worker.TriggerRefresh()
	time.Sleep(200 * time.Millisecond)

	snapshot := worker.Snapshot()
	if snapshot == nil {
		t.Fatal("Expected snapshot after refresh")
	}
	if snapshot.Changes.AddedCount != 1 {
		t.Errorf("Expected 1 added, got %d", snapshot.Changes.AddedCount)
	}
	if snapshot.Changes.RemovedCount != 1 {
		t.Errorf("Expected 1 removed, got %d", snapshot.Changes.RemovedCount)
	}

	// A second change diffs against the accepted forest, not the seed
	writeForestFile(t, dataPath,
		`[{"id":"src","name":"source","children":[{"id":"util","name":"util.go"}]}]`)

	worker.TriggerRefresh()
	time.Sleep(200 * time.Millisecond)

	snapshot2 := worker.Snapshot()
	if snapshot2 == snapshot {
		t.Fatal("Expected a new snapshot after content change")
	}
	if snapshot2.Changes.RenamedCount != 1 {
		t.Errorf("Expected 1 renamed, got %d", snapshot2.Changes.RenamedCount)
	}
	if snapshot2.Changes.AddedCount != 0 {
		t.Errorf("Expected 0 added on rename-only change, got %d", snapshot2.Changes.AddedCount)
	}
}

func TestReloadWorker_ResetHash(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "forest.json")
	writeForestFile(t, dataPath, workerForestV1)

	worker, err := NewReloadWorker(ReloadConfig{
		DataPath:      dataPath,
		DebounceDelay: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewReloadWorker failed: %v", err)
	}
	defer worker.Stop()

	worker.TriggerRefresh()
	time.Sleep(200 * time.Millisecond)

	snapshot1 := worker.Snapshot()
	if worker.LastHash() == "" {
		t.Error("Expected non-empty hash")
	}

	worker.ResetHash()
	if worker.LastHash() != "" {
		t.Error("Expected empty hash after reset")
	}

	worker.TriggerRefresh()
	time.Sleep(200 * time.Millisecond)

	if worker.LastHash() == "" {
		t.Error("Expected hash to be set after refresh")
	}
	if worker.Snapshot() == snapshot1 {
		t.Error("Expected new snapshot after hash reset")
	}
}

func TestReloadWorker_LoadError(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "forest.json")
	// Invalid forest: duplicate ids fail validation
	writeForestFile(t, dataPath, `[{"id":"a","name":"A"},{"id":"a","name":"B"}]`)

	worker, err := NewReloadWorker(ReloadConfig{
		DataPath:      dataPath,
		DebounceDelay: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewReloadWorker failed: %v", err)
	}
	defer worker.Stop()

	worker.TriggerRefresh()
	time.Sleep(200 * time.Millisecond)

	if worker.Snapshot() != nil {
		t.Error("Expected nil snapshot for invalid file")
	}

	lastErr := worker.LastError()
	if lastErr == nil {
		t.Fatal("Expected error to be recorded")
	}
	if lastErr.Phase != "load" {
		t.Errorf("Expected phase 'load', got %q", lastErr.Phase)
	}
}

func TestReloadWorker_ErrorRecovery(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "forest.json")
	writeForestFile(t, dataPath, `not json at all`)

	worker, err := NewReloadWorker(ReloadConfig{
		DataPath:      dataPath,
		DebounceDelay: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewReloadWorker failed: %v", err)
	}
	defer worker.Stop()

	worker.TriggerRefresh()
	time.Sleep(200 * time.Millisecond)

	if worker.Snapshot() != nil {
		t.Error("Expected nil snapshot for malformed file")
	}
	if worker.LastError() == nil {
		t.Error("Expected error for malformed file")
	}

	writeForestFile(t, dataPath, workerForestV1)
	worker.TriggerRefresh()
	time.Sleep(200 * time.Millisecond)

	if worker.Snapshot() == nil {
		t.Fatal("Expected snapshot after file fixed")
	}
	if worker.LastError() != nil {
		t.Error("Expected error to be cleared on success")
	}
}

func TestReloadWorker_SafeCompute(t *testing.T) {
	worker, err := NewReloadWorker(ReloadConfig{DataPath: ""})
	if err != nil {
		t.Fatalf("NewReloadWorker failed: %v", err)
	}
	defer worker.Stop()

	werr := worker.safeCompute("test", func() error {
		panic("intentional panic for testing")
	})
	if werr == nil {
		t.Fatal("safeCompute should catch panics")
	}
	if werr.Phase != "test" {
		t.Errorf("Expected phase 'test', got %q", werr.Phase)
	}
	if !strings.Contains(werr.Cause.Error(), "intentional panic") {
		t.Errorf("Expected panic message in cause, got %v", werr.Cause)
	}
}

func TestWorkerError_String(t *testing.T) {
	err := WorkerError{
		Phase:   "load",
		Cause:   os.ErrNotExist,
		Time:    time.Now(),
		Retries: 3,
	}

	s := err.Error()
	if !strings.Contains(s, "load") {
		t.Errorf("Error() should contain phase 'load': %s", s)
	}
	if !strings.Contains(s, "3") {
		t.Errorf("Error() should contain retry count: %s", s)
	}
	if err.Unwrap() != os.ErrNotExist {
		t.Error("Unwrap() should return underlying error")
	}
}

func TestHashPrefix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"short string", "short", "short"},
		{"exactly 16 chars", "1234567890123456", "1234567890123456"},
		{"longer than 16 chars", "8b423072ec4730921a2b3c4d5e6f7890", "8b423072ec473092"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := hashPrefix(tt.input); result != tt.expected {
				t.Errorf("hashPrefix(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestReloadWorker_ConcurrentTrigger(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "forest.json")
	writeForestFile(t, dataPath, workerForestV1)

	worker, err := NewReloadWorker(ReloadConfig{
		DataPath:      dataPath,
		DebounceDelay: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewReloadWorker failed: %v", err)
	}
	defer worker.Stop()

	if err := worker.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Only one rebuild may run at a time; the rest mark dirty
	for i := 0; i < 5; i++ {
		go worker.TriggerRefresh()
	}

	time.Sleep(400 * time.Millisecond)

	if worker.State() != WorkerIdle {
		t.Errorf("Expected idle state after concurrent triggers, got %v", worker.State())
	}
	if worker.Snapshot() == nil {
		t.Error("Expected snapshot after concurrent triggers")
	}
}
