package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// TestLoggingHelpers_WriteToBuffer verifies the helper functions write
// formatted messages through the package-level logger L. The test swaps
// L with a buffer-backed logger and restores it afterwards.
func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	L.SetLevel(clog.DebugLevel)
	defer func() { L = prev }()

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	if !strings.Contains(out, "hello dbg") {
		t.Fatalf("missing debug output; got: %s", out)
	}
	if !strings.Contains(out, "info 1") {
		t.Fatalf("missing info output; got: %s", out)
	}
	if !strings.Contains(out, "warn") {
		t.Fatalf("missing warn output; got: %s", out)
	}
	if !strings.Contains(out, "err E") {
		t.Fatalf("missing error output; got: %s", out)
	}
}

// TestInit_WritesToFile verifies Init routes output to the named file
// and the closer detaches it.
func TestInit_WritesToFile(t *testing.T) {
	prev := L
	defer func() { L = prev }()

	path := filepath.Join(t.TempDir(), "arbor.log")
	closer, err := Init(path)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Infof("routed %s", "fine")
	closer()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "routed fine") {
		t.Errorf("expected log line in file, got: %s", data)
	}
}

// TestInit_BadPath verifies an unwritable path surfaces an error.
func TestInit_BadPath(t *testing.T) {
	prev := L
	defer func() { L = prev }()

	_, err := Init(filepath.Join(t.TempDir(), "missing", "arbor.log"))
	if err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}
