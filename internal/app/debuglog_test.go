package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"

	"winleap/pkg/logger"
)

// brokenWriter refuses every write, like a closed pipe.
type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

// redirectStateHome points the XDG state directory at a temp dir for
// the duration of the test.
func redirectStateHome(t *testing.T) {
	t.Helper()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
}

func TestPrintDebugLogMissingFile(t *testing.T) {
	redirectStateHome(t)

	var buf bytes.Buffer
	if err := PrintDebugLog(&buf); err != nil {
		t.Fatalf("missing debug log must not fail: %v", err)
	}
	if !strings.Contains(buf.String(), "does not exist") {
		t.Fatalf("output = %q, want a missing-log notice", buf.String())
	}
}

func TestPrintDebugLogDumpsContents(t *testing.T) {
	redirectStateHome(t)

	path := logger.DebugLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create state dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("mark dispatched\n"), 0644); err != nil {
		t.Fatalf("failed to write debug log: %v", err)
	}

	var buf bytes.Buffer
	if err := PrintDebugLog(&buf); err != nil {
		t.Fatalf("PrintDebugLog failed: %v", err)
	}
	if !strings.Contains(buf.String(), "mark dispatched") {
		t.Fatalf("output = %q, want the log contents", buf.String())
	}
}

func TestPrintDebugLogPropagatesWriteFailure(t *testing.T) {
	redirectStateHome(t)

	path := logger.DebugLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create state dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("mark dispatched\n"), 0644); err != nil {
		t.Fatalf("failed to write debug log: %v", err)
	}

	if err := PrintDebugLog(brokenWriter{}); err == nil {
		t.Fatalf("expected an error when the output writer fails")
	}
}
