package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"winleap/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(logger.WithLevel(zerolog.Disabled))
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return log
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "winleap.conf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadMarks(t *testing.T) {
	path := writeConfig(t, `
# marks
1=zen-browser
2=discord

10=obsidian
`)
	cfg, err := Load(path, testLogger(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Marks() != 3 {
		t.Fatalf("expected 3 marks, got %d", cfg.Marks())
	}

	tests := []struct {
		mark  int
		class string
		ok    bool
	}{
		{1, "zen-browser", true},
		{2, "discord", true},
		{10, "obsidian", true},
		{3, "", false},
	}
	for _, tt := range tests {
		class, ok := cfg.MarkClass(tt.mark)
		if ok != tt.ok || class != tt.class {
			t.Errorf("MarkClass(%d) = %q, %v; want %q, %v", tt.mark, class, ok, tt.class, tt.ok)
		}
	}
}

func TestLoadDuplicateMarkFirstWins(t *testing.T) {
	path := writeConfig(t, "2=discord\n2=slack\n")
	cfg, err := Load(path, testLogger(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if class, _ := cfg.MarkClass(2); class != "discord" {
		t.Fatalf("expected first mapping to win, got %q", class)
	}
}

func TestLoadIgnoresMalformedLines(t *testing.T) {
	path := writeConfig(t, `
no equals sign here
abc=not-a-mark
0=zero-is-invalid
-3=negative
5=
7=konsole
`)
	cfg, err := Load(path, testLogger(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Marks() != 1 {
		t.Fatalf("expected only the valid mark to load, got %d", cfg.Marks())
	}
	if class, _ := cfg.MarkClass(7); class != "konsole" {
		t.Fatalf("MarkClass(7) = %q, want konsole", class)
	}
}

func TestLoadInstanceKeys(t *testing.T) {
	path := writeConfig(t, "instance_keys= 1 2 3AB\n")
	cfg, err := Load(path, testLogger(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := string(cfg.InstanceKeys()); got != "123ab" {
		t.Fatalf("InstanceKeys = %q, want 123ab", got)
	}
}

func TestLoadInstanceKeysDefault(t *testing.T) {
	path := writeConfig(t, "1=discord\n")
	cfg, err := Load(path, testLogger(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := string(cfg.InstanceKeys()); got != DefaultInstanceKeys {
		t.Fatalf("InstanceKeys = %q, want default", got)
	}
}

func TestLoadBadValuesAreHardFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"duplicate selector key", "instance_keys=abca\n"},
		{"case-insensitive duplicate", "instance_keys=aA\n"},
		{"empty selector set", "instance_keys=\n"},
		{"whitespace-only selectors", "instance_keys=   \n"},
		{"bad debug value", "debug=maybe\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path, testLogger(t))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
		})
	}
}

func TestLoadDebugValues(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true}, {"yes", true}, {"1", true},
		{"false", false}, {"no", false}, {"0", false},
		{"TRUE", true}, {"No", false},
	}
	for _, tt := range tests {
		path := writeConfig(t, "debug="+tt.value+"\n")
		cfg, err := Load(path, testLogger(t))
		if err != nil {
			t.Fatalf("Load(debug=%s) failed: %v", tt.value, err)
		}
		if cfg.Debug() != tt.want {
			t.Errorf("debug=%s parsed as %v, want %v", tt.value, cfg.Debug(), tt.want)
		}
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.conf"), testLogger(t))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Marks() != 0 {
		t.Fatalf("expected no marks, got %d", cfg.Marks())
	}
	if string(cfg.InstanceKeys()) != DefaultInstanceKeys {
		t.Fatalf("expected default instance keys")
	}
}
