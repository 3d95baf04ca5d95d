package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"winleap/internal/resolve"
	"winleap/internal/wm"
	"winleap/pkg/config"
	"winleap/pkg/logger"
	"winleap/pkg/notify"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(logger.WithLevel(zerolog.Disabled))
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return log
}

func testApp(t *testing.T, opts Options, configContent string) *App {
	t.Helper()
	log := testLogger(t)
	path := filepath.Join(t.TempDir(), "winleap.conf")
	if err := os.WriteFile(path, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := config.Load(path, log)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return &App{
		opts:     opts,
		cfg:      cfg,
		log:      log,
		notifier: notify.NewNotifyService(log),
	}
}

// fakeDirectory serves canned workspace state.
type fakeDirectory struct {
	desktop    int
	desktopErr error
}

func (f *fakeDirectory) Name() string                     { return "fake" }
func (f *fakeDirectory) Windows() ([]wm.Window, error)    { return nil, nil }
func (f *fakeDirectory) ActiveWindow() (string, error)    { return "", nil }
func (f *fakeDirectory) SwitchDesktop(desktop int) error  { return nil }
func (f *fakeDirectory) Activate(w wm.Window) error       { return nil }
func (f *fakeDirectory) RaiseAndFocus(w wm.Window) error  { return nil }
func (f *fakeDirectory) Close() error                     { return nil }

func (f *fakeDirectory) CurrentDesktop() (int, error) {
	return f.desktop, f.desktopErr
}

func TestScopeFilter(t *testing.T) {
	windows := []wm.Window{
		{ID: "0x01", Class: "discord", Desktop: 1},
		{ID: "0x02", Class: "discord", Desktop: 2},
		{ID: "0x03", Class: "discord", Desktop: -1}, // unknown workspace
		{ID: "0x04", Class: "discord", Desktop: 1},
	}

	tests := []struct {
		name    string
		opts    Options
		desktop int
		wantIDs []string
	}{
		{
			name:    "unrestricted scope keeps everything",
			opts:    Options{},
			desktop: 1,
			wantIDs: []string{"0x01", "0x02", "0x03", "0x04"},
		},
		{
			name:    "restricted scope keeps the current workspace only",
			opts:    Options{CurrentWorkspace: true},
			desktop: 1,
			wantIDs: []string{"0x01", "0x04"},
		},
		{
			name:    "unknown workspace is excluded from a restricted scope",
			opts:    Options{CurrentWorkspace: true},
			desktop: 3,
			wantIDs: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testApp(t, tt.opts, "")
			got, err := a.scopeFilter(&fakeDirectory{desktop: tt.desktop}, windows)
			if err != nil {
				t.Fatalf("scopeFilter failed: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("kept %d windows, want %d", len(got), len(tt.wantIDs))
			}
			for i, w := range got {
				if w.ID != tt.wantIDs[i] {
					t.Fatalf("window %d = %s, want %s", i, w.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestScopeFilterDesktopError(t *testing.T) {
	a := testApp(t, Options{CurrentWorkspace: true}, "")
	dir := &fakeDirectory{desktopErr: errors.New("no _NET_CURRENT_DESKTOP")}

	if _, err := a.scopeFilter(dir, []wm.Window{{ID: "0x01", Desktop: 0}}); err == nil {
		t.Fatalf("expected an error when the current workspace cannot be read")
	}
}

func TestResolveInstanceSelectorShortfall(t *testing.T) {
	// Three candidates against two selector keys must fail before any
	// keyboard capture is attempted; the error arrives even with no
	// display available.
	a := testApp(t, Options{}, "instance_keys=12\n")
	candidates := []wm.Window{
		{ID: "0x01", Class: "discord"},
		{ID: "0x02", Class: "discord"},
		{ID: "0x03", Class: "discord"},
	}

	_, err := a.resolveInstance(&fakeDirectory{}, candidates)
	var exhausted *resolve.SelectorExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("err = %v, want *SelectorExhaustedError", err)
	}
	if exhausted.Candidates != 3 || exhausted.Keys != 2 {
		t.Fatalf("shortfall = %d/%d, want 3/2", exhausted.Candidates, exhausted.Keys)
	}
}
