package wm

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"winleap/pkg/logger"
)

// Tools is the directory backend that composes the external wmctrl and
// xdotool query tools instead of speaking the wire protocol itself.
type Tools struct {
	log *logger.Logger
}

func NewTools(log *logger.Logger) (*Tools, error) {
	for _, tool := range []string{"wmctrl", "xdotool"} {
		if _, err := exec.LookPath(tool); err != nil {
			return nil, fmt.Errorf("%w: %s is required but was not found: %v", ErrEnvironment, tool, err)
		}
	}
	return &Tools{log: log}, nil
}

func (t *Tools) Name() string {
	return "tools"
}

func (t *Tools) Windows() ([]Window, error) {
	out, err := exec.Command("wmctrl", "-lx").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: wmctrl -lx: %v", ErrEnvironment, err)
	}

	var windows []Window
	for _, line := range strings.Split(string(out), "\n") {
		w, ok := parseClientLine(line)
		if !ok {
			continue
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// parseClientLine parses one `wmctrl -lx` line:
//
//	0x01400003  2 instance.Class  host Window title words
//
// The class column carries WM_CLASS as "instance.Class"; the class
// component (after the first dot) addresses the window.
func parseClientLine(line string) (Window, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Window{}, false
	}

	id, err := ParseWindowID(fields[0])
	if err != nil {
		return Window{}, false
	}

	desktop, err := strconv.Atoi(fields[1])
	if err != nil {
		desktop = -1
	}

	class := fields[2]
	if class == "N/A" || class == "" {
		return Window{}, false
	}
	if _, after, found := strings.Cut(class, "."); found && after != "" {
		class = after
	}

	title := "(untitled)"
	if len(fields) > 4 {
		title = strings.Join(fields[4:], " ")
	}

	return Window{
		ID:      FormatWindowID(id),
		Class:   class,
		Title:   title,
		Desktop: desktop,
	}, true
}

func (t *Tools) ActiveWindow() (string, error) {
	out, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		return "", fmt.Errorf("xdotool getactivewindow: %w", err)
	}
	id, err := ParseWindowID(strings.TrimSpace(string(out)))
	if err != nil {
		return "", err
	}
	return FormatWindowID(id), nil
}

func (t *Tools) CurrentDesktop() (int, error) {
	out, err := exec.Command("xdotool", "get_desktop").Output()
	if err != nil {
		return -1, fmt.Errorf("xdotool get_desktop: %w", err)
	}
	desktop, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return -1, fmt.Errorf("unexpected get_desktop output %q: %w", strings.TrimSpace(string(out)), err)
	}
	return desktop, nil
}

func (t *Tools) SwitchDesktop(desktop int) error {
	if err := exec.Command("xdotool", "set_desktop", strconv.Itoa(desktop)).Run(); err != nil {
		return fmt.Errorf("xdotool set_desktop: %w", err)
	}
	return nil
}

func (t *Tools) Activate(w Window) error {
	if err := exec.Command("wmctrl", "-i", "-a", w.ID).Run(); err != nil {
		return fmt.Errorf("wmctrl -a: %w", err)
	}
	return nil
}

func (t *Tools) RaiseAndFocus(w Window) error {
	var firstErr error
	for _, action := range []string{"windowmap", "windowraise", "windowfocus"} {
		if err := exec.Command("xdotool", action, w.ID).Run(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("xdotool %s: %w", action, err)
		}
	}
	return firstErr
}

func (t *Tools) Close() error {
	return nil
}
