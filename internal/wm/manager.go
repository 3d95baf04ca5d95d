package wm

import (
	"fmt"
	"os"

	"winleap/pkg/logger"
)

// NewDirectory selects a directory backend. The native X11 backend is
// preferred whenever a display is reachable; the external-tools backend
// covers setups where the tool runs without direct protocol access
// (e.g. through an X forwarding shim that only exposes the CLI tools).
func NewDirectory(log *logger.Logger) (Directory, error) {
	if os.Getenv("DISPLAY") != "" {
		dir, err := NewX11(log)
		if err == nil {
			log.Debug("Directory backend selected", "backend", dir.Name())
			return dir, nil
		}
		log.Warn("X11 backend unavailable, trying external tools", "error", err)
	}

	dir, err := NewTools(log)
	if err != nil {
		return nil, fmt.Errorf("no usable window directory backend: %w", err)
	}
	log.Debug("Directory backend selected", "backend", dir.Name())
	return dir, nil
}
