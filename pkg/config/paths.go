package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appDirName = "winleap"
	configName = "winleap.conf"
)

// ResolvePath picks the config file location. Resolution order:
//
//  1. explicit override
//  2. <xdg config dir>/winleap/winleap.conf (first existing, per XDG search)
//  3. winleap.conf next to the executable
//
// When nothing exists, the XDG location is returned anyway so callers
// report a stable path in errors and help output.
func ResolvePath(override string) string {
	if override != "" {
		return override
	}

	rel := filepath.Join(appDirName, configName)
	if path, err := xdg.SearchConfigFile(rel); err == nil {
		return path
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), configName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return filepath.Join(xdg.ConfigHome, rel)
}
