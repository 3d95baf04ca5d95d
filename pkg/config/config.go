package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"winleap/pkg/logger"
)

// DefaultInstanceKeys is the selector-key order used when a config
// file does not set instance_keys.
const DefaultInstanceKeys = "qwertyuiopasdfghjklzxcvbnm1234567890"

// ParseError is a hard configuration failure: a recognized key with a
// malformed value. Unrecognized or malformed lines are ignored instead.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config %s:%d: %s", e.Path, e.Line, e.Reason)
}

// Config holds the loaded mark table and selection settings. Fields are
// unexported to keep a loaded configuration immutable.
type Config struct {
	path         string
	marks        map[int]string
	instanceKeys []rune
	debug        bool
}

// Load reads and parses the config file at path. A missing file yields
// an empty configuration with defaults; any recognized key with a bad
// value is a *ParseError and no partial configuration is returned.
func Load(path string, log *logger.Logger) (*Config, error) {
	cfg := &Config{
		path:         path,
		marks:        make(map[int]string),
		instanceKeys: []rune(DefaultInstanceKeys),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("No config file, using defaults", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}

		switch strings.ToLower(key) {
		case "instance_keys":
			keys, reason := parseInstanceKeys(value)
			if reason != "" {
				return nil, &ParseError{Path: path, Line: lineNo, Reason: reason}
			}
			cfg.instanceKeys = keys
			continue
		case "debug":
			b, ok := parseBool(value)
			if !ok {
				return nil, &ParseError{Path: path, Line: lineNo, Reason: fmt.Sprintf("invalid debug value %q", value)}
			}
			cfg.debug = b
			continue
		}

		// Default format: number=wm_class. Keys that are not positive
		// integers are silently skipped, matching malformed-line handling.
		num, err := strconv.Atoi(key)
		if err != nil || num <= 0 || value == "" {
			continue
		}
		// First mapping for a mark number wins; later duplicates are ignored.
		if _, dup := cfg.marks[num]; !dup {
			cfg.marks[num] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	log.Debug("Configuration loaded",
		"path", path,
		"marks", len(cfg.marks),
		"instance_keys", string(cfg.instanceKeys),
		"debug", cfg.debug)
	return cfg, nil
}

// parseInstanceKeys normalizes a selector-key string: whitespace is
// skipped, keys are lowercased, and the result must be non-empty with
// no duplicates. Returns a non-empty reason on failure.
func parseInstanceKeys(raw string) ([]rune, string) {
	seen := make(map[rune]bool)
	var keys []rune
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		if !unicode.IsPrint(r) {
			continue
		}
		r = unicode.ToLower(r)
		if seen[r] {
			return nil, fmt.Sprintf("duplicate selector key %q in instance_keys", r)
		}
		seen[r] = true
		keys = append(keys, r)
	}
	if len(keys) == 0 {
		return nil, "instance_keys cannot be empty"
	}
	return keys, ""
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}

// Path returns the path this configuration was resolved from.
func (c *Config) Path() string {
	return c.path
}

// MarkClass returns the application class mapped to a mark number.
func (c *Config) MarkClass(mark int) (string, bool) {
	class, ok := c.marks[mark]
	return class, ok
}

// Marks returns the number of loaded mark entries.
func (c *Config) Marks() int {
	return len(c.marks)
}

// InstanceKeys returns the ordered selector keys for explicit
// instance selection.
func (c *Config) InstanceKeys() []rune {
	keys := make([]rune, len(c.instanceKeys))
	copy(keys, c.instanceKeys)
	return keys
}

// Debug reports whether the config enables debug logging.
func (c *Config) Debug() bool {
	return c.debug
}
