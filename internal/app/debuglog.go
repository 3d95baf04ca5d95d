package app

import (
	"fmt"
	"io"
	"os"

	"winleap/pkg/logger"
)

// PrintDebugLog writes the debug log path and its contents to w.
// Needs no App: it must work even when nothing else does.
func PrintDebugLog(w io.Writer) error {
	path := logger.DebugLogPath()
	fmt.Fprintf(w, "Debug log path: %s\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "Debug log does not exist yet. Run with debug enabled to create it.")
			return nil
		}
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	fmt.Fprintln(w, "\n----- begin debug log -----")
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write debug log: %w", err)
	}
	fmt.Fprintln(w, "----- end debug log -----")
	return nil
}
