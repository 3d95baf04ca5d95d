package notify

import (
	"fmt"
	"os"
	"os/exec"

	"winleap/pkg/logger"
)

// NotificationType represents the type of notification.
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

// NotifyService surfaces user-facing outcomes (no mapping, no windows,
// selection aborted) as desktop notifications, falling back to stderr
// when no notification tool is available. Dispatch is usually launched
// from a hotkey with no terminal attached, so stderr alone is not enough.
type NotifyService struct {
	log *logger.Logger
}

// NewNotifyService creates a new notification service.
func NewNotifyService(log *logger.Logger) *NotifyService {
	return &NotifyService{log: log}
}

// Show displays a notification of the specified type.
func (n *NotifyService) Show(message string, nType NotificationType) {
	if err := n.trySystemNotification(message, nType); err == nil {
		return
	}
	n.printToTerminal(message, nType)
}

func (n *NotifyService) trySystemNotification(message string, nType NotificationType) error {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return err
	}

	urgency := "normal"
	if nType == Error {
		urgency = "critical"
	}
	cmd := exec.Command("notify-send", "--urgency", urgency, "--app-name", "winleap", message)
	if err := cmd.Run(); err != nil {
		n.log.Debug("notify-send failed", "error", err)
		return err
	}
	return nil
}

func (n *NotifyService) printToTerminal(message string, nType NotificationType) {
	prefix := "INFO"
	if nType == Error {
		prefix = "ERROR"
	}
	fmt.Fprintf(os.Stderr, "[%s] %s\n", prefix, message)
}
