// Package input owns the exclusive keyboard capture used during
// interactive matching and instance selection.
package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"winleap/internal/wm"
	"winleap/pkg/logger"
)

// ErrGrabFailed means the exclusive keyboard grab could not be
// acquired after retries. No window mutation happens past this point.
var ErrGrabFailed = errors.New("cannot acquire exclusive keyboard grab")

// ErrCancelled is returned when the user hits the cancel key during a
// modal wait.
var ErrCancelled = errors.New("cancelled by user")

const (
	grabRetries        = 10
	grabInitialBackoff = 10 * time.Millisecond
)

// Special identifies non-printable keys the dispatch modes react to.
type Special int

const (
	SpecialNone Special = iota
	SpecialEscape
	SpecialBackspace
	SpecialEnter
)

// Key is one decoded key press. Printable keys carry a lowercased
// Rune; control keys carry a Special. Everything else is dropped
// before reaching callers.
type Key struct {
	Rune    rune
	Special Special
}

// Source is a blocking key event feed.
type Source interface {
	Next() (Key, error)
}

// Keyboard grabs the keyboard exclusively on its own X connection and
// reads key presses synchronously. A separate connection keeps the
// grab independent of whichever directory backend is in use.
type Keyboard struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	log     *logger.Logger
	grabbed bool
}

func NewKeyboard(log *logger.Logger) (*Keyboard, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open display for keyboard capture: %v", wm.ErrEnvironment, err)
	}
	keybind.Initialize(xu)
	return &Keyboard{xu: xu, root: xu.RootWin(), log: log}, nil
}

// Grab acquires the exclusive keyboard grab, retrying with backoff
// while the grab is held elsewhere. The desktop environment that
// forwarded the launching hotkey commonly still holds the grab for a
// few milliseconds, so already-grabbed is the one retryable status.
func (k *Keyboard) Grab() error {
	backoff := grabInitialBackoff
	var status byte

	for attempt := 0; attempt < grabRetries; attempt++ {
		reply, err := xproto.GrabKeyboard(
			k.xu.Conn(),
			true, // owner_events
			k.root,
			xproto.TimeCurrentTime,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Reply()
		if err != nil {
			return fmt.Errorf("%w: grab request failed: %v", wm.ErrEnvironment, err)
		}

		status = reply.Status
		if status == xproto.GrabStatusSuccess {
			k.grabbed = true
			k.log.Debug("Keyboard grabbed", "attempts", attempt+1)
			return nil
		}
		if status != xproto.GrabStatusAlreadyGrabbed || attempt == grabRetries-1 {
			break
		}

		k.log.Debug("Keyboard already grabbed, retrying",
			"attempt", attempt+1,
			"backoff", backoff)
		time.Sleep(backoff)
		backoff = backoff * 3 / 2
	}

	return fmt.Errorf("%w: status %d", ErrGrabFailed, status)
}

// Ungrab releases the grab. Safe to call when not grabbed.
func (k *Keyboard) Ungrab() {
	if !k.grabbed {
		return
	}
	xproto.UngrabKeyboard(k.xu.Conn(), xproto.TimeCurrentTime)
	k.grabbed = false
	k.log.Debug("Keyboard released")
}

// Next blocks until a key press this package understands arrives.
// Unmapped keys are swallowed here so callers only see printable runes
// and the escape/backspace/enter specials.
func (k *Keyboard) Next() (Key, error) {
	for {
		ev, xerr := k.xu.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return Key{}, fmt.Errorf("%w: X connection closed", wm.ErrEnvironment)
		}
		if xerr != nil {
			k.log.Debug("Ignoring X protocol error", "error", xerr.Error())
			continue
		}

		press, ok := ev.(xproto.KeyPressEvent)
		if !ok {
			continue
		}
		key, ok := decodeKeyPress(k.xu, press)
		if !ok {
			continue
		}
		return key, nil
	}
}

// Close releases the grab and the X connection.
func (k *Keyboard) Close() {
	k.Ungrab()
	k.xu.Conn().Close()
}
