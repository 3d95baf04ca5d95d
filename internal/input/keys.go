package input

import (
	"unicode"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// decodeKeyPress turns a raw key press into a Key. Modifier presses
// and keys without a printable or special mapping report ok=false.
func decodeKeyPress(xu *xgbutil.XUtil, ev xproto.KeyPressEvent) (Key, bool) {
	name := keybind.LookupString(xu, ev.State, ev.Detail)

	switch name {
	case "Escape":
		return Key{Special: SpecialEscape}, true
	case "BackSpace":
		return Key{Special: SpecialBackspace}, true
	case "Return", "KP_Enter":
		return Key{Special: SpecialEnter}, true
	case "space":
		return Key{Rune: ' '}, true
	}

	runes := []rune(name)
	if len(runes) != 1 || !unicode.IsPrint(runes[0]) || unicode.IsSpace(runes[0]) {
		return Key{}, false
	}
	return Key{Rune: unicode.ToLower(runes[0])}, true
}
