package hook

import "github.com/lixenwraith/keyclack/keycode"

// Linux input event constants from linux/input-event-codes.h
const (
	evKey = 0x01

	keyValueRelease = 0
	keyValuePress   = 1
	keyValueRepeat  = 2
)

// evdevKeys maps KEY_* codes to keys
var evdevKeys = map[uint16]keycode.Key{
	1:  keycode.KeyEscape,
	2:  keycode.KeyNum1,
	3:  keycode.KeyNum2,
	4:  keycode.KeyNum3,
	5:  keycode.KeyNum4,
	6:  keycode.KeyNum5,
	7:  keycode.KeyNum6,
	8:  keycode.KeyNum7,
	9:  keycode.KeyNum8,
	10: keycode.KeyNum9,
	11: keycode.KeyNum0,
	12: keycode.KeyMinus,
	13: keycode.KeyEqual,
	14: keycode.KeyBackspace,
	15: keycode.KeyTab,
	16: keycode.KeyQ,
	17: keycode.KeyW,
	18: keycode.KeyE,
	19: keycode.KeyR,
	20: keycode.KeyT,
	21: keycode.KeyY,
	22: keycode.KeyU,
	23: keycode.KeyI,
	24: keycode.KeyO,
	25: keycode.KeyP,
	26: keycode.KeyLeftBracket,
	27: keycode.KeyRightBracket,
	28: keycode.KeyReturn,
	29: keycode.KeyControlLeft,
	30: keycode.KeyA,
	31: keycode.KeyS,
	32: keycode.KeyD,
	33: keycode.KeyF,
	34: keycode.KeyG,
	35: keycode.KeyH,
	36: keycode.KeyJ,
	37: keycode.KeyK,
	38: keycode.KeyL,
	39: keycode.KeySemiColon,
	40: keycode.KeyQuote,
	41: keycode.KeyBackQuote,
	42: keycode.KeyShiftLeft,
	43: keycode.KeyBackSlash,
	44: keycode.KeyZ,
	45: keycode.KeyX,
	46: keycode.KeyC,
	47: keycode.KeyV,
	48: keycode.KeyB,
	49: keycode.KeyN,
	50: keycode.KeyM,
	51: keycode.KeyComma,
	52: keycode.KeyDot,
	53: keycode.KeySlash,
	54: keycode.KeyShiftRight,
	55: keycode.KeyKpMultiply,
	56: keycode.KeyAlt,
	57: keycode.KeySpace,
	58: keycode.KeyCapsLock,
	59: keycode.KeyF1,
	60: keycode.KeyF2,
	61: keycode.KeyF3,
	62: keycode.KeyF4,
	63: keycode.KeyF5,
	64: keycode.KeyF6,
	65: keycode.KeyF7,
	66: keycode.KeyF8,
	67: keycode.KeyF9,
	68: keycode.KeyF10,
	69: keycode.KeyNumLock,
	70: keycode.KeyScrollLock,
	71: keycode.KeyKp7,
	72: keycode.KeyKp8,
	73: keycode.KeyKp9,
	74: keycode.KeyKpMinus,
	75: keycode.KeyKp4,
	76: keycode.KeyKp5,
	77: keycode.KeyKp6,
	78: keycode.KeyKpPlus,
	79: keycode.KeyKp1,
	80: keycode.KeyKp2,
	81: keycode.KeyKp3,
	82: keycode.KeyKp0,
	83: keycode.KeyKpDelete,
	86: keycode.KeyIntlBackslash,
	87: keycode.KeyF11,
	88: keycode.KeyF12,

	96:  keycode.KeyKpReturn,
	97:  keycode.KeyControlRight,
	98:  keycode.KeyKpDivide,
	99:  keycode.KeyPrintScreen,
	100: keycode.KeyAltGr,
	102: keycode.KeyHome,
	103: keycode.KeyUpArrow,
	104: keycode.KeyPageUp,
	105: keycode.KeyLeftArrow,
	106: keycode.KeyRightArrow,
	107: keycode.KeyEnd,
	108: keycode.KeyDownArrow,
	109: keycode.KeyPageDown,
	110: keycode.KeyInsert,
	111: keycode.KeyDelete,
	119: keycode.KeyPause,
	125: keycode.KeyMetaLeft,
	126: keycode.KeyMetaRight,
	127: keycode.KeyContextMenu,
	464: keycode.KeyFunction,
}

// evdevKey translates one input event. ok is false for non-key events,
// releases, and repeats when repeat is off. Unlisted codes become KeyUnknown.
func evdevKey(typ, code uint16, value int32, repeat bool) (k keycode.Key, ok bool) {
	if typ != evKey {
		return keycode.KeyUnknown, false
	}
	switch value {
	case keyValuePress:
	case keyValueRepeat:
		if !repeat {
			return keycode.KeyUnknown, false
		}
	default:
		return keycode.KeyUnknown, false
	}
	// BTN_* codes share EV_KEY; mouse buttons are not key presses
	if code >= 0x100 && code < 0x160 {
		return keycode.KeyUnknown, false
	}
	if k, found := evdevKeys[code]; found {
		return k, true
	}
	return keycode.KeyUnknown, true
}
