// Package keycode normalizes platform key symbols into the canonical scan-code
// space used by community sound packs.
//
// Sources translate whatever their OS reports into a Key. A Table then maps
// the Key to the Code a pack manifest uses as its "defines" key.
package keycode

// Key is a platform independent key symbol, one value per physical key
type Key int

const (
	KeyUnknown Key = iota

	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPrintScreen
	KeyScrollLock
	KeyPause

	KeyBackQuote
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyNum0
	KeyMinus
	KeyEqual
	KeyBackspace

	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyLeftBracket
	KeyRightBracket
	KeyBackSlash

	KeyCapsLock
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemiColon
	KeyQuote
	KeyReturn

	KeyShiftLeft
	KeyIntlBackslash
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyDot
	KeySlash
	KeyShiftRight

	KeyControlLeft
	KeyMetaLeft
	KeyAlt
	KeySpace
	KeyAltGr
	KeyMetaRight
	KeyContextMenu
	KeyControlRight
	KeyFunction

	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUpArrow
	KeyDownArrow
	KeyLeftArrow
	KeyRightArrow

	KeyNumLock
	KeyKpDivide
	KeyKpMultiply
	KeyKpMinus
	KeyKpPlus
	KeyKpReturn
	KeyKpDelete
	KeyKp0
	KeyKp1
	KeyKp2
	KeyKp3
	KeyKp4
	KeyKp5
	KeyKp6
	KeyKp7
	KeyKp8
	KeyKp9

	keyCount
)

// Count is the number of enumerated keys including KeyUnknown
const Count = int(keyCount)

var keyNames = [keyCount]string{
	KeyUnknown: "unknown",

	KeyEscape:      "escape",
	KeyF1:          "f1",
	KeyF2:          "f2",
	KeyF3:          "f3",
	KeyF4:          "f4",
	KeyF5:          "f5",
	KeyF6:          "f6",
	KeyF7:          "f7",
	KeyF8:          "f8",
	KeyF9:          "f9",
	KeyF10:         "f10",
	KeyF11:         "f11",
	KeyF12:         "f12",
	KeyPrintScreen: "print_screen",
	KeyScrollLock:  "scroll_lock",
	KeyPause:       "pause",

	KeyBackQuote: "back_quote",
	KeyNum1:      "1",
	KeyNum2:      "2",
	KeyNum3:      "3",
	KeyNum4:      "4",
	KeyNum5:      "5",
	KeyNum6:      "6",
	KeyNum7:      "7",
	KeyNum8:      "8",
	KeyNum9:      "9",
	KeyNum0:      "0",
	KeyMinus:     "minus",
	KeyEqual:     "equal",
	KeyBackspace: "backspace",

	KeyTab:          "tab",
	KeyQ:            "q",
	KeyW:            "w",
	KeyE:            "e",
	KeyR:            "r",
	KeyT:            "t",
	KeyY:            "y",
	KeyU:            "u",
	KeyI:            "i",
	KeyO:            "o",
	KeyP:            "p",
	KeyLeftBracket:  "left_bracket",
	KeyRightBracket: "right_bracket",
	KeyBackSlash:    "back_slash",

	KeyCapsLock:  "caps_lock",
	KeyA:         "a",
	KeyS:         "s",
	KeyD:         "d",
	KeyF:         "f",
	KeyG:         "g",
	KeyH:         "h",
	KeyJ:         "j",
	KeyK:         "k",
	KeyL:         "l",
	KeySemiColon: "semicolon",
	KeyQuote:     "quote",
	KeyReturn:    "return",

	KeyShiftLeft:     "shift_left",
	KeyIntlBackslash: "intl_backslash",
	KeyZ:             "z",
	KeyX:             "x",
	KeyC:             "c",
	KeyV:             "v",
	KeyB:             "b",
	KeyN:             "n",
	KeyM:             "m",
	KeyComma:         "comma",
	KeyDot:           "dot",
	KeySlash:         "slash",
	KeyShiftRight:    "shift_right",

	KeyControlLeft:  "control_left",
	KeyMetaLeft:     "meta_left",
	KeyAlt:          "alt",
	KeySpace:        "space",
	KeyAltGr:        "alt_gr",
	KeyMetaRight:    "meta_right",
	KeyContextMenu:  "context_menu",
	KeyControlRight: "control_right",
	KeyFunction:     "function",

	KeyInsert:     "insert",
	KeyDelete:     "delete",
	KeyHome:       "home",
	KeyEnd:        "end",
	KeyPageUp:     "page_up",
	KeyPageDown:   "page_down",
	KeyUpArrow:    "up",
	KeyDownArrow:  "down",
	KeyLeftArrow:  "left",
	KeyRightArrow: "right",

	KeyNumLock:    "num_lock",
	KeyKpDivide:   "kp_divide",
	KeyKpMultiply: "kp_multiply",
	KeyKpMinus:    "kp_minus",
	KeyKpPlus:     "kp_plus",
	KeyKpReturn:   "kp_return",
	KeyKpDelete:   "kp_delete",
	KeyKp0:        "kp_0",
	KeyKp1:        "kp_1",
	KeyKp2:        "kp_2",
	KeyKp3:        "kp_3",
	KeyKp4:        "kp_4",
	KeyKp5:        "kp_5",
	KeyKp6:        "kp_6",
	KeyKp7:        "kp_7",
	KeyKp8:        "kp_8",
	KeyKp9:        "kp_9",
}

// String returns the config-style name of the key, "unknown" when out of range
func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

// Valid reports whether k is one of the enumerated keys
func (k Key) Valid() bool {
	return k >= 0 && k < keyCount
}
