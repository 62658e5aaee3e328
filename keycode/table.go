package keycode

import (
	"fmt"
	"sort"
)

// Code is a canonical scan code as written in a pack manifest
type Code string

// Fallback is returned for keys with no table entry: the code of the numeral 1 key
const Fallback Code = "2"

// Table maps every Key to its Code. Empty entries resolve to Fallback.
type Table [keyCount]Code

// standard follows the uiohook scan codes used by Mechvibes-format packs
var standard = Table{
	KeyEscape:      "1",
	KeyF1:          "59",
	KeyF2:          "60",
	KeyF3:          "61",
	KeyF4:          "62",
	KeyF5:          "63",
	KeyF6:          "64",
	KeyF7:          "65",
	KeyF8:          "66",
	KeyF9:          "67",
	KeyF10:         "68",
	KeyF11:         "87",
	KeyF12:         "88",
	KeyPrintScreen: "3639",
	KeyScrollLock:  "70",
	KeyPause:       "3653",

	KeyBackQuote: "41",
	KeyNum1:      "2",
	KeyNum2:      "3",
	KeyNum3:      "4",
	KeyNum4:      "5",
	KeyNum5:      "6",
	KeyNum6:      "7",
	KeyNum7:      "8",
	KeyNum8:      "9",
	KeyNum9:      "10",
	KeyNum0:      "11",
	KeyMinus:     "12",
	KeyEqual:     "13",
	KeyBackspace: "14",

	KeyTab:          "15",
	KeyQ:            "16",
	KeyW:            "17",
	KeyE:            "18",
	KeyR:            "19",
	KeyT:            "20",
	KeyY:            "21",
	KeyU:            "22",
	KeyI:            "23",
	KeyO:            "24",
	KeyP:            "25",
	KeyLeftBracket:  "26",
	KeyRightBracket: "27",
	KeyBackSlash:    "43",

	KeyCapsLock:  "58",
	KeyA:         "30",
	KeyS:         "31",
	KeyD:         "32",
	KeyF:         "33",
	KeyG:         "34",
	KeyH:         "35",
	KeyJ:         "36",
	KeyK:         "37",
	KeyL:         "38",
	KeySemiColon: "39",
	KeyQuote:     "40",
	KeyReturn:    "28",

	KeyShiftLeft:     "42",
	KeyIntlBackslash: "86",
	KeyZ:             "44",
	KeyX:             "45",
	KeyC:             "46",
	KeyV:             "47",
	KeyB:             "48",
	KeyN:             "49",
	KeyM:             "50",
	KeyComma:         "51",
	KeyDot:           "52",
	KeySlash:         "53",
	KeyShiftRight:    "54",

	KeyControlLeft:  "29",
	KeyMetaLeft:     "3675",
	KeyAlt:          "56",
	KeySpace:        "57",
	KeyAltGr:        "3640",
	KeyMetaRight:    "3676",
	KeyContextMenu:  "3677",
	KeyControlRight: "3613",
	// KeyFunction has no scan code of its own

	KeyInsert:     "3666",
	KeyDelete:     "3667",
	KeyHome:       "3655",
	KeyEnd:        "3663",
	KeyPageUp:     "3657",
	KeyPageDown:   "3665",
	KeyUpArrow:    "57416",
	KeyDownArrow:  "57424",
	KeyLeftArrow:  "57419",
	KeyRightArrow: "57421",

	KeyNumLock:    "69",
	KeyKpDivide:   "3637",
	KeyKpMultiply: "55",
	KeyKpMinus:    "74",
	KeyKpPlus:     "78",
	KeyKpReturn:   "3612",
	KeyKpDelete:   "83",
	KeyKp0:        "82",
	KeyKp1:        "79",
	KeyKp2:        "80",
	KeyKp3:        "81",
	KeyKp4:        "75",
	KeyKp5:        "76",
	KeyKp6:        "77",
	KeyKp7:        "71",
	KeyKp8:        "72",
	KeyKp9:        "73",
}

// legacyNavigation holds the old iohook codes for the navigation cluster,
// still found in packs authored against early Mechvibes releases
var legacyNavigation = map[Key]Code{
	KeyHome:       "60999",
	KeyUpArrow:    "61000",
	KeyPageUp:     "61001",
	KeyLeftArrow:  "61003",
	KeyRightArrow: "61005",
	KeyEnd:        "61007",
	KeyDownArrow:  "61008",
	KeyPageDown:   "61009",
	KeyInsert:     "61010",
	KeyDelete:     "61011",
}

var legacy = standard.With(legacyNavigation)

// Standard returns a copy of the default table
func Standard() Table { return standard }

// Legacy returns a copy of the standard table with the navigation cluster
// remapped to legacyNavigation
func Legacy() Table { return legacy }

// Map returns the canonical code for k. It never fails: keys outside the
// enumeration or without an entry map to Fallback.
func (t *Table) Map(k Key) Code {
	if !k.Valid() {
		return Fallback
	}
	if c := t[k]; c != "" {
		return c
	}
	return Fallback
}

// With returns a copy of t with the given entries replaced
func (t Table) With(overrides map[Key]Code) Table {
	for k, c := range overrides {
		if k.Valid() {
			t[k] = c
		}
	}
	return t
}

// Map maps k through the standard table
func Map(k Key) Code {
	return standard.Map(k)
}

var tables = map[string]*Table{
	"standard": &standard,
	"legacy":   &legacy,
}

// Lookup returns a copy of the table with the given configuration name
func Lookup(name string) (Table, error) {
	if t, ok := tables[name]; ok {
		return *t, nil
	}
	return Table{}, fmt.Errorf("unknown keymap %q (want one of %v)", name, TableNames())
}

// TableNames lists the configurable table names in sorted order
func TableNames() []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
