// Package manifest parses sound pack manifests.
//
// A manifest is a JSON object with a "defines" object mapping key codes to
// audio file paths. Entries are kept in document order, duplicates included,
// so callers can apply first-registration-wins semantics.
package manifest

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// FileName is the manifest location inside a pack directory
const FileName = "config.json"

// Sentinel errors
var (
	ErrMalformed = errors.New("malformed manifest")
)

// ValueKind classifies the JSON value of a define entry
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindString
	KindOther // numbers, arrays, objects, booleans
)

// Entry is one key-id/value pair from "defines"
type Entry struct {
	Key   string
	Kind  ValueKind
	Value string // Only meaningful when Kind == KindString
}

// Manifest is the parsed form of config.json
type Manifest struct {
	Defines []Entry
}

// Parse validates data and extracts the defines entries in document order
func Parse(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	defines := root.Get("defines")
	if !defines.Exists() {
		return nil, fmt.Errorf("%w: missing field \"defines\"", ErrMalformed)
	}
	if !defines.IsObject() {
		return nil, fmt.Errorf("%w: field \"defines\" is not an object", ErrMalformed)
	}

	m := &Manifest{}
	defines.ForEach(func(key, value gjson.Result) bool {
		e := Entry{Key: key.String()}
		switch value.Type {
		case gjson.Null:
			e.Kind = KindNull
		case gjson.String:
			e.Kind = KindString
			e.Value = value.String()
		default:
			e.Kind = KindOther
		}
		m.Defines = append(m.Defines, e)
		return true
	})

	return m, nil
}

// Paths returns the string entries that name a file, in order, duplicates skipped
func (m *Manifest) Paths() []Entry {
	seen := make(map[string]bool, len(m.Defines))
	out := make([]Entry, 0, len(m.Defines))
	for _, e := range m.Defines {
		if e.Kind != KindString || e.Value == "" || seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		out = append(out, e)
	}
	return out
}
