// Package hook delivers key presses from the OS to a single handler.
//
// A Source installs its hook in Run and calls the handler sequentially from
// one goroutine, so the handler needs no locking. Handlers must return
// quickly; sources do not queue work on their behalf beyond a small buffer.
package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/lixenwraith/keyclack/keycode"
)

// Handler receives one key press
type Handler func(keycode.Key)

// Source is an installed-on-Run keyboard hook
type Source interface {
	Name() string
	// Run blocks until ctx is done or the source ends
	Run(ctx context.Context, h Handler) error
}

// Kind names a source implementation
type Kind string

const (
	KindAuto     Kind = "auto"
	KindEvdev    Kind = "evdev"
	KindTerminal Kind = "terminal"
)

// Sentinel errors
var (
	ErrNoKeyboard        = errors.New("no readable keyboard device")
	ErrDevicesClosed     = errors.New("all keyboard devices closed")
	ErrEvdevUnsupported  = errors.New("evdev input is only available on linux")
	ErrUnknownSourceKind = errors.New("unknown input source")
	ErrNoTerminal        = errors.New("stdin is not a terminal")
)

// stdinIsTerminal is replaced in tests
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Options configures sources
type Options struct {
	Devices []string // evdev device paths; discovered when empty
	Repeat  bool     // deliver OS auto-repeat as presses (evdev only)
	Status  string   // line shown by the terminal source
	Logger  *log.Logger
}

func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// ParseKind validates a configured source name
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindAuto, KindEvdev, KindTerminal:
		return k, nil
	}
	return "", fmt.Errorf("%w %q (want auto, evdev or terminal)", ErrUnknownSourceKind, s)
}

// New builds a source. Auto prefers evdev when a keyboard device can be read.
func New(kind Kind, opts Options) (Source, error) {
	switch kind {
	case KindEvdev:
		src, err := newEvdevSource(opts)
		if err != nil {
			return nil, err
		}
		return src, nil
	case KindTerminal:
		return NewTerminalSource(opts), nil
	case KindAuto, "":
		src, err := newEvdevSource(opts)
		if err == nil {
			return src, nil
		}
		if !stdinIsTerminal() {
			return nil, errors.Join(err, ErrNoTerminal)
		}
		opts.logger().Printf("[hook] evdev unavailable, using terminal: %v", err)
		return NewTerminalSource(opts), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownSourceKind, kind)
}
