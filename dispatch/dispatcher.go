// Package dispatch turns key events into playback triggers.
//
// A Dispatcher owns the sound pack for the life of the process and is handed
// to a key source as its single callback. OnKeyEvent returns promptly: lookup
// is a map read and playback hand-off is non-blocking.
package dispatch

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/keyclack/keycode"
	"github.com/lixenwraith/keyclack/playback"
	"github.com/lixenwraith/keyclack/soundpack"
)

// Player triggers an asset and returns the running instance
type Player interface {
	Play(asset *soundpack.Asset) (playback.Instance, error)
}

// Policy decides what happens when a key sounds again while its previous clip plays
type Policy uint8

const (
	// Overlap lets every press play independently
	Overlap Policy = iota
	// StopPrevious stops the last clip of the same code before the new one starts
	StopPrevious
)

func (p Policy) String() string {
	switch p {
	case Overlap:
		return "overlap"
	case StopPrevious:
		return "stop-previous"
	}
	return fmt.Sprintf("policy(%d)", uint8(p))
}

// ParsePolicy reads a configured policy name
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "overlap", "":
		return Overlap, nil
	case "stop-previous", "stop_previous", "stopprevious":
		return StopPrevious, nil
	}
	return Overlap, fmt.Errorf("unknown retrigger policy %q (want overlap or stop-previous)", s)
}

// Stats counts dispatched events
type Stats struct {
	Events    uint64 // OnKeyEvent calls
	Triggered uint64 // successful Play calls
	Ignored   uint64 // codes absent from the pack
	Failed    uint64 // Play errors
}

// Dispatcher maps key events to sounds
type Dispatcher struct {
	pack   *soundpack.Pack
	player Player
	table  keycode.Table
	policy Policy
	logger *log.Logger

	// StopPrevious only; touched only from the delivering goroutine
	last map[keycode.Code]playback.Instance

	events    atomic.Uint64
	triggered atomic.Uint64
	ignored   atomic.Uint64
	failed    atomic.Uint64
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithPolicy sets the retrigger policy
func WithPolicy(p Policy) Option {
	return func(d *Dispatcher) { d.policy = p }
}

// WithTable sets the key code table, keycode.Standard by default
func WithTable(t keycode.Table) Option {
	return func(d *Dispatcher) { d.table = t }
}

// WithLogger sets the logger for playback failures
func WithLogger(lg *log.Logger) Option {
	return func(d *Dispatcher) { d.logger = lg }
}

// New creates a dispatcher over a fully loaded pack
func New(pack *soundpack.Pack, player Player, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		pack:   pack,
		player: player,
		table:  keycode.Standard(),
		policy: Overlap,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.policy == StopPrevious {
		d.last = make(map[keycode.Code]playback.Instance)
	}
	return d
}

// OnKeyEvent handles one key press. Calls must be sequential.
// Failures are logged and counted, never returned.
func (d *Dispatcher) OnKeyEvent(k keycode.Key) {
	d.events.Add(1)

	code := d.table.Map(k)
	asset, ok := d.pack.Lookup(code)
	if !ok {
		d.ignored.Add(1)
		return
	}

	if d.policy == StopPrevious {
		if prev, ok := d.last[code]; ok {
			prev.Stop()
			delete(d.last, code)
		}
	}

	inst, err := d.play(asset)
	if err != nil {
		d.failed.Add(1)
		d.logger.Printf("[dispatch] key %s code %s: %v", k, code, err)
		return
	}
	d.triggered.Add(1)

	if d.policy == StopPrevious && inst != nil {
		d.last[code] = inst
	}
}

// play converts a player panic into an error so the source's callback survives
func (d *Dispatcher) play(asset *soundpack.Asset) (inst playback.Instance, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst, err = nil, fmt.Errorf("player panic: %v", r)
		}
	}()
	return d.player.Play(asset)
}

// Policy returns the configured retrigger policy
func (d *Dispatcher) Policy() Policy {
	return d.policy
}

// Stats returns counters; safe from any goroutine
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Events:    d.events.Load(),
		Triggered: d.triggered.Load(),
		Ignored:   d.ignored.Load(),
		Failed:    d.failed.Load(),
	}
}
