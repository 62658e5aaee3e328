// Package playback triggers decoded sound pack assets.
//
// An Engine owns one Mixer and one Output. Play never blocks: it allocates a
// Voice over the asset's shared buffer and hands it to the mixer through a
// buffered channel. The mixer goroutine (the speaker callback or the pipe
// pump) is the only owner of the underlying beep.Mixer.
package playback

import (
	"errors"
	"fmt"
)

// Backend selects the audio output
type Backend string

const (
	BackendAuto    Backend = "auto"    // speaker, then pipe, then none
	BackendSpeaker Backend = "speaker" // beep speaker (oto)
	BackendPipe    Backend = "pipe"    // CLI player fed raw PCM on stdin
	BackendNone    Backend = "none"    // mixer runs, output discarded
)

// ParseBackend validates a configured backend name
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendAuto, BackendSpeaker, BackendPipe, BackendNone:
		return b, nil
	}
	return "", fmt.Errorf("unknown audio backend %q (want auto, speaker, pipe or none)", s)
}

// Sentinel errors. Errors from Play are non-fatal to callers.
var (
	ErrNotRunning     = errors.New("playback engine not running")
	ErrQueueFull      = errors.New("playback queue full")
	ErrNilAsset       = errors.New("nil asset")
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
)

// Instance is one triggered clip
type Instance interface {
	ID() uint64
	// Stop ends playback at the next mixer pull; safe from any goroutine
	Stop()
	// Active reports whether the clip is neither stopped nor finished
	Active() bool
}

// Stats counts mixer activity
type Stats struct {
	Queued  uint64 // accepted by Play
	Played  uint64 // picked up by the mixer
	Dropped uint64 // rejected because the queue was full
}
