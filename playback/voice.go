package playback

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/keyclack/soundpack"
)

// Voice is a playback cursor over a shared asset buffer
type Voice struct {
	id     uint64
	stream beep.Streamer

	stopped atomic.Bool
	done    atomic.Bool
}

func newVoice(id uint64, asset *soundpack.Asset, volume float64) *Voice {
	return &Voice{
		id:     id,
		stream: withVolume(asset.Streamer(), volume),
	}
}

// withVolume applies master gain; unity gain is passed through untouched.
// math.Log2(0) is -Inf so zero gain becomes Silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	switch {
	case vol >= 1:
		return s
	case vol <= 0:
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	default:
		return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
	}
}

// ID implements Instance
func (v *Voice) ID() uint64 { return v.id }

// Stop implements Instance
func (v *Voice) Stop() { v.stopped.Store(true) }

// Active implements Instance
func (v *Voice) Active() bool {
	return !v.stopped.Load() && !v.done.Load()
}

// Stream implements beep.Streamer. Called only from the mixer goroutine.
func (v *Voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.stopped.Load() {
		v.done.Store(true)
		return 0, false
	}
	n, ok = v.stream.Stream(samples)
	if !ok || n < len(samples) {
		v.done.Store(true)
	}
	return n, ok
}

// Err implements beep.Streamer
func (v *Voice) Err() error { return v.stream.Err() }
