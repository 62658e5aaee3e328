package playback

import (
	"sync/atomic"

	"github.com/gopxl/beep"
)

// maxDrainPerPull bounds how many queued voices join the mix per Stream call
const maxDrainPerPull = 32

// Mixer sums active voices. Submit may be called from any goroutine;
// Stream must be called from a single goroutine.
type Mixer struct {
	queue chan *Voice

	// Accessed only by the streaming goroutine
	mix beep.Mixer

	active  atomic.Int64
	queued  atomic.Uint64
	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewMixer creates a mixer accepting up to queueSize pending voices
func NewMixer(queueSize int) *Mixer {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Mixer{
		queue: make(chan *Voice, queueSize),
	}
}

// Submit queues v without blocking, false when the queue is full
func (m *Mixer) Submit(v *Voice) bool {
	select {
	case m.queue <- v:
		m.queued.Add(1)
		return true
	default:
		m.dropped.Add(1)
		return false
	}
}

// Stream implements beep.Streamer. Pending voices are added before mixing so
// a trigger is audible in the very next output period.
func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	m.drain()
	n, ok = m.mix.Stream(samples)
	m.active.Store(int64(m.mix.Len()))
	return n, ok
}

// Err implements beep.Streamer
func (m *Mixer) Err() error { return nil }

func (m *Mixer) drain() {
	for i := 0; i < maxDrainPerPull; i++ {
		select {
		case v := <-m.queue:
			if v.stopped.Load() {
				v.done.Store(true)
				continue
			}
			m.mix.Add(v)
			m.played.Add(1)
		default:
			return
		}
	}
}

// Active returns the voice count after the last Stream call
func (m *Mixer) Active() int {
	return int(m.active.Load())
}

// Stats returns queue counters
func (m *Mixer) Stats() Stats {
	return Stats{
		Queued:  m.queued.Load(),
		Played:  m.played.Load(),
		Dropped: m.dropped.Load(),
	}
}
