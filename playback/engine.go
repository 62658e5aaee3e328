package playback

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/keyclack/soundpack"
)

// Engine triggers assets through a Mixer into an Output
type Engine struct {
	config *Config
	mixer  *Mixer
	logger *log.Logger

	mu     sync.Mutex // Protects output across Start/Stop
	output Output

	running atomic.Bool
	nextID  atomic.Uint64

	// newOutputs is replaced in tests
	newOutputs func(*Config) []Output
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger for backend selection messages
func WithLogger(lg *log.Logger) Option {
	return func(e *Engine) { e.logger = lg }
}

// WithOutput forces a specific output, bypassing backend selection
func WithOutput(o Output) Option {
	return func(e *Engine) {
		e.newOutputs = func(*Config) []Output { return []Output{o} }
	}
}

// New creates a stopped engine. A nil cfg uses DefaultConfig.
func New(cfg *Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		config:     cfg,
		mixer:      NewMixer(cfg.QueueSize),
		logger:     log.Default(),
		newOutputs: outputsFor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// outputsFor lists outputs to try in order for the configured backend
func outputsFor(cfg *Config) []Output {
	switch cfg.Backend {
	case BackendSpeaker:
		return []Output{newSpeakerOutput(cfg)}
	case BackendPipe:
		return []Output{newPipeOutput(cfg)}
	case BackendNone:
		return []Output{newNullOutput(cfg)}
	default:
		return []Output{newSpeakerOutput(cfg), newPipeOutput(cfg), newNullOutput(cfg)}
	}
}

// Start opens the first output that works. The error lists every failed attempt.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running.Load() {
		return fmt.Errorf("playback engine already running")
	}

	var errs []error
	for _, out := range e.newOutputs(e.config) {
		if err := out.Start(e.mixer); err != nil {
			e.logger.Printf("[playback] output %s unavailable: %v", out.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", out.Name(), err))
			continue
		}
		e.output = out
		e.running.Store(true)
		e.logger.Printf("[playback] output %s at %d Hz", out.Name(), e.config.SampleRate)

		if p, ok := out.(*pipeOutput); ok {
			go e.watchPipe(p)
		}
		return nil
	}

	return errors.Join(append([]error{ErrNoAudioBackend}, errs...)...)
}

// watchPipe records a broken player pipe; the engine keeps accepting voices
func (e *Engine) watchPipe(p *pipeOutput) {
	if err, ok := <-p.Errors(); ok && err != nil {
		e.logger.Printf("[playback] %s: %v", p.Name(), err)
	}
}

// Play starts asset as a new independent voice. It never blocks.
func (e *Engine) Play(asset *soundpack.Asset) (Instance, error) {
	if asset == nil {
		return nil, ErrNilAsset
	}
	if !e.running.Load() {
		return nil, ErrNotRunning
	}

	v := newVoice(e.nextID.Add(1), asset, e.config.Volume)
	if !e.mixer.Submit(v) {
		return nil, ErrQueueFull
	}
	return v, nil
}

// Stop closes the output; queued and active voices are abandoned
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running.CompareAndSwap(true, false) {
		return
	}
	if e.output != nil {
		if err := e.output.Close(); err != nil {
			e.logger.Printf("[playback] closing %s: %v", e.output.Name(), err)
		}
		e.output = nil
	}
}

// IsRunning reports whether Start succeeded and Stop has not been called
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// OutputName returns the active output, empty when stopped
func (e *Engine) OutputName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.output == nil {
		return ""
	}
	return e.output.Name()
}

// Mixer exposes the mixer for custom outputs
func (e *Engine) Mixer() *Mixer {
	return e.mixer
}

// Stats returns mixer counters
func (e *Engine) Stats() Stats {
	return e.mixer.Stats()
}
