package playback

import (
	"fmt"
	"time"
)

// Config tunes the engine
type Config struct {
	Volume     float64       // Master gain 0.0-1.0
	SampleRate int           // Engine and asset rate in Hz
	Buffer     time.Duration // Output buffer / pump period
	Backend    Backend
	QueueSize  int // Pending voices before Play reports ErrQueueFull
}

// DefaultConfig returns defaults tuned for key click latency
func DefaultConfig() *Config {
	return &Config{
		Volume:     1.0,
		SampleRate: 48000,
		Buffer:     20 * time.Millisecond,
		Backend:    BackendAuto,
		QueueSize:  64,
	}
}

// Validate checks ranges
func (c *Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume %.2f out of range 0-1", c.Volume)
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample rate %d out of range 8000-192000", c.SampleRate)
	}
	if c.Buffer < time.Millisecond || c.Buffer > time.Second {
		return fmt.Errorf("buffer %s out of range 1ms-1s", c.Buffer)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue size %d must be positive", c.QueueSize)
	}
	if _, err := ParseBackend(string(c.Backend)); err != nil {
		return err
	}
	return nil
}

// bufferFrames returns frames per output period
func (c *Config) bufferFrames() int {
	n := int(time.Duration(c.SampleRate) * c.Buffer / time.Second)
	if n < 1 {
		n = 1
	}
	return n
}
