package soundpack

import (
	"time"

	"github.com/gopxl/beep"
)

// Asset is one decoded sound file held in memory for the life of the process.
// The sample buffer is shared by every playback; each playback only gets its
// own cursor from Streamer.
type Asset struct {
	path   string
	source beep.Format
	buffer *beep.Buffer
}

// NewAsset wraps an already filled buffer. source describes the file before
// any resampling.
func NewAsset(path string, source beep.Format, buffer *beep.Buffer) *Asset {
	return &Asset{path: path, source: source, buffer: buffer}
}

// Path returns the resolved file path, which is also the asset identity
func (a *Asset) Path() string {
	return a.path
}

// Format returns the format of the in-memory buffer
func (a *Asset) Format() beep.Format {
	return a.buffer.Format()
}

// SourceFormat returns the format of the file as decoded
func (a *Asset) SourceFormat() beep.Format {
	return a.source
}

// Len returns the clip length in frames
func (a *Asset) Len() int {
	return a.buffer.Len()
}

// Duration returns the clip length as time
func (a *Asset) Duration() time.Duration {
	return a.buffer.Format().SampleRate.D(a.buffer.Len())
}

// Streamer returns a fresh playback cursor over the shared buffer
func (a *Asset) Streamer() beep.StreamSeeker {
	return a.buffer.Streamer(0, a.buffer.Len())
}
