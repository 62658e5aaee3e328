package soundpack

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is the beep.Resample quality used when a file rate differs
// from the engine rate (1 = linear, 6 = best)
const resampleQuality = 4

// Decoder turns an opened sound file into an Asset
type Decoder interface {
	Decode(path string, rc io.ReadCloser) (*Asset, error)
}

// Opener opens files referenced by a manifest
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// OSOpener reads from the local file system
type OSOpener struct{}

// Open implements Opener
func (OSOpener) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

type decodeFunc func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".wav":  func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(rc) },
	".mp3":  mp3.Decode,
	".ogg":  vorbis.Decode,
	".oga":  vorbis.Decode,
	".flac": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(rc) },
}

// BeepDecoder decodes wav, mp3, ogg vorbis and flac with beep and stores the
// result at SampleRate, stereo
type BeepDecoder struct {
	SampleRate beep.SampleRate
}

// NewBeepDecoder creates a decoder targeting the given engine sample rate
func NewBeepDecoder(sampleRate int) *BeepDecoder {
	return &BeepDecoder{SampleRate: beep.SampleRate(sampleRate)}
}

// Decode implements Decoder. rc is always closed.
func (d *BeepDecoder) Decode(path string, rc io.ReadCloser) (*Asset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		rc.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	stream, format, err := decode(rc)
	if err != nil {
		rc.Close()
		return nil, err
	}
	defer stream.Close()

	target := d.SampleRate
	if target <= 0 {
		target = format.SampleRate
	}

	var src beep.Streamer = stream
	if format.SampleRate != target {
		src = beep.Resample(resampleQuality, format.SampleRate, target, stream)
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  target,
		NumChannels: 2,
		Precision:   2,
	})
	buffer.Append(src)

	if err := stream.Err(); err != nil {
		return nil, err
	}

	return NewAsset(path, format, buffer), nil
}
