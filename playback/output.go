package playback

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output pulls mixed audio from src and renders it
type Output interface {
	Name() string
	Start(src beep.Streamer) error
	Close() error
}

// Swapped in tests, which have no audio device
var (
	speakerInit  = speaker.Init
	speakerPlay  = speaker.Play
	speakerClear = speaker.Clear
	speakerClose = speaker.Close
)

// speakerOutput renders through beep's speaker package
type speakerOutput struct {
	rate    beep.SampleRate
	frames  int
	started bool
}

func newSpeakerOutput(cfg *Config) *speakerOutput {
	return &speakerOutput{rate: beep.SampleRate(cfg.SampleRate), frames: cfg.bufferFrames()}
}

func (o *speakerOutput) Name() string { return "speaker" }

func (o *speakerOutput) Start(src beep.Streamer) error {
	if err := speakerInit(o.rate, o.frames); err != nil {
		return err
	}
	o.started = true
	speakerPlay(src)
	return nil
}

// Close stops playback and releases the device
func (o *speakerOutput) Close() error {
	if !o.started {
		return nil
	}
	o.started = false
	speakerClear()
	speakerClose()
	return nil
}

// pump pulls frames from src every period and writes s16le stereo to w.
// Runs until stop is closed or a write fails.
type pump struct {
	w      io.Writer
	frames int
	period time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	errs     chan error
	wg       sync.WaitGroup
}

func newPump(w io.Writer, cfg *Config) *pump {
	return &pump{
		w:      w,
		frames: cfg.bufferFrames(),
		period: cfg.Buffer,
		stop:   make(chan struct{}),
		errs:   make(chan error, 1),
	}
}

func (p *pump) start(src beep.Streamer) {
	p.wg.Add(1)
	go p.loop(src)
}

func (p *pump) loop(src beep.Streamer) {
	defer p.wg.Done()
	defer close(p.errs)

	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	samples := make([][2]float64, p.frames)
	out := make([]byte, p.frames*4)

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			for i := range samples {
				samples[i] = [2]float64{}
			}
			src.Stream(samples)
			floatToBytes(samples, out)
			if _, err := p.w.Write(out); err != nil {
				select {
				case p.errs <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				return
			}
		}
	}
}

func (p *pump) close() {
	p.stopOnce.Do(func() { close(p.stop) })
	p.wg.Wait()
}

// floatToBytes converts stereo float frames to interleaved s16le bytes.
// A soft knee above 0.8 keeps stacked key clicks from hard clipping.
func floatToBytes(in [][2]float64, out []byte) {
	for i, frame := range in {
		for ch, v := range frame {
			if v > 0.8 {
				v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
			} else if v < -0.8 {
				v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
			}
			if v > 1.0 {
				v = 1.0
			} else if v < -1.0 {
				v = -1.0
			}
			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(int16(v*32767)))
		}
	}
}

// pipeOutput feeds a detected CLI player or the OSS device
type pipeOutput struct {
	cfg    *Config
	player *PlayerConfig

	cmd   *exec.Cmd
	stdin io.WriteCloser
	dev   *os.File
	pump  *pump
}

func newPipeOutput(cfg *Config) *pipeOutput {
	return &pipeOutput{cfg: cfg}
}

func (o *pipeOutput) Name() string {
	if o.player == nil {
		return "pipe"
	}
	return "pipe:" + o.player.Name
}

func (o *pipeOutput) Start(src beep.Streamer) error {
	player, err := DetectPlayer(o.cfg.SampleRate)
	if err != nil {
		return err
	}
	o.player = player

	var w io.Writer
	if player.Kind == PlayerOSS {
		f, err := os.OpenFile(player.Path, os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("open %s: %w", player.Path, err)
		}
		o.dev = f
		w = f
	} else {
		cmd := exec.Command(player.Path, player.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return fmt.Errorf("%s stdin: %w", player.Name, err)
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			return fmt.Errorf("start %s: %w", player.Name, err)
		}
		o.cmd = cmd
		o.stdin = stdin
		w = stdin
	}

	o.pump = newPump(w, o.cfg)
	o.pump.start(src)
	return nil
}

// Errors reports a broken pipe once
func (o *pipeOutput) Errors() <-chan error {
	if o.pump == nil {
		return nil
	}
	return o.pump.errs
}

func (o *pipeOutput) Close() error {
	if o.pump != nil {
		o.pump.close()
	}
	if o.stdin != nil {
		o.stdin.Close()
	}
	if o.dev != nil {
		o.dev.Close()
	}
	if o.cmd != nil && o.cmd.Process != nil {
		o.cmd.Process.Kill()
		o.cmd.Wait()
	}
	return nil
}

// nullOutput keeps the mixer advancing without producing sound
type nullOutput struct {
	cfg  *Config
	pump *pump
}

func newNullOutput(cfg *Config) *nullOutput {
	return &nullOutput{cfg: cfg}
}

func (o *nullOutput) Name() string { return "none" }

func (o *nullOutput) Start(src beep.Streamer) error {
	o.pump = newPump(io.Discard, o.cfg)
	o.pump.start(src)
	return nil
}

func (o *nullOutput) Close() error {
	if o.pump != nil {
		o.pump.close()
	}
	return nil
}
