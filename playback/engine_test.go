package playback

import (
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/keyclack/soundpack"
)

var testFormat = beep.Format{SampleRate: 48000, NumChannels: 2, Precision: 2}

// constStreamer emits a fixed sample value forever
type constStreamer struct{ v float64 }

func (c constStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{c.v, c.v}
	}
	return len(samples), true
}

func (constStreamer) Err() error { return nil }

func newTestAsset(frames int, value float64) *soundpack.Asset {
	buf := beep.NewBuffer(testFormat)
	buf.Append(beep.Take(frames, constStreamer{value}))
	return soundpack.NewAsset("test.wav", testFormat, buf)
}

// fakeOutput records the source without pulling it
type fakeOutput struct {
	name    string
	err     error
	src     beep.Streamer
	started int
	closed  int
}

func (o *fakeOutput) Name() string { return o.name }

func (o *fakeOutput) Start(src beep.Streamer) error {
	o.started++
	if o.err != nil {
		return o.err
	}
	o.src = src
	return nil
}

func (o *fakeOutput) Close() error {
	o.closed++
	return nil
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.QueueSize = 4
	return cfg
}

// TestPlayBeforeStart verifies the engine rejects triggers until started
func TestPlayBeforeStart(t *testing.T) {
	e := New(testConfig())

	_, err := e.Play(newTestAsset(10, 0.5))
	assert.ErrorIs(t, err, ErrNotRunning)

	_, err = e.Play(nil)
	assert.ErrorIs(t, err, ErrNilAsset)
}

// TestEngineStartStop verifies lifecycle and idempotent stop
func TestEngineStartStop(t *testing.T) {
	out := &fakeOutput{name: "fake"}
	e := New(testConfig(), WithOutput(out))

	require.NoError(t, e.Start())
	assert.True(t, e.IsRunning())
	assert.Equal(t, "fake", e.OutputName())
	assert.Same(t, e.Mixer(), out.src)

	assert.Error(t, e.Start(), "second start must fail")

	e.Stop()
	e.Stop()
	assert.False(t, e.IsRunning())
	assert.Equal(t, 1, out.closed)
	assert.Empty(t, e.OutputName())

	_, err := e.Play(newTestAsset(10, 0.5))
	assert.ErrorIs(t, err, ErrNotRunning)
}

// stubSpeaker replaces the speaker package calls and records them
func stubSpeaker(t *testing.T, initErr error) *[]string {
	t.Helper()
	var calls []string
	i, p, cl, c := speakerInit, speakerPlay, speakerClear, speakerClose
	t.Cleanup(func() { speakerInit, speakerPlay, speakerClear, speakerClose = i, p, cl, c })

	speakerInit = func(beep.SampleRate, int) error { calls = append(calls, "init"); return initErr }
	speakerPlay = func(...beep.Streamer) { calls = append(calls, "play") }
	speakerClear = func() { calls = append(calls, "clear") }
	speakerClose = func() { calls = append(calls, "close") }
	return &calls
}

// TestSpeakerStopReleasesDevice verifies Stop clears and closes the speaker
func TestSpeakerStopReleasesDevice(t *testing.T) {
	calls := stubSpeaker(t, nil)
	cfg := testConfig()
	cfg.Backend = BackendSpeaker
	e := New(cfg)

	require.NoError(t, e.Start())
	assert.Equal(t, "speaker", e.OutputName())
	e.Stop()
	assert.Equal(t, []string{"init", "play", "clear", "close"}, *calls)
}

// TestSpeakerInitFailureNotClosed verifies a device that never opened is left alone
func TestSpeakerInitFailureNotClosed(t *testing.T) {
	calls := stubSpeaker(t, errors.New("no alsa"))
	out := newSpeakerOutput(testConfig())

	assert.Error(t, out.Start(constStreamer{0}))
	assert.NoError(t, out.Close())
	assert.Equal(t, []string{"init"}, *calls)
}

// TestEngineFallsBack verifies the next output is tried when one fails
func TestEngineFallsBack(t *testing.T) {
	broken := &fakeOutput{name: "broken", err: errors.New("no device")}
	working := &fakeOutput{name: "working"}

	e := New(testConfig())
	e.newOutputs = func(*Config) []Output { return []Output{broken, working} }

	require.NoError(t, e.Start())
	assert.Equal(t, "working", e.OutputName())
	assert.Equal(t, 1, broken.started)
	e.Stop()
}

// TestEngineNoOutput verifies the joined error when every output fails
func TestEngineNoOutput(t *testing.T) {
	cause := errors.New("no device")
	e := New(testConfig(), WithOutput(&fakeOutput{name: "broken", err: cause}))

	err := e.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAudioBackend)
	assert.ErrorIs(t, err, cause)
	assert.False(t, e.IsRunning())
}

// TestPlayQueueFull verifies Play never blocks and counts drops
func TestPlayQueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.QueueSize = 2
	e := New(cfg, WithOutput(&fakeOutput{name: "fake"}))
	require.NoError(t, e.Start())
	defer e.Stop()

	asset := newTestAsset(10, 0.5)
	_, err := e.Play(asset)
	require.NoError(t, err)
	_, err = e.Play(asset)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := e.Play(asset)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrQueueFull)
	case <-time.After(time.Second):
		t.Fatal("Play blocked on a full queue")
	}

	stats := e.Stats()
	assert.Equal(t, uint64(2), stats.Queued)
	assert.Equal(t, uint64(1), stats.Dropped)
	assert.Equal(t, uint64(0), stats.Played)
}

// TestPlayIDsUnique verifies each trigger gets a new instance
func TestPlayIDsUnique(t *testing.T) {
	e := New(testConfig(), WithOutput(&fakeOutput{name: "fake"}))
	require.NoError(t, e.Start())
	defer e.Stop()

	asset := newTestAsset(10, 0.5)
	a, err := e.Play(asset)
	require.NoError(t, err)
	b, err := e.Play(asset)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Active())
	assert.True(t, b.Active())
}

// TestEngineWithNullOutput verifies voices finish when the null output pumps the mixer
func TestEngineWithNullOutput(t *testing.T) {
	cfg := testConfig()
	cfg.Backend = BackendNone
	cfg.Buffer = 5 * time.Millisecond
	e := New(cfg)
	require.NoError(t, e.Start())
	defer e.Stop()
	assert.Equal(t, "none", e.OutputName())

	inst, err := e.Play(newTestAsset(240, 0.5))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return !inst.Active() }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, uint64(1), e.Stats().Played)
}

// TestDetectPlayer verifies probe order and rate substitution
func TestDetectPlayer(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	installed := map[string]bool{"aplay": true, "ffplay": true}
	lookPath = func(file string) (string, error) {
		if installed[file] {
			return "/usr/bin/" + file, nil
		}
		return "", exec.ErrNotFound
	}

	p, err := DetectPlayer(44100)
	require.NoError(t, err)
	assert.Equal(t, PlayerALSA, p.Kind)
	assert.Equal(t, "/usr/bin/aplay", p.Path)
	assert.Contains(t, p.Args, "44100")

	installed = map[string]bool{"pacat": true, "aplay": true}
	p, err = DetectPlayer(48000)
	require.NoError(t, err)
	assert.Equal(t, PlayerPulse, p.Kind)
	assert.Contains(t, p.Args, "--rate=48000")
}

// TestDetectPlayerNone verifies the sentinel when nothing is installed
func TestDetectPlayerNone(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	if _, err := DetectPlayer(48000); err != nil {
		assert.ErrorIs(t, err, ErrNoAudioBackend)
	}
}

// TestParseBackend verifies accepted backend names
func TestParseBackend(t *testing.T) {
	for _, name := range []string{"auto", "speaker", "pipe", "none"} {
		b, err := ParseBackend(name)
		require.NoError(t, err)
		assert.Equal(t, Backend(name), b)
	}
	_, err := ParseBackend("jack")
	assert.Error(t, err)
}

// TestConfigValidate verifies range checks
func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := map[string]func(*Config){
		"volume high":  func(c *Config) { c.Volume = 1.5 },
		"volume low":   func(c *Config) { c.Volume = -0.1 },
		"rate low":     func(c *Config) { c.SampleRate = 100 },
		"buffer zero":  func(c *Config) { c.Buffer = 0 },
		"queue zero":   func(c *Config) { c.QueueSize = 0 },
		"backend typo": func(c *Config) { c.Backend = "speakers" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// TestBufferFrames verifies period to frame conversion
func TestBufferFrames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 48000
	cfg.Buffer = 20 * time.Millisecond
	assert.Equal(t, 960, cfg.bufferFrames())

	cfg.Buffer = time.Nanosecond
	assert.Equal(t, 1, cfg.bufferFrames())
}
