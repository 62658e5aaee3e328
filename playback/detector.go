package playback

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// PlayerKind identifies a CLI audio player
type PlayerKind int

const (
	PlayerPulse PlayerKind = iota
	PlayerPipeWire
	PlayerALSA
	PlayerSoX
	PlayerFFplay
	PlayerOSS
)

// PlayerConfig describes how to feed raw s16le stereo PCM to a player
type PlayerConfig struct {
	Kind PlayerKind
	Name string
	Path string
	Args []string // nil for direct device writes
}

// candidate builds the argument list for one player at a given rate
type candidate struct {
	kind PlayerKind
	bin  string
	args func(rate string) []string
}

// Probe order: pacat > pw-cat > aplay > play (sox) > ffplay, then OSS
var candidates = []candidate{
	{PlayerPulse, "pacat", func(rate string) []string {
		return []string{"--raw", "--format=s16le", "--rate=" + rate, "--channels=2", "--latency-msec=20", "--playback"}
	}},
	{PlayerPipeWire, "pw-cat", func(rate string) []string {
		return []string{"--playback", "--format=s16", "--rate=" + rate, "--channels=2", "--latency=20ms", "-"}
	}},
	{PlayerALSA, "aplay", func(rate string) []string {
		return []string{"-t", "raw", "-f", "S16_LE", "-r", rate, "-c", "2", "-q"}
	}},
	{PlayerSoX, "play", func(rate string) []string {
		return []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", rate, "-", "-d", "-q"}
	}},
	{PlayerFFplay, "ffplay", func(rate string) []string {
		return []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", rate,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet"}
	}},
}

// lookPath is replaced in tests
var lookPath = exec.LookPath

// ossDevice is the FreeBSD direct-write device
const ossDevice = "/dev/dsp"

// DetectPlayer finds the first available CLI player for sampleRate
func DetectPlayer(sampleRate int) (*PlayerConfig, error) {
	rate := strconv.Itoa(sampleRate)
	for _, c := range candidates {
		path, err := lookPath(c.bin)
		if err != nil {
			continue
		}
		return &PlayerConfig{Kind: c.kind, Name: c.bin, Path: path, Args: c.args(rate)}, nil
	}

	if runtime.GOOS == "freebsd" {
		if _, err := os.Stat(ossDevice); err == nil {
			return &PlayerConfig{Kind: PlayerOSS, Name: "oss", Path: ossDevice}, nil
		}
	}

	return nil, ErrNoAudioBackend
}
