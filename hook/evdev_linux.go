//go:build linux

package hook

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"golang.org/x/sys/unix"
)

// inputEvent mirrors struct input_event from linux/input.h
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

var eventSize = binary.Size(inputEvent{})

// Keyboard symlinks maintained by udev
var devicePatterns = []string{
	"/dev/input/by-path/*-event-kbd",
	"/dev/input/by-id/*-event-kbd",
}

// EvdevSource reads key events from /dev/input devices, independent of focus
type EvdevSource struct {
	devices []string
	repeat  bool
	logger  *log.Logger
}

func newEvdevSource(opts Options) (*EvdevSource, error) {
	devices := opts.Devices
	if len(devices) == 0 {
		devices = discoverKeyboards()
	}
	if len(devices) == 0 {
		return nil, ErrNoKeyboard
	}
	// Probe readability so auto selection can fall back before Run
	readable := devices[:0:0]
	var lastErr error
	for _, path := range devices {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err != nil {
			lastErr = err
			continue
		}
		unix.Close(fd)
		readable = append(readable, path)
	}
	if len(readable) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoKeyboard, lastErr)
	}
	return &EvdevSource{devices: readable, repeat: opts.Repeat, logger: opts.logger()}, nil
}

// discoverKeyboards resolves udev keyboard links to unique event nodes
func discoverKeyboards() []string {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range devicePatterns {
		matches, _ := filepath.Glob(pattern)
		for _, m := range matches {
			real, err := filepath.EvalSymlinks(m)
			if err != nil || seen[real] {
				continue
			}
			seen[real] = true
			out = append(out, real)
		}
	}
	sort.Strings(out)
	return out
}

func (s *EvdevSource) Name() string { return "evdev" }

// Run polls every device from one goroutine and calls h for each press.
// It returns nil when ctx is done and ErrDevicesClosed when no device is left.
func (s *EvdevSource) Run(ctx context.Context, h Handler) error {
	fds := make([]unix.PollFd, 0, len(s.devices))
	names := make(map[int32]string, len(s.devices))
	for _, path := range s.devices {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err != nil {
			s.logger.Printf("[hook] open %s: %v", path, err)
			continue
		}
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
		names[int32(fd)] = path
	}
	defer func() {
		for _, p := range fds {
			unix.Close(int(p.Fd))
		}
	}()
	if len(fds) == 0 {
		return ErrNoKeyboard
	}
	s.logger.Printf("[hook] reading %d keyboard device(s)", len(fds))

	buf := make([]byte, eventSize*64)
	for {
		if ctx.Err() != nil {
			return nil
		}

		// 100ms timeout to observe ctx
		n, err := unix.Poll(fds, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("poll input devices: %w", err)
		}
		if n == 0 {
			continue
		}

		live := fds[:0]
		for _, p := range fds {
			if p.Revents == 0 {
				live = append(live, p)
				continue
			}
			if p.Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 && p.Revents&unix.POLLIN == 0 {
				s.closeDevice(p.Fd, names, "hangup")
				continue
			}
			rn, err := unix.Read(int(p.Fd), buf)
			if err == unix.EINTR || err == unix.EAGAIN {
				live = append(live, p)
				continue
			}
			if err != nil {
				s.closeDevice(p.Fd, names, err.Error())
				continue
			}
			if rn == 0 {
				s.closeDevice(p.Fd, names, "eof")
				continue
			}
			s.deliver(buf[:rn], h)
			live = append(live, p)
		}
		for i := range live {
			live[i].Revents = 0
		}
		fds = live
		if len(fds) == 0 {
			return ErrDevicesClosed
		}
	}
}

func (s *EvdevSource) closeDevice(fd int32, names map[int32]string, reason string) {
	s.logger.Printf("[hook] device %s closed: %s", names[fd], reason)
	unix.Close(int(fd))
}

// deliver decodes whole events; the kernel never splits one across reads
func (s *EvdevSource) deliver(data []byte, h Handler) {
	var ev inputEvent
	r := bytes.NewReader(data)
	for r.Len() >= eventSize {
		if err := binary.Read(r, binary.NativeEndian, &ev); err != nil {
			return
		}
		if k, ok := evdevKey(ev.Type, ev.Code, ev.Value, s.repeat); ok {
			h(k)
		}
	}
}

var _ Source = (*EvdevSource)(nil)
