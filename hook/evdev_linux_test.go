//go:build linux

package hook

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/keyclack/keycode"
)

func writeEvents(t *testing.T, events ...inputEvent) string {
	t.Helper()
	var buf bytes.Buffer
	for _, ev := range events {
		require.NoError(t, binary.Write(&buf, binary.NativeEndian, ev))
	}
	path := filepath.Join(t.TempDir(), "event0")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func key(code uint16, value int32) inputEvent {
	return inputEvent{Type: evKey, Code: code, Value: value}
}

func recordedEvents(t *testing.T) string {
	return writeEvents(t,
		inputEvent{}, // SYN_REPORT
		key(30, keyValuePress),
		inputEvent{},
		key(30, keyValueRepeat),
		key(30, keyValueRelease),
		key(31, keyValuePress),
		key(0x110, keyValuePress),
		key(200, keyValuePress),
	)
}

func TestEvdevSourceReadsDevice(t *testing.T) {
	tests := []struct {
		repeat bool
		want   []keycode.Key
	}{
		{false, []keycode.Key{keycode.KeyA, keycode.KeyS, keycode.KeyUnknown}},
		{true, []keycode.Key{keycode.KeyA, keycode.KeyA, keycode.KeyS, keycode.KeyUnknown}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("repeat=%v", tt.repeat), func(t *testing.T) {
			src, err := newEvdevSource(Options{Devices: []string{recordedEvents(t)}, Repeat: tt.repeat})
			require.NoError(t, err)

			var got []keycode.Key
			err = src.Run(context.Background(), func(k keycode.Key) { got = append(got, k) })

			// A regular file reaches EOF like an unplugged keyboard
			assert.ErrorIs(t, err, ErrDevicesClosed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvdevSourceStopsOnCancel(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	path := fmt.Sprintf("/proc/self/fd/%d", r.Fd())
	src, err := newEvdevSource(Options{Devices: []string{path}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	got := make(chan keycode.Key, 4)
	go func() {
		errc <- src.Run(ctx, func(k keycode.Key) { got <- k })
	}()

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.NativeEndian, key(57, keyValuePress)))
	_, err = w.Write(buf.Bytes())
	require.NoError(t, err)

	select {
	case k := <-got:
		assert.Equal(t, keycode.KeySpace, k)
	case <-time.After(2 * time.Second):
		t.Fatal("press not delivered")
	}

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not end Run")
	}
}

func TestNewEvdevWithoutDevices(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	src, err := New(KindEvdev, Options{Devices: []string{missing}})
	assert.ErrorIs(t, err, ErrNoKeyboard)
	assert.True(t, src == nil, "failed source must be a nil interface")

	restore := stdinIsTerminal
	t.Cleanup(func() { stdinIsTerminal = restore })

	stdinIsTerminal = func() bool { return true }
	src, err = New(KindAuto, Options{Devices: []string{missing}})
	require.NoError(t, err)
	assert.Equal(t, "terminal", src.Name())

	// Nothing to read keys from at all
	stdinIsTerminal = func() bool { return false }
	_, err = New(KindAuto, Options{Devices: []string{missing}})
	assert.ErrorIs(t, err, ErrNoKeyboard)
	assert.ErrorIs(t, err, ErrNoTerminal)
}
