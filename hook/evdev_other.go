//go:build !linux

package hook

import "context"

// EvdevSource is unavailable off linux
type EvdevSource struct{}

func newEvdevSource(Options) (*EvdevSource, error) {
	return nil, ErrEvdevUnsupported
}

func (s *EvdevSource) Name() string { return "evdev" }

func (s *EvdevSource) Run(context.Context, Handler) error {
	return ErrEvdevUnsupported
}
