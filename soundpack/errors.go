package soundpack

import (
	"errors"
	"fmt"
)

// Error kinds reported through ConfigError.Kind
var (
	ErrNotFound  = errors.New("manifest not found")
	ErrParse     = errors.New("unable to parse manifest")
	ErrAssetLoad = errors.New("unable to load sound file")
)

// ErrUnsupportedFormat is returned by BeepDecoder for unknown file extensions
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// ConfigError is the single failure type of Load
// errors.Is matches both Kind and the underlying cause
type ConfigError struct {
	Kind error
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v @ %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v @ %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
