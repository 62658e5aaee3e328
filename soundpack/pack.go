// Package soundpack loads a sound pack directory into an immutable mapping
// from canonical key code to decoded audio.
package soundpack

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"sort"

	"github.com/lixenwraith/keyclack/keycode"
	"github.com/lixenwraith/keyclack/manifest"
)

// Pack is the read-only result of Load
type Pack struct {
	dir    string
	sounds map[keycode.Code]*Asset
}

// Lookup returns the asset registered for code
func (p *Pack) Lookup(code keycode.Code) (*Asset, bool) {
	a, ok := p.sounds[code]
	return a, ok
}

// Len returns the number of registered codes
func (p *Pack) Len() int {
	return len(p.sounds)
}

// Codes returns the registered codes in sorted order
func (p *Pack) Codes() []keycode.Code {
	codes := make([]keycode.Code, 0, len(p.sounds))
	for c := range p.sounds {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Dir returns the pack directory the pack was loaded from
func (p *Pack) Dir() string {
	return p.dir
}

// Option configures Load
type Option func(*loader)

// WithDecoder replaces the default BeepDecoder
func WithDecoder(d Decoder) Option {
	return func(l *loader) { l.decoder = d }
}

// WithOpener replaces the default OSOpener
func WithOpener(o Opener) Option {
	return func(l *loader) { l.opener = o }
}

// WithLogger sets the logger used for load progress
func WithLogger(lg *log.Logger) Option {
	return func(l *loader) { l.logger = lg }
}

type loader struct {
	decoder Decoder
	opener  Opener
	logger  *log.Logger
}

// defaultSampleRate matches the playback engine default
const defaultSampleRate = 48000

// Load reads dir/config.json and decodes every referenced sound.
// The first failure aborts the whole load; no partial pack is returned.
func Load(dir string, opts ...Option) (*Pack, error) {
	l := &loader{
		decoder: NewBeepDecoder(defaultSampleRate),
		opener:  OSOpener{},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	manifestPath := filepath.Join(dir, manifest.FileName)
	l.logger.Printf("[soundpack] reading %s", manifestPath)

	data, err := l.read(manifestPath)
	if err != nil {
		return nil, &ConfigError{Kind: ErrNotFound, Path: manifestPath, Err: err}
	}

	m, err := manifest.Parse(data)
	if err != nil {
		return nil, &ConfigError{Kind: ErrParse, Path: manifestPath, Err: err}
	}

	// Same file referenced by several keys is decoded once
	byPath := make(map[string]*Asset)
	sounds := make(map[keycode.Code]*Asset)

	for _, e := range m.Paths() {
		code := keycode.Code(e.Key)
		path := resolve(dir, e.Value)
		asset, ok := byPath[path]
		if !ok {
			asset, err = l.decode(path)
			if err != nil {
				return nil, &ConfigError{Kind: ErrAssetLoad, Path: path, Err: err}
			}
			byPath[path] = asset
		}
		sounds[code] = asset
	}

	l.logger.Printf("[soundpack] loaded %d keys from %d files", len(sounds), len(byPath))
	return &Pack{dir: dir, sounds: sounds}, nil
}

func (l *loader) read(path string) ([]byte, error) {
	rc, err := l.opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (l *loader) decode(path string) (*Asset, error) {
	rc, err := l.opener.Open(path)
	if err != nil {
		return nil, err
	}
	asset, err := l.decoder.Decode(path, rc)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, errors.New("decoder returned no asset")
	}
	return asset, nil
}

// resolve joins a manifest path onto the pack directory; absolute paths are kept
func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}

// IsNotExist reports whether err is a missing manifest or missing sound file
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
