// Package config loads keyclack settings from defaults, an optional config
// file, KEYCLACK_* environment variables and command-line flags, in
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/keyclack/dispatch"
	"github.com/lixenwraith/keyclack/hook"
	"github.com/lixenwraith/keyclack/keycode"
	"github.com/lixenwraith/keyclack/playback"
)

// EnvPrefix is prepended to upper-cased keys, e.g. KEYCLACK_VOLUME
const EnvPrefix = "KEYCLACK"

// Config holds every runtime setting
type Config struct {
	Policy     string        `mapstructure:"policy"` // overlap | stop-previous
	Keymap     string        `mapstructure:"keymap"` // standard | legacy
	Volume     int           `mapstructure:"volume"` // percent
	SampleRate int           `mapstructure:"sample_rate"`
	Buffer     time.Duration `mapstructure:"buffer"`
	Backend    string        `mapstructure:"backend"`
	QueueSize  int           `mapstructure:"queue_size"`
	Source     string        `mapstructure:"source"`
	Devices    []string      `mapstructure:"devices"`
	Repeat     bool          `mapstructure:"repeat"`
	Debug      bool          `mapstructure:"debug"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	pc := playback.DefaultConfig()
	return Config{
		Policy:     dispatch.Overlap.String(),
		Keymap:     "standard",
		Volume:     100,
		SampleRate: pc.SampleRate,
		Buffer:     pc.Buffer,
		Backend:    string(pc.Backend),
		QueueSize:  pc.QueueSize,
		Source:     string(hook.KindAuto),
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("policy", d.Policy)
	v.SetDefault("keymap", d.Keymap)
	v.SetDefault("volume", d.Volume)
	v.SetDefault("sample_rate", d.SampleRate)
	v.SetDefault("buffer", d.Buffer)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("queue_size", d.QueueSize)
	v.SetDefault("source", d.Source)
	v.SetDefault("devices", d.Devices)
	v.SetDefault("repeat", d.Repeat)
	v.SetDefault("debug", d.Debug)
}

// RegisterFlags adds one flag per key; flag names use dashes
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String("policy", d.Policy, "retrigger policy: overlap or stop-previous")
	fs.String("keymap", d.Keymap, "key code table: "+strings.Join(keycode.TableNames(), " or "))
	fs.Int("volume", d.Volume, "master volume 0-100")
	fs.Int("sample-rate", d.SampleRate, "output sample rate in Hz")
	fs.Duration("buffer", d.Buffer, "audio buffer length")
	fs.String("backend", d.Backend, "audio output: auto, speaker, pipe or none")
	fs.Int("queue-size", d.QueueSize, "pending sounds before presses are dropped")
	fs.String("source", d.Source, "key source: auto, evdev or terminal")
	fs.StringSlice("devices", nil, "evdev device paths (default: discover keyboards)")
	fs.Bool("repeat", d.Repeat, "play a sound for OS key auto-repeat")
	fs.Bool("debug", d.Debug, "write a debug log to logs/")
}

// Load reads configuration. An explicit file must exist; the default
// location is optional. fs may be nil.
func Load(v *viper.Viper, file string, fs *pflag.FlagSet) (Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		var bindErr error
		fs.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !slices.Contains(keys, key) {
				return
			}
			if err := v.BindPFlag(key, f); err != nil {
				bindErr = errors.Join(bindErr, err)
			}
		})
		if bindErr != nil {
			return Config{}, bindErr
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	} else if dir := defaultDir(); dir != "" {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// defaultDir is $XDG_CONFIG_HOME/keyclack or its platform equivalent
func defaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "keyclack")
}

// keys lists every config key
var keys = []string{
	"policy", "keymap", "volume", "sample_rate", "buffer", "backend",
	"queue_size", "source", "devices", "repeat", "debug",
}

// Validate rejects unknown names and out of range numbers
func (c Config) Validate() error {
	var errs []error
	if _, err := dispatch.ParsePolicy(c.Policy); err != nil {
		errs = append(errs, err)
	}
	if _, err := keycode.Lookup(c.Keymap); err != nil {
		errs = append(errs, err)
	}
	if c.Volume < 0 || c.Volume > 100 {
		errs = append(errs, fmt.Errorf("volume %d out of range 0-100", c.Volume))
	}
	if _, err := hook.ParseKind(c.Source); err != nil {
		errs = append(errs, err)
	}
	if err := c.Playback().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Playback converts to engine settings
func (c Config) Playback() *playback.Config {
	return &playback.Config{
		Volume:     float64(c.Volume) / 100,
		SampleRate: c.SampleRate,
		Buffer:     c.Buffer,
		Backend:    playback.Backend(c.Backend),
		QueueSize:  c.QueueSize,
	}
}

// RetriggerPolicy returns the parsed policy; Overlap when invalid
func (c Config) RetriggerPolicy() dispatch.Policy {
	p, _ := dispatch.ParsePolicy(c.Policy)
	return p
}

// Table returns the selected key code table; Standard when invalid
func (c Config) Table() keycode.Table {
	t, err := keycode.Lookup(c.Keymap)
	if err != nil {
		return keycode.Standard()
	}
	return t
}

// HookOptions builds key source options
func (c Config) HookOptions() hook.Options {
	return hook.Options{
		Devices: c.Devices,
		Repeat:  c.Repeat,
	}
}
