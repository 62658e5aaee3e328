package main

import (
	"context"
	"log"
	"path/filepath"

	"github.com/lixenwraith/keyclack/config"
	"github.com/lixenwraith/keyclack/dispatch"
	"github.com/lixenwraith/keyclack/hook"
	"github.com/lixenwraith/keyclack/playback"
	"github.com/lixenwraith/keyclack/soundpack"
	"github.com/lixenwraith/keyclack/status"
)

// run loads the pack completely before a key source exists, so a broken
// pack never installs a hook
func (a *app) run(ctx context.Context, cfg config.Config, dir string) error {
	logger := log.Default()

	printInfo(a.out, "Reading configuration...")
	pack, err := soundpack.Load(dir,
		soundpack.WithDecoder(soundpack.NewBeepDecoder(cfg.SampleRate)),
		soundpack.WithLogger(logger),
	)
	if err != nil {
		printError(a.errOut, err)
		return err
	}
	printInfo(a.out, "Loaded %d sounds from %s", pack.Len(), pack.Dir())

	engine, err := a.startEngine(cfg)
	if err != nil {
		printError(a.errOut, err)
		return err
	}
	defer engine.Stop()

	d := dispatch.New(pack, engine,
		dispatch.WithPolicy(cfg.RetriggerPolicy()),
		dispatch.WithTable(cfg.Table()),
		dispatch.WithLogger(logger),
	)

	opts := cfg.HookOptions()
	opts.Logger = logger
	opts.Status = appName + ": " + filepath.Base(pack.Dir())
	src, err := a.newSource(hook.Kind(cfg.Source), opts)
	if err != nil {
		printError(a.errOut, err)
		return err
	}

	printInfo(a.out, "Ready to type.")

	runErr := src.Run(ctx, d.OnKeyEvent)

	for _, line := range report(pack, src, engine, d).Lines() {
		logger.Printf("[main] %s", line)
	}

	if runErr != nil {
		printError(a.errOut, runErr)
	}
	return runErr
}

// startEngine opens the configured output and falls back to a muted engine
// so key handling still runs without audio
func (a *app) startEngine(cfg config.Config) (*playback.Engine, error) {
	logger := log.Default()
	pc := cfg.Playback()

	opts := append([]playback.Option{playback.WithLogger(logger)}, a.engineOpts...)
	engine := playback.New(pc, opts...)
	err := engine.Start()
	if err == nil {
		return engine, nil
	}
	if pc.Backend == playback.BackendNone {
		return nil, err
	}

	printInfo(a.out, "Audio output unavailable, continuing muted: %v", err)
	pc.Backend = playback.BackendNone
	engine = playback.New(pc, playback.WithLogger(logger))
	if err := engine.Start(); err != nil {
		return nil, err
	}
	return engine, nil
}

// report snapshots counters for the debug log
func report(pack *soundpack.Pack, src hook.Source, engine *playback.Engine, d *dispatch.Dispatcher) *status.Board {
	b := status.NewBoard()
	b.SetLabel("pack", pack.Dir())
	b.SetLabel("source", src.Name())
	b.SetLabel("output", engine.OutputName())
	b.SetLabel("policy", d.Policy().String())

	ds, ps := d.Stats(), engine.Stats()
	b.Counter("dispatch.events").Store(ds.Events)
	b.Counter("dispatch.triggered").Store(ds.Triggered)
	b.Counter("dispatch.ignored").Store(ds.Ignored)
	b.Counter("dispatch.failed").Store(ds.Failed)
	b.Counter("playback.queued").Store(ps.Queued)
	b.Counter("playback.played").Store(ps.Played)
	b.Counter("playback.dropped").Store(ps.Dropped)
	return b
}
