package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/keyclack/config"
	"github.com/lixenwraith/keyclack/hook"
	"github.com/lixenwraith/keyclack/playback"
)

func main() {
	// The terminal source owns the screen; print crashes after it is released
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mKEYCLACK CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	os.Exit(newApp(os.Stdout, os.Stderr).execute(os.Args[1:]))
}

// app carries the injectable pieces of bootstrap
type app struct {
	out    io.Writer
	errOut io.Writer

	newSource  func(hook.Kind, hook.Options) (hook.Source, error)
	engineOpts []playback.Option

	configFile string
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:       out,
		errOut:    errOut,
		newSource: hook.New,
	}
}

// execute runs the command line and returns the process exit code
func (a *app) execute(args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	if err := root.ExecuteContext(context.Background()); err != nil {
		// Config and run errors are printed where they occur; usage errors are not
		if !errors.As(err, new(shownError)) {
			printError(a.errOut, err)
		}
		return 1
	}
	return 0
}

// shownError marks an error already printed to the user
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName + " <pack-directory>",
		Short:         "Play mechanical keyboard sounds while you type",
		Long:          "Loads a Mechvibes-style sound pack and plays the matching sound for every key press.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printBanner(a.out)
				return nil
			}

			cfg, err := config.Load(viper.New(), a.configFile, cmd.Flags())
			if err != nil {
				printError(a.errOut, err)
				return shownError{err}
			}

			if logFile := setupLogging(cfg.Debug); logFile != nil {
				defer logFile.Close()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := a.run(ctx, cfg, args[0]); err != nil {
				return shownError{err}
			}
			return nil
		},
	}

	// A flag rather than a subcommand, so any directory name loads as a pack
	cmd.Version = version
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	cmd.Flags().StringVar(&a.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/keyclack/config.yaml)")
	config.RegisterFlags(cmd.Flags())
	return cmd
}
