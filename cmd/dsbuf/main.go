// Command dsbuf exercises a static buffer from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/pavanmanishd/dsbuf"
)

var logger log.Logger = log.NewNopLogger()

// options are the flags shared by every command.
type options struct {
	configFile  string
	logLevel    string
	capacity    string
	maxAlloc    string
	descriptors int
}

func main() {
	var opts options

	app := kingpin.New("dsbuf", "Allocate from a fixed-size static buffer.")
	app.HelpFlag.Short('h')
	app.Flag("config.file", "YAML file with buffer limits").StringVar(&opts.configFile)
	app.Flag("log.level", "Only log messages with the given severity or above (debug, info, warn, error)").
		Default("info").EnumVar(&opts.logLevel, "debug", "info", "warn", "error")
	app.Flag("arena.capacity", "Override the arena size, e.g. 4KB").StringVar(&opts.capacity)
	app.Flag("arena.max-allocation", "Override the largest single allocation, e.g. 512B").StringVar(&opts.maxAlloc)
	app.Flag("arena.descriptors", "Override the number of descriptors").IntVar(&opts.descriptors)
	app.PreAction(func(*kingpin.ParseContext) error {
		logger = newLogger(opts.logLevel)
		return nil
	})

	addDemoCommand(app, &opts)
	addConfigCommand(app, &opts)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

func newLogger(lvl string) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = level.NewFilter(l, level.Allow(level.ParseDefault(lvl, level.InfoValue())))
	return log.With(l, "ts", log.DefaultTimestampUTC)
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then command line overrides.
func loadConfig(opts *options) (dsbuf.Config, error) {
	cfg := dsbuf.DefaultConfig()
	if opts.configFile != "" {
		var err error
		if cfg, err = dsbuf.LoadConfig(opts.configFile); err != nil {
			return dsbuf.Config{}, err
		}
	}
	if opts.capacity != "" {
		if err := cfg.ArenaCapacity.UnmarshalText([]byte(opts.capacity)); err != nil {
			return dsbuf.Config{}, errors.Wrapf(err, "parse --arena.capacity %q", opts.capacity)
		}
	}
	if opts.maxAlloc != "" {
		if err := cfg.MaxAllocationSize.UnmarshalText([]byte(opts.maxAlloc)); err != nil {
			return dsbuf.Config{}, errors.Wrapf(err, "parse --arena.max-allocation %q", opts.maxAlloc)
		}
	}
	if opts.descriptors != 0 {
		cfg.MaxDescriptors = opts.descriptors
	}
	if err := cfg.Validate(); err != nil {
		return dsbuf.Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func exitWithErr(err error) {
	level.Error(logger).Log("msg", "command failed", "err", err)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
