package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/idilsaglam/bucket/internal/bucket"
	"github.com/idilsaglam/bucket/internal/cli"
	"github.com/idilsaglam/bucket/internal/config"
	"github.com/idilsaglam/bucket/internal/store"
	"github.com/idilsaglam/bucket/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand); stop at the subcommand name.
	fs := flag.NewFlagSet("bucket", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cli.PrintHelp(os.Stdout)
			os.Exit(0)
		}
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}

	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(2)
	}
	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(cfg.Color, cfg.NoColor)

	// help and unknown subcommands never touch the data file.
	if !cli.NeedsStore(args[0]) {
		os.Exit(cli.Run(args, cli.Options{}))
	}

	// The TUI owns the terminal; logging there would tear the alt screen.
	var logOut io.Writer = os.Stderr
	if args[0] == "tui" {
		logOut = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))

	backend, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(1)
	}
	s := bucket.New(backend, bucket.WithKey(cfg.Storage.Key), bucket.WithLogger(logger))

	code := cli.Run(args, cli.Options{Store: s, Logger: logger})
	if err := backend.Close(); err != nil {
		logger.Warn("close backend", "err", err)
	}
	os.Exit(code)
}
