// barragoon is the engine executable. It speaks UBI on stdin/stdout and
// logs to stderr.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/barragoon/config"
	"github.com/domino14/barragoon/perft"
	"github.com/domino14/barragoon/ubi"
)

var (
	GitVersion string
)

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	args := os.Args[1:]
	err = cfg.Load(args)
	if err != nil {
		panic(err)
	}

	var logger zerolog.Logger
	ll := cfg.GetString(config.ConfigLogLevel)
	if cfg.GetBool(config.ConfigDebug) {
		ll = "debug"
	}
	switch ll {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(os.Stderr).Level(zerolog.DebugLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
		logger = zerolog.New(os.Stderr).Level(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(os.Stderr).Level(zerolog.InfoLevel)
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	logger.Debug().Msg("Debug logging is on")

	cfg.AdjustRelativePaths(exPath)
	logger.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if GitVersion != "" {
		ubi.Version = GitVersion
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var tt *perft.TranspositionTable
	if frac := cfg.GetFloat64(config.ConfigTTableMemFraction); frac > 0 {
		tt = perft.NewTranspositionTable(frac)
	}
	err = ubi.Loop(ctx, os.Stdin, os.Stdout, cfg.GetInt(config.ConfigThreads), tt)
	if err != nil && err != context.Canceled {
		logger.Err(err).Msg("ubi-loop")
		os.Exit(1)
	}
	logger.Info().Msg("bye")
}
