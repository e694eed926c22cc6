package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/barragoon/config"
	"github.com/domino14/barragoon/shell"
)

var GitVersion string

//go:embed banner.txt
var banner string

func consoleLogger(cfg *config.Config) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("[%s]", i))
	}

	level := zerolog.InfoLevel
	switch {
	case cfg.GetBool(config.ConfigDebug) || cfg.GetString(config.ConfigLogLevel) == "debug":
		level = zerolog.DebugLevel
	case cfg.GetString(config.ConfigLogLevel) == "disabled":
		level = zerolog.Disabled
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// startCPUProfile returns the function that stops the profile.
func startCPUProfile(path string) func() {
	f, err := os.Create(path)
	if err != nil {
		panic("could not create CPU profile: " + err.Error())
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		panic("could not start CPU profile: " + err.Error())
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}

func writeMemProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		panic("could not create memory profile: " + err.Error())
	}
	defer f.Close()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		panic("could not write memory profile: " + err.Error())
	}
	log.Info().Str("file", path).Msg("wrote memory profile")
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(exPath)

	logger := consoleLogger(cfg)
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	log.Debug().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")

	if p := cfg.GetString(config.ConfigCPUProfile); p != "" {
		defer startCPUProfile(p)()
	}

	// everything left after the flags is a single command to run
	line := strings.TrimSpace(strings.Join(cfg.Args(), " "))
	if line == "" {
		fmt.Println(banner)
		if GitVersion != "" {
			fmt.Println(GitVersion)
		}
	}

	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Debug().Msg("got quit signal")
		close(done)
	}()

	sc := shell.NewShellController(cfg, exPath, GitVersion)
	if line == "" {
		go sc.Loop(sig)
	} else {
		sc.Execute(sig, line)
		sig <- syscall.SIGINT
	}
	<-done

	sc.Cleanup()
	if p := cfg.GetString(config.ConfigMemProfile); p != "" {
		writeMemProfile(p)
	}
}
