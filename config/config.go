// Package config loads engine and shell settings from defaults, flags,
// BARRAGOON_* environment variables and an optional YAML file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigLogLevel          = "log-level"
	ConfigDebug             = "debug"
	ConfigThreads           = "threads"
	ConfigTTableMemFraction = "ttable-mem-fraction"
	ConfigAutoplayLogfile   = "autoplay-logfile"
	ConfigAutoplayMaxTurns  = "autoplay-max-turns"
	ConfigDataPath          = "data-path"
	ConfigCPUProfile        = "cpu-profile"
	ConfigMemProfile        = "mem-profile"
	ConfigFile              = "config"
)

const envPrefix = "BARRAGOON"

// Config embeds a viper instance; use its getters with the Config*
// keys above.
type Config struct {
	*viper.Viper
	args []string
}

// DefaultConfig returns a config with only the defaults set.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigLogLevel, "info")
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigThreads, 1)
	c.SetDefault(ConfigTTableMemFraction, 0.25)
	c.SetDefault(ConfigAutoplayLogfile, "/tmp/autoplay.csv")
	c.SetDefault(ConfigAutoplayMaxTurns, 500)
	c.SetDefault(ConfigDataPath, "./data")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
}

// Load parses args and the environment, then reads the config file named
// by --config if any.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	c.setDefaults()

	fs := pflag.NewFlagSet("barragoon", pflag.ContinueOnError)
	// everything after the first non-flag is a shell command line
	fs.SetInterspersed(false)
	fs.String(ConfigLogLevel, "info", "log level: debug, info or disabled")
	fs.Bool(ConfigDebug, false, "shorthand for --log-level=debug")
	fs.Int(ConfigThreads, 1, "worker threads for perft and autoplay")
	fs.Float64(ConfigTTableMemFraction, 0.25, "fraction of system memory for the perft transposition table")
	fs.String(ConfigAutoplayLogfile, "/tmp/autoplay.csv", "where autoplay writes one row per game")
	fs.Int(ConfigAutoplayMaxTurns, 500, "autoplay games stop undecided after this many turns")
	fs.String(ConfigDataPath, "./data", "directory for scripts and logs given by relative path")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a heap profile to this file")
	fs.String(ConfigFile, "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				log.Warn().Str("file", cfgFile).Msg("config file not found, using flags and defaults")
				return nil
			}
			return err
		}
	}
	return nil
}

// Args returns the arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// Write saves the current settings to the config file, if one was given.
func (c *Config) Write() error {
	cfgFile := c.GetString(ConfigFile)
	if cfgFile == "" {
		return errors.New("no config file to write to; start with --config")
	}
	return c.WriteConfigAs(cfgFile)
}

// AdjustRelativePaths makes relative file settings relative to basedir.
func (c *Config) AdjustRelativePaths(basedir string) {
	for _, key := range []string{ConfigDataPath, ConfigAutoplayLogfile} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.Set(key, filepath.Join(basedir, p))
	}
}

// SanitizedSettings returns all settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
