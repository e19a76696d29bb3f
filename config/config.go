// Package config gathers settings from flags, the environment and an
// optional YAML file. Flags win over the environment, which wins over the
// file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug         = "debug"
	ConfigThreads       = "threads"
	ConfigPerftDepth    = "perft-depth"
	ConfigAutoplayGames = "autoplay-games"
	ConfigAutoplaySeed  = "autoplay-seed"
	ConfigOpeningBook   = "opening-book"
	ConfigHistoryFile   = "history-file"
	ConfigCPUProfile    = "cpu-profile"
	ConfigFile          = "config-file"
)

const envPrefix = "othello"

type Config struct {
	*viper.Viper
	args []string
}

func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".othello", "config.yaml")
}

// Load parses the leading flags of args. Parsing stops at the first
// argument that is not a flag; it and everything after it are kept for
// Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()

	flags := pflag.NewFlagSet("othello", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.Bool(ConfigDebug, false, "turn on debug logging")
	flags.Int(ConfigThreads, runtime.NumCPU(), "number of goroutines for perft and autoplay")
	flags.Int(ConfigPerftDepth, 6, "default depth of the perft command")
	flags.Int(ConfigAutoplayGames, 1000, "default number of games for the autoplay command")
	flags.Uint64(ConfigAutoplaySeed, 0, "seed for autoplay; 0 picks a random one")
	flags.String(ConfigOpeningBook, "", "YAML opening book; empty for the built-in one")
	flags.String(ConfigHistoryFile, "/tmp/othello_history", "readline history file")
	flags.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	flags.String(ConfigFile, defaultConfigFile(), "YAML config file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	c.args = flags.Args()

	if err := c.BindPFlags(flags); err != nil {
		return err
	}
	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	cfgFile := c.GetString(ConfigFile)
	if cfgFile == "" {
		return nil
	}
	c.SetConfigFile(cfgFile)
	c.SetConfigType("yaml")
	if err := c.ReadInConfig(); err != nil {
		// A missing file is fine unless it was asked for.
		if errors.Is(err, fs.ErrNotExist) && !flags.Changed(ConfigFile) {
			return nil
		}
		return err
	}
	return nil
}

// Args returns the arguments left over after the flags.
func (c *Config) Args() []string {
	return c.args
}

// Write saves the current settings to the config file.
func (c *Config) Write() error {
	cfgFile := c.GetString(ConfigFile)
	if cfgFile == "" {
		return errors.New("no config file set")
	}
	if err := os.MkdirAll(filepath.Dir(cfgFile), 0o755); err != nil {
		return err
	}
	return c.WriteConfigAs(cfgFile)
}
