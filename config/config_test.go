package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--config-file", ""}))
	is.Equal(c.GetBool(ConfigDebug), false)
	is.Equal(c.GetInt(ConfigPerftDepth), 6)
	is.Equal(c.GetInt(ConfigAutoplayGames), 1000)
	is.True(c.GetInt(ConfigThreads) > 0)
	is.Equal(len(c.Args()), 0)
}

func TestFlagsStopAtCommand(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--config-file", "", "--threads", "3", "--debug",
		"perft", "5", "-divide", "true"}))
	is.Equal(c.GetInt(ConfigThreads), 3)
	is.True(c.GetBool(ConfigDebug))
	is.Equal(c.Args(), []string{"perft", "5", "-divide", "true"})
}

func TestEnvironment(t *testing.T) {
	is := is.New(t)
	t.Setenv("OTHELLO_PERFT_DEPTH", "4")
	t.Setenv("OTHELLO_AUTOPLAY_SEED", "99")
	c := &Config{}
	is.NoErr(c.Load([]string{"--config-file", ""}))
	is.Equal(c.GetInt(ConfigPerftDepth), 4)
	is.Equal(c.GetUint64(ConfigAutoplaySeed), uint64(99))

	c = &Config{}
	is.NoErr(c.Load([]string{"--config-file", "", "--perft-depth", "2"}))
	is.Equal(c.GetInt(ConfigPerftDepth), 2)
}

func TestConfigFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	is.NoErr(os.WriteFile(path, []byte("autoplay-games: 25\nthreads: 2\n"), 0o644))

	c := &Config{}
	is.NoErr(c.Load([]string{"--config-file", path}))
	is.Equal(c.GetInt(ConfigAutoplayGames), 25)
	is.Equal(c.GetInt(ConfigThreads), 2)

	c.Set(ConfigPerftDepth, 3)
	is.NoErr(c.Write())
	c = &Config{}
	is.NoErr(c.Load([]string{"--config-file", path}))
	is.Equal(c.GetInt(ConfigPerftDepth), 3)
	is.Equal(c.GetInt(ConfigAutoplayGames), 25)
}

func TestMissingConfigFile(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	err := c.Load([]string{"--config-file", filepath.Join(t.TempDir(), "nope.yaml")})
	is.True(err != nil)
}
