package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	is.Equal(c.GetInt(ConfigAIDeadline), 100)
	is.Equal(c.GetInt(ConfigMinSearchDepth), 2)
	is.Equal(c.GetInt(ConfigMaxSearchDepth), 0)
	is.Equal(c.GetBool(ConfigAutomate), false)
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	c, err := Load([]string{"--ai-deadline-ms", "250", "--automate", "--seed=42", "--search-threads", "3"})
	is.NoErr(err)
	is.Equal(c.GetInt(ConfigAIDeadline), 250)
	is.True(c.GetBool(ConfigAutomate))
	is.Equal(c.GetUint64(ConfigSeed), uint64(42))
	is.Equal(c.GetInt(ConfigSearchThreads), 3)
	// untouched flags keep their defaults.
	is.Equal(c.GetInt(ConfigRetainPlies), 2)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("TFE_AI_DEADLINE_MS", "75")
	c, err := Load(nil)
	is.NoErr(err)
	is.Equal(c.GetInt(ConfigAIDeadline), 75)

	// flags beat the environment.
	c, err = Load([]string{"--ai-deadline-ms=20"})
	is.NoErr(err)
	is.Equal(c.GetInt(ConfigAIDeadline), 20)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	_, err := Load([]string{"--no-such-flag"})
	is.True(err != nil)
}
