// Package config loads settings from flags, TFE_* environment variables
// and an optional config.yaml, in that order of precedence.
package config

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigAIDeadline             = "ai-deadline-ms"
	ConfigAutomate               = "automate"
	ConfigSeed                   = "seed"
	ConfigSearchThreads          = "search-threads"
	ConfigMinSearchDepth         = "min-search-depth"
	ConfigMaxSearchDepth         = "max-search-depth"
	ConfigRetainPlies            = "retain-plies"
	ConfigEvalTableFraction      = "eval-table-memory-fraction"
	ConfigAutoplayGames          = "autoplay-games"
	ConfigAutoplayThreads        = "autoplay-threads"
	ConfigAutoplayOutput         = "autoplay-output"
	ConfigAutoplaySummary        = "autoplay-summary"
	ConfigDebug                  = "debug"
	ConfigShellHistoryFile       = "shell-history-file"
	ConfigAutoplayProgressEveryN = "autoplay-progress-every"
)

type Config struct {
	*viper.Viper
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigAIDeadline, 100)
	c.SetDefault(ConfigAutomate, false)
	c.SetDefault(ConfigSeed, 0)
	c.SetDefault(ConfigSearchThreads, 1)
	c.SetDefault(ConfigMinSearchDepth, 2)
	c.SetDefault(ConfigMaxSearchDepth, 0)
	c.SetDefault(ConfigRetainPlies, 2)
	c.SetDefault(ConfigEvalTableFraction, 0.05)
	c.SetDefault(ConfigAutoplayGames, 10)
	c.SetDefault(ConfigAutoplayThreads, 1)
	c.SetDefault(ConfigAutoplayOutput, "/tmp/autoplay.txt")
	c.SetDefault(ConfigAutoplaySummary, "")
	c.SetDefault(ConfigAutoplayProgressEveryN, 10)
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigShellHistoryFile, "/tmp/twentyfortyeight.history")
}

func newConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

// DefaultConfig returns a config holding only the defaults. It does not
// look at the environment or the file system.
func DefaultConfig() *Config {
	return newConfig()
}

// Load parses args (without the program name) into a new Config.
func Load(args []string) (*Config, error) {
	c := newConfig()
	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	c.SetEnvPrefix("tfe")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Debug().Msg("no config file found; using defaults and flags")
	}

	fs := pflag.NewFlagSet("twentyfortyeight", pflag.ContinueOnError)
	fs.Int(ConfigAIDeadline, c.GetInt(ConfigAIDeadline), "time the computer gets to think about each move, in milliseconds")
	fs.Bool(ConfigAutomate, c.GetBool(ConfigAutomate), "let the computer play the human's moves")
	fs.Uint64(ConfigSeed, c.GetUint64(ConfigSeed), "random seed; 0 picks one at random")
	fs.Int(ConfigSearchThreads, c.GetInt(ConfigSearchThreads), "goroutines used to search the first move")
	fs.Int(ConfigMinSearchDepth, c.GetInt(ConfigMinSearchDepth), "depth that is always searched, whatever the deadline")
	fs.Int(ConfigMaxSearchDepth, c.GetInt(ConfigMaxSearchDepth), "deepest search; 0 for no limit")
	fs.Int(ConfigRetainPlies, c.GetInt(ConfigRetainPlies), "levels of the game tree kept cached between searches")
	fs.Float64(ConfigEvalTableFraction, c.GetFloat64(ConfigEvalTableFraction), "fraction of system memory for the evaluation table; 0 for the smallest table")
	fs.Int(ConfigAutoplayGames, c.GetInt(ConfigAutoplayGames), "number of games to autoplay")
	fs.Int(ConfigAutoplayThreads, c.GetInt(ConfigAutoplayThreads), "games played at once")
	fs.String(ConfigAutoplayOutput, c.GetString(ConfigAutoplayOutput), "file for the per-turn autoplay log")
	fs.String(ConfigAutoplaySummary, c.GetString(ConfigAutoplaySummary), "file for the YAML autoplay summary; empty to skip")
	fs.Int(ConfigAutoplayProgressEveryN, c.GetInt(ConfigAutoplayProgressEveryN), "log progress every this many games")
	fs.Bool(ConfigDebug, c.GetBool(ConfigDebug), "debug logging on")
	fs.String(ConfigShellHistoryFile, c.GetString(ConfigShellHistoryFile), "readline history file for the shell")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}
	return c, nil
}
