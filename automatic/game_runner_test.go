package automatic

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/twentyfortyeight/config"
	"github.com/domino14/twentyfortyeight/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// shallowConfig makes games fast and deterministic: depth-bounded search
// with a deadline that is never reached.
func shallowConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigMinSearchDepth, 1)
	cfg.Set(config.ConfigMaxSearchDepth, 1)
	cfg.Set(config.ConfigAIDeadline, 60000)
	cfg.Set(config.ConfigEvalTableFraction, 0)
	return cfg
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 10000)
	r := NewGameRunner(logchan, shallowConfig(), nil)
	r.Init(game.SeedBytes(1))
	res, err := r.PlayGame(context.Background(), 7)
	is.NoErr(err)
	close(logchan)

	is.Equal(res.GameID, 7)
	is.True(res.Turns > 10)
	is.True(res.Score > 0)
	is.True(res.LargestTile >= 16)
	is.Equal(res.Won, res.LargestTile >= 2048)

	lines := 0
	var last string
	for msg := range logchan {
		lines++
		last = msg
	}
	is.Equal(lines, res.Turns)
	is.True(strings.HasPrefix(last, "7,"))
}

func TestPlayGameDeterministic(t *testing.T) {
	is := is.New(t)
	cfg := shallowConfig()
	a := NewGameRunner(nil, cfg, nil)
	b := NewGameRunner(nil, cfg, nil)
	a.Init(game.SeedBytes(3))
	b.Init(game.SeedBytes(3))
	ra, err := a.PlayGame(context.Background(), 1)
	is.NoErr(err)
	rb, err := b.PlayGame(context.Background(), 1)
	is.NoErr(err)
	is.Equal(ra.Score, rb.Score)
	is.Equal(ra.Turns, rb.Turns)
	is.Equal(ra.LargestTile, rb.LargestTile)
}

func TestPlayGameCancelled(t *testing.T) {
	is := is.New(t)
	r := NewGameRunner(nil, shallowConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.PlayGame(ctx, 1)
	is.True(errors.Is(err, context.Canceled))
}
