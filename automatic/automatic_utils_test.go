package automatic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/twentyfortyeight/config"
)

func TestPlayGames(t *testing.T) {
	is := is.New(t)
	cfg := shallowConfig()
	cfg.Set(config.ConfigSeed, 100)
	out := filepath.Join(t.TempDir(), "autoplay.txt")

	summary, err := PlayGames(context.Background(), cfg, 4, 2, out)
	is.NoErr(err)
	is.Equal(summary.Games, 4)
	is.True(summary.MeanScore > 0)
	is.True(summary.MinScore <= summary.MeanScore)
	is.True(summary.MaxScore >= summary.MeanScore)
	is.Equal(IsPlaying.Value(), int64(0))
	is.Equal(GamesPlayed.Value(), int64(4))

	contents, err := os.ReadFile(out)
	is.NoErr(err)
	is.True(strings.HasPrefix(string(contents), turnLogHeader))

	seeds, err := LoadSeeds(out + ".seeds")
	is.NoErr(err)
	is.Equal(len(seeds), 4)

	// the log alone is enough to rebuild the summary.
	analyzed, err := AnalyzeLogFile(out)
	is.NoErr(err)
	is.Equal(analyzed.Games, summary.Games)
	is.Equal(analyzed.Wins, summary.Wins)
	assert.InDelta(t, summary.MeanScore, analyzed.MeanScore, 1e-9)
	assert.Equal(t, summary.LargestTiles, analyzed.LargestTiles)
}

func TestPlayGamesSameSeedsSameScores(t *testing.T) {
	is := is.New(t)
	cfg := shallowConfig()
	cfg.Set(config.ConfigSeed, 55)
	dir := t.TempDir()
	a, err := PlayGames(context.Background(), cfg, 3, 3, filepath.Join(dir, "a.txt"))
	is.NoErr(err)
	b, err := PlayGames(context.Background(), cfg, 3, 1, filepath.Join(dir, "b.txt"))
	is.NoErr(err)
	assert.ElementsMatch(t, a.scores, b.scores)
}

func TestSummary(t *testing.T) {
	results := []GameResult{
		{GameID: 1, Score: 1000, LargestTile: 128, Turns: 100},
		{GameID: 2, Score: 3000, LargestTile: 256, Turns: 200},
		{GameID: 3, Score: 30000, LargestTile: 2048, Turns: 900, Won: true},
	}
	s := Summarize(results)
	assert.Equal(t, 3, s.Games)
	assert.Equal(t, 1, s.Wins)
	assert.InDelta(t, 1.0/3, s.WinRate, 1e-9)
	assert.InDelta(t, 34000.0/3, s.MeanScore, 1e-9)
	assert.Equal(t, 1000.0, s.MinScore)
	assert.Equal(t, 30000.0, s.MaxScore)
	assert.InDelta(t, 400.0, s.MeanTurns, 1e-9)
	assert.Equal(t, map[int]int{128: 1, 256: 1, 2048: 1}, s.LargestTiles)
	assert.Less(t, s.ScoreCI95[0], s.MeanScore)
	assert.Greater(t, s.ScoreCI95[1], s.MeanScore)

	text := s.String()
	assert.Contains(t, text, "Games played: 3\n")
	assert.Contains(t, text, "largest tile  2048: 1\n")

	var buf bytes.Buffer
	assert.NoError(t, s.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "games: 3\n")
	assert.Contains(t, buf.String(), "wins: 1\n")

	buf.Reset()
	assert.NoError(t, s.WriteHistograms(&buf))
	assert.Contains(t, buf.String(), "Final score (3 samples)")
	assert.Contains(t, buf.String(), "Largest tile (3 samples)")
}

func TestEmptySummary(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, "Games played: 0\n", s.String())
}
