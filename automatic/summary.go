package automatic

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/twentyfortyeight/stats"
)

const (
	histogramBins  = 12
	histogramWidth = 40
)

// Summary aggregates the results of many games.
type Summary struct {
	Games        int         `yaml:"games"`
	Wins         int         `yaml:"wins"`
	WinRate      float64     `yaml:"win-rate"`
	MeanScore    float64     `yaml:"mean-score"`
	ScoreStdev   float64     `yaml:"score-stdev"`
	ScoreCI95    [2]float64  `yaml:"score-ci95,flow"`
	MinScore     float64     `yaml:"min-score"`
	MaxScore     float64     `yaml:"max-score"`
	MeanTurns    float64     `yaml:"mean-turns"`
	LargestTiles map[int]int `yaml:"largest-tiles"`
	TotalTime    string      `yaml:"total-time,omitempty"`

	scores   []float64
	largests []float64
}

// Summarize computes the summary of a set of games.
func Summarize(results []GameResult) *Summary {
	s := &Summary{Games: len(results), LargestTiles: map[int]int{}}
	if len(results) == 0 {
		return s
	}
	scoreStat := &stats.Statistic{}
	for _, r := range results {
		scoreStat.Push(float64(r.Score))
		s.LargestTiles[r.LargestTile]++
	}
	s.Wins = lo.CountBy(results, func(r GameResult) bool { return r.Won })
	s.WinRate = float64(s.Wins) / float64(s.Games)
	s.MeanScore = scoreStat.Mean()
	s.ScoreStdev = scoreStat.Stdev()
	lo95, hi95 := scoreStat.ConfidenceInterval(95)
	s.ScoreCI95 = [2]float64{lo95, hi95}
	s.MinScore = scoreStat.Min()
	s.MaxScore = scoreStat.Max()
	s.MeanTurns = float64(lo.SumBy(results, func(r GameResult) int { return r.Turns })) / float64(s.Games)
	if elapsed := lo.SumBy(results, func(r GameResult) time.Duration { return r.Elapsed }); elapsed > 0 {
		s.TotalTime = elapsed.Round(time.Millisecond).String()
	}
	s.scores = lo.Map(results, func(r GameResult, _ int) float64 { return float64(r.Score) })
	s.largests = lo.Map(results, func(r GameResult, _ int) float64 { return float64(r.LargestTile) })
	return s
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	if s.Games == 0 {
		return sb.String()
	}
	fmt.Fprintf(&sb, "Wins: %d (%.3f%%)\n", s.Wins, 100*s.WinRate)
	fmt.Fprintf(&sb, "Mean score: %.3f  Stdev: %.3f  95%% CI: [%.3f, %.3f]\n",
		s.MeanScore, s.ScoreStdev, s.ScoreCI95[0], s.ScoreCI95[1])
	fmt.Fprintf(&sb, "Score range: %.0f - %.0f\n", s.MinScore, s.MaxScore)
	fmt.Fprintf(&sb, "Mean turns: %.1f\n", s.MeanTurns)
	tiles := lo.Keys(s.LargestTiles)
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))
	for _, t := range tiles {
		fmt.Fprintf(&sb, "  largest tile %5d: %d\n", t, s.LargestTiles[t])
	}
	return sb.String()
}

// WriteHistograms draws the distribution of final scores and of the
// largest tile reached.
func (s *Summary) WriteHistograms(w io.Writer) error {
	if err := stats.WriteHistogram(w, "Final score", s.scores, histogramBins, histogramWidth); err != nil {
		return err
	}
	return stats.WriteHistogram(w, "Largest tile", s.largests, histogramBins, histogramWidth)
}

func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// SaveYAML writes the summary to path.
func (s *Summary) SaveYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
