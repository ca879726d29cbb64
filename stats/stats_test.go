package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
		min    float64
		max    float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 10, 124},
		{[]int{1}, 1, 0, 1, 1},
		{[]int{}, 0, 0, 0, 0},
		{[]int{1, 1}, 1, 0, 1, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Min(), c.min)
		is.Equal(s.Max(), c.max)
		is.Equal(s.Iterations(), len(c.scores))
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489))
}

func TestConfidenceInterval(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{10, 12, 23, 23, 16, 23, 21, 16} {
		s.Push(v)
	}
	lo, hi := s.ConfidenceInterval(95)
	is.True(lo < s.Mean())
	is.True(hi > s.Mean())
	is.True(FuzzyEqual(hi-s.Mean(), s.Mean()-lo))
	is.True(FuzzyEqual(hi-lo, 2*1.959963984540054*s.StandardError()))
}

func TestWriteHistogram(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	err := WriteHistogram(&buf, "scores", []float64{1, 2, 2, 3, 3, 3, 4, 4, 4, 4}, 4, 20)
	is.NoErr(err)
	out := buf.String()
	is.True(strings.HasPrefix(out, "scores (10 samples)\n"))
	is.True(strings.Count(out, "\n") > 4)

	buf.Reset()
	is.NoErr(WriteHistogram(&buf, "empty", nil, 4, 20))
	is.Equal(buf.String(), "empty: no data\n")
}
