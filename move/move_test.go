package move

import (
	"testing"

	"github.com/matryer/is"
)

func TestDirections(t *testing.T) {
	is := is.New(t)
	for _, m := range Directional {
		d, ok := m.Direction()
		is.True(ok)
		// unit vector
		is.Equal(abs(d.DRow)+abs(d.DCol), 1)
		// the first cell visited must be on the edge the tiles slide toward.
		if d.DRow < 0 {
			is.Equal(d.RowStart, 0)
		}
		if d.DRow > 0 {
			is.Equal(d.RowStart, Dim-1)
		}
		if d.DCol < 0 {
			is.Equal(d.ColStart, 0)
		}
		if d.DCol > 0 {
			is.Equal(d.ColStart, Dim-1)
		}
	}
	for _, m := range []Move{Start, Rand, GameOver} {
		_, ok := m.Direction()
		is.True(!ok)
		is.True(!m.IsDirectional())
	}
}

func TestFromString(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		in  string
		out Move
		err error
	}{
		{"up", Up, nil},
		{"W", Up, nil},
		{" down ", Down, nil},
		{"<", Left, nil},
		{"right", Right, nil},
		{"d", Right, nil},
		{"s", Down, nil},
		{"sideways", GameOver, ErrUnknownMove},
		{"", GameOver, ErrUnknownMove},
	}
	for _, c := range cases {
		m, err := FromString(c.in)
		is.Equal(m, c.out)
		is.Equal(err, c.err)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
