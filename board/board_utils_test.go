package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayText(t *testing.T) {
	b, err := FromValues([Dim][Dim]int{
		{2, 0, 16, 2048},
		{0, 128, 0, 0},
		{0, 0, 0, 0},
		{4, 0, 0, 8},
	})
	assert.NoError(t, err)
	expected := "" +
		"+----+----+----+----+\n" +
		"|  2 |    | 16 |2048|\n" +
		"+----+----+----+----+\n" +
		"|    | 128|    |    |\n" +
		"+----+----+----+----+\n" +
		"|    |    |    |    |\n" +
		"+----+----+----+----+\n" +
		"|  4 |    |    |  8 |\n" +
		"+----+----+----+----+\n"
	assert.Equal(t, expected, b.ToDisplayText())
}

func TestDisplayRoundTrip(t *testing.T) {
	rng := testRNG()
	for i := 0; i < 1000; i++ {
		// everything up to 2048 can show up in play.
		b := randomBoard(rng, WinningExponent)
		parsed, err := ParseDisplayText(b.ToDisplayText())
		assert.NoError(t, err)
		assert.Equal(t, b, parsed)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := ParseDisplayText("|  2 |  4 |\n")
	assert.True(t, errors.Is(err, ErrBadGrid))

	_, err = ParseDisplayText(`
|  3 |    |    |    |
|    |    |    |    |
|    |    |    |    |
|    |    |    |    |
`)
	assert.True(t, errors.Is(err, ErrBadTile))

	_, err = ParseDisplayText(`
|  2 |    |    |    |
|    |    |    |    |
|    |    |    |    |
`)
	assert.True(t, errors.Is(err, ErrBadGrid))

	_, err = FromValues([Dim][Dim]int{{65536}})
	assert.True(t, errors.Is(err, ErrBadTile))
	_, err = FromValues([Dim][Dim]int{{1}})
	assert.True(t, errors.Is(err, ErrBadTile))
}
