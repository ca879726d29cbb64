package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

var (
	ErrBadTile = errors.New("tile value must be a power of two between 2 and 32768")
	ErrBadGrid = errors.New("grid must have 4 rows of 4 cells")
)

const cellWidth = 4

// ToDisplayText renders the board as a bordered grid, one row of cells
// per line:
//
//	+----+----+----+----+
//	|  2 |    | 16 |2048|
//	+----+----+----+----+
func (b Board) ToDisplayText() string {
	var sb strings.Builder
	sep := strings.Repeat("+"+strings.Repeat("-", cellWidth), Dim) + "+\n"
	for row := 0; row < Dim; row++ {
		sb.WriteString(sep)
		for col := 0; col < Dim; col++ {
			sb.WriteString("|")
			v := ""
			if val := b.ValueAt(row, col); val > 0 {
				v = strconv.Itoa(val)
			}
			sb.WriteString(centered(v))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(sep)
	return sb.String()
}

func (b Board) String() string {
	return b.ToDisplayText()
}

// centered pads v to the cell width, leaning left when the padding is odd.
// Values wider than a cell are written as they are.
func centered(v string) string {
	pad := cellWidth - len(v)
	if pad <= 0 {
		return v
	}
	right := pad / 2
	left := pad - right
	return strings.Repeat(" ", left) + v + strings.Repeat(" ", right)
}

// ParseDisplayText parses a grid in the format written by ToDisplayText.
// Border lines are ignored; every line starting with '|' is a row.
func ParseDisplayText(text string) (Board, error) {
	var rows [][Dim]int
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		fields := strings.Split(strings.Trim(line, "|"), "|")
		if len(fields) != Dim {
			return 0, fmt.Errorf("%w: row %d has %d cells", ErrBadGrid, len(rows)+1, len(fields))
		}
		var row [Dim]int
		for i, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			v, err := strconv.Atoi(f)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrBadTile, f)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if len(rows) != Dim {
		return 0, fmt.Errorf("%w: found %d rows", ErrBadGrid, len(rows))
	}
	var values [Dim][Dim]int
	copy(values[:], rows)
	return FromValues(values)
}

// FromValues builds a board from tile values, 0 being an empty cell.
func FromValues(values [Dim][Dim]int) (Board, error) {
	var b Board
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			e, err := exponentOf(values[row][col])
			if err != nil {
				return 0, fmt.Errorf("cell (%d, %d): %w", row, col, err)
			}
			b.SetExponent(row, col, e)
		}
	}
	return b, nil
}

// Values returns the tile values of the board.
func (b Board) Values() [Dim][Dim]int {
	var values [Dim][Dim]int
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			values[row][col] = b.ValueAt(row, col)
		}
	}
	return values
}

func exponentOf(v int) (uint8, error) {
	if v == 0 {
		return 0, nil
	}
	if v < 2 || v&(v-1) != 0 {
		return 0, ErrBadTile
	}
	e := bits.TrailingZeros(uint(v))
	if e > MaxExponent {
		return 0, ErrBadTile
	}
	return uint8(e), nil
}
