// Package board implements the 4x4 grid of a 2048 game, packed into a
// single 64-bit word.
package board

import (
	"github.com/domino14/twentyfortyeight/move"
)

const (
	Dim = move.Dim
	// NumCells is the number of cells on the board.
	NumCells = Dim * Dim
	// WinningExponent is the exponent of the 2048 tile.
	WinningExponent = 11
	// MaxExponent is the largest exponent a nibble can hold.
	MaxExponent = 15
)

// Board is a 4x4 grid of tile exponents. Each cell takes four bits; the
// cell at (row, col) lives at bits [(row*4+col)*4, (row*4+col)*4+4).
// An exponent of 0 is an empty cell, otherwise the tile is worth 2^e.
//
// Board is a plain value. Copy it by assignment.
type Board uint64

func shift(row, col int) uint {
	return uint((row*Dim + col) * 4)
}

// Exponent returns the exponent at the given cell.
func (b Board) Exponent(row, col int) uint8 {
	return uint8((b >> shift(row, col)) & 0xF)
}

// SetExponent sets the exponent at the given cell. Zero empties the cell.
func (b *Board) SetExponent(row, col int, e uint8) {
	s := shift(row, col)
	*b = (*b &^ (Board(0xF) << s)) | (Board(e&0xF) << s)
}

// ValueAt returns the tile value at the given cell, or 0 if it is empty.
func (b Board) ValueAt(row, col int) int {
	e := b.Exponent(row, col)
	if e == 0 {
		return 0
	}
	return 1 << e
}

// ApplyMove slides every tile toward the direction of m, merging equal
// tiles. It returns the sum of the values of the tiles created by merges,
// and false if nothing moved (in which case the board is unchanged).
// Non-directional moves never move anything.
func (b *Board) ApplyMove(m move.Move) (int, bool) {
	d, ok := m.Direction()
	if !ok {
		return 0, false
	}
	var merged [Dim][Dim]bool
	score := 0
	moved := false
	for row := d.RowStart; row != d.RowEnd; row += d.RowStep {
		for col := d.ColStart; col != d.ColEnd; col += d.ColStep {
			e := b.Exponent(row, col)
			if e == 0 {
				continue
			}
			r, c := b.finalLocation(&merged, row, col, e, d.DRow, d.DCol)
			if r == row && c == col {
				continue
			}
			if target := b.Exponent(r, c); target != 0 {
				b.SetExponent(r, c, target+1)
				merged[r][c] = true
				score += 1 << (target + 1)
			} else {
				b.SetExponent(r, c, e)
			}
			b.SetExponent(row, col, 0)
			moved = true
		}
	}
	return score, moved
}

// finalLocation walks from (row, col) toward (dr, dc) and returns where
// a tile with exponent e comes to rest: on an unmerged tile of the same
// exponent, one short of any other tile, or at the edge. Tiles at
// MaxExponent do not merge; the result would not fit in a cell.
func (b Board) finalLocation(merged *[Dim][Dim]bool, row, col int, e uint8,
	dr, dc int) (int, int) {

	r, c := row, col
	for {
		nr, nc := r+dr, c+dc
		if nr < 0 || nr >= Dim || nc < 0 || nc >= Dim {
			return r, c
		}
		v := b.Exponent(nr, nc)
		if v == e && e < MaxExponent && !merged[nr][nc] {
			return nr, nc
		}
		if v != 0 {
			return r, c
		}
		r, c = nr, nc
	}
}

// CanMove returns true if the move would change the board.
func (b Board) CanMove(m move.Move) bool {
	_, ok := b.ApplyMove(m)
	return ok
}

// NumFilled returns the number of tiles on the board.
func (b Board) NumFilled() int {
	n := 0
	for i := 0; i < NumCells; i++ {
		if (b>>(uint(i)*4))&0xF != 0 {
			n++
		}
	}
	return n
}

// NumEmptySpaces returns the number of empty cells.
func (b Board) NumEmptySpaces() int {
	return NumCells - b.NumFilled()
}

// LargestExponent returns the largest exponent on the board, or 0 for an
// empty board.
func (b Board) LargestExponent() uint8 {
	var largest uint8
	for i := 0; i < NumCells; i++ {
		if e := uint8((b >> (uint(i) * 4)) & 0xF); e > largest {
			largest = e
		}
	}
	return largest
}

// HasWinningTile returns true if a 2048 tile (or larger) is on the board.
func (b Board) HasWinningTile() bool {
	return b.LargestExponent() >= WinningExponent
}

// Smoothness sums, for every tile, the exponent difference to the nearest
// tile to its right and the nearest tile below it. Lower is smoother.
func (b Board) Smoothness() int {
	total := 0
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			e := int(b.Exponent(row, col))
			if e == 0 {
				continue
			}
			for c := col + 1; c < Dim; c++ {
				if n := int(b.Exponent(row, c)); n != 0 {
					total += abs(e - n)
					break
				}
			}
			for r := row + 1; r < Dim; r++ {
				if n := int(b.Exponent(r, col)); n != 0 {
					total += abs(e - n)
					break
				}
			}
		}
	}
	return total
}

// Monotonicity measures how far the rows and columns are from being
// monotone. For each axis it accumulates the increasing and the
// decreasing steps between consecutive tiles (ignoring empty cells) and
// keeps the smaller of the two totals. Lower is more monotone.
func (b Board) Monotonicity() int {
	var rowInc, rowDec, colInc, colDec int
	for i := 0; i < Dim; i++ {
		prevRow, prevCol := -1, -1
		for j := 0; j < Dim; j++ {
			if e := int(b.Exponent(i, j)); e != 0 {
				if prevRow >= 0 {
					if prevRow > e {
						rowDec += prevRow - e
					} else {
						rowInc += e - prevRow
					}
				}
				prevRow = e
			}
			if e := int(b.Exponent(j, i)); e != 0 {
				if prevCol >= 0 {
					if prevCol > e {
						colDec += prevCol - e
					} else {
						colInc += e - prevCol
					}
				}
				prevCol = e
			}
		}
	}
	return min(rowInc, rowDec) + min(colInc, colDec)
}

// EmptyCells returns the (row, col) of every empty cell, in row-major order.
func (b Board) EmptyCells() [][2]int {
	cells := make([][2]int, 0, NumCells)
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			if b.Exponent(row, col) == 0 {
				cells = append(cells, [2]int{row, col})
			}
		}
	}
	return cells
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
