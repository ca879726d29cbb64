package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/twentyfortyeight/board"
)

const bignum = 1<<63 - 2

// Zobrist hashes a 2048 position: the exponent in each cell plus the side
// to move.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	randomToMove uint64
	posTable     [board.NumCells][board.MaxExponent + 1]uint64
}

func (z *Zobrist) Initialize() {
	for i := range z.posTable {
		// exponent 0 is an empty cell and never contributes.
		for e := 1; e <= board.MaxExponent; e++ {
			z.posTable[i][e] = frand.Uint64n(bignum) + 1
		}
	}
	z.randomToMove = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) Hash(b board.Board, randomToMove bool) uint64 {
	key := uint64(0)
	for i := 0; i < board.NumCells; i++ {
		key ^= z.posTable[i][b.Exponent(i/board.Dim, i%board.Dim)]
	}
	if randomToMove {
		key ^= z.randomToMove
	}
	return key
}
