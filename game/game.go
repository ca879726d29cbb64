// Package game holds the 2048 game tree: positions, whose turn it is, how
// they follow from one another, and how good they look.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/twentyfortyeight/board"
	"github.com/domino14/twentyfortyeight/move"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is over")
	ErrNotRandomTurn = errors.New("not the random player's turn")
)

// NewGame returns the starting position: two tiles in distinct random
// cells, each a 2 or a 4 with equal probability, human to move.
func NewGame(src RandSource) *Node {
	var b board.Board
	first := src.Intn(board.NumCells)
	second := src.Intn(board.NumCells - 1)
	if second >= first {
		second++
	}
	for _, cell := range []int{first, second} {
		b.SetExponent(cell/board.Dim, cell%board.Dim, uint8(1+src.Intn(2)))
	}
	log.Debug().Uint64("board", uint64(b)).Msg("new-game")
	return NewNode(b, Human, 0)
}

// ApplyHumanMove returns the position after the human plays m from n.
func ApplyHumanMove(n *Node, m move.Move) (*Node, error) {
	if n.player != Human {
		return nil, fmt.Errorf("%w: %s: random player to move", ErrIllegalMove, m)
	}
	if n.IsGameOver() {
		return nil, ErrGameOver
	}
	child, ok := lo.Find(n.Successors(), func(c *Node) bool { return c.move == m })
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	return child, nil
}

// ApplyRandomTurn spawns a tile on a random empty cell of n.
func ApplyRandomTurn(n *Node, src RandSource) (*Node, error) {
	if n.player != Random {
		return nil, ErrNotRandomTurn
	}
	return n.RandomSuccessor(src)
}
