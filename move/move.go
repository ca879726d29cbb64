// Package move contains the moves that can be made in a game of 2048:
// the four slide directions for the human, plus a few pseudo-moves that
// mark how a position came about.
package move

import (
	"errors"
	"strings"
)

// Move is a tag for a move. Only the four directions can actually be
// played; the rest mark positions in the game tree.
type Move uint8

const (
	// Start marks the initial position of a game.
	Start Move = iota
	Up
	Down
	Left
	Right
	// Rand marks a position created by the random tile spawn.
	Rand
	// GameOver is the "no move" value.
	GameOver
)

// Dim is the dimension of the board.
const Dim = 4

var ErrUnknownMove = errors.New("unknown move")

// Direction describes how a directional move is applied. Cells are
// visited from RowStart/ColStart up to (not including) RowEnd/ColEnd,
// so that the cells closest to the edge the tiles slide toward come first.
// DRow and DCol form the unit vector of the slide.
type Direction struct {
	RowStart, RowEnd, RowStep int
	ColStart, ColEnd, ColStep int
	DRow, DCol                int
}

var directions = [...]Direction{
	Up:    {RowStart: 0, RowEnd: Dim, RowStep: 1, ColStart: 0, ColEnd: Dim, ColStep: 1, DRow: -1, DCol: 0},
	Down:  {RowStart: Dim - 1, RowEnd: -1, RowStep: -1, ColStart: 0, ColEnd: Dim, ColStep: 1, DRow: 1, DCol: 0},
	Left:  {RowStart: 0, RowEnd: Dim, RowStep: 1, ColStart: 0, ColEnd: Dim, ColStep: 1, DRow: 0, DCol: -1},
	Right: {RowStart: 0, RowEnd: Dim, RowStep: 1, ColStart: Dim - 1, ColEnd: -1, ColStep: -1, DRow: 0, DCol: 1},
}

// Directional is the order in which human moves are generated.
var Directional = [...]Move{Up, Down, Left, Right}

// IsDirectional returns true if the move slides tiles.
func (m Move) IsDirectional() bool {
	return m >= Up && m <= Right
}

// Direction returns the traversal parameters of a directional move.
func (m Move) Direction() (Direction, bool) {
	if !m.IsDirectional() {
		return Direction{}, false
	}
	return directions[m], true
}

// Symbol is a one-character arrow for the move.
func (m Move) Symbol() string {
	switch m {
	case Up:
		return "^"
	case Down:
		return "V"
	case Left:
		return "<"
	case Right:
		return ">"
	}
	return ""
}

func (m Move) String() string {
	switch m {
	case Start:
		return "start"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Rand:
		return "rand"
	case GameOver:
		return "gameover"
	}
	return "unknown"
}

// FromString parses a directional move. It accepts the full name, the
// arrow symbol, or the usual WASD keys.
func FromString(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "^", "w":
		return Up, nil
	case "down", "v", "s":
		return Down, nil
	case "left", "<", "a":
		return Left, nil
	case "right", ">", "d":
		return Right, nil
	}
	return GameOver, ErrUnknownMove
}
