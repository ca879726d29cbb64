package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/domino14/twentyfortyeight/board"
	"github.com/domino14/twentyfortyeight/move"
)

// probability that a spawned tile is a 2 rather than a 4.
const spawnTwoProbability = 0.9

// Node is a position in the game tree: the board, whose turn it is, the
// score so far, and the move that produced it. Successors are generated on
// first request and cached until ClearSuccessors is called.
type Node struct {
	move   move.Move
	board  board.Board
	player Player
	score  uint32

	mu         sync.Mutex
	successors []*Node
	expanded   bool
}

// NewNode builds a node directly. Mostly useful for tests and for loading
// positions typed in by a user.
func NewNode(b board.Board, p Player, score uint32) *Node {
	return &Node{move: move.Start, board: b, player: p, score: score}
}

func (n *Node) Move() move.Move    { return n.move }
func (n *Node) Board() board.Board { return n.board }
func (n *Node) Player() Player     { return n.player }
func (n *Node) Score() uint32      { return n.score }
func (n *Node) String() string     { return n.ToDisplayText() }

// HasWon reports whether the board holds a 2048 tile.
func (n *Node) HasWon() bool {
	return n.board.HasWinningTile()
}

// IsGameOver reports whether the player to move has nothing to do, either
// because the board is stuck or because it has been won. It agrees with
// len(n.Successors()) == 0 but does not expand the node.
func (n *Node) IsGameOver() bool {
	n.mu.Lock()
	expanded, nsucc := n.expanded, len(n.successors)
	n.mu.Unlock()
	if expanded {
		return nsucc == 0
	}
	b := n.board
	if b.HasWinningTile() {
		return true
	}
	if n.player == Random {
		return b.NumEmptySpaces() == 0
	}
	for _, m := range move.Directional {
		if b.CanMove(m) {
			return false
		}
	}
	return true
}

// LargestTile is the value of the biggest tile, or 1 on an empty board.
func (n *Node) LargestTile() int {
	return 1 << n.board.LargestExponent()
}

// Successors returns the children of this node, generating them on the
// first call. A board holding a 2048 tile has none.
//
// For the random player, children are ordered by empty cell (row-major),
// a 2 before a 4 in each cell. RandomSuccessor depends on this order.
// For the human player, children follow Up, Down, Left, Right, skipping
// moves that change nothing.
func (n *Node) Successors() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.expanded {
		return n.successors
	}
	n.expanded = true
	if n.board.HasWinningTile() {
		return nil
	}
	if n.player == Random {
		empty := n.board.EmptyCells()
		n.successors = make([]*Node, 0, 2*len(empty))
		for _, rc := range empty {
			for e := uint8(1); e <= 2; e++ {
				b := n.board
				b.SetExponent(rc[0], rc[1], e)
				n.successors = append(n.successors, &Node{
					move: move.Rand, board: b, player: Human, score: n.score})
			}
		}
		return n.successors
	}
	n.successors = make([]*Node, 0, len(move.Directional))
	for _, m := range move.Directional {
		b := n.board
		delta, ok := b.ApplyMove(m)
		if !ok {
			continue
		}
		n.successors = append(n.successors, &Node{
			move: m, board: b, player: Random, score: n.score + uint32(delta)})
	}
	return n.successors
}

// ClearSuccessors drops the cached children. They are regenerated on the
// next call to Successors.
func (n *Node) ClearSuccessors() {
	n.mu.Lock()
	n.successors = nil
	n.expanded = false
	n.mu.Unlock()
}

// Expanded reports whether the successors are currently cached.
func (n *Node) Expanded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.expanded
}

// LegalMoves lists the directional moves available to the human.
func (n *Node) LegalMoves() []move.Move {
	if n.player != Human {
		return nil
	}
	return lo.Map(n.Successors(), func(c *Node, _ int) move.Move { return c.move })
}

// RandomSuccessor samples the random player's choice: a uniformly chosen
// empty cell, holding a 2 with probability 0.9 and a 4 otherwise.
func (n *Node) RandomSuccessor(src RandSource) (*Node, error) {
	if n.player != Random {
		return nil, ErrNotRandomTurn
	}
	succ := n.Successors()
	if len(succ) == 0 {
		return nil, ErrGameOver
	}
	cell := src.Intn(len(succ) / 2)
	idx := 2 * cell
	if src.Float64() >= spawnTwoProbability {
		idx++
	}
	return succ[idx], nil
}

// ToDisplayText renders the score, the producing move and the grid.
func (n *Node) ToDisplayText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d", n.score)
	if n.move.IsDirectional() {
		fmt.Fprintf(&sb, "  (last move: %s)", n.move.Symbol())
	}
	sb.WriteString("\n")
	sb.WriteString(n.board.ToDisplayText())
	switch {
	case n.HasWon():
		sb.WriteString("You won!\n")
	case n.IsGameOver():
		sb.WriteString("Game over.\n")
	}
	return sb.String()
}
