package game

// Heuristic weights. metricCeiling sits above the largest smoothness or
// monotonicity reachable on a playable board, so both penalties stay
// positive.
const (
	metricCeiling    = 240
	smoothnessWeight = 10
	monotonicWeight  = 100
	emptyWeight      = 270
	largestWeight    = 100
)

// Heuristic scores the position for the human player; larger is better.
// A lost position is worth 0. A won position is worth more than any
// position that has not been won, and more the higher its score.
func (n *Node) Heuristic() int64 {
	b := n.board
	if n.IsGameOver() {
		if b.HasWinningTile() {
			return (int64(n.score) + 1) << 32
		}
		return 0
	}
	return int64(metricCeiling-b.Smoothness())*smoothnessWeight +
		int64(metricCeiling-b.Monotonicity())*monotonicWeight +
		int64(b.NumEmptySpaces())*emptyWeight +
		int64(b.LargestExponent())*largestWeight
}
