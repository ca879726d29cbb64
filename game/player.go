package game

// Player is the side whose turn it is.
type Player uint8

const (
	// Human slides the tiles.
	Human Player = iota
	// Random spawns a new tile.
	Random
)

func (p Player) String() string {
	if p == Human {
		return "human"
	}
	return "random"
}
