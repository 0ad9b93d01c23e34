package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Version   uint64
	Direction string // last gesture direction
	Moves     int
	Board     [Size][Size]int    // values, [row][col]
	IDs       [Size][Size]TileID // tile identities, 0 = empty
	Empty     int
	MaxTile   int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	grid := g.engine.Grid()
	m := g.engine.BlockMatrix()

	var ids [Size][Size]TileID
	for row := range Size {
		for col := range Size {
			ids[row][col] = m[row][col].ID
		}
	}

	return Snapshot{
		Tick:      g.tick,
		Version:   g.engine.Version(),
		Direction: g.engine.LastGestureDirection().String(),
		Moves:     g.moves,
		Board:     grid.Values(),
		IDs:       ids,
		Empty:     len(grid.EmptyCells()),
		MaxTile:   grid.MaxValue(),
		State:     state,
	}
}
