package t2048

// spawnCount is the number of tiles placed per spawn step.
const spawnCount = 2

// spawnTiles places two value-2 tiles in distinct random empty cells.
// With fewer than two empty cells nothing is placed.
func (e *Engine) spawnTiles() []Spawn {
	empty := e.grid.EmptyCells()
	if len(empty) < spawnCount {
		return nil
	}

	spawned := make([]Spawn, 0, spawnCount)

	i := e.rng.Intn(len(empty))
	spawned = append(spawned, e.place(empty[i]))

	// Swap-remove the used cell; order of the rest does not matter.
	empty[i] = empty[len(empty)-1]
	empty = empty[:len(empty)-1]

	j := e.rng.Intn(len(empty))
	spawned = append(spawned, e.place(empty[j]))

	return spawned
}

func (e *Engine) place(c Coord) Spawn {
	t := e.newTile()
	e.grid.Set(c.Col, c.Row, t)
	return Spawn{At: c, Tile: *t}
}
