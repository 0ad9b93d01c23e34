package t2048

// Rand is the random source used for tile placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// TileMove records a tile's travel during a move.
type TileMove struct {
	ID     TileID // tile that moved
	Into   TileID // tile it became (equal to ID unless merged)
	From   Coord
	To     Coord
	Merged bool
}

// Spawn records a tile created by the spawn step.
type Spawn struct {
	At   Coord
	Tile Tile
}

// MoveResult describes the outcome of a single Move call.
type MoveResult struct {
	Direction Direction
	Changed   bool
	Merges    int
	Moves     []TileMove
	Spawned   []Spawn
}

// EventKind tells observers which call changed the state.
type EventKind int

const (
	EventNewGame EventKind = iota
	EventMove
)

// Event is delivered to observers after each mutating call.
// Observers re-read the engine for the new board.
type Event struct {
	Kind    EventKind
	Version uint64
	Move    MoveResult // zero for EventNewGame except Spawned
}

// Observer receives change notifications synchronously.
type Observer func(Event)

// Engine owns the board and applies moves and spawns.
// It is not safe for concurrent use.
type Engine struct {
	grid      *Grid
	lastDir   Direction
	nextID    TileID
	rng       Rand
	version   uint64
	observers map[int]Observer
	order     []int
	nextObs   int
}

// NewEngine creates an engine and starts the first game.
func NewEngine(rng Rand) *Engine {
	e := &Engine{
		rng:       rng,
		observers: make(map[int]Observer),
	}
	e.NewGame()
	return e
}

// NewGame clears the board, resets the last direction and spawns the
// opening tiles.
func (e *Engine) NewGame() {
	e.grid = NewGrid()
	e.lastDir = DirUp
	spawned := e.spawnTiles()
	e.notify(Event{Kind: EventNewGame, Move: MoveResult{Direction: DirUp, Spawned: spawned}})
}

// Move slides every line in the given direction, merging equal neighbours.
// New tiles are spawned only when the board changed.
func (e *Engine) Move(dir Direction) MoveResult {
	e.lastDir = dir
	res := MoveResult{Direction: dir}

	for i := range Size {
		lr := line{grid: e.grid, axis: dir.Axis(), index: i}.slide(dir)
		res.Merges += lr.merges
		res.Moves = append(res.Moves, lr.moves...)
		if lr.changed {
			res.Changed = true
		}
	}

	if res.Changed {
		res.Spawned = e.spawnTiles()
	}

	e.notify(Event{Kind: EventMove, Move: res})
	return res
}

// SetRand replaces the random source used by later spawns.
func (e *Engine) SetRand(rng Rand) {
	e.rng = rng
}

// Grid returns the live grid. Callers must not modify it.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// BlockMatrix returns a copy of the current tile occupancy.
func (e *Engine) BlockMatrix() Matrix {
	return e.grid.snapshot()
}

// LastGestureDirection returns the direction of the most recent move,
// or DirUp after a new game.
func (e *Engine) LastGestureDirection() Direction {
	return e.lastDir
}

// Version counts notifications sent so far.
func (e *Engine) Version() uint64 {
	return e.version
}

// Subscribe registers an observer and returns a function that removes it.
func (e *Engine) Subscribe(fn Observer) (unsubscribe func()) {
	id := e.nextObs
	e.nextObs++
	e.observers[id] = fn
	e.order = append(e.order, id)

	return func() {
		if _, ok := e.observers[id]; !ok {
			return
		}
		delete(e.observers, id)
		for i, v := range e.order {
			if v == id {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
	}
}

// notify bumps the version and calls observers in subscription order.
func (e *Engine) notify(ev Event) {
	e.version++
	ev.Version = e.version
	for _, id := range append([]int(nil), e.order...) {
		if fn, ok := e.observers[id]; ok {
			fn(ev)
		}
	}
}

// newTile allocates a value-2 tile with a fresh ID.
func (e *Engine) newTile() *Tile {
	e.nextID++
	return &Tile{ID: e.nextID, Value: 2}
}
