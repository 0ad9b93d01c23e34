package t2048

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Game adapts the Engine to the fixed-tick platform loop.
type Game struct {
	engine *Engine
	theme  Theme
	tick   uint64
	moves  int // moves that changed the board in the current game

	// Screen dimensions
	screenW int
	screenH int

	paused        bool
	tooSmall      bool
	moveProcessed bool // Prevent multiple moves per tick

	anim highlights
}

// New creates a 2048 game with a running engine.
// The engine is reseeded on Reset.
func New() *Game {
	g := &Game{
		theme:   DefaultTheme(),
		screenW: 80,
		screenH: 24,
	}
	g.engine = NewEngine(rand.New(rand.NewSource(time.Now().UnixNano())))
	g.engine.Subscribe(g.onEvent)
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "2048"
}

// Engine exposes the underlying engine so observers can subscribe.
func (g *Game) Engine() *Engine {
	return g.engine
}

// SetTheme replaces the tile color theme.
func (g *Game) SetTheme(t Theme) {
	if len(t) > 0 {
		g.theme = t
	}
}

// Reset reseeds the random source and starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.engine.SetRand(rand.New(rand.NewSource(cfg.Seed)))
	g.tick = 0
	g.paused = false
	g.moveProcessed = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.engine.NewGame()
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW := boardWidth + 2
	minH := boardHeight + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// onEvent keeps per-game counters and highlights in sync with the engine.
func (g *Game) onEvent(ev Event) {
	switch ev.Kind {
	case EventNewGame:
		g.moves = 0
		g.anim.reset()
		g.anim.start(ev.Move)
	case EventMove:
		if ev.Move.Changed {
			g.moves++
			g.anim.start(ev.Move)
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.moveProcessed = false
	g.anim.advance()

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.engine.NewGame()
		return core.StepResult{State: g.State()}
	}

	var dir Direction
	moved := false

	switch {
	case in.Has(core.ActionUp):
		dir = DirUp
		moved = true
	case in.Has(core.ActionDown):
		dir = DirDown
		moved = true
	case in.Has(core.ActionLeft):
		dir = DirLeft
		moved = true
	case in.Has(core.ActionRight):
		dir = DirRight
		moved = true
	}

	if moved && !g.moveProcessed {
		g.engine.Move(dir)
		g.moveProcessed = true
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Moves:   g.moves,
		Version: g.engine.Version(),
		Paused:  g.paused || g.tooSmall,
	}
}
