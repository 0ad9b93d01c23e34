package t2048

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestDeterministicSpawn(t *testing.T) {
	cfg := testConfig(12345)

	g1 := New()
	g1.Reset(cfg)
	g2 := New()
	g2.Reset(cfg)

	for _, a := range []core.Action{core.ActionLeft, core.ActionDown, core.ActionRight, core.ActionUp} {
		g1.Step(frame(a))
		g2.Step(frame(a))
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Board != s2.Board {
		t.Errorf("Same seed should produce same board:\n%v\nvs\n%v", s1.Board, s2.Board)
	}
}

func TestResetStartsFreshGame(t *testing.T) {
	g := New()
	g.Reset(testConfig(42))

	snap := g.Snapshot()
	if 16-snap.Empty != 2 {
		t.Errorf("Reset should leave 2 tiles, got %d", 16-snap.Empty)
	}
	if snap.Moves != 0 {
		t.Errorf("Moves = %d, want 0", snap.Moves)
	}
	if snap.Direction != "up" {
		t.Errorf("Direction = %s, want up", snap.Direction)
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want playing", snap.State)
	}
}

func TestStepAppliesMove(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	loadBoard(g.engine, [Size][Size]int{{0, 0, 2, 2}})

	res := g.Step(frame(core.ActionLeft))

	if got := g.engine.Grid().Get(0, 0); got == nil || got.Value != 4 {
		t.Errorf("tile at (0,0) = %+v, want value 4", got)
	}
	if res.State.Moves != 1 {
		t.Errorf("Moves = %d, want 1", res.State.Moves)
	}
	if g.engine.LastGestureDirection() != DirLeft {
		t.Errorf("LastGestureDirection = %s, want left", g.engine.LastGestureDirection())
	}
}

func TestStepUnchangedMoveNotCounted(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	loadBoard(g.engine, [Size][Size]int{{2, 4, 8, 16}})

	res := g.Step(frame(core.ActionLeft))
	if res.State.Moves != 0 {
		t.Errorf("Moves = %d, want 0 for a move that changed nothing", res.State.Moves)
	}
}

func TestOneMovePerTick(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	before := g.engine.Version()

	g.Step(frame(core.ActionLeft, core.ActionRight, core.ActionUp))

	if got := g.engine.Version() - before; got != 1 {
		t.Errorf("engine notified %d times in one tick, want 1", got)
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	g.Step(frame(core.ActionPause))
	before := g.engine.Version()
	res := g.Step(frame(core.ActionLeft))

	if !res.State.Paused {
		t.Error("game should be paused")
	}
	if g.engine.Version() != before {
		t.Error("moves should be ignored while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestRestartStartsNewGame(t *testing.T) {
	g := New()
	g.Reset(testConfig(5))
	loadBoard(g.engine, [Size][Size]int{{2, 2, 4, 4}, {8, 8}})
	g.Step(frame(core.ActionLeft))

	g.Step(frame(core.ActionRestart))

	snap := g.Snapshot()
	if 16-snap.Empty != 2 || snap.MaxTile != 2 {
		t.Errorf("restart should leave two 2-tiles, got %v", snap.Board)
	}
	if snap.Moves != 0 {
		t.Errorf("Moves after restart = %d, want 0", snap.Moves)
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	cfg := testConfig(1)
	cfg.ScreenW = 20
	cfg.ScreenH = 10
	g.Reset(cfg)

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Render should show the too-small message")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize to a large screen should unpause")
	}
}

func TestRenderShowsTiles(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	loadBoard(g.engine, [Size][Size]int{{2048, 0, 0, 16384}})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048", "16384", "Moves: 0", "Last: ↑", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestRenderUsesThemeColor(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	g.SetTheme(Theme{8: core.ColorMagenta})
	loadBoard(g.engine, [Size][Size]int{{8}})
	g.anim.reset()

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	found := false
	for y := range screen.Height() {
		for x := range screen.Width() {
			c := screen.GetCell(x, y)
			if c.Rune == '8' && c.Color == core.ColorMagenta {
				found = true
			}
		}
	}
	if !found {
		t.Error("tile 8 should be drawn in the theme color")
	}
}

func TestHighlightsFlashMergedThenSpawned(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	loadBoard(g.engine, [Size][Size]int{{2, 2}})

	res := g.engine.Move(DirLeft)
	merged := g.engine.Grid().Get(0, 0).ID

	if c, ok := g.anim.color(merged); !ok || c != core.ColorBrightYellow {
		t.Errorf("merged tile should flash yellow first, got %v %v", c, ok)
	}

	for range mergeFlashTicks {
		g.anim.advance()
	}
	if g.anim.phase != PhasePop {
		t.Fatalf("phase = %v, want PhasePop", g.anim.phase)
	}
	if _, ok := g.anim.color(res.Spawned[0].Tile.ID); !ok {
		t.Error("spawned tile should flash during pop phase")
	}

	for range popFlashTicks {
		g.anim.advance()
	}
	if g.anim.phase != PhaseNone {
		t.Errorf("phase = %v, want PhaseNone", g.anim.phase)
	}
}

func TestStatsObserver(t *testing.T) {
	g := New()
	var stats Stats
	unsubscribe := stats.Observe(g.Engine())
	defer unsubscribe()

	g.Reset(testConfig(9))
	loadBoard(g.engine, [Size][Size]int{{2, 2, 4, 4}})
	g.engine.Move(DirLeft)  // [4 8 _ _] + 2 spawns
	g.engine.Move(DirLeft)

	if stats.Games != 1 {
		t.Errorf("Games = %d, want 1", stats.Games)
	}
	if stats.Moves != 2 {
		t.Errorf("Moves = %d, want 2", stats.Moves)
	}
	if stats.Merges < 2 {
		t.Errorf("Merges = %d, want at least 2", stats.Merges)
	}
	if stats.TilesSpawned < 4 || stats.TilesSpawned%2 != 0 {
		t.Errorf("TilesSpawned = %d, want an even number >= 4", stats.TilesSpawned)
	}
	if stats.MaxTile < 8 {
		t.Errorf("MaxTile = %d, want at least 8", stats.MaxTile)
	}
}

func TestThemeColorFallback(t *testing.T) {
	theme := Theme{2: core.ColorWhite, 2048: core.ColorBrightCyan}

	if theme.Color(2) != core.ColorWhite {
		t.Error("exact match should win")
	}
	if theme.Color(8192) != core.ColorBrightCyan {
		t.Error("values above the largest entry should use the largest entry")
	}
	if theme.Color(64) != core.ColorWhite {
		t.Error("values between entries should use the lower entry")
	}
}
