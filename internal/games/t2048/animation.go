package t2048

import "github.com/vovakirdan/tui-2048/internal/core"

// Animation constants
const (
	mergeFlashTicks = 8 // ~133ms at 60fps
	popFlashTicks   = 6 // ~100ms at 60fps
)

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseMerge
	PhasePop
)

// highlights flashes merged tiles first, then newly spawned ones.
type highlights struct {
	phase   AnimationPhase
	ticks   int
	merged  map[TileID]bool
	spawned map[TileID]bool
}

func (h *highlights) reset() {
	*h = highlights{}
}

// start begins highlighting the tiles touched by a move.
func (h *highlights) start(res MoveResult) {
	h.merged = make(map[TileID]bool)
	h.spawned = make(map[TileID]bool)
	for _, m := range res.Moves {
		if m.Merged {
			h.merged[m.Into] = true
		}
	}
	for _, s := range res.Spawned {
		h.spawned[s.Tile.ID] = true
	}

	h.ticks = 0
	switch {
	case len(h.merged) > 0:
		h.phase = PhaseMerge
	case len(h.spawned) > 0:
		h.phase = PhasePop
	default:
		h.phase = PhaseNone
	}
}

// advance moves the animation forward by one tick.
func (h *highlights) advance() {
	if h.phase == PhaseNone {
		return
	}
	h.ticks++

	switch h.phase {
	case PhaseMerge:
		if h.ticks >= mergeFlashTicks {
			h.ticks = 0
			if len(h.spawned) > 0 {
				h.phase = PhasePop
			} else {
				h.phase = PhaseNone
			}
		}
	case PhasePop:
		if h.ticks >= popFlashTicks {
			h.reset()
		}
	}
}

// color returns the flash color for a tile, if it is highlighted right now.
func (h *highlights) color(id TileID) (core.Color, bool) {
	switch h.phase {
	case PhaseMerge:
		if h.merged[id] {
			return core.ColorBrightYellow, true
		}
	case PhasePop:
		if h.spawned[id] {
			return core.ColorBrightWhite, true
		}
	}
	return core.ColorDefault, false
}
