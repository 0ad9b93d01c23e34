package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	boardWidth  = Size*cellWidth + 1  // +1 for right border
	boardHeight = Size*cellHeight + 1 // +1 for bottom border
)

// directionArrows are shown in the HUD for the last gesture.
var directionArrows = map[Direction]string{
	DirUp:    "↑",
	DirDown:  "↓",
	DirLeft:  "←",
	DirRight: "→",
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardWidth) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)

	if g.paused {
		area := core.NewRect(boardX, boardY, boardWidth, boardHeight)
		drawOverlay(dst, area, "PAUSED", "Press P to resume")
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, move count and last direction.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := "2048"
	dst.DrawText(boardX+(boardWidth-len(title))/2, 0, title)

	dst.DrawText(boardX, 1, fmt.Sprintf("Moves: %d", g.moves))

	info := "Last: " + directionArrows[g.engine.LastGestureDirection()]
	infoX := boardX + boardWidth - len([]rune(info))
	dst.DrawText(core.Max(infoX, boardX), 1, info)

	tiles := fmt.Sprintf("Tiles: %d/%d", g.engine.Grid().Count(), Size*Size)
	dst.DrawText(boardX+(boardWidth-len(tiles))/2, 2, tiles)
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range Size + 1 {
		for x := range Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.Set(px, py, gridCorner(x, y))

			if x < Size {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < Size {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	m := g.engine.BlockMatrix()
	for row := range Size {
		for col := range Size {
			tile, ok := m.At(col, row)
			if !ok {
				continue
			}

			color := g.theme.Color(tile.Value)
			if flash, on := g.anim.color(tile.ID); on {
				color = flash
			}

			valStr := strconv.Itoa(tile.Value)
			padLeft := core.Max((cellWidth-1-len(valStr))/2, 0)
			cellX := boardX + col*cellWidth + 1
			cellY := boardY + row*cellHeight + 1
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, color)
		}
	}
}

// gridCorner picks the box-drawing rune for a grid intersection.
func gridCorner(x, y int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == Size:
		return '┐'
	case y == Size && x == 0:
		return '└'
	case y == Size && x == Size:
		return '┘'
	case y == 0:
		return '┬'
	case y == Size:
		return '┴'
	case x == 0:
		return '├'
	case x == Size:
		return '┤'
	default:
		return '┼'
	}
}

// drawOverlay draws a boxed message centered over area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	box := area.CenteredIn(maxLen+4, len(lines)+2)
	dst.FillRect(box)
	dst.DrawBox(box)

	for i, line := range lines {
		x := box.X + (box.W-len([]rune(line)))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}
