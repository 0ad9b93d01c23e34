package t2048

import "github.com/vovakirdan/tui-2048/internal/core"

// Theme maps tile values to display colors.
type Theme map[int]core.Color

// DefaultTheme returns the built-in tile colors.
func DefaultTheme() Theme {
	return Theme{
		2:    core.ColorWhite,
		4:    core.ColorBrightWhite,
		8:    core.ColorYellow,
		16:   core.ColorOrange,
		32:   core.ColorRed,
		64:   core.ColorBrightRed,
		128:  core.ColorBrightYellow,
		256:  core.ColorGreen,
		512:  core.ColorBrightGreen,
		1024: core.ColorCyan,
		2048: core.ColorBrightCyan,
	}
}

// Color returns the color for a tile value. Values above the largest
// configured entry use the color of that entry.
func (t Theme) Color(value int) core.Color {
	if c, ok := t[value]; ok {
		return c
	}
	best, bestVal := core.ColorDefault, 0
	for v, c := range t {
		if v < value && v > bestVal {
			best, bestVal = c, v
		}
	}
	return best
}
