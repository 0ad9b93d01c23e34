package t2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection accepts a direction name or its first letter.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return DirUp, fmt.Errorf("t2048: unknown direction %q", s)
}

// Axis is the orientation of the lines a move processes.
type Axis int

const (
	AxisHorizontal Axis = iota // rows
	AxisVertical               // columns
)

// Axis returns the axis a move in this direction slides along.
func (d Direction) Axis() Axis {
	if d == DirLeft || d == DirRight {
		return AxisHorizontal
	}
	return AxisVertical
}

// towardFar reports whether tiles travel toward index Size-1.
func (d Direction) towardFar() bool {
	return d == DirRight || d == DirDown
}

// line is a view over one row or column of a grid.
// Position i runs from 0 to Size-1 along the axis.
type line struct {
	grid  *Grid
	axis  Axis
	index int
}

func (l line) coord(i int) Coord {
	if l.axis == AxisHorizontal {
		return Coord{Col: i, Row: l.index}
	}
	return Coord{Col: l.index, Row: i}
}

func (l line) get(i int) *Tile {
	c := l.coord(i)
	return l.grid.Get(c.Col, c.Row)
}

func (l line) set(i int, t *Tile) {
	c := l.coord(i)
	l.grid.Set(c.Col, c.Row, t)
}

// origin is where a tile sat before the move.
type origin struct {
	pos int
	id  TileID
}

// slot is a tile in a compacted line along with the tiles it came from.
type slot struct {
	tile    *Tile
	sources []origin
	merged  bool
}

// compact returns the non-empty tiles of the line in scan order.
func (l line) compact() []slot {
	slots := make([]slot, 0, Size)
	for i := range Size {
		if t := l.get(i); t != nil {
			slots = append(slots, slot{tile: t, sources: []origin{{pos: i, id: t.ID}}})
		}
	}
	return slots
}

// mergeSlots collapses equal neighbours toward index 0.
// An already merged slot never merges again in the same pass; the merged
// tile keeps the ID of the later slot.
func mergeSlots(in []slot) []slot {
	out := make([]slot, 0, len(in))
	for _, s := range in {
		if n := len(out); n > 0 && !out[n-1].merged && out[n-1].tile.Value == s.tile.Value {
			prev := out[n-1]
			out[n-1] = slot{
				tile:    &Tile{ID: s.tile.ID, Value: s.tile.Value * 2},
				sources: append(prev.sources, s.sources...),
				merged:  true,
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

func reverseSlots(s []slot) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// lineResult describes what sliding one line did.
type lineResult struct {
	changed bool
	merges  int
	moves   []TileMove
}

// slide applies the move algorithm to one line and writes the result back.
func (l line) slide(dir Direction) lineResult {
	var before [Size]int
	for i := range Size {
		if t := l.get(i); t != nil {
			before[i] = t.Value
		}
	}

	slots := l.compact()
	if dir.towardFar() {
		reverseSlots(slots)
	}
	slots = mergeSlots(slots)
	if dir.towardFar() {
		reverseSlots(slots)
	}

	var after [Size]*Tile
	offset := 0
	if dir.towardFar() {
		offset = Size - len(slots)
	}

	var res lineResult
	for k, s := range slots {
		to := offset + k
		after[to] = s.tile
		if s.merged {
			res.merges++
		}
		for _, src := range s.sources {
			res.moves = append(res.moves, TileMove{
				ID:     src.id,
				Into:   s.tile.ID,
				From:   l.coord(src.pos),
				To:     l.coord(to),
				Merged: s.merged,
			})
		}
	}

	for i := range Size {
		l.set(i, after[i])
		v := 0
		if after[i] != nil {
			v = after[i].Value
		}
		if v != before[i] {
			res.changed = true
		}
	}
	return res
}
