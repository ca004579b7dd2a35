package sim

import "fmt"

// Grid is a fixed-size toroidal grid holding at most one agent per cell.
// Agents are stored in a flat arena indexed by position; dead agents keep
// their cell, so the arena never shrinks or moves entries.
type Grid struct {
	width  int
	height int
	cells  []*Agent
}

// NewGrid allocates an empty width x height grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]*Agent, width*height),
	}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// index maps a position onto the arena with toroidal wrapping.
func (g *Grid) index(p Position) int {
	x := ((p.X % g.width) + g.width) % g.width
	y := ((p.Y % g.height) + g.height) % g.height
	return y*g.width + x
}

// At returns the agent occupying a cell, or nil if the cell is empty.
func (g *Grid) At(p Position) *Agent {
	return g.cells[g.index(p)]
}

// Place puts an agent on a cell. Placing onto an occupied cell is an error:
// the single-occupancy invariant is never silently broken.
func (g *Grid) Place(ag *Agent, p Position) error {
	i := g.index(p)
	if g.cells[i] != nil {
		return fmt.Errorf("cell (%d,%d) already occupied", p.X, p.Y)
	}
	g.cells[i] = ag
	return nil
}

// mooreOffsets enumerates the 8-cell Moore neighborhood.
var mooreOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighbors returns the agents in the Moore neighborhood of a position.
// Wrapping can alias offsets onto the same cell on tiny grids, so cells are
// visited at most once.
func (g *Grid) Neighbors(p Position) []*Agent {
	var out []*Agent
	seen := make(map[int]struct{}, 8)
	center := g.index(p)
	for _, off := range mooreOffsets {
		i := g.index(Position{X: p.X + off[0], Y: p.Y + off[1]})
		if i == center {
			continue
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		if ag := g.cells[i]; ag != nil {
			out = append(out, ag)
		}
	}
	return out
}

// HasInfectedNeighbor reports whether any neighboring agent is currently
// Infected. Quarantined agents still count: quarantine is an observed
// attribute, not a transmission barrier.
func (g *Grid) HasInfectedNeighbor(p Position) bool {
	for _, ag := range g.Neighbors(p) {
		if ag.infection == Infected {
			return true
		}
	}
	return false
}
