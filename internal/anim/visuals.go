package anim

import "github.com/okazmirenko/twenty48/internal/engine"

// TileVisual is one tile's render instruction for the current tick:
// a fractional board position plus a scale factor. Visuals are keyed by
// tile identity so a renderer can interpolate continuity across frames
// without caring about grid indices.
type TileVisual struct {
	ID    engine.TileID
	Value int
	Row   float64
	Col   float64
	Scale float64
}

// mergePeakScale is how far a freshly merged tile overshoots before
// settling back to 1.
const mergePeakScale = 1.25

// easeOutQuad decelerates motion toward the destination.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// lerpCell interpolates between two cells with easing applied.
func lerpCell(from, to engine.Cell, t float64) (row, col float64) {
	e := easeOutQuad(t)
	row = float64(from.Row) + (float64(to.Row)-float64(from.Row))*e
	col = float64(from.Col) + (float64(to.Col)-float64(from.Col))*e
	return row, col
}

// Visuals returns the full set of tile render instructions for this tick.
// The invariant held across phases: a merged tile is never emitted before
// both its sources have reached the collision point (end of Sliding), and
// its sources are never emitted once it is.
func (c *Choreographer) Visuals() []TileVisual {
	switch c.phase {
	case PhaseSliding:
		return c.slidingVisuals()
	case PhaseMerging:
		return c.mergingVisuals()
	case PhaseSpawning:
		return c.spawningVisuals()
	default:
		// Idle and Shaking render the settled board; shake displacement is
		// a whole-board offset applied by the renderer via ShakeOffset.
		return settledVisuals(c.after)
	}
}

// settledVisuals places every tile of the board at rest.
func settledVisuals(b engine.Board) []TileVisual {
	var out []TileVisual
	for r := range engine.BoardSize {
		for col := range engine.BoardSize {
			tl := b[r][col]
			if tl.Empty() {
				continue
			}
			out = append(out, TileVisual{
				ID:    tl.ID,
				Value: tl.Value,
				Row:   float64(r),
				Col:   float64(col),
				Scale: 1,
			})
		}
	}
	return out
}

// slidingVisuals draws the pre-move board with every moving tile
// interpolated toward its destination. Merge sources travel only as far as
// the collision point; the merged result does not exist yet.
func (c *Choreographer) slidingVisuals() []TileVisual {
	t := c.Progress()

	moving := make(map[engine.Cell]bool)
	for _, s := range c.plan.Slides {
		moving[s.From] = true
	}
	for _, m := range c.plan.Merges {
		moving[m.FromA] = true
		moving[m.FromB] = true
	}

	var out []TileVisual

	// Stationary tiles of the pre-move board.
	for r := range engine.BoardSize {
		for col := range engine.BoardSize {
			tl := c.before[r][col]
			if tl.Empty() || moving[engine.Cell{Row: r, Col: col}] {
				continue
			}
			out = append(out, TileVisual{
				ID: tl.ID, Value: tl.Value,
				Row: float64(r), Col: float64(col), Scale: 1,
			})
		}
	}

	for _, s := range c.plan.Slides {
		row, col := lerpCell(s.From, s.To, t)
		out = append(out, TileVisual{ID: s.ID, Value: s.Value, Row: row, Col: col, Scale: 1})
	}

	for _, m := range c.plan.Merges {
		half := m.Value / 2
		row, col := lerpCell(m.FromA, m.Collision, t)
		out = append(out, TileVisual{ID: m.IDA, Value: half, Row: row, Col: col, Scale: 1})
		row, col = lerpCell(m.FromB, m.Collision, t)
		out = append(out, TileVisual{ID: m.IDB, Value: half, Row: row, Col: col, Scale: 1})
	}

	return out
}

// mergingVisuals retires the merge sources and fades the doubled tile in
// at the collision point, carrying it the remaining step to its
// destination with a scale bounce. Non-merging tiles sit settled at their
// post-move cells.
func (c *Choreographer) mergingVisuals() []TileVisual {
	t := c.Progress()

	mergeDest := make(map[engine.Cell]bool)
	for _, m := range c.plan.Merges {
		mergeDest[m.To] = true
	}

	var out []TileVisual

	for r := range engine.BoardSize {
		for col := range engine.BoardSize {
			tl := c.after[r][col]
			if tl.Empty() || mergeDest[engine.Cell{Row: r, Col: col}] {
				continue
			}
			out = append(out, TileVisual{
				ID: tl.ID, Value: tl.Value,
				Row: float64(r), Col: float64(col), Scale: 1,
			})
		}
	}

	for _, m := range c.plan.Merges {
		row, col := lerpCell(m.Collision, m.To, t)
		// Peak mid-phase, back to 1 at the end.
		bounce := 1 + (mergePeakScale-1)*(1-abs(2*t-1))
		out = append(out, TileVisual{
			ID:    c.after[m.To.Row][m.To.Col].ID,
			Value: m.Value,
			Row:   row, Col: col,
			Scale: bounce,
		})
	}

	return out
}

// spawningVisuals shows the committed board with the new tile popping in
// from zero scale.
func (c *Choreographer) spawningVisuals() []TileVisual {
	t := c.Progress()
	out := settledVisuals(c.after)

	if c.hasSpawn {
		for i := range out {
			if out[i].ID == c.spawn.ID {
				out[i].Scale = easeOutQuad(t)
			}
		}
	}

	return out
}

// ShakeOffset returns the whole-board horizontal displacement, in cells,
// for the invalid-move shake. Zero outside PhaseShaking.
func (c *Choreographer) ShakeOffset() float64 {
	if c.phase != PhaseShaking {
		return 0
	}
	// Alternate one step left/right per tick, settling on zero.
	if c.ticks%2 == 0 {
		return 0.2
	}
	return -0.2
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
