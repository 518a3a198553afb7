package engine

// Slide is a tile relocating without merging.
type Slide struct {
	From, To Cell
	Value    int
	ID       TileID
}

// Merge is an adjacent equal pair combining into one tile. Collision is
// the cell one step before To on the side the sources approach from; it is
// where the two tiles are drawn touching before the result appears. It is
// animation geometry only, never game state.
type Merge struct {
	FromA, FromB Cell // FromA is nearer the destination wall
	Collision    Cell
	To           Cell
	Value        int // resulting (doubled) value
	IDA, IDB     TileID
}

// MovePlan is the per-move animation plan: every tile motion the move
// produces, expressed in board cells. Produced fresh per move and discarded
// once the choreography finishes.
type MovePlan struct {
	Dir    Direction
	Slides []Slide
	Merges []Merge
}

// Empty reports whether the plan contains no motion at all.
func (p MovePlan) Empty() bool {
	return len(p.Slides) == 0 && len(p.Merges) == 0
}

// PlanMove computes the animation plan for a move. It runs the same line
// reduction as Resolve, so replaying the plan against the pre-move board
// always reproduces the resolved board. Slides that do not actually
// relocate a tile are filtered out - a stationary tile gets no motion
// instruction.
func PlanMove(b Board, dir Direction) MovePlan {
	plan := MovePlan{Dir: dir}

	for i := range BoardSize {
		cells := lineCells(dir, i)

		var line [BoardSize]Tile
		for k, c := range cells {
			line[k] = b[c.Row][c.Col]
		}

		red := reduceLine(line, nil)

		for _, m := range red.moves {
			if m.Src == m.Dest {
				continue
			}
			src := line[m.Src]
			plan.Slides = append(plan.Slides, Slide{
				From:  cells[m.Src],
				To:    cells[m.Dest],
				Value: src.Value,
				ID:    src.ID,
			})
		}

		for _, m := range red.merges {
			// A merge consumes two source slots, so the destination rank is
			// at most BoardSize-2 and the collision cell always exists.
			plan.Merges = append(plan.Merges, Merge{
				FromA:     cells[m.SrcA],
				FromB:     cells[m.SrcB],
				Collision: cells[m.Dest+1],
				To:        cells[m.Dest],
				Value:     m.Value,
				IDA:       line[m.SrcA].ID,
				IDB:       line[m.SrcB].ID,
			})
		}
	}

	return plan
}

// Replay applies a plan's motion instructions to the pre-move board and
// returns the resulting board. Used in tests to prove planner/resolver
// consistency; the game itself always takes the resolved board as truth.
func Replay(b Board, plan MovePlan) Board {
	out := b

	for _, s := range plan.Slides {
		out[s.From.Row][s.From.Col] = Tile{}
	}
	for _, m := range plan.Merges {
		out[m.FromA.Row][m.FromA.Col] = Tile{}
		out[m.FromB.Row][m.FromB.Col] = Tile{}
	}

	for _, s := range plan.Slides {
		out[s.To.Row][s.To.Col] = Tile{ID: s.ID, Value: s.Value}
	}
	for _, m := range plan.Merges {
		out[m.To.Row][m.To.Col] = Tile{Value: m.Value}
	}

	return out
}
