package engine

import (
	"math/rand"
	"testing"
)

func TestPlanSimpleSlide(t *testing.T) {
	var b Board
	b[0][3] = Tile{ID: 5, Value: 2}

	plan := PlanMove(b, DirLeft)

	if len(plan.Merges) != 0 {
		t.Fatalf("unexpected merges: %v", plan.Merges)
	}
	if len(plan.Slides) != 1 {
		t.Fatalf("slides = %d, want 1", len(plan.Slides))
	}

	s := plan.Slides[0]
	if s.From != (Cell{Row: 0, Col: 3}) || s.To != (Cell{Row: 0, Col: 0}) {
		t.Errorf("slide %v -> %v, want (0,3) -> (0,0)", s.From, s.To)
	}
	if s.ID != 5 || s.Value != 2 {
		t.Errorf("slide carries ID=%d value=%d, want 5/2", s.ID, s.Value)
	}
}

func TestPlanStationaryTileHasNoInstruction(t *testing.T) {
	var b Board
	b[0][0] = Tile{ID: 1, Value: 4}
	b[0][3] = Tile{ID: 2, Value: 2}

	plan := PlanMove(b, DirLeft)

	for _, s := range plan.Slides {
		if s.From == s.To {
			t.Errorf("plan contains a no-op slide: %v", s)
		}
		if s.ID == 1 {
			t.Errorf("stationary tile got a slide instruction: %v", s)
		}
	}
}

func TestPlanMergeCollisionPoint(t *testing.T) {
	tests := []struct {
		name      string
		dir       Direction
		place     [2]Cell // the two 2-tiles
		to        Cell
		collision Cell
	}{
		{
			name:      "left lands at col 0, collides at col 1",
			dir:       DirLeft,
			place:     [2]Cell{{0, 1}, {0, 3}},
			to:        Cell{Row: 0, Col: 0},
			collision: Cell{Row: 0, Col: 1},
		},
		{
			name:      "right lands at col 3, collides at col 2",
			dir:       DirRight,
			place:     [2]Cell{{0, 0}, {0, 2}},
			to:        Cell{Row: 0, Col: 3},
			collision: Cell{Row: 0, Col: 2},
		},
		{
			name:      "up lands at row 0, collides at row 1",
			dir:       DirUp,
			place:     [2]Cell{{1, 2}, {3, 2}},
			to:        Cell{Row: 0, Col: 2},
			collision: Cell{Row: 1, Col: 2},
		},
		{
			name:      "down lands at row 3, collides at row 2",
			dir:       DirDown,
			place:     [2]Cell{{0, 1}, {2, 1}},
			to:        Cell{Row: 3, Col: 1},
			collision: Cell{Row: 2, Col: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Board
			b[tt.place[0].Row][tt.place[0].Col] = Tile{ID: 1, Value: 2}
			b[tt.place[1].Row][tt.place[1].Col] = Tile{ID: 2, Value: 2}

			plan := PlanMove(b, tt.dir)
			if len(plan.Merges) != 1 {
				t.Fatalf("merges = %d, want 1", len(plan.Merges))
			}

			m := plan.Merges[0]
			if m.To != tt.to {
				t.Errorf("merge destination = %v, want %v", m.To, tt.to)
			}
			if m.Collision != tt.collision {
				t.Errorf("collision point = %v, want %v", m.Collision, tt.collision)
			}
			if m.Value != 4 {
				t.Errorf("merge value = %d, want 4", m.Value)
			}
		})
	}
}

func TestPlanMergeSourceOrder(t *testing.T) {
	var b Board
	b[2][1] = Tile{ID: 1, Value: 8}
	b[2][3] = Tile{ID: 2, Value: 8}

	plan := PlanMove(b, DirLeft)
	if len(plan.Merges) != 1 {
		t.Fatalf("merges = %d, want 1", len(plan.Merges))
	}

	m := plan.Merges[0]
	// FromA is the source nearer the destination wall.
	if m.FromA != (Cell{Row: 2, Col: 1}) || m.FromB != (Cell{Row: 2, Col: 3}) {
		t.Errorf("merge sources = %v, %v; want (2,1), (2,3)", m.FromA, m.FromB)
	}
	if m.IDA != 1 || m.IDB != 2 {
		t.Errorf("merge source IDs = %d, %d; want 1, 2", m.IDA, m.IDB)
	}
}

// TestPlannerResolverConsistency replays the plan's instructions against
// the pre-move board for many random boards and checks the result matches
// the resolver exactly, in every direction.
func TestPlannerResolverConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 500; trial++ {
		var b Board
		var ids IDSource
		for r := range BoardSize {
			for c := range BoardSize {
				// Mix of empties and small powers of two, enough density
				// to produce merges regularly.
				if rng.Intn(3) > 0 {
					b[r][c] = Tile{ID: ids.Next(), Value: 2 << rng.Intn(4)}
				}
			}
		}

		for _, dir := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
			resolved := Resolve(b, dir, nil)
			replayed := Replay(b, PlanMove(b, dir))

			if !SameValues(resolved.Board, replayed) {
				t.Fatalf("trial %d dir %v: replayed plan diverges from resolver\nboard: %v\nresolved: %v\nreplayed: %v",
					trial, dir, b.Values(), resolved.Board.Values(), replayed.Values())
			}
		}
	}
}
