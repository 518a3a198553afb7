package engine

// MoveResult is the outcome of resolving one move.
type MoveResult struct {
	Board      Board
	ScoreDelta int
	Valid      bool
}

// lineMove records a surviving tile relocating within a line, in traversal
// indices (0 = the wall the line compacts against).
type lineMove struct {
	Src  int
	Dest int
}

// lineMerge records an adjacent equal pair combining, in traversal indices.
// SrcA is the source nearer the wall.
type lineMerge struct {
	SrcA, SrcB int
	Dest       int
	Value      int // resulting (doubled) value
}

// lineResult is the shared output of one line reduction. Both the resolver
// and the transition planner consume it, so the resolved board and the
// animation plan are derived from a single pass and can never disagree.
type lineResult struct {
	out    [BoardSize]Tile
	score  int
	moves  []lineMove
	merges []lineMerge
}

// reduceLine compacts and merges one line. The scan is left-to-right over
// the occupied cells with each merge consuming exactly one pair, so
// [2,2,2] resolves to [4,2] and [2,2,2,2] to [4,4] - a tile never merges
// twice in one move.
//
// Tiles that only slide keep their identity in out; merge results are
// minted a fresh identity from ids. A nil ids leaves merge results with
// identity 0, which is fine for callers that only inspect values (the
// game-over probe does this).
func reduceLine(in [BoardSize]Tile, ids *IDSource) lineResult {
	var res lineResult

	var occ []int
	for k := range BoardSize {
		if !in[k].Empty() {
			occ = append(occ, k)
		}
	}

	w := 0
	for i := 0; i < len(occ); i++ {
		cur := in[occ[i]]
		if i+1 < len(occ) && in[occ[i+1]].Value == cur.Value {
			doubled := cur.Value * 2
			var id TileID
			if ids != nil {
				id = ids.Next()
			}
			res.out[w] = Tile{ID: id, Value: doubled}
			res.score += doubled
			res.merges = append(res.merges, lineMerge{
				SrcA:  occ[i],
				SrcB:  occ[i+1],
				Dest:  w,
				Value: doubled,
			})
			i++ // the second tile of the pair is consumed
		} else {
			res.out[w] = cur
			res.moves = append(res.moves, lineMove{Src: occ[i], Dest: w})
		}
		w++
	}

	return res
}

// Resolve applies one move to the board and returns the authoritative next
// board, the score gained from merges, and whether the move changed
// anything. An unchanged board means the move is invalid and must have no
// side effects: the caller skips scoring, animation, and the spawn.
func Resolve(b Board, dir Direction, ids *IDSource) MoveResult {
	var out Board
	total := 0

	for i := range BoardSize {
		cells := lineCells(dir, i)

		var line [BoardSize]Tile
		for k, c := range cells {
			line[k] = b[c.Row][c.Col]
		}

		red := reduceLine(line, ids)
		total += red.score

		for k, c := range cells {
			out[c.Row][c.Col] = red.out[k]
		}
	}

	return MoveResult{
		Board:      out,
		ScoreDelta: total,
		Valid:      !SameValues(b, out),
	}
}
