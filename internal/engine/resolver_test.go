package engine

import "testing"

// boardOf builds a board from plain values with sequential identities.
func boardOf(vals [BoardSize][BoardSize]int) Board {
	var ids IDSource
	return FromValues(vals, &ids)
}

func TestReduceLineMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    [4]int
		expected [4]int
		score    int
	}{
		{
			name:     "simple merge",
			input:    [4]int{2, 2, 0, 0},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge with trailing tile",
			input:    [4]int{2, 2, 2, 0},
			expected: [4]int{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "triple merges once",
			input:    [4]int{2, 2, 2, 2},
			expected: [4]int{4, 4, 0, 0},
			score:    8,
		},
		{
			name:     "gap before pair",
			input:    [4]int{0, 4, 2, 2},
			expected: [4]int{4, 4, 0, 0},
			score:    4,
		},
		{
			name:     "alternating values never merge",
			input:    [4]int{2, 4, 2, 4},
			expected: [4]int{2, 4, 2, 4},
			score:    0,
		},
		{
			name:     "slide with gap",
			input:    [4]int{0, 0, 2, 2},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "slide with multiple gaps",
			input:    [4]int{2, 0, 0, 2},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "empty line",
			input:    [4]int{0, 0, 0, 0},
			expected: [4]int{0, 0, 0, 0},
			score:    0,
		},
		{
			name:     "single tile",
			input:    [4]int{0, 4, 0, 0},
			expected: [4]int{4, 0, 0, 0},
			score:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids IDSource
			var line [BoardSize]Tile
			for k, v := range tt.input {
				if v != 0 {
					line[k] = Tile{ID: ids.Next(), Value: v}
				}
			}

			red := reduceLine(line, &ids)

			var got [4]int
			for k := range BoardSize {
				got[k] = red.out[k].Value
			}
			if got != tt.expected {
				t.Errorf("reduceLine(%v) = %v, want %v", tt.input, got, tt.expected)
			}
			if red.score != tt.score {
				t.Errorf("reduceLine(%v) score = %d, want %d", tt.input, red.score, tt.score)
			}
		})
	}
}

func TestResolveLeft(t *testing.T) {
	b := boardOf([4][4]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})

	expected := [4][4]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}

	var ids IDSource
	res := Resolve(b, DirLeft, &ids)

	if res.Board.Values() != expected {
		t.Errorf("Resolve left: got\n%v\nwant\n%v", res.Board.Values(), expected)
	}
	if !res.Valid {
		t.Error("Resolve left should report valid")
	}
	if res.ScoreDelta != 20 { // 4 + 8 + (4+4)
		t.Errorf("Resolve left score = %d, want 20", res.ScoreDelta)
	}
}

func TestResolveRight(t *testing.T) {
	b := boardOf([4][4]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})

	expected := [4][4]int{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	}

	res := Resolve(b, DirRight, nil)
	if res.Board.Values() != expected {
		t.Errorf("Resolve right: got\n%v\nwant\n%v", res.Board.Values(), expected)
	}
}

func TestResolveUp(t *testing.T) {
	b := boardOf([4][4]int{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})

	expected := [4][4]int{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	res := Resolve(b, DirUp, nil)
	if res.Board.Values() != expected {
		t.Errorf("Resolve up: got\n%v\nwant\n%v", res.Board.Values(), expected)
	}
}

func TestResolveDown(t *testing.T) {
	b := boardOf([4][4]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})

	expected := [4][4]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}

	res := Resolve(b, DirDown, nil)
	if res.Board.Values() != expected {
		t.Errorf("Resolve down: got\n%v\nwant\n%v", res.Board.Values(), expected)
	}
}

func TestResolveInvalidMove(t *testing.T) {
	// Already compacted against the left wall, no adjacent equal pairs.
	b := boardOf([4][4]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Resolve(b, DirLeft, nil)
	if res.Valid {
		t.Error("move into the wall with nothing to merge should be invalid")
	}
	if res.ScoreDelta != 0 {
		t.Errorf("invalid move score = %d, want 0", res.ScoreDelta)
	}
	if res.Board.Values() != b.Values() {
		t.Error("invalid move must leave the board identical")
	}
}

func TestResolveKeepsSlidingIdentity(t *testing.T) {
	var b Board
	b[0][3] = Tile{ID: 7, Value: 2}

	res := Resolve(b, DirLeft, nil)
	if res.Board[0][0].ID != 7 {
		t.Errorf("sliding tile identity = %d, want 7", res.Board[0][0].ID)
	}
}

func TestResolveMergeMintsNewIdentity(t *testing.T) {
	var b Board
	b[0][0] = Tile{ID: 1, Value: 2}
	b[0][1] = Tile{ID: 2, Value: 2}

	ids := IDSource{next: 2}
	res := Resolve(b, DirLeft, &ids)

	merged := res.Board[0][0]
	if merged.Value != 4 {
		t.Fatalf("merged value = %d, want 4", merged.Value)
	}
	if merged.ID == 1 || merged.ID == 2 || merged.ID == 0 {
		t.Errorf("merged tile should carry a fresh identity, got %d", merged.ID)
	}
}

func TestResolveConservesValueSum(t *testing.T) {
	b := boardOf([4][4]int{
		{2, 2, 4, 4},
		{8, 0, 8, 2},
		{0, 16, 16, 0},
		{2, 0, 0, 2},
	})

	for _, dir := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		res := Resolve(b, dir, nil)
		if SumValues(res.Board) != SumValues(b) {
			t.Errorf("dir %v: value sum %d -> %d, merges must conserve total",
				dir, SumValues(b), SumValues(res.Board))
		}
	}
}

func TestEndToEndScenario(t *testing.T) {
	b := boardOf([4][4]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Resolve(b, DirLeft, nil)

	if res.Board.Values()[0] != [4]int{4, 0, 0, 0} {
		t.Errorf("first row = %v, want [4 0 0 0]", res.Board.Values()[0])
	}
	if res.ScoreDelta != 4 {
		t.Errorf("score delta = %d, want 4", res.ScoreDelta)
	}
	if !res.Valid {
		t.Error("move should be valid")
	}
}
