package engine

import "math/rand"

// DefaultFourProb is the default probability of spawning a 4 instead of a 2.
const DefaultFourProb = 0.10

// SpawnInfo describes the tile a spawn placed, for the pop animation.
type SpawnInfo struct {
	Cell  Cell
	Value int
	ID    TileID
}

// Spawn places one new tile in a uniformly random empty cell: value 2 with
// probability 1-fourProb, value 4 otherwise. On a full board it returns the
// board unchanged with ok=false rather than failing - the caller is
// expected to run the game-over check right after.
func Spawn(b Board, rng *rand.Rand, ids *IDSource, fourProb float64) (Board, SpawnInfo, bool) {
	empty := EmptyCells(b)
	if len(empty) == 0 {
		return b, SpawnInfo{}, false
	}

	cell := empty[rng.Intn(len(empty))]

	value := 2
	if rng.Float64() < fourProb {
		value = 4
	}

	info := SpawnInfo{Cell: cell, Value: value, ID: ids.Next()}
	b[cell.Row][cell.Col] = Tile{ID: info.ID, Value: value}
	return b, info, true
}
