// Package engine implements the deterministic 2048 game core: the board
// model, move resolution, transition planning, tile spawning, and
// terminal-state detection. All functions here are pure over well-formed
// boards; the engine has no dependency on rendering or timing.
package engine

// BoardSize is the board dimension. The game is always played on 4x4.
const BoardSize = 4

// DefaultWinTarget is the tile value that counts as a win.
const DefaultWinTarget = 2048

// TileID is an opaque identity assigned to a tile at spawn time.
// A tile that slides keeps its identity; a merge retires both source
// identities and mints a new one for the result. Identity exists only so
// renderers can track continuity across moves - game rules never read it.
type TileID uint64

// Tile is an occupied cell. The zero Tile (Value 0) means empty.
type Tile struct {
	ID    TileID
	Value int
}

// Empty reports whether this tile slot is unoccupied.
func (t Tile) Empty() bool {
	return t.Value == 0
}

// Board is the 4x4 grid. Indexed as [row][col].
type Board [BoardSize][BoardSize]Tile

// Cell addresses a board position.
type Cell struct {
	Row, Col int
}

// Direction is one of the four move directions. Gesture or key translation
// to a Direction happens outside the engine.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
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

// Valid reports whether d is one of the four direction symbols.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// IDSource mints tile identities. The zero value is ready to use.
// Not safe for concurrent use; the engine is single-threaded by design.
type IDSource struct {
	next TileID
}

// Next returns a fresh, never-before-issued identity.
func (s *IDSource) Next() TileID {
	s.next++
	return s.next
}

// Values returns the board as plain values, dropping identities.
// Handy for tests and for the JSON session snapshot.
func (b Board) Values() [BoardSize][BoardSize]int {
	var out [BoardSize][BoardSize]int
	for r := range BoardSize {
		for c := range BoardSize {
			out[r][c] = b[r][c].Value
		}
	}
	return out
}

// FromValues builds a board from plain values, assigning fresh identities
// to every occupied cell. Used when restoring a saved session.
func FromValues(vals [BoardSize][BoardSize]int, ids *IDSource) Board {
	var b Board
	for r := range BoardSize {
		for c := range BoardSize {
			if vals[r][c] != 0 {
				b[r][c] = Tile{ID: ids.Next(), Value: vals[r][c]}
			}
		}
	}
	return b
}

// SameValues reports whether two boards hold identical values in every
// cell, ignoring identities.
func SameValues(a, b Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			if a[r][c].Value != b[r][c].Value {
				return false
			}
		}
	}
	return true
}

// EmptyCells returns the coordinates of all unoccupied cells in row-major
// order.
func EmptyCells(b Board) []Cell {
	var cells []Cell
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c].Empty() {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// MaxTile returns the highest tile value on the board, 0 if empty.
func MaxTile(b Board) int {
	maxVal := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c].Value > maxVal {
				maxVal = b[r][c].Value
			}
		}
	}
	return maxVal
}

// SumValues returns the total of all tile values. Merges conserve this
// total; only spawns increase it.
func SumValues(b Board) int {
	sum := 0
	for r := range BoardSize {
		for c := range BoardSize {
			sum += b[r][c].Value
		}
	}
	return sum
}

// lineCells returns the traversal order for line i in the given direction:
// the first cell is the wall tiles compact against, so compaction and
// destination mirroring for right/down fall out of the ordering itself.
func lineCells(dir Direction, i int) [BoardSize]Cell {
	var cells [BoardSize]Cell
	for k := range BoardSize {
		switch dir {
		case DirLeft:
			cells[k] = Cell{Row: i, Col: k}
		case DirRight:
			cells[k] = Cell{Row: i, Col: BoardSize - 1 - k}
		case DirUp:
			cells[k] = Cell{Row: k, Col: i}
		case DirDown:
			cells[k] = Cell{Row: BoardSize - 1 - k, Col: i}
		}
	}
	return cells
}
