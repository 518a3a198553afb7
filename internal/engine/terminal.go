package engine

// CheckWin reports whether any tile has reached the target value. It only
// reports the condition; it never ends the game by itself. Continuing past
// the target is supported, and the caller tracks a "has already won" flag
// so the same board cannot retrigger the win.
func CheckWin(b Board, target int) bool {
	if target <= 0 {
		target = DefaultWinTarget
	}
	return MaxTile(b) >= target
}

// CheckGameOver reports whether no legal move remains: every cell occupied
// and none of the four directions would change the board. The probe runs
// the real resolver per direction rather than an adjacency shortcut, so it
// can never disagree with what a move would actually do.
func CheckGameOver(b Board) bool {
	if len(EmptyCells(b)) > 0 {
		return false
	}
	for _, dir := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if Resolve(b, dir, nil).Valid {
			return false
		}
	}
	return true
}
