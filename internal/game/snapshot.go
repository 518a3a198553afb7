package game

import "github.com/okazmirenko/twenty48/internal/engine"

// Snapshot captures the resumable session state. Only the last committed
// board is ever captured - never a mid-animation one - so restoring always
// lands on a settled, consistent position.
type Snapshot struct {
	Board          [engine.BoardSize][engine.BoardSize]int `json:"board"`
	Score          int                                     `json:"score"`
	MoveCount      int                                     `json:"moveCount"`
	ElapsedSeconds int                                     `json:"elapsedSeconds"`
	MaxTile        int                                     `json:"maxTile"`
	Won            bool                                    `json:"won"`
	GameOver       bool                                    `json:"gameOver"`
}

// Snapshot returns the current committed state. Safe to call while a move
// is animating: the pre-commit board is reported until the motion lands.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Board:          s.board.Values(),
		Score:          s.score,
		MoveCount:      s.moveCount,
		ElapsedSeconds: int(s.Elapsed().Seconds()),
		MaxTile:        engine.MaxTile(s.board),
		Won:            s.won,
		GameOver:       s.gameOver,
	}
}
