// Package game ties the pure engine and the animation choreographer into a
// playable session: score and move counters, input gating, event emission,
// and snapshot/restore of the committed state.
package game

import (
	"math/rand"
	"time"

	"github.com/okazmirenko/twenty48/internal/anim"
	"github.com/okazmirenko/twenty48/internal/engine"
)

// Events are the callbacks the UI shell subscribes to. Nil callbacks are
// skipped. All events fire synchronously on the session's single logical
// timeline.
type Events struct {
	OnInvalidMove   func()
	OnMoveCommitted func(newScore int)
	OnWin           func()
	OnGameOver      func()
}

// Config holds the tunable session parameters.
type Config struct {
	WinTarget int
	FourProb  float64
	Durations anim.Durations
	Seed      int64 // 0 means seed from the clock
}

// DefaultConfig returns the classic 2048 rules.
func DefaultConfig() Config {
	return Config{
		WinTarget: engine.DefaultWinTarget,
		FourProb:  engine.DefaultFourProb,
		Durations: anim.DefaultDurations(),
	}
}

func (c Config) sanitized() Config {
	if c.WinTarget <= 0 {
		c.WinTarget = engine.DefaultWinTarget
	}
	if c.FourProb <= 0 || c.FourProb >= 1 {
		c.FourProb = engine.DefaultFourProb
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// Session is one game in progress. It is single-threaded by design: the
// engine calls are pure and synchronous, and the only time-dependent part
// is the choreographer's tick clock, driven by Advance.
type Session struct {
	cfg    Config
	rng    *rand.Rand
	ids    engine.IDSource
	events Events
	chor   *anim.Choreographer

	board     engine.Board // last committed board; never a mid-animation state
	score     int
	moveCount int
	won       bool // one-shot win latch; survives continue-after-win
	gameOver  bool

	startedAt time.Time
	elapsed   time.Duration // carried over from a restored session

	// pending holds a resolved move whose animation is still in flight.
	pending *engine.MoveResult
}

// New starts a fresh session with two spawned tiles, the standard opening.
func New(cfg Config, ev Events) *Session {
	cfg = cfg.sanitized()

	s := &Session{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		events:    ev,
		chor:      anim.New(cfg.Durations),
		startedAt: time.Now(),
	}

	s.board, _, _ = engine.Spawn(s.board, s.rng, &s.ids, cfg.FourProb)
	s.board, _, _ = engine.Spawn(s.board, s.rng, &s.ids, cfg.FourProb)
	s.chor.Settle()
	return s
}

// Restore resumes a session from a saved snapshot. The board arrives as
// plain values and gets fresh identities; the session lands directly in
// Idle with every tile settled, so nothing replays on resume.
func Restore(cfg Config, ev Events, vals [engine.BoardSize][engine.BoardSize]int, score, moveCount int, elapsed time.Duration, won bool) *Session {
	cfg = cfg.sanitized()

	s := &Session{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		events:    ev,
		chor:      anim.New(cfg.Durations),
		score:     score,
		moveCount: moveCount,
		won:       won,
		startedAt: time.Now(),
		elapsed:   elapsed,
	}

	s.board = engine.FromValues(vals, &s.ids)
	s.chor.Settle()
	s.gameOver = engine.CheckGameOver(s.board)
	return s
}

// HandleInput feeds one direction into the session. Inputs are dropped
// (never queued) while a move is animating or after game over. An invalid
// move plays the shake feedback and changes nothing else. Returns whether
// the input started a move sequence.
func (s *Session) HandleInput(dir engine.Direction) bool {
	if !dir.Valid() {
		// Caller programming error; the four symbols are the whole input
		// contract.
		return false
	}
	if s.chor.Busy() || s.gameOver {
		return false
	}

	res := engine.Resolve(s.board, dir, &s.ids)
	if !res.Valid {
		s.chor.Shake()
		if s.events.OnInvalidMove != nil {
			s.events.OnInvalidMove()
		}
		return false
	}

	plan := engine.PlanMove(s.board, dir)
	s.pending = &res
	s.chor.StartMove(plan, s.board, res.Board)
	return true
}

// Advance drives the choreographer one tick and performs the commit,
// spawn, and terminal-state steps at their scheduled moments.
func (s *Session) Advance() {
	switch s.chor.Advance() {
	case anim.TransitionMotionDone:
		s.commitPending()

	case anim.TransitionSpawnDone:
		s.detectTerminal()
	}
}

// commitPending makes the resolved board authoritative, updates the
// counters, and spawns the new tile for the pop phase. A valid move always
// leaves at least one empty cell, so the spawn cannot fail here.
func (s *Session) commitPending() {
	if s.pending == nil {
		return
	}

	s.board = s.pending.Board
	s.score += s.pending.ScoreDelta
	s.moveCount++
	s.pending = nil

	if s.events.OnMoveCommitted != nil {
		s.events.OnMoveCommitted(s.score)
	}

	spawned, info, ok := engine.Spawn(s.board, s.rng, &s.ids, s.cfg.FourProb)
	if ok {
		s.board = spawned
		s.chor.SetSpawn(s.board, info)
	}
}

// detectTerminal runs the win and game-over checks against the post-spawn
// board. Win is one-shot: once latched, re-detection on later boards never
// fires the event again, and play may continue.
func (s *Session) detectTerminal() {
	if !s.won && engine.CheckWin(s.board, s.cfg.WinTarget) {
		s.won = true
		if s.events.OnWin != nil {
			s.events.OnWin()
		}
	}

	if engine.CheckGameOver(s.board) {
		s.gameOver = true
		if s.events.OnGameOver != nil {
			s.events.OnGameOver()
		}
	}
}

// Board returns the last committed board. During an in-flight animation
// this is still the pre-move board until the motion completes.
func (s *Session) Board() engine.Board {
	return s.board
}

// Score returns the running total. It never decreases.
func (s *Session) Score() int {
	return s.score
}

// MoveCount returns the number of committed moves.
func (s *Session) MoveCount() int {
	return s.moveCount
}

// MaxTile returns the highest tile on the committed board.
func (s *Session) MaxTile() int {
	return engine.MaxTile(s.board)
}

// Won reports whether the win target has been reached at any point.
func (s *Session) Won() bool {
	return s.won
}

// GameOver reports whether no legal move remains.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// Busy reports whether a move sequence is animating; new input is dropped
// while true.
func (s *Session) Busy() bool {
	return s.chor.Busy()
}

// Phase exposes the choreographer phase for rendering.
func (s *Session) Phase() anim.Phase {
	return s.chor.Phase()
}

// Visuals returns the per-tile render instructions for this tick.
func (s *Session) Visuals() []anim.TileVisual {
	if s.chor.Phase() == anim.PhaseIdle || s.chor.Phase() == anim.PhaseShaking {
		// The settled board is authoritative outside a sequence.
		return settled(s.board)
	}
	return s.chor.Visuals()
}

// ShakeOffset is the whole-board displacement for invalid-move feedback.
func (s *Session) ShakeOffset() float64 {
	return s.chor.ShakeOffset()
}

// Elapsed returns total play time including restored sessions.
func (s *Session) Elapsed() time.Duration {
	return s.elapsed + time.Since(s.startedAt)
}

// WinTarget returns the configured winning tile value.
func (s *Session) WinTarget() int {
	return s.cfg.WinTarget
}

func settled(b engine.Board) []anim.TileVisual {
	var out []anim.TileVisual
	for r := range engine.BoardSize {
		for c := range engine.BoardSize {
			tl := b[r][c]
			if tl.Empty() {
				continue
			}
			out = append(out, anim.TileVisual{
				ID: tl.ID, Value: tl.Value,
				Row: float64(r), Col: float64(c), Scale: 1,
			})
		}
	}
	return out
}
