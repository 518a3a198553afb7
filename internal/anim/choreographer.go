// Package anim turns a move plan into a time-ordered sequence of tile
// motions. The Choreographer is a strictly sequential state machine
// (Idle -> Sliding -> Merging -> Spawning -> Idle) driven by fixed
// simulation ticks; a single Busy flag gates player input for the whole
// sequence. Invalid moves never leave Idle - they play a brief shake
// instead.
package anim

import "github.com/okazmirenko/twenty48/internal/engine"

// Phase is the choreographer's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSliding
	PhaseMerging
	PhaseSpawning
	PhaseShaking
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSliding:
		return "sliding"
	case PhaseMerging:
		return "merging"
	case PhaseSpawning:
		return "spawning"
	case PhaseShaking:
		return "shaking"
	default:
		return "unknown"
	}
}

// Transition is reported by Advance when a phase completes, so the session
// can commit the board, spawn, or run terminal detection at the right
// moment.
type Transition int

const (
	TransitionNone Transition = iota
	// TransitionMotionDone fires when all slide and merge motion has
	// finished. The choreographer is now in PhaseSpawning and expects the
	// caller to commit the post-move board and hand over the spawned tile
	// via SetSpawn.
	TransitionMotionDone
	// TransitionSpawnDone fires when the spawn pop has finished and the
	// choreographer is Idle again; terminal detection runs now.
	TransitionSpawnDone
	// TransitionShakeDone fires when the invalid-move shake has finished.
	TransitionShakeDone
)

// Durations holds the per-phase lengths in simulation ticks.
type Durations struct {
	SlideTicks int
	MergeTicks int
	SpawnTicks int
	ShakeTicks int
}

// DefaultDurations returns the standard phase lengths at 60 ticks/second:
// ~133ms slide, ~100ms merge bounce, ~100ms spawn pop, ~66ms shake.
func DefaultDurations() Durations {
	return Durations{
		SlideTicks: 8,
		MergeTicks: 6,
		SpawnTicks: 6,
		ShakeTicks: 4,
	}
}

// sanitized clamps every duration to at least one tick so a zeroed config
// cannot stall a phase forever.
func (d Durations) sanitized() Durations {
	if d.SlideTicks < 1 {
		d.SlideTicks = 1
	}
	if d.MergeTicks < 1 {
		d.MergeTicks = 1
	}
	if d.SpawnTicks < 1 {
		d.SpawnTicks = 1
	}
	if d.ShakeTicks < 1 {
		d.ShakeTicks = 1
	}
	return d
}

// Choreographer schedules the motion phases for one board. Exactly one
// move is ever in flight; a new input while Busy is dropped by the caller.
// There is no cancellation: an accepted move always runs Sliding through
// Spawning to completion before Idle is re-entered.
type Choreographer struct {
	phase Phase
	ticks int
	dur   Durations

	plan   engine.MovePlan
	before engine.Board // board as it was when the move was accepted
	after  engine.Board // authoritative post-move board (incl. merges)

	spawn    engine.SpawnInfo
	hasSpawn bool
}

// New creates a choreographer in Idle with the given phase durations.
func New(d Durations) *Choreographer {
	return &Choreographer{dur: d.sanitized()}
}

// Phase returns the current phase.
func (c *Choreographer) Phase() Phase {
	return c.phase
}

// Busy reports whether a sequence is in flight. While true, new direction
// inputs must be dropped, not queued.
func (c *Choreographer) Busy() bool {
	return c.phase != PhaseIdle
}

// Plan returns the plan for the move currently in flight.
func (c *Choreographer) Plan() engine.MovePlan {
	return c.plan
}

// StartMove begins the Sliding phase for a resolved move. The before board
// is the pre-move state the plan was computed from; after is the resolver's
// post-move board, committed to the visible state once motion completes.
// Returns false without effect if a sequence is already in flight.
func (c *Choreographer) StartMove(plan engine.MovePlan, before, after engine.Board) bool {
	if c.phase != PhaseIdle {
		return false
	}
	c.plan = plan
	c.before = before
	c.after = after
	c.hasSpawn = false
	c.phase = PhaseSliding
	c.ticks = 0
	return true
}

// Shake plays the invalid-move feedback. The board never changes; the
// phase returns to Idle by itself. Returns false if not Idle.
func (c *Choreographer) Shake() bool {
	if c.phase != PhaseIdle {
		return false
	}
	c.phase = PhaseShaking
	c.ticks = 0
	return true
}

// SetSpawn hands over the freshly spawned tile once the caller has
// committed the post-move board. Must be called during PhaseSpawning,
// before the next Advance, for the pop animation to track it.
func (c *Choreographer) SetSpawn(after engine.Board, info engine.SpawnInfo) {
	c.after = after
	c.spawn = info
	c.hasSpawn = true
}

// Progress returns the current phase's completion in [0,1].
func (c *Choreographer) Progress() float64 {
	var dur int
	switch c.phase {
	case PhaseSliding:
		dur = c.dur.SlideTicks
	case PhaseMerging:
		dur = c.dur.MergeTicks
	case PhaseSpawning:
		dur = c.dur.SpawnTicks
	case PhaseShaking:
		dur = c.dur.ShakeTicks
	default:
		return 0
	}
	p := float64(c.ticks) / float64(dur)
	if p > 1 {
		p = 1
	}
	return p
}

// Advance moves the clock one tick and returns the transition, if any,
// that this tick completed. Transitions are one-directional; phases are
// never skipped backward and never re-entered within a sequence.
func (c *Choreographer) Advance() Transition {
	if c.phase == PhaseIdle {
		return TransitionNone
	}

	c.ticks++

	switch c.phase {
	case PhaseSliding:
		if c.ticks < c.dur.SlideTicks {
			return TransitionNone
		}
		// Both merge sources have reached their collision points; only now
		// may the merged tile become visible.
		if len(c.plan.Merges) > 0 {
			c.phase = PhaseMerging
			c.ticks = 0
			return TransitionNone
		}
		c.phase = PhaseSpawning
		c.ticks = 0
		return TransitionMotionDone

	case PhaseMerging:
		if c.ticks < c.dur.MergeTicks {
			return TransitionNone
		}
		c.phase = PhaseSpawning
		c.ticks = 0
		return TransitionMotionDone

	case PhaseSpawning:
		if c.ticks < c.dur.SpawnTicks {
			return TransitionNone
		}
		c.phase = PhaseIdle
		c.ticks = 0
		c.plan = engine.MovePlan{}
		return TransitionSpawnDone

	case PhaseShaking:
		if c.ticks < c.dur.ShakeTicks {
			return TransitionNone
		}
		c.phase = PhaseIdle
		c.ticks = 0
		return TransitionShakeDone
	}

	return TransitionNone
}

// Settle forces the choreographer back to Idle with no motion in flight.
// Used when restoring a saved session: a resumed board starts settled, and
// no slide or spawn animation replays for tiles that were already placed.
func (c *Choreographer) Settle() {
	c.phase = PhaseIdle
	c.ticks = 0
	c.plan = engine.MovePlan{}
	c.hasSpawn = false
}
