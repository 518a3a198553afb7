package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okazmirenko/twenty48/internal/core"
	"github.com/okazmirenko/twenty48/internal/game"
	"github.com/okazmirenko/twenty48/internal/storage"
)

// snapshotEvery is how many ticks pass between background snapshot saves,
// so an abrupt disconnect loses at most a few seconds of play.
const snapshotEvery = 300

// eventFlags collects session events for the next tick. A pointer shared
// with the session's callbacks survives Bubble Tea's model copying.
type eventFlags struct {
	win      bool
	gameOver bool
}

// Model is the Bubble Tea model for a single game of 2048.
type Model struct {
	sess    *game.Session
	store   *storage.Store
	config  core.RuntimeConfig
	gameCfg game.Config
	screen  *core.Screen
	keys    KeyMap
	flags   *eventFlags

	best        int
	tickCount   int
	winBanner   bool
	resultSaved bool
	quitting    bool
}

// NewModel creates the model, resuming from a snapshot when one is given.
func NewModel(gameCfg game.Config, store *storage.Store, cfg core.RuntimeConfig, resume *game.Snapshot) Model {
	if cfg.Seed != 0 {
		gameCfg.Seed = cfg.Seed
	}

	m := Model{
		store:   store,
		config:  cfg,
		gameCfg: gameCfg,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:    DefaultKeyMap(),
		flags:   &eventFlags{},
	}

	ev := game.Events{
		OnWin:      func() { m.flags.win = true },
		OnGameOver: func() { m.flags.gameOver = true },
	}

	if resume != nil {
		m.sess = game.Restore(gameCfg, ev,
			resume.Board, resume.Score, resume.MoveCount,
			time.Duration(resume.ElapsedSeconds)*time.Second, resume.Won)
	} else {
		m.sess = game.New(gameCfg, ev)
	}

	if store != nil {
		if st, err := store.Stats(); err == nil {
			m.best = st.BestScore
		}
	}

	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if action == core.ActionQuit {
		m.persistOnExit()
		m.quitting = true
		return m, tea.Quit
	}

	// The win banner swallows the first key after it appears.
	if m.winBanner {
		m.winBanner = false
		return m, nil
	}

	switch action {
	case core.ActionNewGame:
		return m.startFresh()

	case core.ActionRestart:
		if m.sess.GameOver() {
			return m.startFresh()
		}

	default:
		if dir, ok := directionFor(action); ok {
			m.sess.HandleInput(dir)
		}
	}

	return m, nil
}

// startFresh abandons the current session and begins a new one. Abandoned
// games are not recorded in history.
func (m Model) startFresh() (tea.Model, tea.Cmd) {
	cfg := m.gameCfg
	cfg.Seed = 0 // reseed from the clock

	m.flags = &eventFlags{}
	ev := game.Events{
		OnWin:      func() { m.flags.win = true },
		OnGameOver: func() { m.flags.gameOver = true },
	}
	m.sess = game.New(cfg, ev)
	m.winBanner = false
	m.resultSaved = false

	if m.store != nil {
		//nolint:errcheck // Best-effort; the old snapshot is stale either way
		m.store.ClearSnapshot()
	}
	return m, nil
}

// handleTick advances the simulation one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.sess.Advance()
	m.tickCount++

	if m.sess.Score() > m.best {
		m.best = m.sess.Score()
	}

	if m.flags.win {
		m.flags.win = false
		m.winBanner = true
	}

	if m.flags.gameOver {
		m.flags.gameOver = false
		m.saveResult()
	}

	// Periodic background save so a dropped connection can resume.
	if m.store != nil && m.tickCount%snapshotEvery == 0 && !m.sess.GameOver() && !m.sess.Busy() {
		//nolint:errcheck // Best-effort save, play continues regardless
		m.store.SaveSnapshot(m.sess.Snapshot())
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished game and removes the resume snapshot.
func (m *Model) saveResult() {
	if m.resultSaved || m.store == nil {
		return
	}
	m.resultSaved = true

	elapsed := m.sess.Elapsed()
	//nolint:errcheck // Best-effort save
	m.store.AppendResult(storage.GameResult{
		StartedAt:       time.Now().Add(-elapsed),
		EndedAt:         time.Now(),
		DurationSeconds: int(elapsed.Seconds()),
		FinalScore:      m.sess.Score(),
		HighestTile:     m.sess.MaxTile(),
		MoveCount:       m.sess.MoveCount(),
		Won:             m.sess.Won(),
	})
	//nolint:errcheck
	m.store.ClearSnapshot()
}

// persistOnExit saves an in-progress game for next launch, or clears the
// snapshot when the game already ended.
func (m *Model) persistOnExit() {
	if m.store == nil {
		return
	}
	if m.sess.GameOver() {
		//nolint:errcheck
		m.store.ClearSnapshot()
		return
	}
	//nolint:errcheck // Best-effort save
	m.store.SaveSnapshot(m.sess.Snapshot())
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawGame(m.screen, m.sess, m.best, m.winBanner)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local terminal session.
func Run(gameCfg game.Config, store *storage.Store, cfg core.RuntimeConfig, resume *game.Snapshot) error {
	model := NewModel(gameCfg, store, cfg, resume)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
