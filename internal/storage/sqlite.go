// Package storage persists game history and the resumable session
// snapshot in SQLite, using the pure-Go modernc.org/sqlite driver to avoid
// CGO. Persistence is best-effort by contract: a missing or unreadable
// snapshot means a fresh session, never a blocked game.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/okazmirenko/twenty48/internal/game"
)

// HistoryLimit caps how many completed games are retained,
// most-recent-first.
const HistoryLimit = 50

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameResult is one completed session, appended to history.
type GameResult struct {
	ID              string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	FinalScore      int
	HighestTile     int
	MoveCount       int
	Won             bool
}

// Stats aggregates the retained history.
type Stats struct {
	GamesPlayed       int
	Wins              int
	BestScore         int
	MaxTileEver       int
	FastestWinSeconds int // 0 when no win recorded
}

// Open creates or opens the database at the given path, creating parent
// directories and running migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL,
			duration_secs INTEGER NOT NULL,
			final_score INTEGER NOT NULL,
			highest_tile INTEGER NOT NULL,
			move_count INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_results_ended ON results(ended_at DESC);

		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AppendResult records a completed game and prunes history beyond
// HistoryLimit entries. A missing ID gets a fresh UUID.
func (s *Store) AppendResult(r GameResult) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO results
		 (id, started_at, ended_at, duration_secs, final_score, highest_tile, move_count, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.StartedAt.UTC().Format(time.RFC3339),
		r.EndedAt.UTC().Format(time.RFC3339),
		r.DurationSeconds,
		r.FinalScore,
		r.HighestTile,
		r.MoveCount,
		boolToInt(r.Won),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}

	_, err = s.db.Exec(
		`DELETE FROM results WHERE id NOT IN (
			SELECT id FROM results ORDER BY ended_at DESC LIMIT ?
		)`,
		HistoryLimit,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot prune history: %w", err)
	}

	return r.ID, nil
}

// History returns up to limit completed games, most recent first.
func (s *Store) History(limit int) ([]GameResult, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, ended_at, duration_secs, final_score, highest_tile, move_count, won
		 FROM results
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var r GameResult
		var started, ended string
		var won int
		if err := rows.Scan(&r.ID, &started, &ended, &r.DurationSeconds,
			&r.FinalScore, &r.HighestTile, &r.MoveCount, &won); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.EndedAt = parseTime(ended)
		r.Won = won != 0
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Stats aggregates the retained history.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        COALESCE(MAX(final_score), 0),
		        COALESCE(MAX(highest_tile), 0)
		 FROM results`,
	).Scan(&st.GamesPlayed, &st.Wins, &st.BestScore, &st.MaxTileEver)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot aggregate stats: %w", err)
	}

	var fastest sql.NullInt64
	err = s.db.QueryRow(
		`SELECT MIN(duration_secs) FROM results WHERE won = 1`,
	).Scan(&fastest)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query fastest win: %w", err)
	}
	if fastest.Valid {
		st.FastestWinSeconds = int(fastest.Int64)
	}

	return st, nil
}

// snapshotKey is the single row holding the resumable session.
const snapshotKey = "current"

// SaveSnapshot stores the resumable session state as a JSON blob,
// replacing any previous snapshot.
func (s *Store) SaveSnapshot(snap game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO snapshots (key, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET state = excluded.state, updated_at = CURRENT_TIMESTAMP`,
		snapshotKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the saved session, or nil when none exists.
// A corrupt snapshot also returns nil: the caller starts a fresh session
// rather than refusing to play.
func (s *Store) LoadSnapshot() (*game.Snapshot, error) {
	var data string
	err := s.db.QueryRow(
		`SELECT state FROM snapshots WHERE key = ?`, snapshotKey,
	).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load snapshot: %w", err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, nil
	}
	return &snap, nil
}

// ClearSnapshot removes the saved session, typically after the game it
// belonged to has ended.
func (s *Store) ClearSnapshot() error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, snapshotKey)
	if err != nil {
		return fmt.Errorf("storage: cannot clear snapshot: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
