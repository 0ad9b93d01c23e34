// Package storage provides SQLite-based persistence for the session log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only per-session statistics are stored; boards are never saved or restored.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrDuplicateSession is returned when a session ID is saved twice.
var ErrDuplicateSession = errors.New("storage: duplicate session id")

// Store manages the SQLite database connection for the session log.
type Store struct {
	db *sql.DB
}

// Session is one play session as recorded when it ends.
type Session struct {
	ID           string // UUID; generated by SaveSession when empty
	Player       string
	Seed         int64
	Games        int
	Moves        int
	ChangedMoves int
	Merges       int
	TilesSpawned int
	MaxTile      int
	StartedAt    time.Time
	EndedAt      time.Time
}

// Duration returns how long the session lasted.
func (s Session) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			seed INTEGER NOT NULL,
			games INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			changed_moves INTEGER NOT NULL DEFAULT 0,
			merges INTEGER NOT NULL DEFAULT 0,
			tiles_spawned INTEGER NOT NULL DEFAULT 0,
			max_tile INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player);
		CREATE INDEX IF NOT EXISTS idx_sessions_ended ON sessions(ended_at DESC);
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

// SaveSession records a finished session and returns its ID.
func (s *Store) SaveSession(sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = NewSessionID()
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, player, seed, games, moves, changed_moves, merges, tiles_spawned, max_tile, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.Player,
		sess.Seed,
		sess.Games,
		sess.Moves,
		sess.ChangedMoves,
		sess.Merges,
		sess.TilesSpawned,
		sess.MaxTile,
		sess.StartedAt.UnixMilli(),
		sess.EndedAt.UnixMilli(),
	)
	if err != nil {
		if existing, lookupErr := s.SessionByID(sess.ID); lookupErr == nil && existing != nil {
			return "", ErrDuplicateSession
		}
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}

	return sess.ID, nil
}

const sessionColumns = `id, player, seed, games, moves, changed_moves, merges,
	tiles_spawned, max_tile, started_at, ended_at`

// RecentSessions returns the most recently finished sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// SessionsByPlayer returns all sessions of one player, newest first.
func (s *Store) SessionsByPlayer(player string) ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE player = ?
		 ORDER BY ended_at DESC`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// SessionByID returns a single session, or nil if it does not exist.
func (s *Store) SessionByID(id string) (*Session, error) {
	rows, err := s.db.Query(
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

// scanSessions reads and closes rows.
func scanSessions(rows *sql.Rows) ([]Session, error) {
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var started, ended int64
		if err := rows.Scan(
			&sess.ID,
			&sess.Player,
			&sess.Seed,
			&sess.Games,
			&sess.Moves,
			&sess.ChangedMoves,
			&sess.Merges,
			&sess.TilesSpawned,
			&sess.MaxTile,
			&started,
			&ended,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.StartedAt = time.UnixMilli(started)
		sess.EndedAt = time.UnixMilli(ended)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}
