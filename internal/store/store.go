// Package store persists completed games to a local SQLite database:
// one row per game, with a JSON move log column, saved from a background
// goroutine so the search/CLI loop never blocks on disk I/O.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"aiwargame/internal/board"
	"aiwargame/internal/game"
)

// MoveRecord is one ply of a saved game's move log.
type MoveRecord struct {
	Ply     int    `json:"ply"`
	Player  string `json:"player"`
	Action  string `json:"action"`
	Outcome string `json:"outcome"`
}

// Store wraps the SQLite handle that holds completed games.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at dbPath and
// ensures the games table exists.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		started_at DATETIME,
		ended_at DATETIME,
		board_dim INTEGER,
		winner TEXT,
		reason TEXT,
		total_moves INTEGER,
		moves_json TEXT
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGame persists a finished game's result and move log under a fresh
// UUID. The insert runs in a background goroutine so callers are never
// blocked waiting on disk; a failed save is logged, not returned, since by
// the time a game ends there is nobody left to hand an error back to.
func (s *Store) SaveGame(startedAt time.Time, dim int8, result game.Result, moves []MoveRecord) {
	id := uuid.New().String()
	movesJSON, err := json.Marshal(moves)
	if err != nil {
		log.Printf("store: marshal move log: %v", err)
		return
	}
	endedAt := time.Now()

	go func() {
		_, err := s.db.Exec(
			`INSERT INTO games (id, started_at, ended_at, board_dim, winner, reason, total_moves, moves_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, startedAt, endedAt, dim, result.Status.String(), result.Reason, len(moves), string(movesJSON),
		)
		if err != nil {
			log.Printf("store: save game %s: %v", id, err)
			return
		}
		log.Printf("store: saved game %s (%s)", id, result.Status)
	}()
}

// MoveRecordFor captures one successfully played turn as a MoveRecord.
func MoveRecordFor(ply int, mover board.Player, a game.Action, outcome game.Outcome) MoveRecord {
	return MoveRecord{
		Ply:     ply,
		Player:  mover.String(),
		Action:  a.String(),
		Outcome: outcome.String(),
	}
}
