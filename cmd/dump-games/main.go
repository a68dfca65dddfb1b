// Command dump-games prints every game persisted by internal/store to
// stdout, most recent first.
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

func main() {
	dbPath := flag.String("db", "games.db", "path to the SQLite database written by internal/store")
	flag.Parse()

	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		log.Fatalf("database not found at %s", *dbPath)
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT id, started_at, ended_at, board_dim, winner, reason, total_moves, moves_json
		FROM games
		ORDER BY started_at DESC
	`)
	if err != nil {
		log.Fatalf("failed to query games: %v", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id, winner, reason, movesJSON string
		var startedAt, endedAt time.Time
		var dim, totalMoves int

		if err := rows.Scan(&id, &startedAt, &endedAt, &dim, &winner, &reason, &totalMoves, &movesJSON); err != nil {
			log.Fatalf("failed to scan row: %v", err)
		}

		fmt.Printf("Game ID: %s\n", id)
		fmt.Printf("Time: %s - %s\n", startedAt.Format(time.RFC822), endedAt.Format(time.RFC822))
		fmt.Printf("Board: %dx%d, %d moves played\n", dim, dim, totalMoves)
		fmt.Printf("Result: %s (%s)\n", winner, reason)

		var moveLog []map[string]any
		if err := json.Unmarshal([]byte(movesJSON), &moveLog); err == nil {
			formatted, _ := json.MarshalIndent(moveLog, "", "  ")
			fmt.Println(string(formatted))
		} else {
			fmt.Println(movesJSON)
		}
		fmt.Println("--------------------------------------------------")
		count++
	}

	fmt.Printf("Total games found: %d\n", count)
}
