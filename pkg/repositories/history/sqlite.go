package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cardhouse/blackjack/pkg/entities"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const createRoundsTableSQL = `
	CREATE TABLE IF NOT EXISTS rounds (
		id TEXT PRIMARY KEY,
		player_id TEXT NOT NULL,
		net INTEGER NOT NULL,
		dealer_value INTEGER NOT NULL,
		hand_count INTEGER NOT NULL,
		outcomes TEXT NOT NULL,
		completed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

const createRoundsIndexSQL = `
	CREATE INDEX IF NOT EXISTS idx_rounds_player_id ON rounds(player_id, completed_at DESC)
	`

const sqliteTimeFormat = "2006-01-02 15:04:05"

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	for _, stmt := range []string{createRoundsTableSQL, createRoundsIndexSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("error creating schema: %w", err)
		}
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveRound persists a completed round
func (r *SQLiteRepository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now()
	}

	query := `
		INSERT INTO rounds (id, player_id, net, dealer_value, hand_count, outcomes, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PlayerID,
		record.Net,
		record.DealerValue,
		record.HandCount,
		record.Outcomes,
		record.CompletedAt.Format(sqliteTimeFormat),
	)
	if err != nil {
		return fmt.Errorf("error saving round: %w", err)
	}

	return nil
}

// RecentRounds retrieves the latest rounds for a player, newest first
func (r *SQLiteRepository) RecentRounds(ctx context.Context, playerID string, limit int) ([]*entities.RoundRecord, error) {
	query := `
		SELECT id, player_id, net, dealer_value, hand_count, outcomes, completed_at
		FROM rounds
		WHERE player_id = ?
		ORDER BY completed_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying rounds: %w", err)
	}
	defer rows.Close()

	var records []*entities.RoundRecord

	for rows.Next() {
		var record entities.RoundRecord
		var completedAt string

		err := rows.Scan(
			&record.ID,
			&record.PlayerID,
			&record.Net,
			&record.DealerValue,
			&record.HandCount,
			&record.Outcomes,
			&completedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning round row: %w", err)
		}

		record.CompletedAt, err = time.Parse(sqliteTimeFormat, completedAt)
		if err != nil {
			return nil, fmt.Errorf("error parsing timestamp %q: %w", completedAt, err)
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating round rows: %w", err)
	}

	return records, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
