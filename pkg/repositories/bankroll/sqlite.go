package bankroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cardhouse/blackjack/pkg/entities"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite table schemas
const (
	createBankrollsTableSQL = `
	CREATE TABLE IF NOT EXISTS bankrolls (
		player_id TEXT PRIMARY KEY,
		balance INTEGER NOT NULL DEFAULT 0,
		last_bet INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createTransactionsTableSQL = `
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		player_id TEXT NOT NULL,
		amount INTEGER NOT NULL,
		type TEXT NOT NULL,
		reference_id TEXT,
		description TEXT,
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		balance_after INTEGER NOT NULL,
		FOREIGN KEY (player_id) REFERENCES bankrolls(player_id)
	)`

	createTransactionIndexesSQL = `
	CREATE INDEX IF NOT EXISTS idx_transactions_player_id ON transactions(player_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp DESC)
	`
)

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

	for _, stmt := range []string{createBankrollsTableSQL, createTransactionsTableSQL, createTransactionIndexesSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("error creating schema: %w", err)
		}
	}

	return &SQLiteRepository{db: db}, nil
}

// GetBankroll retrieves a bankroll by player ID
func (r *SQLiteRepository) GetBankroll(ctx context.Context, playerID string) (*entities.Bankroll, error) {
	query := `SELECT player_id, balance, last_bet, updated_at FROM bankrolls WHERE player_id = ?`

	var bankroll entities.Bankroll
	var updatedAt string

	err := r.db.QueryRowContext(ctx, query, playerID).Scan(
		&bankroll.PlayerID,
		&bankroll.Balance,
		&bankroll.LastBet,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBankrollNotFound
		}
		return nil, fmt.Errorf("error getting bankroll: %w", err)
	}

	bankroll.LastUpdated, err = parseTimestamp(updatedAt)
	if err != nil {
		return nil, err
	}

	return &bankroll, nil
}

// SaveBankroll creates or updates a bankroll
func (r *SQLiteRepository) SaveBankroll(ctx context.Context, bankroll *entities.Bankroll) error {
	formattedTime := bankroll.LastUpdated.Format(sqliteTimeFormat)

	query := `
		INSERT INTO bankrolls (player_id, balance, last_bet, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			balance = ?,
			last_bet = ?,
			updated_at = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		bankroll.PlayerID, bankroll.Balance, bankroll.LastBet, formattedTime,
		bankroll.Balance, bankroll.LastBet, formattedTime,
	)

	if err != nil {
		return fmt.Errorf("error saving bankroll: %w", err)
	}

	return nil
}

// AddTransaction records a new transaction
func (r *SQLiteRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.Timestamp.IsZero() {
		transaction.Timestamp = time.Now()
	}

	query := `
		INSERT INTO transactions (
			id, player_id, amount, type, reference_id, description, timestamp, balance_after
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.PlayerID,
		transaction.Amount,
		transaction.Type,
		transaction.ReferenceID,
		transaction.Description,
		transaction.Timestamp.Format(sqliteTimeFormat),
		transaction.BalanceAfter,
	)

	if err != nil {
		return fmt.Errorf("error adding transaction: %w", err)
	}

	return nil
}

// GetTransactions retrieves recent transactions for a player
func (r *SQLiteRepository) GetTransactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT id, player_id, amount, type, reference_id, description, timestamp, balance_after
		FROM transactions
		WHERE player_id = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*entities.Transaction

	for rows.Next() {
		var tx entities.Transaction
		var timestamp string

		err := rows.Scan(
			&tx.ID,
			&tx.PlayerID,
			&tx.Amount,
			&tx.Type,
			&tx.ReferenceID,
			&tx.Description,
			&timestamp,
			&tx.BalanceAfter,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}

		tx.Timestamp, err = parseTimestamp(timestamp)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// parseTimestamp tries the formats SQLite has been seen to emit.
func parseTimestamp(value string) (time.Time, error) {
	formats := []string{
		sqliteTimeFormat,
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}

	var parseErr error
	for _, format := range formats {
		var parsed time.Time
		parsed, parseErr = time.Parse(format, value)
		if parseErr == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("error parsing timestamp %q: %w", value, parseErr)
}
