package entities

import (
	"time"
)

// Bankroll represents a player's persistent balance across rounds. The
// round engine never touches it directly; settlement yields a signed
// delta and the bankroll service applies it.
type Bankroll struct {
	PlayerID    string    // Owning player
	Balance     int64     // Current balance in chips
	LastBet     int64     // Last accepted bet, used for rebets
	LastUpdated time.Time // When the bankroll was last updated
}

// TransactionType represents the type of bankroll transaction
type TransactionType string

const (
	TransactionTypeRound TransactionType = "ROUND"
	TransactionTypeReset TransactionType = "RESET"
)

// Transaction represents a single bankroll movement
type Transaction struct {
	ID           string          // Unique identifier
	PlayerID     string          // Player associated with the transaction
	Amount       int64           // Signed amount (round net or reset delta)
	Type         TransactionType // Type of transaction
	ReferenceID  string          // Optional reference (round ID for round nets)
	Description  string          // Human-readable description
	Timestamp    time.Time       // When the transaction occurred
	BalanceAfter int64           // Balance after this transaction
}
