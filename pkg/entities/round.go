package entities

import "time"

// RoundRecord is the persisted outcome of a completed round.
type RoundRecord struct {
	ID          string    // Round ID
	PlayerID    string    // Owning player
	Net         int64     // Signed round net, hands plus insurance
	DealerValue int       // Dealer's final total
	HandCount   int       // Number of player hands after splits
	Outcomes    string    // Per-hand results, comma separated (e.g. "WIN,BUST")
	CompletedAt time.Time // When the round settled
}
