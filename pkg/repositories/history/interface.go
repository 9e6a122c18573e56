package history

import (
	"context"

	"github.com/cardhouse/blackjack/pkg/entities"
)

// Repository defines the interface for round history operations
type Repository interface {
	// SaveRound persists a completed round
	SaveRound(ctx context.Context, record *entities.RoundRecord) error

	// RecentRounds retrieves the latest rounds for a player, newest first
	RecentRounds(ctx context.Context, playerID string, limit int) ([]*entities.RoundRecord, error)

	// Close releases the underlying store
	Close() error
}
