package history

import (
	"context"
	"sync"

	"github.com/cardhouse/blackjack/pkg/entities"
)

// MemoryRepository implements Repository with an in-process slice.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string][]*entities.RoundRecord
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string][]*entities.RoundRecord),
	}
}

// SaveRound persists a completed round
func (r *MemoryRepository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *record
	r.records[record.PlayerID] = append(r.records[record.PlayerID], &copied)
	return nil
}

// RecentRounds retrieves the latest rounds for a player, newest first
func (r *MemoryRepository) RecentRounds(ctx context.Context, playerID string, limit int) ([]*entities.RoundRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.records[playerID]
	records := make([]*entities.RoundRecord, 0, limit)
	for i := len(stored) - 1; i >= 0 && len(records) < limit; i-- {
		copied := *stored[i]
		records = append(records, &copied)
	}
	return records, nil
}

// Close is a no-op for the in-memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
