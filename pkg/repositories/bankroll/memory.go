package bankroll

import (
	"context"
	"sync"

	"github.com/cardhouse/blackjack/pkg/entities"
)

// MemoryRepository implements Repository with in-process maps. Used by
// tests and by the --memory flag for throwaway sessions.
type MemoryRepository struct {
	mu           sync.RWMutex
	bankrolls    map[string]*entities.Bankroll
	transactions map[string][]*entities.Transaction
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		bankrolls:    make(map[string]*entities.Bankroll),
		transactions: make(map[string][]*entities.Transaction),
	}
}

// GetBankroll retrieves a bankroll by player ID
func (r *MemoryRepository) GetBankroll(ctx context.Context, playerID string) (*entities.Bankroll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bankroll, exists := r.bankrolls[playerID]
	if !exists {
		return nil, ErrBankrollNotFound
	}

	copied := *bankroll
	return &copied, nil
}

// SaveBankroll creates or updates a bankroll
func (r *MemoryRepository) SaveBankroll(ctx context.Context, bankroll *entities.Bankroll) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *bankroll
	r.bankrolls[bankroll.PlayerID] = &copied
	return nil
}

// AddTransaction records a new transaction
func (r *MemoryRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *transaction
	r.transactions[transaction.PlayerID] = append(r.transactions[transaction.PlayerID], &copied)
	return nil
}

// GetTransactions retrieves recent transactions for a player, newest first
func (r *MemoryRepository) GetTransactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.transactions[playerID]
	transactions := make([]*entities.Transaction, 0, limit)
	for i := len(stored) - 1; i >= 0 && len(transactions) < limit; i-- {
		copied := *stored[i]
		transactions = append(transactions, &copied)
	}
	return transactions, nil
}

// Close is a no-op for the in-memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
