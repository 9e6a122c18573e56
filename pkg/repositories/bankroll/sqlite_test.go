package bankroll

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardhouse/blackjack/pkg/entities"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteBankrollRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	_, err := repo.GetBankroll(ctx, "p1")
	assert.ErrorIs(t, err, ErrBankrollNotFound)

	saved := &entities.Bankroll{
		PlayerID:    "p1",
		Balance:     100000,
		LastBet:     200,
		LastUpdated: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveBankroll(ctx, saved))

	got, err := repo.GetBankroll(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), got.Balance)
	assert.Equal(t, int64(200), got.LastBet)
	assert.Equal(t, saved.LastUpdated, got.LastUpdated)

	// Upsert path.
	saved.Balance = 99500
	require.NoError(t, repo.SaveBankroll(ctx, saved))
	got, err = repo.GetBankroll(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(99500), got.Balance)
}

func TestSQLiteTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.AddTransaction(ctx, &entities.Transaction{
			ID:           "tx-" + string(rune('0'+i)),
			PlayerID:     "p1",
			Amount:       int64(i * 100),
			Type:         entities.TransactionTypeRound,
			ReferenceID:  "round-1",
			Description:  "Round settlement",
			Timestamp:    base.Add(time.Duration(i) * time.Minute),
			BalanceAfter: int64(100000 + i*100),
		}))
	}

	txs, err := repo.GetTransactions(ctx, "p1", 2)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "tx-3", txs[0].ID)
	assert.Equal(t, "tx-2", txs[1].ID)
	assert.Equal(t, entities.TransactionTypeRound, txs[0].Type)
	assert.Equal(t, "round-1", txs[0].ReferenceID)
}

func TestSQLiteAddTransactionFillsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	tx := &entities.Transaction{
		PlayerID: "p1",
		Amount:   -100,
		Type:     entities.TransactionTypeRound,
	}
	require.NoError(t, repo.AddTransaction(ctx, tx))
	assert.NotEmpty(t, tx.ID)
	assert.False(t, tx.Timestamp.IsZero())
}
