package ledger

import (
	"context"
	"testing"
	"time"

	"kirana-backend/internal/database"
	"kirana-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, models.CreditParty) {
	t.Helper()
	l := New(database.NewMemoryStore())
	party, err := l.AddParty(context.Background(), models.CreditParty{
		Name:    "Sharma Traders",
		Phone:   "9800112233",
		Balance: 1000,
	})
	require.NoError(t, err)
	return l, party
}

func TestAddParty(t *testing.T) {
	l, party := newTestLedger(t)

	assert.NotEmpty(t, party.ID)
	assert.False(t, party.JoinDate.IsZero())

	loaded, err := l.Party(context.Background(), party.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sharma Traders", loaded.Name)
	assert.Equal(t, 1000.0, loaded.Balance)
}

func TestAddPartyRequiresName(t *testing.T) {
	l := New(database.NewMemoryStore())
	_, err := l.AddParty(context.Background(), models.CreditParty{Phone: "123"})
	assert.ErrorIs(t, err, ErrMissingPartyName)
}

func TestAddPartyNegativeInitialBalance(t *testing.T) {
	l := New(database.NewMemoryStore())
	party, err := l.AddParty(context.Background(), models.CreditParty{Name: "Gupta & Sons", Balance: -500})
	require.NoError(t, err)
	assert.Equal(t, -500.0, party.Balance)
}

func TestBalanceFollowsTransactions(t *testing.T) {
	l, party := newTestLedger(t)
	ctx := context.Background()

	_, err := l.AddTransaction(ctx, models.Transaction{
		PartyID: party.ID, Type: models.TransactionCredit, Amount: 250,
	})
	require.NoError(t, err)
	_, err = l.AddTransaction(ctx, models.Transaction{
		PartyID: party.ID, Type: models.TransactionDebit, Amount: 400,
	})
	require.NoError(t, err)

	loaded, err := l.Party(ctx, party.ID)
	require.NoError(t, err)
	// 1000 + 250 - 400
	assert.Equal(t, 850.0, loaded.Balance)
}

func TestBalanceDerivableFromHistory(t *testing.T) {
	l, party := newTestLedger(t)
	ctx := context.Background()

	amounts := []struct {
		typ    models.TransactionType
		amount float64
	}{
		{models.TransactionCredit, 100},
		{models.TransactionDebit, 30},
		{models.TransactionCredit, 55.5},
		{models.TransactionDebit, 10},
	}
	for _, a := range amounts {
		_, err := l.AddTransaction(ctx, models.Transaction{PartyID: party.ID, Type: a.typ, Amount: a.amount})
		require.NoError(t, err)
	}

	txns, err := l.PartyTransactions(ctx, party.ID)
	require.NoError(t, err)

	derived := party.Balance
	for _, txn := range txns {
		if txn.Type == models.TransactionCredit {
			derived += txn.Amount
		} else {
			derived -= txn.Amount
		}
	}
	loaded, err := l.Party(ctx, party.ID)
	require.NoError(t, err)
	assert.InDelta(t, derived, loaded.Balance, 1e-9)
}

func TestAddTransactionValidation(t *testing.T) {
	l, party := newTestLedger(t)
	ctx := context.Background()

	_, err := l.AddTransaction(ctx, models.Transaction{PartyID: party.ID, Type: models.TransactionCredit, Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = l.AddTransaction(ctx, models.Transaction{PartyID: party.ID, Type: "TRANSFER", Amount: 10})
	assert.ErrorIs(t, err, ErrInvalidTxnType)

	_, err = l.AddTransaction(ctx, models.Transaction{PartyID: "missing", Type: models.TransactionCredit, Amount: 10})
	assert.ErrorIs(t, err, ErrPartyNotFound)

	// None of the rejected transactions may have touched the balance.
	loaded, err := l.Party(ctx, party.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, loaded.Balance)
}

func TestPartyTransactionsNewestFirst(t *testing.T) {
	l, party := newTestLedger(t)
	ctx := context.Background()

	times := []time.Time{
		time.Now().Add(-2 * time.Hour),
		time.Now().Add(-1 * time.Hour),
		time.Now(),
	}
	for i, ts := range times {
		_, err := l.AddTransaction(ctx, models.Transaction{
			PartyID: party.ID,
			Type:    models.TransactionCredit,
			Amount:  float64(i + 1),
			Date:    ts,
		})
		require.NoError(t, err)
	}

	txns, err := l.PartyTransactions(ctx, party.ID)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, 3.0, txns[0].Amount)
	assert.Equal(t, 1.0, txns[2].Amount)
}

func TestPartyTransactionsScopedToParty(t *testing.T) {
	l, party := newTestLedger(t)
	ctx := context.Background()

	other, err := l.AddParty(ctx, models.CreditParty{Name: "Verma Stores"})
	require.NoError(t, err)

	_, err = l.AddTransaction(ctx, models.Transaction{PartyID: party.ID, Type: models.TransactionCredit, Amount: 10})
	require.NoError(t, err)
	_, err = l.AddTransaction(ctx, models.Transaction{PartyID: other.ID, Type: models.TransactionDebit, Amount: 20})
	require.NoError(t, err)

	txns, err := l.PartyTransactions(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, 20.0, txns[0].Amount)
}
