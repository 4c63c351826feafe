package ledger

import (
	"context"
	"errors"
	"time"

	"kirana-backend/internal/database"
	"kirana-backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrPartyNotFound    = errors.New("credit party not found")
	ErrInvalidAmount    = errors.New("amount must be greater than 0")
	ErrInvalidTxnType   = errors.New("transaction type must be CREDIT or DEBIT")
	ErrMissingPartyName = errors.New("party name is required")
)

// Ledger maintains credit parties and their transaction history. Every
// accepted transaction is paired with exactly one balance update on its
// party; transactions themselves are never edited or deleted, so the
// invariant balance = initial + credits - debits can always be re-derived
// from the history.
type Ledger struct {
	store database.Store
}

func New(store database.Store) *Ledger {
	return &Ledger{store: store}
}

// AddParty registers a new party. The initial balance may be negative: a
// party can start out owing or being owed.
func (l *Ledger) AddParty(ctx context.Context, party models.CreditParty) (models.CreditParty, error) {
	if party.Name == "" {
		return models.CreditParty{}, ErrMissingPartyName
	}
	party.ID = uuid.NewString()
	if party.JoinDate.IsZero() {
		party.JoinDate = time.Now()
	}
	if err := l.store.Set(ctx, database.CreditParties, party.ID, party); err != nil {
		return models.CreditParty{}, err
	}
	return party, nil
}

// Party loads a single party by id.
func (l *Ledger) Party(ctx context.Context, partyID string) (models.CreditParty, error) {
	var party models.CreditParty
	if err := l.store.Get(ctx, database.CreditParties, partyID, &party); err != nil {
		if database.IsNotFound(err) {
			return models.CreditParty{}, ErrPartyNotFound
		}
		return models.CreditParty{}, err
	}
	return party, nil
}

// Parties lists all registered parties by name.
func (l *Ledger) Parties(ctx context.Context) ([]models.CreditParty, error) {
	var parties []models.CreditParty
	err := l.store.Find(ctx, database.CreditParties, database.Query{SortBy: "name"}, &parties)
	if err != nil {
		return nil, err
	}
	return parties, nil
}

// AddTransaction records a transaction and applies its signed amount to the
// party's balance. CREDIT raises the balance, DEBIT lowers it. The
// transaction document is written first; if the balance update then fails,
// the error is returned and the stored history remains the source of truth
// for re-deriving the balance.
func (l *Ledger) AddTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	if txn.Amount <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}
	if txn.Type != models.TransactionCredit && txn.Type != models.TransactionDebit {
		return models.Transaction{}, ErrInvalidTxnType
	}

	party, err := l.Party(ctx, txn.PartyID)
	if err != nil {
		return models.Transaction{}, err
	}

	txn.ID = uuid.NewString()
	if txn.Date.IsZero() {
		txn.Date = time.Now()
	}
	if err := l.store.Set(ctx, database.Transactions, txn.ID, txn); err != nil {
		return models.Transaction{}, err
	}

	newBalance := party.Balance
	if txn.Type == models.TransactionCredit {
		newBalance += txn.Amount
	} else {
		newBalance -= txn.Amount
	}
	if err := l.store.Update(ctx, database.CreditParties, party.ID, map[string]any{"balance": newBalance}); err != nil {
		return models.Transaction{}, err
	}

	return txn, nil
}

// PartyTransactions lists a party's transactions newest first.
func (l *Ledger) PartyTransactions(ctx context.Context, partyID string) ([]models.Transaction, error) {
	if _, err := l.Party(ctx, partyID); err != nil {
		return nil, err
	}
	var txns []models.Transaction
	err := l.store.Find(ctx, database.Transactions, database.Query{
		Filter:   map[string]any{"partyId": partyID},
		SortBy:   "date",
		SortDesc: true,
	}, &txns)
	if err != nil {
		return nil, err
	}
	return txns, nil
}
