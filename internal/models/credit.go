package models

import "time"

// CreditParty is a trade party carrying a running balance:
// balance = initialBalance + sum(CREDIT amounts) - sum(DEBIT amounts).
type CreditParty struct {
	ID       string    `bson:"_id" json:"id"`
	Name     string    `bson:"name" json:"name"`
	ShopName string    `bson:"shopName,omitempty" json:"shop_name,omitempty"`
	Email    string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone    string    `bson:"phone" json:"phone"`
	Address  string    `bson:"address,omitempty" json:"address,omitempty"`
	Balance  float64   `bson:"balance" json:"balance"`
	JoinDate time.Time `bson:"joinDate" json:"join_date"`
}

type TransactionType string

const (
	TransactionCredit TransactionType = "CREDIT"
	TransactionDebit  TransactionType = "DEBIT"
)

// Transaction is immutable once created and is always paired with exactly
// one balance update on its owning party.
type Transaction struct {
	ID          string          `bson:"_id" json:"id"`
	PartyID     string          `bson:"partyId" json:"party_id"`
	Type        TransactionType `bson:"type" json:"type"`
	Amount      float64         `bson:"amount" json:"amount"`
	Date        time.Time       `bson:"date" json:"date"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	BillNumber  string          `bson:"billNumber,omitempty" json:"bill_number,omitempty"`
}
