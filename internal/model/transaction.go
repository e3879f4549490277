package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
)

// Transaction is a single entry in an account's displayed history.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// DemoHistory returns the placeholder history shown while the ledger service
// exposes no transaction endpoint. Entries are anchored to the supplied time,
// newest first.
func DemoHistory(now time.Time) []Transaction {
	return []Transaction{
		{
			ID:          1,
			Type:        TransactionTypeDeposit,
			Amount:      decimal.NewFromInt(1000),
			Date:        now,
			Description: "Initial deposit",
		},
		{
			ID:          2,
			Type:        TransactionTypeWithdrawal,
			Amount:      decimal.NewFromInt(500),
			Date:        now.Add(-24 * time.Hour),
			Description: "ATM withdrawal",
		},
	}
}
