package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The ledger service speaks bare JSON numbers for balances and amounts.
	decimal.MarshalJSONWithoutQuotes = true
}

// Account is the ledger's view of a single account. The balance is
// authoritative on the backend; the client never computes or caches one it
// did not receive in a response.
type Account struct {
	AccountNumber     int64           `json:"accountNumber"`
	AccountHolderName string          `json:"accountHolderName"`
	AccountBalance    decimal.Decimal `json:"accountBalance"`
}

// CreateAccountRequest is the payload for opening a new account
type CreateAccountRequest struct {
	AccountHolderName string          `json:"accountHolderName"`
	AccountBalance    decimal.Decimal `json:"accountBalance"`
}

// Validate checks if the create request is valid
func (r CreateAccountRequest) Validate() error {
	if strings.TrimSpace(r.AccountHolderName) == "" {
		return ErrHolderNameRequired
	}
	if r.AccountBalance.IsNegative() {
		return ErrNegativeBalance
	}
	return nil
}

// DeleteResponse confirms that an account has been removed.
type DeleteResponse struct {
	Message string `json:"message"`
}
