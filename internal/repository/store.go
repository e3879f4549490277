// Package repository provides the persistence backends for the reference
// ledger server. The in-memory store mirrors the upstream demo fixture; the
// Postgres store is for development environments that want state to survive
// restarts.
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fjordbank/teller/internal/model"
)

// Store is the persistence surface the ledger handlers need.
type Store interface {
	Create(ctx context.Context, req model.CreateAccountRequest) (*model.Account, error)
	Get(ctx context.Context, accountNumber int64) (*model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error)
	Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error)
	Delete(ctx context.Context, accountNumber int64) error
	Ping(ctx context.Context) error
}
