package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fjordbank/teller/internal/model"
)

// MemoryStore keeps accounts in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[int64]*model.Account
	nextNum  int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[int64]*model.Account),
		nextNum:  1,
	}
}

// Create assigns the next sequential account number and stores the account.
func (s *MemoryStore) Create(ctx context.Context, req model.CreateAccountRequest) (*model.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account := &model.Account{
		AccountNumber:     s.nextNum,
		AccountHolderName: req.AccountHolderName,
		AccountBalance:    req.AccountBalance,
	}
	s.accounts[account.AccountNumber] = account
	s.nextNum++

	copied := *account
	return &copied, nil
}

// Get retrieves an account by number.
func (s *MemoryStore) Get(ctx context.Context, accountNumber int64) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

// List returns all accounts ordered by account number.
func (s *MemoryStore) List(ctx context.Context) ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]model.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, *account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountNumber < accounts[j].AccountNumber
	})
	return accounts, nil
}

// Deposit credits the account and returns its new state.
func (s *MemoryStore) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error) {
	if !amount.IsPositive() {
		return nil, model.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account.AccountBalance = account.AccountBalance.Add(amount)

	copied := *account
	return &copied, nil
}

// Withdraw debits the account and returns its new state. The balance is
// never allowed to go negative.
func (s *MemoryStore) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error) {
	if !amount.IsPositive() {
		return nil, model.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	if account.AccountBalance.LessThan(amount) {
		return nil, model.ErrInsufficientFunds
	}
	account.AccountBalance = account.AccountBalance.Sub(amount)

	copied := *account
	return &copied, nil
}

// Delete removes the account.
func (s *MemoryStore) Delete(ctx context.Context, accountNumber int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountNumber]; !ok {
		return model.ErrAccountNotFound
	}
	delete(s.accounts, accountNumber)
	return nil
}

// Ping always succeeds; there is no backing service to check.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
