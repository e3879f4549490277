package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fjordbank/teller/internal/model"
)

// PostgresStore persists accounts in Postgres. Expected schema:
//
//	CREATE TABLE accounts (
//	    account_number BIGSERIAL PRIMARY KEY,
//	    holder_name    TEXT NOT NULL,
//	    balance        NUMERIC(19,4) NOT NULL DEFAULT 0
//	);
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore on an existing pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a new account and returns it with its assigned number.
func (s *PostgresStore) Create(ctx context.Context, req model.CreateAccountRequest) (*model.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO accounts (holder_name, balance)
		VALUES ($1, $2)
		RETURNING account_number
	`

	account := &model.Account{
		AccountHolderName: req.AccountHolderName,
		AccountBalance:    req.AccountBalance,
	}
	err := s.db.QueryRow(ctx, query, req.AccountHolderName, req.AccountBalance).Scan(&account.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Get retrieves an account by number.
func (s *PostgresStore) Get(ctx context.Context, accountNumber int64) (*model.Account, error) {
	query := `
		SELECT account_number, holder_name, balance
		FROM accounts
		WHERE account_number = $1
	`

	account := &model.Account{}
	err := s.db.QueryRow(ctx, query, accountNumber).Scan(
		&account.AccountNumber,
		&account.AccountHolderName,
		&account.AccountBalance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// List returns all accounts ordered by account number.
func (s *PostgresStore) List(ctx context.Context) ([]model.Account, error) {
	query := `
		SELECT account_number, holder_name, balance
		FROM accounts
		ORDER BY account_number
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		var account model.Account
		if err := rows.Scan(&account.AccountNumber, &account.AccountHolderName, &account.AccountBalance); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Deposit credits the account atomically and returns its new state.
func (s *PostgresStore) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error) {
	if !amount.IsPositive() {
		return nil, model.ErrInvalidAmount
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2
		WHERE account_number = $1
		RETURNING account_number, holder_name, balance
	`

	account := &model.Account{}
	err := s.db.QueryRow(ctx, query, accountNumber, amount).Scan(
		&account.AccountNumber,
		&account.AccountHolderName,
		&account.AccountBalance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to deposit: %w", err)
	}

	return account, nil
}

// Withdraw debits the account atomically; the guard in the WHERE clause keeps
// the balance from going negative under concurrent withdrawals.
func (s *PostgresStore) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error) {
	if !amount.IsPositive() {
		return nil, model.ErrInvalidAmount
	}

	query := `
		UPDATE accounts
		SET balance = balance - $2
		WHERE account_number = $1 AND balance >= $2
		RETURNING account_number, holder_name, balance
	`

	account := &model.Account{}
	err := s.db.QueryRow(ctx, query, accountNumber, amount).Scan(
		&account.AccountNumber,
		&account.AccountHolderName,
		&account.AccountBalance,
	)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}

	// No row updated: either the account is missing or the balance is short.
	if _, getErr := s.Get(ctx, accountNumber); getErr != nil {
		return nil, getErr
	}
	return nil, model.ErrInsufficientFunds
}

// Delete removes the account.
func (s *PostgresStore) Delete(ctx context.Context, accountNumber int64) error {
	result, err := s.db.Exec(ctx, `DELETE FROM accounts WHERE account_number = $1`, accountNumber)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
