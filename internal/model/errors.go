package model

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrHolderNameRequired = errors.New("account holder name is required")
	ErrNegativeBalance    = errors.New("initial balance cannot be negative")
	ErrInsufficientFunds  = errors.New("insufficient balance")

	// Transfer errors
	ErrMissingField      = errors.New("all transfer fields are required")
	ErrInvalidAccountRef = errors.New("invalid account number")
	ErrSameAccount       = errors.New("source and destination accounts must be different")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrTransferFailed    = errors.New("transfer failed, please check account balances and try again")
)
