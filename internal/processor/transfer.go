package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fjordbank/teller/internal/model"
)

// LedgerAPI is the slice of the ledger client a transfer needs.
type LedgerAPI interface {
	Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error)
	Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error)
}

// TransferRequest carries raw form input for one transfer. Fields stay
// strings until validation so bad input is rejected before any network call.
type TransferRequest struct {
	FromAccount string `validate:"required"`
	ToAccount   string `validate:"required"`
	Amount      string `validate:"required"`
}

// TransferResult confirms a completed transfer.
type TransferResult struct {
	Reference   uuid.UUID
	FromAccount int64
	ToAccount   int64
	Amount      decimal.Decimal
}

// Message renders the user-facing confirmation.
func (r TransferResult) Message() string {
	return fmt.Sprintf("successfully transferred $%s from account #%d to account #%d",
		r.Amount.StringFixed(2), r.FromAccount, r.ToAccount)
}

// TransferOrchestrator moves funds between two accounts as a two-phase,
// non-atomic sequence: withdraw from the source, then deposit to the
// destination. If the deposit phase fails after a successful withdraw, the
// debit is not compensated; the caller sees the same generic failure either
// way. Each call is independent and stateless; nothing is retried.
type TransferOrchestrator struct {
	ledger   LedgerAPI
	validate *validator.Validate
	logger   *slog.Logger
}

// NewTransferOrchestrator creates a TransferOrchestrator.
func NewTransferOrchestrator(ledger LedgerAPI, logger *slog.Logger) *TransferOrchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransferOrchestrator{
		ledger:   ledger,
		validate: validator.New(),
		logger:   logger,
	}
}

// order is a validated transfer ready to execute.
type order struct {
	from   int64
	to     int64
	amount decimal.Decimal
}

// Execute validates and runs one transfer.
func (o *TransferOrchestrator) Execute(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	ord, err := o.parse(req)
	if err != nil {
		return nil, err
	}

	if _, err := o.ledger.Withdraw(ctx, ord.from, ord.amount); err != nil {
		o.logger.Error("transfer withdraw phase failed",
			slog.Int64("from", ord.from), slog.Any("error", err))
		return nil, model.ErrTransferFailed
	}

	if _, err := o.ledger.Deposit(ctx, ord.to, ord.amount); err != nil {
		// Funds left the source account without reaching the destination.
		o.logger.Error("transfer deposit phase failed after withdraw",
			slog.Int64("from", ord.from), slog.Int64("to", ord.to), slog.Any("error", err))
		return nil, model.ErrTransferFailed
	}

	return &TransferResult{
		Reference:   uuid.New(),
		FromAccount: ord.from,
		ToAccount:   ord.to,
		Amount:      ord.amount,
	}, nil
}

// parse checks all preconditions without touching the network.
func (o *TransferOrchestrator) parse(req TransferRequest) (*order, error) {
	if err := o.validate.Struct(req); err != nil {
		return nil, model.ErrMissingField
	}

	from, err := strconv.ParseInt(strings.TrimSpace(req.FromAccount), 10, 64)
	if err != nil {
		return nil, model.ErrInvalidAccountRef
	}
	to, err := strconv.ParseInt(strings.TrimSpace(req.ToAccount), 10, 64)
	if err != nil {
		return nil, model.ErrInvalidAccountRef
	}
	if from == to {
		return nil, model.ErrSameAccount
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, model.ErrInvalidAmount
	}

	return &order{from: from, to: to, amount: amount}, nil
}
