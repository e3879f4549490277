package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fjordbank/teller/internal/model"
)

// Client exposes the typed account operations of the ledger service.
//
// The failure contract is asymmetric on purpose: reads and creation degrade
// to placeholder or synthesized data when the backend is down, mutations
// never do.
type Client struct {
	gw       *Gateway
	fallback *FallbackPolicy
	logger   *slog.Logger
}

// NewClient creates a Client on top of an existing gateway.
func NewClient(gw *Gateway, fallback *FallbackPolicy, logger *slog.Logger) *Client {
	if fallback == nil {
		fallback = NewFallbackPolicy()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{gw: gw, fallback: fallback, logger: logger}
}

// Create opens a new account and returns it as the backend recorded it.
// If the call fails and a liveness probe confirms the backend is down, a
// synthesized local account is returned instead so the caller stays usable;
// if the probe succeeds the original failure is surfaced.
func (c *Client) Create(ctx context.Context, holderName string, balance decimal.Decimal) (*model.Account, error) {
	req := model.CreateAccountRequest{AccountHolderName: holderName, AccountBalance: balance}
	var account model.Account
	err := c.gw.do(ctx, http.MethodPost, "/account/create", req, &account)
	if err == nil {
		return &account, nil
	}
	if c.Health(ctx) != nil {
		c.logger.Warn("ledger unavailable, synthesizing account locally", slog.String("holder", holderName))
		return c.fallback.SynthesizeAccount(holderName, balance), nil
	}
	return nil, err
}

// Get fetches one account by number.
func (c *Client) Get(ctx context.Context, accountNumber int64) (*model.Account, error) {
	var account model.Account
	if err := c.gw.do(ctx, http.MethodGet, fmt.Sprintf("/account/%d", accountNumber), nil, &account); err != nil {
		return nil, surface(err, "failed to fetch account details")
	}
	return &account, nil
}

// List returns every account known to the ledger. When the backend is
// unreachable the documented placeholder accounts are returned; when it is up
// but the call failed for another reason, that failure is surfaced.
func (c *Client) List(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := c.gw.do(ctx, http.MethodGet, "/account/all", nil, &accounts)
	if err == nil {
		if accounts == nil {
			accounts = []model.Account{}
		}
		return accounts, nil
	}
	if c.Health(ctx) != nil {
		c.logger.Warn("ledger unavailable, serving placeholder accounts")
		return c.fallback.PlaceholderAccounts(), nil
	}
	return nil, err
}

// Deposit credits the account and returns its authoritative post-mutation
// state. No fallback applies.
func (c *Client) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error) {
	var account model.Account
	path := fmt.Sprintf("/account/deposit/%d/%s", accountNumber, amount.String())
	if err := c.gw.do(ctx, http.MethodPut, path, nil, &account); err != nil {
		return nil, surface(err, "failed to deposit amount")
	}
	return &account, nil
}

// Withdraw debits the account and returns its authoritative post-mutation
// state. No fallback applies.
func (c *Client) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*model.Account, error) {
	var account model.Account
	path := fmt.Sprintf("/account/withdraw/%d/%s", accountNumber, amount.String())
	if err := c.gw.do(ctx, http.MethodPut, path, nil, &account); err != nil {
		return nil, surface(err, "failed to withdraw amount")
	}
	return &account, nil
}

// Delete removes the account and returns the backend's confirmation message.
func (c *Client) Delete(ctx context.Context, accountNumber int64) (string, error) {
	var resp model.DeleteResponse
	if err := c.gw.do(ctx, http.MethodDelete, fmt.Sprintf("/account/delete/%d", accountNumber), nil, &resp); err != nil {
		return "", surface(err, "failed to delete account")
	}
	return resp.Message, nil
}

// Health probes the ledger's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.gw.do(ctx, http.MethodGet, "/health", nil, nil)
}

// surface picks the message shown to the user: the backend's own message
// when the response carried one, the operation default otherwise. The
// classified error stays reachable through errors.As.
func surface(err error, fallbackMsg string) error {
	var lerr *Error
	if errors.As(err, &lerr) && lerr.BackendMessage != "" {
		return &opError{msg: lerr.BackendMessage, err: err}
	}
	return &opError{msg: fallbackMsg, err: err}
}
