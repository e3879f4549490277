package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjordbank/teller/internal/model"
	"github.com/fjordbank/teller/internal/repository"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	NewAccountHandler(repository.NewMemoryStore()).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeAccount(t *testing.T, rec *httptest.ResponseRecorder) model.Account {
	t.Helper()
	var account model.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	return account
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload["message"]
}

func TestCreate(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/account/create",
		`{"accountHolderName": "John Doe", "accountBalance": 5000.0}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	account := decodeAccount(t, rec)
	assert.Equal(t, int64(1), account.AccountNumber)
	assert.Equal(t, "John Doe", account.AccountHolderName)
	assert.True(t, account.AccountBalance.Equal(decimal.NewFromFloat(5000.0)))
}

func TestCreate_InvalidBody(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/account/create", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", errorMessage(t, rec))
}

func TestCreate_RejectsNegativeBalance(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/account/create",
		`{"accountHolderName": "John Doe", "accountBalance": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.ErrNegativeBalance.Error(), errorMessage(t, rec))
}

func TestCreate_RejectsEmptyHolderName(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/account/create",
		`{"accountHolderName": "", "accountBalance": 100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.ErrHolderNameRequired.Error(), errorMessage(t, rec))
}

func TestGetByNumber_NotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/account/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Account not found", errorMessage(t, rec))
}

func TestGetByNumber_BadFormat(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/account/notanumber", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid account number format", errorMessage(t, rec))
}

func TestList_EmptyIsArray(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/account/all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestList_ReturnsAccountsInOrder(t *testing.T) {
	r := newTestRouter(t)

	doRequest(t, r, http.MethodPost, "/account/create", `{"accountHolderName": "A", "accountBalance": 1}`)
	doRequest(t, r, http.MethodPost, "/account/create", `{"accountHolderName": "B", "accountBalance": 2}`)

	rec := doRequest(t, r, http.MethodGet, "/account/all", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var accounts []model.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	require.Len(t, accounts, 2)
	assert.Equal(t, "A", accounts[0].AccountHolderName)
	assert.Equal(t, "B", accounts[1].AccountHolderName)
}

func TestDepositAndWithdraw(t *testing.T) {
	r := newTestRouter(t)

	doRequest(t, r, http.MethodPost, "/account/create", `{"accountHolderName": "John Doe", "accountBalance": 100}`)

	rec := doRequest(t, r, http.MethodPut, "/account/deposit/1/50.25", "")
	require.Equal(t, http.StatusOK, rec.Code)
	account := decodeAccount(t, rec)
	assert.True(t, account.AccountBalance.Equal(decimal.NewFromFloat(150.25)))

	rec = doRequest(t, r, http.MethodPut, "/account/withdraw/1/0.25", "")
	require.Equal(t, http.StatusOK, rec.Code)
	account = decodeAccount(t, rec)
	assert.True(t, account.AccountBalance.Equal(decimal.NewFromInt(150)))
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	r := newTestRouter(t)

	doRequest(t, r, http.MethodPost, "/account/create", `{"accountHolderName": "John Doe", "accountBalance": 100}`)

	rec := doRequest(t, r, http.MethodPut, "/account/withdraw/1/500", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Insufficient balance", errorMessage(t, rec))
}

func TestDeposit_InvalidAmount(t *testing.T) {
	r := newTestRouter(t)

	doRequest(t, r, http.MethodPost, "/account/create", `{"accountHolderName": "John Doe", "accountBalance": 100}`)

	rec := doRequest(t, r, http.MethodPut, "/account/deposit/1/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid amount", errorMessage(t, rec))

	rec = doRequest(t, r, http.MethodPut, "/account/deposit/1/-5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid amount", errorMessage(t, rec))
}

func TestDeposit_UnknownAccount(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPut, "/account/deposit/42/100", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Account not found", errorMessage(t, rec))
}

func TestDelete(t *testing.T) {
	r := newTestRouter(t)

	doRequest(t, r, http.MethodPost, "/account/create", `{"accountHolderName": "John Doe", "accountBalance": 100}`)

	rec := doRequest(t, r, http.MethodDelete, "/account/delete/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Account deleted successfully", errorMessage(t, rec))

	rec = doRequest(t, r, http.MethodGet, "/account/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_NotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodDelete, "/account/delete/7", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Account not found", errorMessage(t, rec))
}
