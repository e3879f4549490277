package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fjordbank/teller/internal/model"
	"github.com/fjordbank/teller/internal/repository"
)

// AccountHandler serves the ledger's HTTP surface. Error bodies carry a
// message field, which the client reads back for display.
type AccountHandler struct {
	store repository.Store
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(store repository.Store) *AccountHandler {
	return &AccountHandler{store: store}
}

// RegisterRoutes sets up the account routes on the given router
func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Route("/account", func(r chi.Router) {
		r.Post("/create", h.Create)
		r.Get("/all", h.List)
		r.Get("/{accountNumber}", h.GetByNumber)
		r.Put("/deposit/{accountNumber}/{amount}", h.Deposit)
		r.Put("/withdraw/{accountNumber}/{amount}", h.Withdraw)
		r.Delete("/delete/{accountNumber}", h.Delete)
	})
}

// Create handles POST /account/create
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.store.Create(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// GetByNumber handles GET /account/{accountNumber}
func (h *AccountHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number, ok := parseAccountNumber(w, r)
	if !ok {
		return
	}

	account, err := h.store.Get(r.Context(), number)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get account")
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// List handles GET /account/all
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	// Return empty array instead of null if no accounts
	if accounts == nil {
		accounts = []model.Account{}
	}

	writeJSON(w, http.StatusOK, accounts)
}

// Deposit handles PUT /account/deposit/{accountNumber}/{amount}
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	number, ok := parseAccountNumber(w, r)
	if !ok {
		return
	}
	amount, ok := parseAmount(w, r)
	if !ok {
		return
	}

	account, err := h.store.Deposit(r.Context(), number, amount)
	if err != nil {
		writeMutationError(w, err, "Failed to deposit amount")
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Withdraw handles PUT /account/withdraw/{accountNumber}/{amount}
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	number, ok := parseAccountNumber(w, r)
	if !ok {
		return
	}
	amount, ok := parseAmount(w, r)
	if !ok {
		return
	}

	account, err := h.store.Withdraw(r.Context(), number, amount)
	if err != nil {
		writeMutationError(w, err, "Failed to withdraw amount")
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Delete handles DELETE /account/delete/{accountNumber}
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	number, ok := parseAccountNumber(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), number); err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteResponse{Message: "Account deleted successfully"})
}

// Helper functions for request parsing and HTTP responses

func parseAccountNumber(w http.ResponseWriter, r *http.Request) (int64, bool) {
	number, err := strconv.ParseInt(chi.URLParam(r, "accountNumber"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid account number format")
		return 0, false
	}
	return number, true
}

func parseAmount(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(chi.URLParam(r, "amount"))
	if err != nil || !amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "Invalid amount")
		return decimal.Zero, false
	}
	return amount, true
}

func writeMutationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "Account not found")
	case errors.Is(err, model.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, "Insufficient balance")
	case errors.Is(err, model.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "Invalid amount")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
