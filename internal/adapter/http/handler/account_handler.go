package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	OpenAccount(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	Deposit(ctx context.Context, input usecase.MoneyInput) (*usecase.TransferResult, error)
	Withdraw(ctx context.Context, input usecase.MoneyInput) (*usecase.TransferResult, error)
	SetInterestRate(ctx context.Context, id string, rate decimal.Decimal) (*domain.Account, error)
	ApplyTierInterestRate(ctx context.Context, id string) (*domain.Account, error)
	ApplyInterest(ctx context.Context, id string) (*domain.Account, error)
	CloseAccount(ctx context.Context, id string) error
}

// EntryService defines the journal queries needed by AccountHandler.
type EntryService interface {
	GetEntriesByAccount(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	entryUC   EntryService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, entryUC EntryService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, entryUC: entryUC}
}

// Create opens a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequest
	if !decode(w, r, &req) {
		return
	}

	account, err := h.accountUC.OpenAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to open account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  parseIntQuery(r, "limit", usecase.DefaultListLimit),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Deposit credits an account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, "deposit", h.accountUC.Deposit)
}

// Withdraw debits an account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, "withdraw", h.accountUC.Withdraw)
}

func (h *AccountHandler) move(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	apply func(context.Context, usecase.MoneyInput) (*usecase.TransferResult, error),
) {
	var req dto.MoneyRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := apply(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "failed to "+operation, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromResult(result))
}

// SetInterestRate changes an account interest rate.
func (h *AccountHandler) SetInterestRate(w http.ResponseWriter, r *http.Request) {
	var req dto.InterestRateRequest
	if !decode(w, r, &req) {
		return
	}

	account, err := h.accountUC.SetInterestRate(r.Context(), chi.URLParam(r, "id"), req.Rate)
	if err != nil {
		writeDomainError(w, "failed to set interest rate", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ApplyTierInterestRate sets the interest rate offered to the owner's tier.
func (h *AccountHandler) ApplyTierInterestRate(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.ApplyTierInterestRate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to set interest rate", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ApplyInterest grows an account balance by its interest rate.
func (h *AccountHandler) ApplyInterest(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.ApplyInterest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to apply interest", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Close closes an empty account.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.accountUC.CloseAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to close account", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// History lists the account's money movements, oldest first.
func (h *AccountHandler) History(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(account.History()))
}

// Entries lists the account's journal entries, oldest first.
func (h *AccountHandler) Entries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entryUC.GetEntriesByAccount(r.Context(), usecase.GetEntriesByAccountInput{
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", usecase.DefaultListLimit),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to get entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
