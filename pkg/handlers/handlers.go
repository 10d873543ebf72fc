package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moneta/finance-tracker/pkg/api"
	"github.com/moneta/finance-tracker/pkg/mapping"
	"github.com/moneta/finance-tracker/pkg/materializer"
	"github.com/moneta/finance-tracker/pkg/storage"
)

// RecurringJob is the slice of the materializer the API needs to trigger a
// run on demand.
type RecurringJob interface {
	Run(ctx context.Context, now time.Time) (materializer.Summary, error)
}

// ApiHandler implements the HTTP API.
// It holds our application's dependencies, including the storage layer.
type ApiHandler struct {
	Store storage.ApiStore
	Job   RecurringJob
}

// NewApiHandler creates a new ApiHandler with its storage and job dependencies.
func NewApiHandler(store storage.ApiStore, job RecurringJob) *ApiHandler {
	return &ApiHandler{Store: store, Job: job}
}

// Routes mounts every handler on a chi router.
func (h *ApiHandler) Routes(r chi.Router) {
	r.Post("/transactions", h.CreateTransaction)
	r.Get("/transactions/{transactionId}", h.GetTransactionById)
	r.Delete("/transactions/{transactionId}", h.DeleteTransaction)
	r.Get("/users/{userId}/transactions", h.ListTransactionsByUserId)

	r.Post("/wallets", h.CreateWallet)
	r.Get("/users/{userId}/wallets", h.ListWallets)
	r.Get("/users/{userId}/wallets/{walletId}", h.GetWalletById)
	r.Delete("/users/{userId}/wallets/{walletId}", h.DeleteWallet)

	r.Post("/jobs/recurring", h.RunRecurringJob)
}

// CreateTransaction handles the logic for recording a new transaction.
func (h *ApiHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	// Decode the request body.
	var newTx api.NewTransaction
	if err := json.NewDecoder(r.Body).Decode(&newTx); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	// Map the API request to our internal domain model.
	domainTx := mapping.ToDomainNewTransaction(&newTx)

	// Call the storage layer to create the transaction.
	createdTx, err := h.Store.CreateTransaction(r.Context(), domainTx)
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusUnprocessableEntity)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create transaction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Map the domain model response back to the API model and respond.
	apiTx := mapping.ToApiTransaction(createdTx)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiTx); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetTransactionById handles the logic for retrieving a transaction by its ID.
func (h *ApiHandler) GetTransactionById(w http.ResponseWriter, r *http.Request) {
	transactionId := chi.URLParam(r, "transactionId")

	// Call the storage layer to get the transaction.
	domainTx, err := h.Store.GetTransaction(r.Context(), transactionId)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve transaction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Map the domain model to the API model and respond.
	apiTx := mapping.ToApiTransaction(domainTx)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTx); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// DeleteTransaction handles the logic for deleting a transaction and
// reversing its balance effect.
func (h *ApiHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionId := chi.URLParam(r, "transactionId")

	if err := h.Store.DeleteTransaction(r.Context(), transactionId); err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to delete transaction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Respond with a success status.
	w.WriteHeader(http.StatusNoContent)
}

// ListTransactionsByUserId handles the logic for retrieving all of a user's transactions.
func (h *ApiHandler) ListTransactionsByUserId(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "userId")

	// Call the storage layer to get the transactions.
	domainTxs, err := h.Store.ListTransactionsByUserID(r.Context(), userId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	// Map the domain models to the API models.
	apiTxs := make([]*api.Transaction, len(domainTxs))
	for i := range domainTxs {
		apiTxs[i] = mapping.ToApiTransaction(&domainTxs[i])
	}

	// Respond with the list of transactions.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTxs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// CreateWallet handles the logic for creating a new wallet.
func (h *ApiHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	// Decode the request body.
	var newWallet api.NewWallet
	if err := json.NewDecoder(r.Body).Decode(&newWallet); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	// Map the API request to our internal domain model.
	domainWallet := mapping.ToDomainNewWallet(&newWallet)

	// Call the storage layer to create the wallet.
	createdWallet, err := h.Store.CreateWallet(r.Context(), domainWallet)
	if err != nil {
		if errors.Is(err, storage.ErrWalletExists) {
			http.Error(w, "Wallet already exists", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Map the domain model response back to the API model and respond.
	apiWallet := mapping.ToApiWallet(createdWallet)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiWallet); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetWalletById handles the logic for retrieving one of a user's wallets.
func (h *ApiHandler) GetWalletById(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "userId")
	walletId := chi.URLParam(r, "walletId")

	// Call the storage layer to get the wallet.
	domainWallet, err := h.Store.GetWallet(r.Context(), userId, walletId)
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Map the domain model to the API model and respond.
	apiWallet := mapping.ToApiWallet(domainWallet)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiWallet); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// DeleteWallet handles the logic for deleting a user's wallet.
func (h *ApiHandler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "userId")
	walletId := chi.URLParam(r, "walletId")

	// Call the storage layer to delete the wallet.
	if err := h.Store.DeleteWallet(r.Context(), userId, walletId); err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to delete wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Respond with a success status.
	w.WriteHeader(http.StatusNoContent)
}

// ListWallets handles the logic for retrieving all of a user's wallets.
func (h *ApiHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "userId")

	// Call the storage layer to get the wallets.
	domainWallets, err := h.Store.ListWallets(r.Context(), userId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve wallets: %v", err), http.StatusInternalServerError)
		return
	}

	// Map the domain models to the API models.
	apiWallets := make([]*api.Wallet, len(domainWallets))
	for i := range domainWallets {
		apiWallets[i] = mapping.ToApiWallet(&domainWallets[i])
	}

	// Respond with the list of wallets.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiWallets); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// RunRecurringJob triggers a materialization run over the current lookahead
// window. The scheduled job runs the same code path; this endpoint exists for
// operational reruns and local development.
func (h *ApiHandler) RunRecurringJob(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Job.Run(r.Context(), time.Now().UTC())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to process recurring transactions: %v", err), http.StatusInternalServerError)
		return
	}

	// Map the summary to the API model and respond.
	apiSummary := mapping.ToApiRunSummary(summary)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiSummary); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
