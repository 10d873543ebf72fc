package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moneta/finance-tracker/pkg/api"
	"github.com/moneta/finance-tracker/pkg/materializer"
	"github.com/moneta/finance-tracker/pkg/models"
	"github.com/moneta/finance-tracker/pkg/storage"
	"github.com/moneta/finance-tracker/pkg/storage/mocks"
)

// stubJob satisfies RecurringJob with a canned result.
type stubJob struct {
	summary materializer.Summary
	err     error
}

func (s *stubJob) Run(ctx context.Context, now time.Time) (materializer.Summary, error) {
	return s.summary, s.err
}

// newTestRouter mounts the handler on a chi router so URL parameters resolve.
func newTestRouter(h *ApiHandler) *chi.Mux {
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func TestCreateTransaction(t *testing.T) {
	// Common test data
	newApiTx := api.NewTransaction{
		UserId:      "user-a",
		WalletId:    "wallet-1",
		Amount:      -4200,
		Description: "Groceries",
		Category:    "food",
		Type:        "expense",
	}
	// This represents the transaction object that comes back from the database
	expectedTx := &models.Transaction{
		Id:          "tx-1",
		UserId:      "user-a",
		WalletId:    "wallet-1",
		Amount:      -4200,
		Date:        "2024-06-01",
		Description: "Groceries",
		Category:    "food",
		Type:        models.EXPENSE,
		Recurrence:  models.NEVER,
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateTransaction", mock.Anything, mock.Anything).Return(expectedTx, nil)

		h := NewApiHandler(mockStorage, &stubJob{})

		body, _ := json.Marshal(newApiTx)
		req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		h.CreateTransaction(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var returnedTx api.Transaction
		json.Unmarshal(rr.Body.Bytes(), &returnedTx)
		assert.Equal(t, expectedTx.Id, returnedTx.Id)
		assert.Equal(t, expectedTx.Amount, returnedTx.Amount)
		assert.Equal(t, "never", returnedTx.Recurrence)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Wallet Not Found", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil, storage.ErrWalletNotFound)

		h := NewApiHandler(mockStorage, &stubJob{})

		body, _ := json.Marshal(newApiTx)
		req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		h.CreateTransaction(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "Wallet not found")
		mockStorage.AssertExpectations(t)
	})

	t.Run("Bad Request - Invalid JSON", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage, &stubJob{})

		req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("not-json"))
		rr := httptest.NewRecorder()

		// Act
		h.CreateTransaction(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		// We don't assert mock expectations because the storage layer should not be called.
	})

	t.Run("Generic Storage Failure", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil, errors.New("something went wrong"))

		h := NewApiHandler(mockStorage, &stubJob{})

		body, _ := json.Marshal(newApiTx)
		req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		h.CreateTransaction(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestGetTransactionById(t *testing.T) {
	expectedTx := &models.Transaction{
		Id:       "tx-1",
		UserId:   "user-a",
		WalletId: "wallet-1",
		Amount:   -4200,
		Date:     "2024-06-01",
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTransaction", mock.Anything, "tx-1").Return(expectedTx, nil)

		router := newTestRouter(NewApiHandler(mockStorage, &stubJob{}))

		req := httptest.NewRequest(http.MethodGet, "/transactions/tx-1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returnedTx api.Transaction
		json.Unmarshal(rr.Body.Bytes(), &returnedTx)
		assert.Equal(t, "tx-1", returnedTx.Id)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTransaction", mock.Anything, "missing").Return(nil, storage.ErrTransactionNotFound)

		router := newTestRouter(NewApiHandler(mockStorage, &stubJob{}))

		req := httptest.NewRequest(http.MethodGet, "/transactions/missing", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("DeleteTransaction", mock.Anything, "tx-1").Return(nil)

		router := newTestRouter(NewApiHandler(mockStorage, &stubJob{}))

		req := httptest.NewRequest(http.MethodDelete, "/transactions/tx-1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("DeleteTransaction", mock.Anything, "missing").Return(storage.ErrTransactionNotFound)

		router := newTestRouter(NewApiHandler(mockStorage, &stubJob{}))

		req := httptest.NewRequest(http.MethodDelete, "/transactions/missing", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestCreateWallet(t *testing.T) {
	newApiWallet := api.NewWallet{UserId: "user-a", Name: "Checking"}
	expectedWallet := &models.Wallet{
		UserId:   "user-a",
		WalletId: "wallet-1",
		Name:     "Checking",
		Balance:  0,
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateWallet", mock.Anything, mock.Anything).Return(expectedWallet, nil)

		h := NewApiHandler(mockStorage, &stubJob{})

		body, _ := json.Marshal(newApiWallet)
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var returnedWallet api.Wallet
		json.Unmarshal(rr.Body.Bytes(), &returnedWallet)
		assert.Equal(t, expectedWallet.WalletId, returnedWallet.WalletId)
		assert.Equal(t, expectedWallet.Balance, returnedWallet.Balance)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateWallet", mock.Anything, mock.Anything).Return(nil, storage.ErrWalletExists)

		h := NewApiHandler(mockStorage, &stubJob{})

		body, _ := json.Marshal(newApiWallet)
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestGetWalletById(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "user-a", "missing").Return(nil, storage.ErrWalletNotFound)

		router := newTestRouter(NewApiHandler(mockStorage, &stubJob{}))

		req := httptest.NewRequest(http.MethodGet, "/users/user-a/wallets/missing", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Success", func(t *testing.T) {
		wallet := &models.Wallet{UserId: "user-a", WalletId: "wallet-1", Name: "Checking", Balance: 12500}

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "user-a", "wallet-1").Return(wallet, nil)

		router := newTestRouter(NewApiHandler(mockStorage, &stubJob{}))

		req := httptest.NewRequest(http.MethodGet, "/users/user-a/wallets/wallet-1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returnedWallet api.Wallet
		json.Unmarshal(rr.Body.Bytes(), &returnedWallet)
		assert.Equal(t, int64(12500), returnedWallet.Balance)
		mockStorage.AssertExpectations(t)
	})
}

func TestListWallets(t *testing.T) {
	wallets := []models.Wallet{
		{UserId: "user-a", WalletId: "wallet-1", Name: "Checking"},
		{UserId: "user-a", WalletId: "wallet-2", Name: "Savings"},
	}

	mockStorage := new(mocks.Storage)
	mockStorage.On("ListWallets", mock.Anything, "user-a").Return(wallets, nil)

	router := newTestRouter(NewApiHandler(mockStorage, &stubJob{}))

	req := httptest.NewRequest(http.MethodGet, "/users/user-a/wallets", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var returnedWallets []api.Wallet
	json.Unmarshal(rr.Body.Bytes(), &returnedWallets)
	assert.Len(t, returnedWallets, 2)
	mockStorage.AssertExpectations(t)
}

func TestRunRecurringJob(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		job := &stubJob{summary: materializer.Summary{Processed: 3, Created: 2, Failed: 1}}
		h := NewApiHandler(new(mocks.Storage), job)

		req := httptest.NewRequest(http.MethodPost, "/jobs/recurring", nil)
		rr := httptest.NewRecorder()

		h.RunRecurringJob(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var summary api.RunSummary
		json.Unmarshal(rr.Body.Bytes(), &summary)
		assert.Equal(t, 3, summary.Processed)
		assert.Equal(t, 2, summary.Created)
	})

	t.Run("Listing Failure", func(t *testing.T) {
		job := &stubJob{err: errors.New("failed to list recurring templates: scan failed")}
		h := NewApiHandler(new(mocks.Storage), job)

		req := httptest.NewRequest(http.MethodPost, "/jobs/recurring", nil)
		rr := httptest.NewRecorder()

		h.RunRecurringJob(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
