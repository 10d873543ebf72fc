package mapping

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/moneta/finance-tracker/pkg/api"
	"github.com/moneta/finance-tracker/pkg/materializer"
	"github.com/moneta/finance-tracker/pkg/models"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	date, _ := time.Parse(models.DateLayout, tx.Date)

	var parent *string
	if tx.ParentTransactionId != "" {
		parent = &tx.ParentTransactionId
	}

	return &api.Transaction{
		Id:                  tx.Id,
		UserId:              tx.UserId,
		WalletId:            tx.WalletId,
		Amount:              tx.Amount,
		Date:                openapi_types.Date{Time: date},
		Description:         tx.Description,
		Category:            tx.Category,
		Type:                string(tx.Type),
		Labels:              tx.Labels,
		Avoidable:           tx.Avoidable,
		Recurrence:          string(tx.Recurrence),
		ParentTransactionId: parent,
		IsRecurring:         tx.IsRecurring,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
}

// ToDomainNewTransaction converts an API NewTransaction model to a domain
// Transaction model. Server-side fields (id, timestamps) are assigned by the
// storage layer.
func ToDomainNewTransaction(newTx *api.NewTransaction) *models.Transaction {
	recurrence := models.Recurrence(newTx.Recurrence)
	if recurrence == "" {
		recurrence = models.NEVER
	}

	return &models.Transaction{
		UserId:      newTx.UserId,
		WalletId:    newTx.WalletId,
		Amount:      newTx.Amount,
		Date:        newTx.Date.Format(models.DateLayout),
		Description: newTx.Description,
		Category:    newTx.Category,
		Type:        models.TransactionType(newTx.Type),
		Labels:      newTx.Labels,
		Avoidable:   newTx.Avoidable,
		Recurrence:  recurrence,
	}
}

// ToApiWallet converts a domain Wallet model to an API Wallet model.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	return &api.Wallet{
		UserId:    wallet.UserId,
		WalletId:  wallet.WalletId,
		Name:      wallet.Name,
		Balance:   wallet.Balance,
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}
}

// ToDomainNewWallet converts an API NewWallet model to a domain Wallet model.
func ToDomainNewWallet(newWallet *api.NewWallet) *models.Wallet {
	return &models.Wallet{
		UserId:   newWallet.UserId,
		WalletId: uuid.New().String(),
		Name:     newWallet.Name,
		Balance:  0,
	}
}

// ToApiRunSummary converts a materialization summary to its API response.
func ToApiRunSummary(summary materializer.Summary) *api.RunSummary {
	return &api.RunSummary{
		Message:   "Recurring transactions processed",
		Processed: summary.Processed,
		Created:   summary.Created,
	}
}
