package storage

import (
	"context"

	"github.com/moneta/finance-tracker/pkg/models"
)

// MaterializationStore defines the privileged interface for persisting a
// materialized occurrence. The operation writes the occurrence record and
// the owning wallet's balance delta as a single atomic unit; it should only
// be exposed to the recurrence materializer.
type MaterializationStore interface {
	// MaterializeOccurrence atomically creates the occurrence transaction
	// and adds its amount to the owning wallet's balance.
	//
	// Returns ErrOccurrenceExists when an occurrence with the same ID has
	// already been written (a duplicate, not a failure) and
	// ErrWalletNotFound when the owning wallet does not exist.
	MaterializeOccurrence(ctx context.Context, occurrence *models.Transaction) error
}

// MaterializerStore is the complete set of operations the recurrence
// materializer depends on.
type MaterializerStore interface {
	MaterializationStore

	// ListRecurringTemplates retrieves every recurring template transaction.
	ListRecurringTemplates(ctx context.Context) ([]models.Transaction, error)

	// FindOccurrence checks the (walletID, date, parentTransactionID)
	// dedup key for an already-materialized occurrence.
	FindOccurrence(ctx context.Context, walletID, date, parentTransactionID string) (*models.Transaction, error)
}
