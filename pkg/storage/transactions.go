package storage

import (
	"context"

	"github.com/moneta/finance-tracker/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByUserID retrieves all transactions for a specific user.
	ListTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error)

	// ListRecurringTemplates retrieves every transaction whose recurrence
	// rule is anything other than "never". This is the full template set
	// the materializer considers on each run; there is no separate
	// active-templates index.
	ListRecurringTemplates(ctx context.Context) ([]models.Transaction, error)

	// FindOccurrence retrieves the materialized occurrence identified by
	// the (walletID, date, parentTransactionID) dedup key, or nil when no
	// such occurrence exists.
	FindOccurrence(ctx context.Context, walletID, date, parentTransactionID string) (*models.Transaction, error)
}

// TransactionManager defines the interface for creating and removing
// user-entered transactions. Each write atomically pairs the transaction
// record with the owning wallet's balance adjustment.
type TransactionManager interface {
	// CreateTransaction persists a new transaction and applies its amount
	// to the owning wallet's balance.
	CreateTransaction(ctx context.Context, newTx *models.Transaction) (*models.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance
	// effect on the owning wallet.
	DeleteTransaction(ctx context.Context, txID string) error
}

// TransactionStore combines the reader and manager interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionManager
}
