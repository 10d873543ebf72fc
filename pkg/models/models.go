package models

import (
	"time"
)

// Recurrence defines how often a template transaction repeats.
type Recurrence string

const (
	NEVER    Recurrence = "never"
	DAILY    Recurrence = "daily"
	WEEKLY   Recurrence = "weekly"
	BIWEEKLY Recurrence = "biweekly"
	MONTHLY  Recurrence = "monthly"
	YEARLY   Recurrence = "yearly"
)

// TransactionType categorizes the direction of a transaction. The sign of
// Amount is authoritative for balance math; the type is descriptive.
type TransactionType string

const (
	EXPENSE  TransactionType = "expense"
	INCOME   TransactionType = "income"
	TRANSFER TransactionType = "transfer"
)

// DateLayout is the calendar-date format used for transaction dates.
// Transactions carry no time-of-day.
const DateLayout = "2006-01-02"

// Transaction represents the internal domain model for a transaction.
// It includes dynamodbav tags for marshalling.
//
// A transaction with Recurrence != NEVER is a recurring template: the
// materializer derives future occurrences from its Date anchor. A
// transaction with ParentTransactionId set is a materialized occurrence of
// that template.
type Transaction struct {
	Id                  string          `json:"id" dynamodbav:"id"`
	UserId              string          `json:"user_id" dynamodbav:"user_id"`
	WalletId            string          `json:"wallet_id" dynamodbav:"wallet_id"`
	Amount              int64           `json:"amount" dynamodbav:"amount"`
	Date                string          `json:"date" dynamodbav:"date"`
	Description         string          `json:"description" dynamodbav:"description"`
	Category            string          `json:"category" dynamodbav:"category"`
	Type                TransactionType `json:"type" dynamodbav:"type"`
	Labels              []string        `json:"labels,omitempty" dynamodbav:"labels,omitempty"`
	Avoidable           bool            `json:"avoidable" dynamodbav:"avoidable"`
	Recurrence          Recurrence      `json:"recurrence" dynamodbav:"recurrence"`
	ParentTransactionId string          `json:"parent_transaction_id,omitempty" dynamodbav:"parent_transaction_id,omitempty"`
	IsRecurring         bool            `json:"is_recurring" dynamodbav:"is_recurring"`
	CreatedAt           time.Time       `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" dynamodbav:"updated_at"`
}

// IsTemplate reports whether the transaction is a recurring template.
func (t *Transaction) IsTemplate() bool {
	return t.Recurrence != "" && t.Recurrence != NEVER
}

// Wallet represents the internal domain model for a user's wallet.
// Balance is a running total in cents, mutated additively whenever a
// transaction against the wallet is created or materialized.
type Wallet struct {
	UserId    string    `json:"user_id" dynamodbav:"user_id"`
	WalletId  string    `json:"wallet_id" dynamodbav:"wallet_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}
