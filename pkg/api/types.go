// Package api defines the JSON request and response types of the HTTP
// surface. Calendar dates travel as "YYYY-MM-DD" via the openapi runtime
// Date type.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Transaction is the API representation of a transaction.
type Transaction struct {
	Id                  string             `json:"id"`
	UserId              string             `json:"user_id"`
	WalletId            string             `json:"wallet_id"`
	Amount              int64              `json:"amount"`
	Date                openapi_types.Date `json:"date"`
	Description         string             `json:"description"`
	Category            string             `json:"category"`
	Type                string             `json:"type"`
	Labels              []string           `json:"labels,omitempty"`
	Avoidable           bool               `json:"avoidable"`
	Recurrence          string             `json:"recurrence"`
	ParentTransactionId *string            `json:"parent_transaction_id,omitempty"`
	IsRecurring         bool               `json:"is_recurring"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// NewTransaction is the request body for creating a transaction.
type NewTransaction struct {
	UserId      string             `json:"user_id"`
	WalletId    string             `json:"wallet_id"`
	Amount      int64              `json:"amount"`
	Date        openapi_types.Date `json:"date"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Type        string             `json:"type"`
	Labels      []string           `json:"labels,omitempty"`
	Avoidable   bool               `json:"avoidable"`
	Recurrence  string             `json:"recurrence,omitempty"`
}

// Wallet is the API representation of a wallet.
type Wallet struct {
	UserId    string    `json:"user_id"`
	WalletId  string    `json:"wallet_id"`
	Name      string    `json:"name"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWallet is the request body for creating a wallet.
type NewWallet struct {
	UserId string `json:"user_id"`
	Name   string `json:"name"`
}

// RunSummary is the response of a recurring materialization run.
type RunSummary struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Created   int    `json:"created"`
}
