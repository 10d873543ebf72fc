package storage

import "errors"

// ErrOccurrenceExists is returned when a materialized occurrence with the same
// identity has already been written. Callers treat it as an idempotent skip,
// not a failure.
var ErrOccurrenceExists = errors.New("occurrence already materialized")

// ErrWalletNotFound is returned when the referenced wallet does not exist.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrTransactionNotFound is returned when the referenced transaction does not exist.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrWalletExists is returned when creating a wallet that already exists.
var ErrWalletExists = errors.New("wallet already exists")
