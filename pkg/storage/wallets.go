package storage

import (
	"context"

	"github.com/moneta/finance-tracker/pkg/models"
)

// WalletStore defines the interface for managing wallets.
type WalletStore interface {
	// GetWallet retrieves a user's wallet by user ID and wallet ID.
	GetWallet(ctx context.Context, userID, walletID string) (*models.Wallet, error)

	// CreateWallet creates a new wallet for a user.
	CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)

	// DeleteWallet deletes a user's wallet.
	DeleteWallet(ctx context.Context, userID, walletID string) error

	// ListWallets retrieves all wallets belonging to a user.
	ListWallets(ctx context.Context, userID string) ([]models.Wallet, error)
}
