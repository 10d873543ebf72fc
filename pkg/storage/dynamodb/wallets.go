package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/moneta/finance-tracker/pkg/models"
	"github.com/moneta/finance-tracker/pkg/storage"
)

// CreateWallet creates a new wallet record in DynamoDB.
func (s *Store) CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	now := time.Now()
	wallet.CreatedAt = now
	wallet.UpdatedAt = now

	walletAV, err := attributevalue.MarshalMap(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.WalletsTableName),
		Item:                walletAV,
		ConditionExpression: aws.String("attribute_not_exists(user_id) AND attribute_not_exists(wallet_id)"), // Prevent overwriting existing wallets.
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("wallet %s for user %s: %w", wallet.WalletId, wallet.UserId, storage.ErrWalletExists)
		}
		return nil, fmt.Errorf("failed to create wallet in DynamoDB: %w", err)
	}

	return wallet, nil
}

// DeleteWallet deletes a wallet record from DynamoDB.
func (s *Store) DeleteWallet(ctx context.Context, userID, walletID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"user_id": userID, "wallet_id": walletID})
	if err != nil {
		return fmt.Errorf("failed to marshal wallet key for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.WalletsTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(user_id)"), // Ensure the wallet exists before deleting.
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("wallet %s for user %s: %w", walletID, userID, storage.ErrWalletNotFound)
		}
		return fmt.Errorf("failed to delete wallet from DynamoDB: %w", err)
	}

	return nil
}

// GetWallet retrieves a user's wallet from DynamoDB by user ID and wallet ID.
func (s *Store) GetWallet(ctx context.Context, userID, walletID string) (*models.Wallet, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"user_id": userID, "wallet_id": walletID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet key: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.WalletsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("wallet %s for user %s: %w", walletID, userID, storage.ErrWalletNotFound)
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(result.Item, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return &wallet, nil
}

// ListWallets retrieves all wallets belonging to a user.
func (s *Store) ListWallets(ctx context.Context, userID string) ([]models.Wallet, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.WalletsTableName),
		KeyConditionExpression: aws.String("user_id = :userID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID": &types.AttributeValueMemberS{Value: userID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets table: %w", err)
	}

	var wallets []models.Wallet
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &wallets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallets: %w", err)
	}

	return wallets, nil
}
