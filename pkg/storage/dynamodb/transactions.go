package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/moneta/finance-tracker/pkg/models"
	"github.com/moneta/finance-tracker/pkg/storage"
)

const userIDIndex = "user_id-index"

// CreateTransaction persists a new user-entered transaction and applies its
// amount to the owning wallet's balance in a single TransactWriteItems call.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	// Complete the transaction object with server-side details.
	now := time.Now()
	tx.Id = uuid.New().String()
	if tx.Recurrence == "" {
		tx.Recurrence = models.NEVER
	}
	tx.CreatedAt = now
	tx.UpdatedAt = now

	slog.Log(ctx, slog.LevelDebug, "creating transaction", "transaction", tx)

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	amountAV, err := attributevalue.Marshal(tx.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amount: %w", err)
	}

	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Apply the amount to the owning wallet.
				Update: &types.Update{
					TableName: aws.String(s.WalletsTableName),
					Key: map[string]types.AttributeValue{
						"user_id":   &types.AttributeValueMemberS{Value: tx.UserId},
						"wallet_id": &types.AttributeValueMemberS{Value: tx.WalletId},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
						":now":    nowAV,
					},
				},
			},
			{
				// Operation 2: Create the new transaction record.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 0 {
			if code := tce.CancellationReasons[0].Code; code != nil && *code == "ConditionalCheckFailed" {
				return nil, storage.ErrWalletNotFound
			}
		}
		return nil, fmt.Errorf("failed to execute transaction: %w", err)
	}

	return tx, nil
}

// GetTransaction retrieves a transaction from DynamoDB by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": txID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("transaction %s: %w", txID, storage.ErrTransactionNotFound)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect on
// the owning wallet.
func (s *Store) DeleteTransaction(ctx context.Context, txID string) error {
	tx, err := s.GetTransaction(ctx, txID)
	if err != nil {
		return fmt.Errorf("failed to get transaction for deletion: %w", err)
	}

	// Negate the amount to undo the original balance effect.
	reversalAV, err := attributevalue.Marshal(-tx.Amount)
	if err != nil {
		return fmt.Errorf("failed to marshal reversal amount: %w", err)
	}

	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(s.WalletsTableName),
					Key: map[string]types.AttributeValue{
						"user_id":   &types.AttributeValueMemberS{Value: tx.UserId},
						"wallet_id": &types.AttributeValueMemberS{Value: tx.WalletId},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": reversalAV,
						":now":    nowAV,
					},
				},
			},
			{
				Delete: &types.Delete{
					TableName: aws.String(s.TransactionsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: tx.Id},
					},
					ConditionExpression: aws.String("attribute_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to execute deletion transaction: %w", err)
	}

	return nil
}

// ListTransactionsByUserID retrieves all transactions for a specific user.
func (s *Store) ListTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(userIDIndex),
		KeyConditionExpression: aws.String("user_id = :userID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID": &types.AttributeValueMemberS{Value: userID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for transactions by user ID: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	return transactions, nil
}
