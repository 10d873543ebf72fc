package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/moneta/finance-tracker/pkg/models"
	"github.com/moneta/finance-tracker/pkg/storage"
)

const occurrenceGSI = "parent_transaction_id-date-index"

// FindOccurrence retrieves the materialized occurrence identified by the
// (walletID, date, parentTransactionID) dedup key, or nil when none exists.
// The GSI is keyed on parent and date; the wallet check rides as a filter
// to disambiguate templates that share a wallet and calendar date.
func (s *Store) FindOccurrence(ctx context.Context, walletID, date, parentTransactionID string) (*models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(occurrenceGSI),
		KeyConditionExpression: aws.String("parent_transaction_id = :parent AND #date = :date"),
		FilterExpression:       aws.String("wallet_id = :wallet"),
		ExpressionAttributeNames: map[string]string{
			"#date": "date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":parent": &types.AttributeValueMemberS{Value: parentTransactionID},
			":date":   &types.AttributeValueMemberS{Value: date},
			":wallet": &types.AttributeValueMemberS{Value: walletID},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for materialized occurrence: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	var occurrence models.Transaction
	if err := attributevalue.UnmarshalMap(result.Items[0], &occurrence); err != nil {
		return nil, fmt.Errorf("failed to unmarshal occurrence: %w", err)
	}

	return &occurrence, nil
}

// MaterializeOccurrence atomically creates the occurrence transaction and
// adds its amount to the owning wallet's balance in a single
// TransactWriteItems call.
//
// The occurrence's ID is deterministic for a given (template, due date), so
// the attribute_not_exists condition on the Put doubles as the concurrency
// guard: two racing runs collide on the same item key and the loser gets
// ErrOccurrenceExists with neither write applied.
func (s *Store) MaterializeOccurrence(ctx context.Context, occurrence *models.Transaction) error {
	occurrenceAV, err := attributevalue.MarshalMap(occurrence)
	if err != nil {
		return fmt.Errorf("failed to marshal occurrence: %w", err)
	}

	amountAV, err := attributevalue.Marshal(occurrence.Amount)
	if err != nil {
		return fmt.Errorf("failed to marshal amount: %w", err)
	}

	updatedAtAV, err := attributevalue.Marshal(occurrence.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the occurrence record.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                occurrenceAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 2: Apply the occurrence's amount to the wallet balance.
				Update: &types.Update{
					TableName: aws.String(s.WalletsTableName),
					Key: map[string]types.AttributeValue{
						"user_id":   &types.AttributeValueMemberS{Value: occurrence.UserId},
						"wallet_id": &types.AttributeValueMemberS{Value: occurrence.WalletId},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
						":now":    updatedAtAV,
					},
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) == 2 {
			if code := tce.CancellationReasons[0].Code; code != nil && *code == "ConditionalCheckFailed" {
				return storage.ErrOccurrenceExists
			}
			if code := tce.CancellationReasons[1].Code; code != nil && *code == "ConditionalCheckFailed" {
				return storage.ErrWalletNotFound
			}
		}
		return fmt.Errorf("failed to execute materialization transaction: %w", err)
	}

	return nil
}
