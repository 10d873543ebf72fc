package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/moneta/finance-tracker/pkg/models"
)

// ListRecurringTemplates retrieves every transaction whose recurrence rule is
// anything other than "never". Templates are a small fraction of the table
// and carry no dedicated index, so this is a filtered scan, paged through to
// completion.
func (s *Store) ListRecurringTemplates(ctx context.Context) ([]models.Transaction, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.TransactionsTableName),
		FilterExpression: aws.String("attribute_exists(recurrence) AND recurrence <> :never"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":never": &types.AttributeValueMemberS{Value: string(models.NEVER)},
		},
	}

	var templates []models.Transaction
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan for recurring templates: %w", err)
		}

		var page []models.Transaction
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recurring templates: %w", err)
		}
		templates = append(templates, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return templates, nil
}
