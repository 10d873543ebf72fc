package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/moneta/finance-tracker/pkg/models"
)

// SQSAPI defines the subset of the SQS client used by the notifier.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSNotifier implements the Notifier interface using AWS SQS.
type SQSNotifier struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSNotifier creates a new SQSNotifier.
func NewSQSNotifier(client SQSAPI, queueURL string) *SQSNotifier {
	return &SQSNotifier{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Notifier = (*SQSNotifier)(nil)

// occurrenceCreatedEvent is the message body published for each occurrence.
type occurrenceCreatedEvent struct {
	Event       string              `json:"event"`
	Transaction *models.Transaction `json:"transaction"`
}

// OccurrenceCreated sends the materialized occurrence to an SQS queue for
// downstream processing.
func (n *SQSNotifier) OccurrenceCreated(ctx context.Context, occurrence *models.Transaction) error {
	body, err := json.Marshal(occurrenceCreatedEvent{
		Event:       "occurrence.created",
		Transaction: occurrence,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal occurrence for SQS: %w", err)
	}

	_, err = n.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
