package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/moneta/finance-tracker/pkg/materializer"
	"github.com/moneta/finance-tracker/pkg/notifier"
	dydbstore "github.com/moneta/finance-tracker/pkg/storage/dynamodb"
)

var job *materializer.Materializer

// Response is the Lambda invocation result. A run that completes with
// per-template failures still returns 200; only a run that could not start
// reports an error status.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Processed  int    `json:"processed"`
	Created    int    `json:"created"`
	Failed     int    `json:"failed"`
}

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)

	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")
	walletsTable := os.Getenv("DYNAMODB_WALLETS_TABLE_NAME")
	store := dydbstore.New(dbClient, transactionsTable, walletsTable)

	var occurrenceNotifier notifier.Notifier
	if sqsQueueURL := os.Getenv("SQS_QUEUE_URL"); sqsQueueURL != "" {
		occurrenceNotifier = notifier.NewSQSNotifier(sqs.NewFromConfig(cfg), sqsQueueURL)
	}

	job = materializer.New(store, occurrenceNotifier, logger)
}

// HandleRequest is triggered by an EventBridge Schedule once a day.
func HandleRequest(ctx context.Context) (Response, error) {
	summary, err := job.Run(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("ERROR: recurring materialization failed: %v", err)
		return Response{
			StatusCode: http.StatusInternalServerError,
			Message:    err.Error(),
		}, err
	}

	return Response{
		StatusCode: http.StatusOK,
		Message:    "Recurring transactions processed",
		Processed:  summary.Processed,
		Created:    summary.Created,
		Failed:     summary.Failed,
	}, nil
}

func main() {
	lambda.Start(HandleRequest)
}
