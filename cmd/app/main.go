package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/moneta/finance-tracker/pkg/handlers"
	"github.com/moneta/finance-tracker/pkg/materializer"
	"github.com/moneta/finance-tracker/pkg/middleware"
	"github.com/moneta/finance-tracker/pkg/notifier"
	dydbstore "github.com/moneta/finance-tracker/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")
	walletsTable := os.Getenv("DYNAMODB_WALLETS_TABLE_NAME")

	if transactionsTable == "" || walletsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// Create our storage implementation
	store := dydbstore.New(dbClient, transactionsTable, walletsTable)

	// SQS notifier for created occurrences; optional outside production.
	var occurrenceNotifier notifier.Notifier
	if sqsQueueURL := os.Getenv("SQS_QUEUE_URL"); sqsQueueURL != "" {
		occurrenceNotifier = notifier.NewSQSNotifier(sqs.NewFromConfig(cfg), sqsQueueURL)
	} else {
		log.Println("SQS_QUEUE_URL not set, occurrence events will not be published")
	}

	// The materialization job shares the storage layer with the API.
	job := materializer.New(store, occurrenceNotifier, logger)

	// Create our handler
	handler := handlers.NewApiHandler(store, job)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(logger))

	// Mount our handler on the router
	handler.Routes(router)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
