package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moneta/finance-tracker/pkg/models"
	"github.com/moneta/finance-tracker/pkg/storage"
	"github.com/moneta/finance-tracker/pkg/storage/dynamodb/mocks"
)

func TestCreateTransaction(t *testing.T) {
	newTx := func() *models.Transaction {
		return &models.Transaction{
			UserId:      "user-1",
			WalletId:    "wallet-1",
			Amount:      -4200,
			Date:        "2024-06-01",
			Description: "Groceries",
			Category:    "food",
			Type:        models.EXPENSE,
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		store := New(mockClient, "transactions", "wallets")
		createdTx, err := store.CreateTransaction(context.Background(), newTx())

		assert.NoError(t, err)
		assert.NotEmpty(t, createdTx.Id)
		assert.Equal(t, models.NEVER, createdTx.Recurrence)
		assert.False(t, createdTx.CreatedAt.IsZero())
		mockClient.AssertExpectations(t)
	})

	t.Run("Recurrence Is Preserved", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		tx := newTx()
		tx.Recurrence = models.MONTHLY

		store := New(mockClient, "transactions", "wallets")
		createdTx, err := store.CreateTransaction(context.Background(), tx)

		assert.NoError(t, err)
		assert.Equal(t, models.MONTHLY, createdTx.Recurrence)
		mockClient.AssertExpectations(t)
	})

	t.Run("Wallet Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			},
		})

		store := New(mockClient, "transactions", "wallets")
		_, err := store.CreateTransaction(context.Background(), newTx())

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("transaction failed"))

		store := New(mockClient, "transactions", "wallets")
		_, err := store.CreateTransaction(context.Background(), newTx())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute transaction")
		mockClient.AssertExpectations(t)
	})
}

func TestGetTransaction(t *testing.T) {
	tx := &models.Transaction{Id: "tx-1", UserId: "user-1", WalletId: "wallet-1", Amount: -4200, Date: "2024-06-01"}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		txAV, _ := attributevalue.MarshalMap(tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: txAV}, nil)

		store := New(mockClient, "transactions", "wallets")
		retrievedTx, err := store.GetTransaction(context.Background(), "tx-1")

		assert.NoError(t, err)
		assert.Equal(t, tx, retrievedTx)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		store := New(mockClient, "transactions", "wallets")
		_, err := store.GetTransaction(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrTransactionNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get failed"))

		store := New(mockClient, "transactions", "wallets")
		_, err := store.GetTransaction(context.Background(), "tx-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get transaction from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestDeleteTransaction(t *testing.T) {
	tx := &models.Transaction{Id: "tx-1", UserId: "user-1", WalletId: "wallet-1", Amount: -4200}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		txAV, _ := attributevalue.MarshalMap(tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: txAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		store := New(mockClient, "transactions", "wallets")
		err := store.DeleteTransaction(context.Background(), "tx-1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		store := New(mockClient, "transactions", "wallets")
		err := store.DeleteTransaction(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrTransactionNotFound)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		txAV, _ := attributevalue.MarshalMap(tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: txAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("transaction failed"))

		store := New(mockClient, "transactions", "wallets")
		err := store.DeleteTransaction(context.Background(), "tx-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute deletion transaction")
		mockClient.AssertExpectations(t)
	})
}

func TestListTransactionsByUserID(t *testing.T) {
	transactions := []models.Transaction{
		{Id: "tx-1", UserId: "user-1", WalletId: "wallet-1"},
		{Id: "tx-2", UserId: "user-1", WalletId: "wallet-2"},
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		var txsAV []map[string]types.AttributeValue
		for _, tx := range transactions {
			av, err := attributevalue.MarshalMap(tx)
			assert.NoError(t, err)
			txsAV = append(txsAV, av)
		}
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: txsAV}, nil)

		store := New(mockClient, "transactions", "wallets")
		retrieved, err := store.ListTransactionsByUserID(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, transactions, retrieved)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		store := New(mockClient, "transactions", "wallets")
		_, err := store.ListTransactionsByUserID(context.Background(), "user-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query for transactions by user ID")
		mockClient.AssertExpectations(t)
	})
}
