// Package dynamodb implements DynamoDB-based storage for the actifly beta API.
// The signup list is one versioned item; writes are conditioned on the stored
// version so concurrent submits cannot silently lose updates.
package dynamodb

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/constants"
	"github.com/actifly/api/internal/database"
	apperrors "github.com/actifly/api/internal/errors"
	"github.com/actifly/api/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// SignupRepository implements the database.SignupStore interface using DynamoDB.
type SignupRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *slog.Logger
}

// NewSignupRepository creates a new DynamoDB-backed signup store.
func NewSignupRepository(client *dynamodb.Client, tableName string, log *slog.Logger) *SignupRepository {
	return &SignupRepository{
		client:    client,
		tableName: tableName,
		logger:    log,
	}
}

// signupListItem represents the structure stored in DynamoDB.
// The whole list is serialized as one JSON document; version is the
// optimistic-concurrency stamp.
type signupListItem struct {
	ListKey   string `dynamodbav:"list_key"` // Partition key
	Records   string `dynamodbav:"records"`  // JSON-encoded []api.SignupRecord
	Version   int64  `dynamodbav:"version"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// LoadList reads the signup list document with a strongly consistent read.
// An absent item is treated as an empty list at version 0.
func (r *SignupRepository) LoadList(ctx context.Context) ([]api.SignupRecord, int64, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	logArgs := []any{
		"operation", "DynamoDB.GetItem",
		"table", r.tableName,
		"listKey", constants.SignupListKey,
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"list_key": &types.AttributeValueMemberS{Value: constants.SignupListKey},
		},
		// The submit path rewrites the document based on what it reads here,
		// so an eventually consistent read would reintroduce lost updates.
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, 0, apperrors.ErrDatabaseError("failed to load signup list", err)
	}

	if result.Item == nil {
		return []api.SignupRecord{}, 0, nil
	}

	var item signupListItem
	if err = attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, 0, apperrors.ErrDatabaseError("failed to unmarshal signup list item", err)
	}

	var records []api.SignupRecord
	if item.Records != "" {
		if err = json.Unmarshal([]byte(item.Records), &records); err != nil {
			return nil, 0, apperrors.ErrDatabaseError("failed to decode signup list document", err)
		}
	}
	if records == nil {
		records = []api.SignupRecord{}
	}

	return records, item.Version, nil
}

// SaveList writes the full list back under the fixed key, conditioned on the
// stored version still matching expectedVersion. Version 0 means the document
// must not exist yet.
func (r *SignupRepository) SaveList(ctx context.Context, records []api.SignupRecord, expectedVersion int64) error {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	doc, err := json.Marshal(records)
	if err != nil {
		return apperrors.ErrDatabaseError("failed to encode signup list document", err)
	}

	item := signupListItem{
		ListKey:   constants.SignupListKey,
		Records:   string(doc),
		Version:   expectedVersion + 1,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.ErrDatabaseError("failed to marshal signup list item", err)
	}

	var cond expression.ConditionBuilder
	if expectedVersion == 0 {
		cond = expression.AttributeNotExists(expression.Name("list_key"))
	} else {
		cond = expression.Name("version").Equal(expression.Value(expectedVersion))
	}

	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return apperrors.ErrDatabaseError("failed to build condition expression", err)
	}

	logArgs := []any{
		"operation", "DynamoDB.PutItem",
		"table", r.tableName,
		"listKey", constants.SignupListKey,
		"records", len(records),
		"expectedVersion", expectedVersion,
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if stderrors.As(err, &ccf) {
			reqLogger.Debug("signup list write lost a version race",
				"expectedVersion", expectedVersion)
			return fmt.Errorf("save at version %d: %w", expectedVersion, database.ErrVersionConflict)
		}

		var apiErr smithy.APIError
		if stderrors.As(err, &apiErr) {
			reqLogger.Error("DynamoDB PutItem failed",
				"errorCode", apiErr.ErrorCode(), "errorMessage", apiErr.ErrorMessage())
		}
		return apperrors.ErrDatabaseError("failed to save signup list", err)
	}

	return nil
}
