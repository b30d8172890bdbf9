package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"marketplace_pagamentos/internal/domain/entities"
	"marketplace_pagamentos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsOrderIDIndex     = "order_id-index"
	paymentsProviderIDIndex  = "provider_payment_id-index"
)

type paymentItem struct {
	ID                string `dynamodbav:"id"`
	ProviderPaymentID string `dynamodbav:"provider_payment_id,omitempty"`
	OrderID           string `dynamodbav:"order_id"`
	Status            string `dynamodbav:"status"`
	Amount            int64  `dynamodbav:"amount"`
	OriginalAmount    int64  `dynamodbav:"original_amount"`
	Currency          string `dynamodbav:"currency"`
	AuthorizationCode string `dynamodbav:"authorization_code,omitempty"`
	Description       string `dynamodbav:"description,omitempty"`
	Provider          string `dynamodbav:"provider"`
	Installments      int    `dynamodbav:"installments"`
	InstallmentAmount int64  `dynamodbav:"installment_amount,omitempty"`
	HasInterest       bool   `dynamodbav:"has_interest"`
	ReversedAmount    int64  `dynamodbav:"reversed_amount,omitempty"`
	AuthorizedAt      string `dynamodbav:"authorized_at,omitempty"`
	CapturedAt        string `dynamodbav:"captured_at,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists PaymentRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
//   - GSI: provider_payment_id-index (PK: provider_payment_id)
//
// Records are append-then-update only; nothing is ever deleted (audit
// trail). The conditional PutItem doubles as the id dedup guard.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.PaymentRecord{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (entities.PaymentRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsProviderIDIndex),
		KeyConditionExpression: aws.String("provider_payment_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: providerPaymentID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Items) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.PaymentRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.PaymentRecord, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	return items, nil
}

func (r *PaymentDynamoRepository) Update(ctx context.Context, id string, upd entities.PaymentRecordUpdate) (entities.PaymentRecord, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	expr := "SET #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#id":         "id",
		"#updated_at": "updated_at",
	}

	if upd.Status != nil {
		expr += ", #status = :status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(*upd.Status)}
		names["#status"] = "status"
	}
	if upd.ProviderPaymentID != nil {
		expr += ", #provider_payment_id = :provider_payment_id"
		values[":provider_payment_id"] = &types.AttributeValueMemberS{Value: *upd.ProviderPaymentID}
		names["#provider_payment_id"] = "provider_payment_id"
	}
	if upd.AuthorizationCode != nil {
		expr += ", #authorization_code = :authorization_code"
		values[":authorization_code"] = &types.AttributeValueMemberS{Value: *upd.AuthorizationCode}
		names["#authorization_code"] = "authorization_code"
	}
	if upd.ReversedAmount != nil {
		expr += ", #reversed_amount = :reversed_amount"
		values[":reversed_amount"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(*upd.ReversedAmount, 10)}
		names["#reversed_amount"] = "reversed_amount"
	}
	if upd.Description != nil {
		expr += ", #description = :description"
		values[":description"] = &types.AttributeValueMemberS{Value: *upd.Description}
		names["#description"] = "description"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PaymentRecord{}, fmt.Errorf("%w: id=%s", interfaces.ErrRecordNotFound, id)
		}
		return entities.PaymentRecord{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.PaymentRecord{}, fmt.Errorf("%w: id=%s", interfaces.ErrRecordNotFound, id)
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentItem(it), nil
}

func toPaymentItem(p entities.PaymentRecord) paymentItem {
	return paymentItem{
		ID:                p.ID,
		ProviderPaymentID: p.ProviderPaymentID,
		OrderID:           p.OrderID,
		Status:            string(p.Status),
		Amount:            p.Amount,
		OriginalAmount:    p.OriginalAmount,
		Currency:          p.Currency,
		AuthorizationCode: p.AuthorizationCode,
		Description:       p.Description,
		Provider:          p.Provider,
		Installments:      p.Installments,
		InstallmentAmount: p.InstallmentAmount,
		HasInterest:       p.HasInterest,
		ReversedAmount:    p.ReversedAmount,
		AuthorizedAt:      formatTime(p.AuthorizedAt),
		CapturedAt:        formatTime(p.CapturedAt),
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.PaymentRecord {
	return entities.PaymentRecord{
		ID:                it.ID,
		ProviderPaymentID: it.ProviderPaymentID,
		OrderID:           it.OrderID,
		Status:            entities.PaymentStatus(it.Status),
		Amount:            it.Amount,
		OriginalAmount:    it.OriginalAmount,
		Currency:          it.Currency,
		AuthorizationCode: it.AuthorizationCode,
		Description:       it.Description,
		Provider:          it.Provider,
		Installments:      it.Installments,
		InstallmentAmount: it.InstallmentAmount,
		HasInterest:       it.HasInterest,
		ReversedAmount:    it.ReversedAmount,
		AuthorizedAt:      parseTime(it.AuthorizedAt),
		CapturedAt:        parseTime(it.CapturedAt),
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
