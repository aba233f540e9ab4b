package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/medilink-notifier/internal/domain"
)

const (
	fieldUserID           = "user_id"
	fieldEmail            = "email"
	fieldPasswordHash     = "password_hash"
	fieldVerificationCode = "verification_code"
	fieldCodeExpiresAt    = "code_expires_at"
	fieldCodeType         = "code_type"
	fieldUpdatedAt        = "updated_at"

	emailIndex = "email-index"
)

// DirectoryRepo reads and updates one directory partition table
// (users, patients or practitioners).
type DirectoryRepo struct {
	client    itemAPI
	partition string
	tableName string
}

func NewDirectoryRepo(client itemAPI, partition, tableName string) *DirectoryRepo {
	return &DirectoryRepo{client: client, partition: partition, tableName: tableName}
}

// Partition returns the logical partition name this repo serves.
func (r *DirectoryRepo) Partition() string { return r.partition }

// Get loads a record by document id.
func (r *DirectoryRepo) Get(ctx context.Context, userID string) (*domain.UserRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldUserID, userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%s/%s: %w", r.partition, userID, domain.ErrNotFound)
	}
	return r.unmarshal(out.Item)
}

// GetByEmail queries the email-index GSI. Email must already be normalised.
func (r *DirectoryRepo) GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(emailIndex),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": fieldEmail},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: email}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", r.partition, domain.ErrUserNotFound)
	}
	return r.unmarshal(out.Items[0])
}

// ResetCredential stores a new password hash and clears the verification code
// triple in one conditional write. The write only applies while the stored code
// still equals code; otherwise domain.ErrInvalidCode is returned.
func (r *DirectoryRepo) ResetCredential(ctx context.Context, userID, passwordHash, code string, now time.Time) error {
	ue, err := buildUpdateExpr(
		map[string]interface{}{
			fieldPasswordHash: passwordHash,
			fieldUpdatedAt:    now.UTC(),
		},
		fieldVerificationCode, fieldCodeExpiresAt, fieldCodeType,
	)
	if err != nil {
		return err
	}
	ue.Names["#code"] = fieldVerificationCode
	ue.Values[":code"] = &types.AttributeValueMemberS{Value: code}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldUserID, userID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("#code = :code"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("code no longer matches: %w", domain.ErrInvalidCode)
		}
		return err
	}
	return nil
}

func (r *DirectoryRepo) unmarshal(item map[string]types.AttributeValue) (*domain.UserRecord, error) {
	var u domain.UserRecord
	if err := attributevalue.UnmarshalMap(item, &u); err != nil {
		return nil, fmt.Errorf("unmarshal %s record: %w", r.partition, err)
	}
	u.Partition = r.partition
	return &u, nil
}
