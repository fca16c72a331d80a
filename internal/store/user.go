package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/notevault/internal/model"
)

// dynamoAPI is the slice of the DynamoDB client the store uses, an
// interface for testability.
type dynamoAPI interface {
	GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	CreateTable(ctx context.Context, input *dynamodb.CreateTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, input *dynamodb.DescribeTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoConfig holds credential-table storage configuration.
type DynamoConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// UserStore holds user accounts in a DynamoDB table keyed by email.
type UserStore struct {
	client dynamoAPI
	table  string
	logger *slog.Logger
}

func NewUserStore(client dynamoAPI, table string, logger *slog.Logger) *UserStore {
	return &UserStore{client: client, table: table, logger: logger}
}

// NewDynamoClient creates a real DynamoDB client.
func NewDynamoClient(cfg DynamoConfig) *dynamodb.Client {
	opts := dynamodb.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return dynamodb.New(opts)
}

// EnsureTable provisions the credential table if it does not exist and
// waits for it to become active. Safe to call on every startup.
func (s *UserStore) EnsureTable(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("describe table %s: %w", s.table, err)
	}

	s.logger.Info("creating credential table", "table", s.table)
	_, err = s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("email"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("email"), AttributeType: types.ScalarAttributeTypeS},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(5),
			WriteCapacityUnits: aws.Int64(5),
		},
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return fmt.Errorf("create table %s: %w", s.table, err)
		}
		// Another instance is creating it; fall through and wait.
	}

	err = retry.Do(
		func() error {
			out, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
				TableName: aws.String(s.table),
			})
			if err != nil {
				return err
			}
			if out.Table.TableStatus != types.TableStatusActive {
				return fmt.Errorf("table %s is %s", s.table, out.Table.TableStatus)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(30),
		retry.Delay(time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("wait for table %s: %w", s.table, err)
	}
	return nil
}

// CreateUser registers a new account. The password is stored only as a
// salted bcrypt hash. Fails with ErrUserExists when the email is taken.
func (s *UserStore) CreateUser(ctx context.Context, name, email, password string) error {
	existing, err := s.getUser(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("user %s: %w", email, ErrUserExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	item, err := attributevalue.MarshalMap(model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    model.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put user %s: %w", email, err)
	}
	return nil
}

// VerifyUser checks the password against the stored hash and returns the
// public view of the account. The hash never leaves the store.
func (s *UserStore) VerifyUser(ctx context.Context, email, password string) (*model.UserInfo, error) {
	u, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", email, ErrUserNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return &model.UserInfo{Email: u.Email, Name: u.Name}, nil
}

func (s *UserStore) getUser(ctx context.Context, email string) (*model.User, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", email, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var u model.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user %s: %w", email, err)
	}
	return &u, nil
}
