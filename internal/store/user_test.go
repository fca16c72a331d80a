package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamotypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamoClient implements dynamoAPI for testing.
type mockDynamoClient struct {
	mu      sync.Mutex
	items   map[string]map[string]dynamotypes.AttributeValue
	tables  map[string]dynamotypes.TableStatus
	getErr  error
	putErr  error
	creates int
}

func newMockDynamo() *mockDynamoClient {
	return &mockDynamoClient{
		items:  make(map[string]map[string]dynamotypes.AttributeValue),
		tables: make(map[string]dynamotypes.TableStatus),
	}
}

func itemEmail(item map[string]dynamotypes.AttributeValue) string {
	if v, ok := item["email"].(*dynamotypes.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (m *mockDynamoClient) GetItem(_ context.Context, input *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item := m.items[itemEmail(input.Key)]
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (m *mockDynamoClient) PutItem(_ context.Context, input *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[itemEmail(input.Item)] = input.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamoClient) CreateTable(_ context.Context, input *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	name := aws.ToString(input.TableName)
	if _, ok := m.tables[name]; ok {
		return nil, &dynamotypes.ResourceInUseException{}
	}
	m.tables[name] = dynamotypes.TableStatusActive
	return &dynamodb.CreateTableOutput{}, nil
}

func (m *mockDynamoClient) DescribeTable(_ context.Context, input *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status, ok := m.tables[aws.ToString(input.TableName)]
	if !ok {
		return nil, &dynamotypes.ResourceNotFoundException{}
	}
	return &dynamodb.DescribeTableOutput{
		Table: &dynamotypes.TableDescription{TableStatus: status},
	}, nil
}

func setupUserStore(t *testing.T) (*UserStore, *mockDynamoClient) {
	t.Helper()
	mock := newMockDynamo()
	us := NewUserStore(mock, "NotesAppUsers", slog.New(slog.DiscardHandler))
	return us, mock
}

func TestCreateAndVerifyUser(t *testing.T) {
	us, _ := setupUserStore(t)
	ctx := context.Background()

	if err := us.CreateUser(ctx, "Alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	info, err := us.VerifyUser(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if info.Email != "alice@example.com" {
		t.Errorf("email = %q", info.Email)
	}
	if info.Name != "Alice" {
		t.Errorf("name = %q", info.Name)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	us, mock := setupUserStore(t)
	ctx := context.Background()

	if err := us.CreateUser(ctx, "Alice", "alice@example.com", "first"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	storedBefore := mock.items["alice@example.com"]

	err := us.CreateUser(ctx, "Imposter", "alice@example.com", "second")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}

	// The original record, hash included, must be untouched.
	storedAfter := mock.items["alice@example.com"]
	before := storedBefore["password"].(*dynamotypes.AttributeValueMemberS).Value
	after := storedAfter["password"].(*dynamotypes.AttributeValueMemberS).Value
	if before != after {
		t.Error("stored hash changed on duplicate registration attempt")
	}
	if _, err := us.VerifyUser(ctx, "alice@example.com", "first"); err != nil {
		t.Errorf("original password no longer verifies: %v", err)
	}
}

func TestVerifyUserWrongPassword(t *testing.T) {
	us, _ := setupUserStore(t)
	ctx := context.Background()

	if err := us.CreateUser(ctx, "Alice", "alice@example.com", "right"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, err := us.VerifyUser(ctx, "alice@example.com", "wrong")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("err = %v, want ErrInvalidPassword", err)
	}
}

func TestVerifyUserUnknown(t *testing.T) {
	us, _ := setupUserStore(t)

	_, err := us.VerifyUser(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestVerifyUserStoreFailure(t *testing.T) {
	us, mock := setupUserStore(t)

	mock.getErr = errors.New("connection refused")
	_, err := us.VerifyUser(context.Background(), "alice@example.com", "pw")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidPassword) {
		t.Error("store failure must not look like an auth failure")
	}
}

func TestPasswordNeverStoredPlain(t *testing.T) {
	us, mock := setupUserStore(t)

	if err := us.CreateUser(context.Background(), "Alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	stored := mock.items["alice@example.com"]["password"].(*dynamotypes.AttributeValueMemberS).Value
	if stored == "s3cret" {
		t.Fatal("password stored in plain text")
	}
}

func TestEnsureTableCreatesOnce(t *testing.T) {
	us, mock := setupUserStore(t)
	ctx := context.Background()

	if err := us.EnsureTable(ctx); err != nil {
		t.Fatalf("ensure table: %v", err)
	}
	if mock.creates != 1 {
		t.Fatalf("creates = %d, want 1", mock.creates)
	}

	// Second call sees the table and does nothing.
	if err := us.EnsureTable(ctx); err != nil {
		t.Fatalf("ensure table again: %v", err)
	}
	if mock.creates != 1 {
		t.Errorf("creates = %d after second call, want 1", mock.creates)
	}
}
