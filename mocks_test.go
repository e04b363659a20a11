package users_test

import (
	"context"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/mock"
)

// testConfig implements users.Config with fixed values
type testConfig struct{}

func (testConfig) GetSigningKey() string   { return "test-signing-key" }
func (testConfig) GetTokenExpiration() int { return 1 }
func (testConfig) GetIssuer() string       { return "test-issuer" }
func (testConfig) GetAudience() []string   { return nil }
func (testConfig) GetContextKey() string   { return "user" }
func (testConfig) GetTokenLookup() string  { return "header:x-token" }

// MockUsers implements users.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByID(ctx context.Context, id int64) (*users.User, error) {
	args := m.Called(ctx, id)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUsers) List(ctx context.Context, limit, offset int) ([]*users.User, int, error) {
	args := m.Called(ctx, limit, offset)
	var records []*users.User
	if v := args.Get(0); v != nil {
		records = v.([]*users.User)
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockUsers) Create(ctx context.Context, record *users.User) (*users.User, error) {
	args := m.Called(ctx, record)
	if fn, ok := args.Get(0).(func(*users.User) *users.User); ok {
		return fn(record), args.Error(1)
	}
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUsers) Update(ctx context.Context, record *users.User, columns ...string) (*users.User, error) {
	args := m.Called(ctx, record, columns)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUsers) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsers) FieldTaken(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	args := m.Called(ctx, column, value, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockAuthenticator implements users.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (*users.User, string, error) {
	args := m.Called(ctx, email, password)
	return userArg(args.Get(0)), args.String(1), args.Error(2)
}

func (m *MockAuthenticator) Logout(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockAuthenticator) Verify(ctx context.Context, token string) (*users.User, error) {
	args := m.Called(ctx, token)
	return userArg(args.Get(0)), args.Error(1)
}

// MockUserService implements users.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, limit, offset int) ([]*users.User, int, error) {
	args := m.Called(ctx, limit, offset)
	var records []*users.User
	if v := args.Get(0); v != nil {
		records = v.([]*users.User)
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*users.User, error) {
	args := m.Called(ctx, id)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, username, email, password string) (*users.User, error) {
	args := m.Called(ctx, username, email, password)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int64, change users.UserUpdate) (*users.User, error) {
	args := m.Called(ctx, id, change)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id int64) (*users.User, error) {
	args := m.Called(ctx, id)
	return userArg(args.Get(0)), args.Error(1)
}

func userArg(v any) *users.User {
	if v == nil {
		return nil
	}
	return v.(*users.User)
}

func mustHash(tb interface{ Fatalf(string, ...any) }, password string) string {
	hash, err := users.HashPassword(password)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	return hash
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
