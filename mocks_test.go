package users_test

import (
	"context"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/mock"
)

// MockStore implements users.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindAll(ctx context.Context) ([]users.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]users.User), args.Error(1)
}

func (m *MockStore) FindByAttributes(ctx context.Context, filter users.Filter) ([]users.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]users.User), args.Error(1)
}

func (m *MockStore) GetByID(ctx context.Context, id string) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockStore) GetByIDs(ctx context.Context, ids []string) ([]users.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]users.User), args.Error(1)
}

func (m *MockStore) GetAuthRecordByEmail(ctx context.Context, email string) (*users.AuthUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.AuthUser), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, data users.NewUser) (*users.User, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, id string, data users.NewUser) (*users.User, error) {
	args := m.Called(ctx, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLogger implements users.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// testConfig implements users.Config
type testConfig struct {
	signingKey    string
	signingMethod string
	tokenTTL      int
	environment   string
}

func (c testConfig) GetSigningKey() string    { return c.signingKey }
func (c testConfig) GetSigningMethod() string { return c.signingMethod }
func (c testConfig) GetTokenTTL() int         { return c.tokenTTL }
func (c testConfig) GetEnvironment() string   { return c.environment }

func newTestConfig() testConfig {
	return testConfig{
		signingKey:  "test-signing-key",
		environment: "test",
	}
}
