package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) Validate(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func TestService_CreateAndValidate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	var storedHash string
	mockRepo.On("Create", mock.Anything, "42", mock.MatchedBy(func(hash string) bool {
		storedHash = hash
		return len(hash) == 64 // hex sha256
	}), mock.MatchedBy(func(at time.Time) bool {
		return time.Until(at) > 23*time.Hour
	})).Return(nil)

	token, err := service.Create(context.Background(), "42")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, storedHash)

	mockRepo.On("Validate", mock.Anything, storedHash).Return("42", nil)

	userID, err := service.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "42", userID)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, "42", mock.Anything, mock.Anything).
		Return(errors.New("database error"))

	_, err := service.Create(context.Background(), "42")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "save session")

	mockRepo.AssertExpectations(t)
}

func TestService_Validate_InvalidToken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Validate", mock.Anything, mock.Anything).Return("", errors.New("invalid session"))

	_, err := service.Validate(context.Background(), "forged-token")
	assert.Error(t, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Revoke(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Delete", mock.Anything, mock.MatchedBy(func(hash string) bool {
		return len(hash) == 64
	})).Return(nil)

	require.NoError(t, service.Revoke(context.Background(), "some-token"))
	mockRepo.AssertExpectations(t)
}

func TestService_TokensAreUnique(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, "42", mock.Anything, mock.Anything).Return(nil)

	a, err := service.Create(context.Background(), "42")
	require.NoError(t, err)
	b, err := service.Create(context.Background(), "42")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
