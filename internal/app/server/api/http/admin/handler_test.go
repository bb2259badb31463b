package admin

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"applytrack/internal/app/server/api/http/middleware/auth"
	"applytrack/internal/domain/job"
	"applytrack/internal/domain/user"
)

type MockJobs struct {
	mock.Mock
}

func (m *MockJobs) Create(ctx context.Context, fields job.Fields, ownerID string) (string, error) {
	args := m.Called(ctx, fields, ownerID)
	return args.String(0), args.Error(1)
}

func (m *MockJobs) Update(ctx context.Context, id string, fields job.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockJobs) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobs) ListByOwner(ctx context.Context, ownerID string, limit int) ([]job.Record, error) {
	args := m.Called(ctx, ownerID, limit)
	if records := args.Get(0); records != nil {
		return records.([]job.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) Register(ctx context.Context, login, password string) (user.User, error) {
	args := m.Called(ctx, login, password)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUsers) Authenticate(ctx context.Context, login, password string) (user.User, error) {
	args := m.Called(ctx, login, password)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUsers) Get(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUsers) TouchActivity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsers) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if users := args.Get(0); users != nil {
		return users.([]user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func authedCtx(userID string) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestHandler_ListUsers(t *testing.T) {
	mockUsers := new(MockUsers)
	handler := NewHandler(mockUsers, new(MockJobs), slog.Default(), huma.Middlewares{})

	admin := user.User{ID: "1", Login: "gbrsuperadmin", Role: user.RoleAdmin}
	lastLogin := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mockUsers.On("Get", mock.Anything, "1").Return(admin, nil)
	mockUsers.On("List", mock.Anything).Return([]user.User{
		admin,
		{ID: "2", Login: "regular", Role: user.RoleUser, LastLogin: lastLogin},
	}, nil)

	output, err := handler.listUsers(authedCtx("1"), &usersInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, output.Body.Total)
	assert.Equal(t, "admin", output.Body.Users[0].Role)
	assert.Nil(t, output.Body.Users[0].LastLogin)
	require.NotNil(t, output.Body.Users[1].LastLogin)
	assert.Equal(t, lastLogin, *output.Body.Users[1].LastLogin)

	mockUsers.AssertExpectations(t)
}

func TestHandler_ListUsers_Forbidden(t *testing.T) {
	mockUsers := new(MockUsers)
	handler := NewHandler(mockUsers, new(MockJobs), slog.Default(), huma.Middlewares{})

	mockUsers.On("Get", mock.Anything, "2").
		Return(user.User{ID: "2", Login: "regular", Role: user.RoleUser}, nil)

	_, err := handler.listUsers(authedCtx("2"), &usersInput{})
	assert.Error(t, err)
	mockUsers.AssertNotCalled(t, "List")
}

func TestHandler_ListUsers_Unauthorized(t *testing.T) {
	handler := NewHandler(new(MockUsers), new(MockJobs), slog.Default(), huma.Middlewares{})

	_, err := handler.listUsers(context.Background(), &usersInput{})
	assert.Error(t, err)
}

func TestHandler_ListUserJobs(t *testing.T) {
	mockUsers := new(MockUsers)
	mockJobs := new(MockJobs)
	handler := NewHandler(mockUsers, mockJobs, slog.Default(), huma.Middlewares{})

	admin := user.User{ID: "1", Login: "gbrsuperadmin", Role: user.RoleAdmin}
	mockUsers.On("Get", mock.Anything, "1").Return(admin, nil)
	mockUsers.On("Get", mock.Anything, "2").
		Return(user.User{ID: "2", Login: "regular", Role: user.RoleUser}, nil)
	mockJobs.On("ListByOwner", mock.Anything, "2", job.MaxListLimit).Return([]job.Record{
		{ID: "10", UserID: "2", Fields: job.Fields{CompanyName: "Acme", Title: "Go Developer"}},
	}, nil)

	output, err := handler.listUserJobs(authedCtx("1"), &userJobsInput{ID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "2", output.Body.UserID)
	assert.Equal(t, 1, output.Body.Total)
	assert.Equal(t, "Acme", output.Body.Jobs[0].CompanyName)

	mockUsers.AssertExpectations(t)
	mockJobs.AssertExpectations(t)
}

func TestHandler_ListUserJobs_UnknownUser(t *testing.T) {
	mockUsers := new(MockUsers)
	mockJobs := new(MockJobs)
	handler := NewHandler(mockUsers, mockJobs, slog.Default(), huma.Middlewares{})

	admin := user.User{ID: "1", Login: "gbrsuperadmin", Role: user.RoleAdmin}
	mockUsers.On("Get", mock.Anything, "1").Return(admin, nil)
	mockUsers.On("Get", mock.Anything, "99").Return(user.User{}, user.ErrNotFound)

	_, err := handler.listUserJobs(authedCtx("1"), &userJobsInput{ID: "99"})
	assert.Error(t, err)
	mockJobs.AssertNotCalled(t, "ListByOwner")
}
