package job

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"applytrack/internal/app/server/api/http/middleware/auth"
	"applytrack/internal/domain/job"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, fields job.Fields, ownerID string) (string, error) {
	args := m.Called(ctx, fields, ownerID)
	return args.String(0), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id string, fields job.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockService) ListByOwner(ctx context.Context, ownerID string, limit int) ([]job.Record, error) {
	args := m.Called(ctx, ownerID, limit)
	if recs := args.Get(0); recs != nil {
		return recs.([]job.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func authedCtx(userID string) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func newTestHandler(service job.Servicer) *Handler {
	h := NewHandler(service, slog.Default(), huma.Middlewares{})
	h.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return h
}

func TestHandler_List(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	mockSvc.On("ListByOwner", mock.Anything, "42", job.MaxListLimit).Return([]job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
	}, nil)

	output, err := handler.list(authedCtx("42"), &listInput{})
	require.NoError(t, err)
	require.Len(t, output.Body, 1)
	assert.Equal(t, "1", output.Body[0].ID)
	assert.Equal(t, "Acme", output.Body[0].CompanyName)

	mockSvc.AssertExpectations(t)
}

func TestHandler_List_Unauthorized(t *testing.T) {
	handler := newTestHandler(new(MockService))

	_, err := handler.list(context.Background(), &listInput{})
	assert.Error(t, err)
}

func TestHandler_Create(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	fields := job.Fields{CompanyName: "Acme", Title: "Engineer"}
	mockSvc.On("Create", mock.Anything, fields, "42").Return("7", nil)

	output, err := handler.create(authedCtx("42"), &createInput{Body: fields})
	require.NoError(t, err)
	assert.Equal(t, "Ok", output.Body.Status)
	assert.Equal(t, "7", output.Body.ID)

	mockSvc.AssertExpectations(t)
}

func TestHandler_Create_ServiceError(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	mockSvc.On("Create", mock.Anything, mock.Anything, "42").Return("", job.ErrValidation)

	output, err := handler.create(authedCtx("42"), &createInput{Body: job.Fields{Status: "bogus"}})
	require.NoError(t, err)
	assert.Equal(t, "Error", output.Body.Status)
	assert.NotEmpty(t, output.Body.Error)
}

func TestHandler_Delete(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	mockSvc.On("Delete", mock.Anything, "7").Return(nil)

	output, err := handler.delete(authedCtx("42"), &deleteInput{ID: "7"})
	require.NoError(t, err)
	assert.Equal(t, "Ok", output.Body.Status)

	mockSvc.AssertExpectations(t)
}

func TestHandler_Export(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	mockSvc.On("ListByOwner", mock.Anything, "42", job.MaxListLimit).Return([]job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
	}, nil)

	output, err := handler.export(authedCtx("42"), &exportInput{})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", output.ContentType)
	assert.Contains(t, output.Disposition, "job_applications_2024-06-01.csv")
	assert.Contains(t, string(output.Body), `"Acme"`)
}

func TestHandler_Export_NoRecords(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	mockSvc.On("ListByOwner", mock.Anything, "42", job.MaxListLimit).Return(nil, nil)

	_, err := handler.export(authedCtx("42"), &exportInput{})
	assert.Error(t, err)
}

func TestHandler_Stats(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	mockSvc.On("ListByOwner", mock.Anything, "42", job.MaxListLimit).Return([]job.Record{
		{ID: "1", Fields: job.Fields{Status: "Applied", ApplicationDate: "2024-05-10", FollowUpDate: "2024-05-30"}},
		{ID: "2", Fields: job.Fields{Status: "Rejected", ApplicationDate: "2024-05-02"}},
	}, nil)

	output, err := handler.stats(authedCtx("42"), &statsInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, output.Body.Total)
	assert.Equal(t, 1, output.Body.ByStatus["Applied"])
	assert.Equal(t, 1, output.Body.FollowUpsDue)
	require.Len(t, output.Body.Monthly, 1)
	assert.Equal(t, "2024-05", output.Body.Monthly[0].Month)
	assert.Equal(t, 2, output.Body.Monthly[0].Count)

	// Every field on the wire is snake_case, histogram entries included.
	body, err := json.Marshal(output.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"monthly":[{"month":"2024-05","count":2}]`)
}
