package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"applytrack/internal/domain/job"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	storage, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestSQLiteStorage_CreateAndList(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	fields := job.Fields{
		CompanyName:     "Acme",
		Title:           "Engineer",
		Status:          "Applied",
		ApplicationDate: "2024-06-01",
	}

	id, err := storage.Create(ctx, fields, "local")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	records, err := storage.ListByOwner(ctx, "local", job.MaxListLimit)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, fields, records[0].Fields)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestSQLiteStorage_ListIsScopedToOwner(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	_, err := storage.Create(ctx, job.Fields{CompanyName: "Acme"}, "alice")
	require.NoError(t, err)
	_, err = storage.Create(ctx, job.Fields{CompanyName: "Globex"}, "bob")
	require.NoError(t, err)

	records, err := storage.ListByOwner(ctx, "alice", job.MaxListLimit)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].Fields.CompanyName)
}

func TestSQLiteStorage_Update(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	id, err := storage.Create(ctx, job.Fields{CompanyName: "Acme", Title: "Engineer"}, "local")
	require.NoError(t, err)

	updated := job.Fields{CompanyName: "Acme", Title: "Senior Engineer", Status: "Interviewing"}
	require.NoError(t, storage.Update(ctx, id, updated))

	records, err := storage.ListByOwner(ctx, "local", job.MaxListLimit)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, updated, records[0].Fields)
}

func TestSQLiteStorage_UpdateMissing(t *testing.T) {
	storage := newTestStorage(t)

	err := storage.Update(context.Background(), "999", job.Fields{CompanyName: "Acme"})
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestSQLiteStorage_Delete(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	id, err := storage.Create(ctx, job.Fields{CompanyName: "Acme"}, "local")
	require.NoError(t, err)

	require.NoError(t, storage.Delete(ctx, id))

	records, err := storage.ListByOwner(ctx, "local", job.MaxListLimit)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.ErrorIs(t, storage.Delete(ctx, id), job.ErrNotFound)
}

func TestSQLiteStorage_ListHonorsLimit(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := storage.Create(ctx, job.Fields{CompanyName: "Acme"}, "local")
		require.NoError(t, err)
	}

	records, err := storage.ListByOwner(ctx, "local", 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
