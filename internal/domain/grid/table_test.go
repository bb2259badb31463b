package grid

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"applytrack/internal/domain/job"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, fields job.Fields, ownerID string) (string, error) {
	args := m.Called(ctx, fields, ownerID)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, id string, fields job.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ListByOwner(ctx context.Context, ownerID string, limit int) ([]job.Record, error) {
	args := m.Called(ctx, ownerID, limit)
	if recs := args.Get(0); recs != nil {
		return recs.([]job.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeTimer and fakeClock give the tests full control over the debounce
// window. Advance fires due callbacks synchronously, in deadline order.
type fakeTimer struct {
	deadline time.Time
	fn       func()
	stopped  bool
}

func (t *fakeTimer) Stop() bool {
	fired := t.stopped
	t.stopped = true
	return !fired
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock(t *testing.T) *fakeClock {
	t.Helper()
	now, err := time.Parse(job.DateLayout, "2024-06-01")
	require.NoError(t, err)
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	ft := &fakeTimer{deadline: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, ft)
	return ft
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	var rest []*fakeTimer
	for _, ft := range c.timers {
		if !ft.stopped && !ft.deadline.After(c.now) {
			ft.stopped = true
			due = append(due, ft)
		} else {
			rest = append(rest, ft)
		}
	}
	c.timers = rest
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	for _, ft := range due {
		ft.fn()
	}
}

type tableFixture struct {
	table   *Table
	store   *MockStore
	clock   *fakeClock
	notices *[]Notice
}

func newTableFixture(t *testing.T) tableFixture {
	t.Helper()
	store := new(MockStore)
	clock := newFakeClock(t)
	var notices []Notice
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	table := New(store, Config{}, clock, log, func(n Notice) {
		notices = append(notices, n)
	})
	return tableFixture{table: table, store: store, clock: clock, notices: &notices}
}

func loadRecords(t *testing.T, fx tableFixture, records []job.Record) {
	t.Helper()
	fx.store.On("ListByOwner", mock.Anything, "u1", job.MaxListLimit).Return(records, nil).Once()
	require.NoError(t, fx.table.Load(context.Background(), "u1"))
}

func TestTable_LoadBuildsNumberedRows(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
		{ID: "2", Fields: job.Fields{CompanyName: "Globex", Title: "Analyst"}},
	})

	view := fx.table.View()
	require.Len(t, view, 2)
	assert.Equal(t, 1, view[0].Number)
	assert.Equal(t, 2, view[1].Number)
	assert.Equal(t, StatePersisted, view[0].State)
	assert.False(t, fx.table.EmptyState())
	fx.store.AssertExpectations(t)
}

func TestTable_EmptyStateToggles(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, nil)
	assert.True(t, fx.table.EmptyState())

	r := fx.table.AddDraftRow()
	require.NotNil(t, r)
	assert.False(t, fx.table.EmptyState())

	require.NoError(t, fx.table.Remove(context.Background(), r))
	assert.True(t, fx.table.EmptyState())
	fx.store.AssertExpectations(t)
}

func TestTable_DebounceCoalescesEdits(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, nil)

	r := fx.table.AddDraftRow()
	require.NoError(t, fx.table.SetField(r, job.FieldCompanyName, "Acm"))
	fx.table.ScheduleSave(r)
	fx.clock.Advance(400 * time.Millisecond)

	require.NoError(t, fx.table.SetField(r, job.FieldCompanyName, "Acme"))
	fx.table.ScheduleSave(r)

	want := job.Fields{CompanyName: "Acme"}
	fx.store.On("Create", mock.Anything, want, "u1").Return("7", nil).Once()

	fx.clock.Advance(DefaultSaveDelay)

	assert.Equal(t, StatePersisted, r.State())
	assert.Equal(t, "7", r.ID())
	fx.store.AssertExpectations(t)
	fx.store.AssertNumberOfCalls(t, "Create", 1)
}

func TestTable_RevertedEditSavesNothing(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
	})
	r := fx.table.Row(0)

	require.NoError(t, fx.table.SetField(r, job.FieldTitle, "Senior Engineer"))
	fx.table.ScheduleSave(r)
	require.NoError(t, fx.table.SetField(r, job.FieldTitle, "Engineer"))
	fx.table.ScheduleSave(r)

	fx.clock.Advance(2 * DefaultSaveDelay)

	fx.store.AssertNotCalled(t, "Update")
	fx.store.AssertNotCalled(t, "Create")
}

func TestTable_EmptyDraftNeverCreated(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, nil)

	r := fx.table.AddDraftRow()
	fx.table.ScheduleSave(r)
	fx.clock.Advance(2 * DefaultSaveDelay)

	fx.store.AssertNotCalled(t, "Create")
}

func TestTable_BlurFlushesOnlyChangedField(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
	})
	r := fx.table.Row(0)

	require.NoError(t, fx.table.Blur(context.Background(), r, job.FieldTitle))
	fx.store.AssertNotCalled(t, "Update")

	require.NoError(t, fx.table.SetField(r, job.FieldTitle, "Staff Engineer"))
	want := job.Fields{CompanyName: "Acme", Title: "Staff Engineer"}
	fx.store.On("Update", mock.Anything, "1", want).Return(nil).Once()

	require.NoError(t, fx.table.Blur(context.Background(), r, job.FieldTitle))
	fx.store.AssertExpectations(t)
}

func TestTable_InFlightFlushCoalesces(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
	})
	r := fx.table.Row(0)

	require.NoError(t, fx.table.SetField(r, job.FieldTitle, "Senior Engineer"))

	first := job.Fields{CompanyName: "Acme", Title: "Senior Engineer"}
	second := job.Fields{CompanyName: "Initech", Title: "Senior Engineer"}
	fx.store.On("Update", mock.Anything, "1", first).Return(nil).Once().Run(func(mock.Arguments) {
		// An edit and a flush land while the first save is on the wire.
		require.NoError(t, fx.table.SetField(r, job.FieldCompanyName, "Initech"))
		require.NoError(t, fx.table.FlushSave(context.Background(), r))
	})
	fx.store.On("Update", mock.Anything, "1", second).Return(nil).Once()

	require.NoError(t, fx.table.FlushSave(context.Background(), r))

	fx.store.AssertExpectations(t)
	fx.store.AssertNumberOfCalls(t, "Update", 2)
}

func TestTable_InFlightFlushCoalescesAfterFailure(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
	})
	r := fx.table.Row(0)

	require.NoError(t, fx.table.SetField(r, job.FieldTitle, "Senior Engineer"))

	first := job.Fields{CompanyName: "Acme", Title: "Senior Engineer"}
	second := job.Fields{CompanyName: "Initech", Title: "Senior Engineer"}
	fx.store.On("Update", mock.Anything, "1", first).Return(errors.New("boom")).Once().Run(func(mock.Arguments) {
		// An edit and a flush land while the doomed save is on the wire.
		require.NoError(t, fx.table.SetField(r, job.FieldCompanyName, "Initech"))
		require.NoError(t, fx.table.FlushSave(context.Background(), r))
	})
	fx.store.On("Update", mock.Anything, "1", second).Return(nil).Once()

	// The follow-up carries the newer values even though the first save
	// failed, and its success makes the whole flush succeed.
	require.NoError(t, fx.table.FlushSave(context.Background(), r))

	fx.store.AssertExpectations(t)
	fx.store.AssertNumberOfCalls(t, "Update", 2)
	assert.Equal(t, second, r.Fields())
}

func TestTable_SaveFailureKeepsRowDirty(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
	})
	r := fx.table.Row(0)
	require.NoError(t, fx.table.SetField(r, job.FieldTitle, "Senior Engineer"))

	want := job.Fields{CompanyName: "Acme", Title: "Senior Engineer"}
	fx.store.On("Update", mock.Anything, "1", want).Return(errors.New("boom")).Once()

	err := fx.table.FlushSave(context.Background(), r)
	require.Error(t, err)

	var levels []Level
	for _, n := range *fx.notices {
		levels = append(levels, n.Level)
	}
	assert.Contains(t, levels, LevelError)

	// The next flush retries with the same values.
	fx.store.On("Update", mock.Anything, "1", want).Return(nil).Once()
	require.NoError(t, fx.table.FlushSave(context.Background(), r))
	fx.store.AssertExpectations(t)
}

func TestTable_LoadCancelsPendingTimers(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
	})
	r := fx.table.Row(0)
	require.NoError(t, fx.table.SetField(r, job.FieldTitle, "Senior Engineer"))
	fx.table.ScheduleSave(r)

	fx.store.On("ListByOwner", mock.Anything, "u2", job.MaxListLimit).Return(nil, nil).Once()
	require.NoError(t, fx.table.Load(context.Background(), "u2"))

	fx.clock.Advance(2 * DefaultSaveDelay)

	fx.store.AssertNotCalled(t, "Update")
	fx.store.AssertExpectations(t)
}

func TestTable_CloseCancelsPendingTimers(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, nil)

	r := fx.table.AddDraftRow()
	require.NoError(t, fx.table.SetField(r, job.FieldCompanyName, "Acme"))
	fx.table.ScheduleSave(r)

	fx.table.Close()
	fx.clock.Advance(2 * DefaultSaveDelay)

	fx.store.AssertNotCalled(t, "Create")
}

func TestTable_RemovePersistedRenumbers(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
		{ID: "2", Fields: job.Fields{CompanyName: "Globex", Title: "Analyst"}},
		{ID: "3", Fields: job.Fields{CompanyName: "Initech", Title: "Manager"}},
	})

	fx.store.On("Delete", mock.Anything, "2").Return(nil).Once()
	require.NoError(t, fx.table.Remove(context.Background(), fx.table.Row(1)))

	view := fx.table.View()
	require.Len(t, view, 2)
	assert.Equal(t, "1", view[0].ID)
	assert.Equal(t, 1, view[0].Number)
	assert.Equal(t, "3", view[1].ID)
	assert.Equal(t, 2, view[1].Number)
	fx.store.AssertExpectations(t)
}

func TestTable_RemoveFailureKeepsRow(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
	})

	fx.store.On("Delete", mock.Anything, "1").Return(errors.New("boom")).Once()
	err := fx.table.Remove(context.Background(), fx.table.Row(0))
	require.Error(t, err)

	assert.Equal(t, 1, fx.table.Len())
	assert.False(t, fx.table.EmptyState())
	fx.store.AssertExpectations(t)
}

func TestTable_DuplicateScanFlagsAndClears(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme Corp", Title: "Software Engineer"}},
		{ID: "2", Fields: job.Fields{CompanyName: "acme corp", Title: "software engineer"}},
		{ID: "3", Fields: job.Fields{CompanyName: "Globex", Title: "Analyst"}},
	})

	view := fx.table.View()
	assert.True(t, view[0].Marks.Duplicate)
	assert.True(t, view[1].Marks.Duplicate)
	assert.False(t, view[2].Marks.Duplicate)

	// Renaming one company past the threshold clears both flags after the
	// save settles.
	r := fx.table.Row(1)
	require.NoError(t, fx.table.SetField(r, job.FieldCompanyName, "Initrode Industries"))
	fields := r.Fields()
	fx.store.On("Update", mock.Anything, "2", fields).Return(nil).Once()
	require.NoError(t, fx.table.FlushSave(context.Background(), r))

	view = fx.table.View()
	assert.False(t, view[0].Marks.Duplicate)
	assert.False(t, view[1].Marks.Duplicate)
	fx.store.AssertExpectations(t)
}

func TestTable_AppliedStatusDefaultsPersist(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer"}},
	})
	r := fx.table.Row(0)

	require.NoError(t, fx.table.SetField(r, job.FieldStatus, "Applied"))
	fx.table.ScheduleSave(r)

	want := job.Fields{
		CompanyName:     "Acme",
		Title:           "Engineer",
		Status:          "Applied",
		ApplicationDate: "2024-06-01",
		FollowUpDate:    "2024-06-04",
	}
	fx.store.On("Update", mock.Anything, "1", want).Return(nil).Once()

	fx.clock.Advance(DefaultSaveDelay)
	fx.store.AssertExpectations(t)
}

func TestTable_DerivedStateTracksMutations(t *testing.T) {
	fx := newTableFixture(t)
	loadRecords(t, fx, []job.Record{
		{ID: "1", Fields: job.Fields{CompanyName: "Acme", Title: "Engineer", Status: "Applied", ApplicationDate: "2024-05-10", FollowUpDate: "2024-05-30"}},
		{ID: "2", Fields: job.Fields{CompanyName: "Globex", Title: "Analyst", Status: "Rejected", ApplicationDate: "2024-04-02"}},
	})

	sum := fx.table.Summary()
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.ByStatus[job.StatusApplied])
	assert.Equal(t, 1, sum.ByStatus[job.StatusRejected])
	assert.Equal(t, 1, fx.table.FollowUpsDue())

	monthly := fx.table.Monthly()
	require.Len(t, monthly, 2)
	assert.Equal(t, "2024-05", monthly[0].Month)

	fx.store.On("Delete", mock.Anything, "1").Return(nil).Once()
	require.NoError(t, fx.table.Remove(context.Background(), fx.table.Row(0)))

	sum = fx.table.Summary()
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, 0, sum.ByStatus[job.StatusApplied])
	assert.Equal(t, 0, fx.table.FollowUpsDue())
	fx.store.AssertExpectations(t)
}

func TestTable_OnChangeFiresAfterSettledMutation(t *testing.T) {
	fx := newTableFixture(t)
	var fired int
	fx.table.SetOnChange(func() { fired++ })

	loadRecords(t, fx, nil)
	assert.Equal(t, 1, fired)

	fx.table.AddDraftRow()
	assert.Equal(t, 2, fired)
}
