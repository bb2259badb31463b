// Package grid is the editable-table synchronization engine: it keeps an
// in-memory row set consistent with the record store under debounced,
// field-level edits, and derives analytics and near-duplicate flags from
// the same snapshot after every settled mutation.
package grid

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"applytrack/internal/domain/analytics"
	"applytrack/internal/domain/job"
	"applytrack/internal/domain/match"
)

// Table owns the ordered row set for one viewed user. It is the single
// writer over that set: every mutation (edits, save completions, deletes,
// reloads) runs under its lock, store I/O runs outside it. One Table per
// viewed user at a time; Load replaces the snapshot wholesale.
type Table struct {
	mu sync.Mutex

	cfg    Config
	store  job.Servicer
	clock  Clock
	log    *slog.Logger
	notify Notifier

	userID      string
	rows        []*Row
	placeholder bool
	epoch       int
	closed      bool

	saveCtx context.Context

	summary      analytics.Summary
	monthly      []analytics.MonthCount
	followUpsDue int

	onChange func()
}

// New builds an empty table. A nil clock means wall time; a nil notifier
// drops notices.
func New(store job.Servicer, cfg Config, clock Clock, log *slog.Logger, notify Notifier) *Table {
	if clock == nil {
		clock = SystemClock()
	}
	if notify == nil {
		notify = func(Notice) {}
	}
	t := &Table{
		cfg:         cfg.withDefaults(),
		store:       store,
		clock:       clock,
		log:         log.With("component", "grid"),
		notify:      notify,
		placeholder: true,
		saveCtx:     context.Background(),
	}
	t.summary = analytics.StatusCounts(nil)
	return t
}

// SetOnChange registers a callback fired after any settled mutation, once
// derived state is fresh. Presentation subscribes here instead of holding
// row pointers.
func (t *Table) SetOnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Load replaces the snapshot with ownerID's records. All pending debounce
// timers of the previous snapshot are cancelled first; no save scheduled
// against it can land afterwards.
func (t *Table) Load(ctx context.Context, ownerID string) error {
	t.mu.Lock()
	t.supersedeLocked()
	epoch := t.epoch
	t.userID = ownerID
	t.saveCtx = ctx
	t.mu.Unlock()

	records, err := t.store.ListByOwner(ctx, ownerID, t.cfg.ListLimit)
	if err != nil {
		t.log.Error("failed to load jobs", "owner_id", ownerID, "error", err)
		t.notify(Notice{Level: LevelError, Message: "Failed to load jobs"})
		return fmt.Errorf("load table: %w", err)
	}

	t.mu.Lock()
	if t.epoch != epoch || t.closed {
		t.mu.Unlock()
		return nil
	}

	today := t.clock.Now()
	t.rows = make([]*Row, 0, len(records))
	for _, rec := range records {
		r := &Row{
			state:     StatePersisted,
			id:        rec.ID,
			fields:    rec.Fields,
			lastSaved: rec.Fields,
		}
		r.refreshMarks(today, t.cfg.ApplicantsThreshold)
		t.rows = append(t.rows, r)
	}
	t.renumberLocked()
	t.recomputeEmptyStateLocked()
	t.refreshDerivedLocked()
	changed := t.onChange
	t.mu.Unlock()

	if changed != nil {
		changed()
	}
	return nil
}

// supersedeLocked invalidates every pending timer and in-flight completion
// of the current snapshot.
func (t *Table) supersedeLocked() {
	t.epoch++
	for _, r := range t.rows {
		r.stopTimer()
		r.stale = false
	}
}

// Close cancels all pending work. The table accepts no operations after.
func (t *Table) Close() {
	t.mu.Lock()
	t.supersedeLocked()
	t.closed = true
	t.mu.Unlock()
}

// AddDraftRow appends one empty draft row and returns it. Nothing is
// persisted until a field is filled and the debounced save fires.
func (t *Table) AddDraftRow() *Row {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	r := &Row{state: StateDraft}
	t.rows = append(t.rows, r)
	t.renumberLocked()
	t.recomputeEmptyStateLocked()
	changed := t.onChange
	t.mu.Unlock()

	if changed != nil {
		changed()
	}
	return r
}

// SetField stores a new working value on the row. It never persists by
// itself; callers follow with ScheduleSave (edit) or Blur (focus loss).
func (t *Table) SetField(r *Row, name, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || r.state == StateDeleted {
		return nil
	}

	today := t.clock.Now()
	if err := r.applyEdit(name, value, today); err != nil {
		return err
	}
	r.refreshMarks(today, t.cfg.ApplicantsThreshold)
	return nil
}

// ScheduleSave (re)starts the row's debounce timer. Only the most recent
// schedule within the delay window fires; earlier ones are cancelled,
// never executed.
func (t *Table) ScheduleSave(r *Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || r.state == StateDeleted {
		return
	}

	r.stopTimer()
	epoch := t.epoch
	r.timer = t.clock.AfterFunc(t.cfg.SaveDelay, func() {
		t.timerFired(r, epoch)
	})
}

func (t *Table) timerFired(r *Row, epoch int) {
	t.mu.Lock()
	if t.closed || t.epoch != epoch || r.state == StateDeleted {
		t.mu.Unlock()
		return
	}
	r.timer = nil
	ctx := t.saveCtx
	t.mu.Unlock()

	// Failures are logged and surfaced as notices inside FlushSave; a
	// timer has no caller to raise to.
	_ = t.FlushSave(ctx, r)
}

// Blur flushes immediately when the named field's working value differs
// from its last persisted value, mirroring focus-loss semantics.
func (t *Table) Blur(ctx context.Context, r *Row, field string) error {
	t.mu.Lock()
	differs := !t.closed && r.state != StateDeleted &&
		r.fields.Get(field) != r.lastSaved.Get(field)
	t.mu.Unlock()

	if !differs {
		return nil
	}
	return t.FlushSave(ctx, r)
}

// FlushSave performs the compare-and-save for one row: no-op when nothing
// changed; create on a draft with content and a known owner; full-map
// update on a persisted row. Flushes are serialized per row; a flush
// arriving while one is in flight coalesces into a single follow-up
// issued once the current call settles, whether it succeeded or failed.
// Store failures are logged, surfaced as an error notice and returned;
// lastSaved stays unchanged so the next edit or blur retries naturally.
func (t *Table) FlushSave(ctx context.Context, r *Row) error {
	t.mu.Lock()
	if t.closed || r.state == StateDeleted {
		t.mu.Unlock()
		return nil
	}
	if r.inFlight {
		r.stale = true
		t.mu.Unlock()
		return nil
	}
	if !r.dirty() {
		t.mu.Unlock()
		return nil
	}
	if r.state == StateDraft && (r.fields.IsEmpty() || t.userID == "") {
		t.mu.Unlock()
		return nil
	}

	r.inFlight = true
	fields := r.fields
	id := r.id
	state := r.state
	owner := t.userID
	epoch := t.epoch
	number := r.number
	t.mu.Unlock()

	var newID string
	var err error
	if state == StateDraft {
		newID, err = t.store.Create(ctx, fields, owner)
	} else {
		err = t.store.Update(ctx, id, fields)
	}

	t.mu.Lock()
	r.inFlight = false
	followUp := r.stale
	r.stale = false

	if t.closed || t.epoch != epoch || r.state == StateDeleted {
		t.mu.Unlock()
		return nil
	}

	if err != nil {
		followUp = followUp && r.dirty()
		t.mu.Unlock()
		t.log.Error("autosave failed", "job_id", id, "row", number, "error", err)
		t.notify(Notice{Level: LevelError, Message: "Failed to save changes", Row: number})
		if followUp {
			return t.FlushSave(ctx, r)
		}
		return err
	}

	notice := Notice{Level: LevelSuccess, Message: "Data updated successfully", Row: number}
	if state == StateDraft {
		r.id = newID
		r.state = StatePersisted
		t.renumberLocked()
		t.recomputeEmptyStateLocked()
		notice = Notice{Level: LevelInfo, Message: "New job added", Row: r.number}
	}
	r.lastSaved = fields
	t.refreshDerivedLocked()
	followUp = followUp && r.dirty()
	changed := t.onChange
	t.mu.Unlock()

	t.notify(notice)
	if changed != nil {
		changed()
	}
	if followUp {
		return t.FlushSave(ctx, r)
	}
	return nil
}

// Remove deletes the row. A draft is discarded locally with no store
// call; a persisted row is removed only after the store delete succeeds.
// On failure the row (and its record) stay put.
func (t *Table) Remove(ctx context.Context, r *Row) error {
	t.mu.Lock()
	if t.closed || r.state == StateDeleted {
		t.mu.Unlock()
		return nil
	}

	if r.state == StateDraft {
		r.stopTimer()
		r.state = StateDeleted
		t.dropRowLocked(r)
		changed := t.onChange
		t.mu.Unlock()
		if changed != nil {
			changed()
		}
		return nil
	}

	id := r.id
	epoch := t.epoch
	number := r.number
	t.mu.Unlock()

	if err := t.store.Delete(ctx, id); err != nil {
		t.log.Error("failed to delete job", "job_id", id, "row", number, "error", err)
		t.notify(Notice{Level: LevelError, Message: "Failed to delete job", Row: number})
		return err
	}

	t.mu.Lock()
	if t.closed || t.epoch != epoch || r.state == StateDeleted {
		t.mu.Unlock()
		return nil
	}
	r.stopTimer()
	r.state = StateDeleted
	t.dropRowLocked(r)
	changed := t.onChange
	t.mu.Unlock()

	t.notify(Notice{Level: LevelSuccess, Message: "Job deleted successfully", Row: number})
	if changed != nil {
		changed()
	}
	return nil
}

func (t *Table) dropRowLocked(r *Row) {
	for i, row := range t.rows {
		if row == r {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			break
		}
	}
	t.renumberLocked()
	t.recomputeEmptyStateLocked()
	t.refreshDerivedLocked()
}

// renumberLocked assigns 1-based sequential display positions. Idempotent.
func (t *Table) renumberLocked() {
	for i, r := range t.rows {
		r.number = i + 1
	}
}

// recomputeEmptyStateLocked keeps the placeholder and real rows mutually
// exclusive: the marker exists exactly when zero real rows do.
func (t *Table) recomputeEmptyStateLocked() {
	t.placeholder = len(t.rows) == 0
}

// refreshDerivedLocked re-runs the duplicate scan and the analytics
// projections over the current snapshot. Always a full pass; it runs only
// after a mutation has settled, never concurrently with one.
func (t *Table) refreshDerivedLocked() {
	t.scanDuplicatesLocked()

	records := t.persistedRecordsLocked()
	t.summary = analytics.StatusCounts(records)
	t.monthly = analytics.MonthlyHistogram(records)
	t.followUpsDue = analytics.FollowUpsDue(records, job.FormatDate(t.clock.Now()))
}

// scanDuplicatesLocked flags every row that is a near-duplicate of any
// other: similarity at or above the threshold on both company name and
// title, both values non-empty on both sides.
func (t *Table) scanDuplicatesLocked() {
	for _, r := range t.rows {
		r.marks.Duplicate = false
	}

	thr := t.cfg.DuplicateThreshold
	for i := 0; i < len(t.rows); i++ {
		a := t.rows[i].fields
		if a.CompanyName == "" || a.Title == "" {
			continue
		}
		for j := i + 1; j < len(t.rows); j++ {
			b := t.rows[j].fields
			if b.CompanyName == "" || b.Title == "" {
				continue
			}
			if match.Similarity(a.CompanyName, b.CompanyName) >= thr &&
				match.Similarity(a.Title, b.Title) >= thr {
				t.rows[i].marks.Duplicate = true
				t.rows[j].marks.Duplicate = true
			}
		}
	}
}

func (t *Table) persistedRecordsLocked() []job.Record {
	records := make([]job.Record, 0, len(t.rows))
	for _, r := range t.rows {
		if r.id == "" {
			continue
		}
		records = append(records, job.Record{ID: r.id, UserID: t.userID, Fields: r.fields})
	}
	return records
}

// RowView is a consistent copy of one row for presentation.
type RowView struct {
	Number int
	ID     string
	State  RowState
	Fields job.Fields
	Marks  Marks
}

// View snapshots every real row in display order.
func (t *Table) View() []RowView {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]RowView, len(t.rows))
	for i, r := range t.rows {
		out[i] = RowView{
			Number: r.number,
			ID:     r.id,
			State:  r.state,
			Fields: r.fields,
			Marks:  r.marks,
		}
	}
	return out
}

// Row returns the i-th row (0-based), nil when out of range.
func (t *Table) Row(i int) *Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return t.rows[i]
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// EmptyState reports whether the "no data" placeholder is materialized.
func (t *Table) EmptyState() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.placeholder
}

// Snapshot returns every row's current values in display order, drafts
// included; the export encoder consumes this.
func (t *Table) Snapshot() []job.Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	records := make([]job.Record, len(t.rows))
	for i, r := range t.rows {
		records[i] = job.Record{ID: r.id, UserID: t.userID, Fields: r.fields}
	}
	return records
}

// Summary is the cached per-status tally, fresh as of the last settled
// mutation.
func (t *Table) Summary() analytics.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

// Monthly is the cached application histogram, newest month first.
func (t *Table) Monthly() []analytics.MonthCount {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.monthly
}

// FollowUpsDue is the cached count of follow-ups at or past due.
func (t *Table) FollowUpsDue() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.followUpsDue
}
