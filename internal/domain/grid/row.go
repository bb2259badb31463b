package grid

import (
	"strconv"
	"strings"
	"time"

	"applytrack/internal/domain/job"
)

// RowState is the lifecycle of one row: Draft until the first successful
// create assigns an id, then Persisted, then Deleted (terminal).
type RowState int

const (
	StateDraft RowState = iota
	StatePersisted
	StateDeleted
)

func (s RowState) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StatePersisted:
		return "persisted"
	case StateDeleted:
		return "deleted"
	}
	return "unknown"
}

// CompetitionMark grades the applicants column against the threshold.
type CompetitionMark int

const (
	CompetitionNone CompetitionMark = iota
	CompetitionFavorable
	CompetitionUnfavorable
)

// Marks are presentational flags derived from a row's working values.
// They never affect persistence on their own.
type Marks struct {
	Competition CompetitionMark
	Overdue     bool
	LinkActive  bool
	Duplicate   bool
}

// Row holds one record's editable state. All mutation goes through the
// owning Table, which is the single writer for the whole row set; a Row
// keeps no reference back to its table.
type Row struct {
	state  RowState
	id     string
	number int

	fields    job.Fields
	lastSaved job.Fields
	marks     Marks

	timer    Timer
	inFlight bool
	stale    bool
}

func (r *Row) State() RowState {
	return r.state
}

// ID is the store-assigned identifier, "" while the row is a draft.
func (r *Row) ID() string {
	return r.id
}

// Number is the 1-based display position.
func (r *Row) Number() int {
	return r.number
}

func (r *Row) Fields() job.Fields {
	return r.fields
}

func (r *Row) Marks() Marks {
	return r.marks
}

// dirty reports whether the working values differ from the last persisted
// snapshot.
func (r *Row) dirty() bool {
	return len(r.fields.Diff(r.lastSaved)) > 0
}

// applyEdit stores a field value and runs the status-transition defaults.
// These are defaults, not locks: a later direct edit of the date fields
// wins.
func (r *Row) applyEdit(name, value string, today time.Time) error {
	old := r.fields.Get(name)
	if err := r.fields.Set(name, value); err != nil {
		return err
	}

	switch name {
	case job.FieldStatus:
		if r.fields.Status == job.StatusApplied.String() && old != job.StatusApplied.String() {
			if r.fields.ApplicationDate == "" {
				r.fields.ApplicationDate = job.FormatDate(today)
			}
			r.fields.FollowUpDate = job.AddDays(today, followUpDaysApplied)
		}
	case job.FieldFollowUpStatus:
		if r.fields.FollowUpStatus == job.FollowUpFirstSent.String() && old != job.FollowUpFirstSent.String() {
			r.fields.FollowUpDate = job.AddDays(today, followUpDaysFirstSent)
		}
	}

	return nil
}

// refreshMarks recomputes the presentational flags other than Duplicate,
// which only a table-wide scan may touch.
func (r *Row) refreshMarks(today time.Time, applicantsThreshold int) {
	r.marks.Competition = CompetitionNone
	if n, err := strconv.Atoi(r.fields.NumberOfApplicants); err == nil {
		if n <= applicantsThreshold {
			r.marks.Competition = CompetitionFavorable
		} else {
			r.marks.Competition = CompetitionUnfavorable
		}
	}

	r.marks.Overdue = job.OnOrBefore(r.fields.FollowUpDate, job.FormatDate(today))
	r.marks.LinkActive = strings.HasPrefix(r.fields.JobLink, "http")
}

func (r *Row) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
