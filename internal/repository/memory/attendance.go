package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
	"github.com/google/uuid"
)

type dedupKey struct {
	employeeID string
	kind       attendance.EventKind
	workDate   string
}

type attendanceRepository struct {
	mu       sync.RWMutex
	records  []attendance.Record
	accepted map[dedupKey]bool
	now      func() time.Time
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{
		accepted: make(map[dedupKey]bool),
		now:      time.Now,
	}
}

func keyOf(r attendance.Record) dedupKey {
	return dedupKey{employeeID: r.EmployeeID, kind: r.Kind, workDate: r.WorkDate.Format("2006-01-02")}
}

// Append mirrors the partial unique index of the SQL schema.
func (a *attendanceRepository) Append(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if record.Outcome.IsAccepted() && a.accepted[keyOf(record)] {
		return attendance.Record{}, attendance.ErrDuplicateRecord
	}
	return a.insertLocked(record), nil
}

func (a *attendanceRepository) AppendPair(ctx context.Context, first attendance.Record, second attendance.Record) ([]attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, r := range []attendance.Record{first, second} {
		if r.Outcome.IsAccepted() && a.accepted[keyOf(r)] {
			return nil, attendance.ErrDuplicateRecord
		}
	}
	if first.Outcome.IsAccepted() && second.Outcome.IsAccepted() && keyOf(first) == keyOf(second) {
		return nil, attendance.ErrDuplicateRecord
	}
	return []attendance.Record{a.insertLocked(first), a.insertLocked(second)}, nil
}

func (a *attendanceRepository) insertLocked(record attendance.Record) attendance.Record {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = a.now()
	a.records = append(a.records, record)
	if record.Outcome.IsAccepted() {
		a.accepted[keyOf(record)] = true
	}
	return record
}

func (a *attendanceRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) ([]attendance.Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	day := workDate.Format("2006-01-02")
	var out []attendance.Record
	for _, r := range a.records {
		if r.EmployeeID == employeeID && r.WorkDate.Format("2006-01-02") == day {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

func (a *attendanceRepository) ListRange(ctx context.Context, filter attendance.RangeFilter) ([]attendance.Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	start := filter.StartDate.Format("2006-01-02")
	end := filter.EndDate.Format("2006-01-02")
	var out []attendance.Record
	for _, r := range a.records {
		day := r.WorkDate.Format("2006-01-02")
		if day < start || day > end {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out, nil
}

func (a *attendanceRepository) DeleteAll(ctx context.Context) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := int64(len(a.records))
	a.records = nil
	a.accepted = make(map[dedupKey]bool)
	return n, nil
}
