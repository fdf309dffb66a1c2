package attendance

import (
	"context"
	"errors"
	"time"
)

// AttendanceRepository is the append-only attendance log.
type AttendanceRepository interface {
	// Append stores a record. It returns ErrDuplicateRecord when the record is accepted and
	// another accepted record with the same (employee, kind, work date) already exists.
	Append(ctx context.Context, record Record) (Record, error)

	// AppendPair stores both records or neither.
	AppendPair(ctx context.Context, first Record, second Record) ([]Record, error)

	// ListByEmployeeAndDate returns every record of the employee on the work date, oldest first.
	ListByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) ([]Record, error)

	// ListRange returns records whose work date lies in [filter.StartDate, filter.EndDate].
	ListRange(ctx context.Context, filter RangeFilter) ([]Record, error)

	DeleteAll(ctx context.Context) (int64, error)
}

// EventPublisher is notified after accepted records are stored.
type EventPublisher interface {
	PublishRecorded(ctx context.Context, record Record) error
}

// Publishers fans a record out to several publishers and joins their errors.
type Publishers []EventPublisher

func (p Publishers) PublishRecorded(ctx context.Context, record Record) error {
	var errs []error
	for _, pub := range p {
		if err := pub.PublishRecorded(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
