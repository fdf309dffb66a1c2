package location

import (
	"context"
	"time"
)

type LocationRepository interface {
	Append(ctx context.Context, sample Sample) (Sample, error)

	// Latest returns the most recent sample of the identity by OccurredAt, or ErrSampleNotFound.
	Latest(ctx context.Context, externalID string) (Sample, error)

	// ListRange returns samples with OccurredAt in [from, to), ordered by employee then time.
	ListRange(ctx context.Context, employeeID *string, from time.Time, to time.Time) ([]Sample, error)

	DeleteAll(ctx context.Context) (int64, error)
}
