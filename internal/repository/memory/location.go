package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/google/uuid"
)

type locationRepository struct {
	mu      sync.RWMutex
	samples []location.Sample
	now     func() time.Time
}

func NewLocationRepository() location.LocationRepository {
	return &locationRepository{now: time.Now}
}

func (l *locationRepository) Append(ctx context.Context, sample location.Sample) (location.Sample, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if sample.ID == "" {
		sample.ID = uuid.NewString()
	}
	sample.CreatedAt = l.now()
	l.samples = append(l.samples, sample)
	return sample, nil
}

// Latest picks the newest OccurredAt; ties go to the later insert.
func (l *locationRepository) Latest(ctx context.Context, externalID string) (location.Sample, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var (
		latest location.Sample
		found  bool
	)
	for _, s := range l.samples {
		if s.ExternalID != externalID {
			continue
		}
		if !found || !s.OccurredAt.Before(latest.OccurredAt) {
			latest = s
			found = true
		}
	}
	if !found {
		return location.Sample{}, location.ErrSampleNotFound
	}
	return latest, nil
}

func (l *locationRepository) ListRange(ctx context.Context, employeeID *string, from time.Time, to time.Time) ([]location.Sample, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []location.Sample
	for _, s := range l.samples {
		if s.OccurredAt.Before(from) || !s.OccurredAt.Before(to) {
			continue
		}
		if employeeID != nil && s.EmployeeID != *employeeID {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out, nil
}

func (l *locationRepository) DeleteAll(ctx context.Context) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := int64(len(l.samples))
	l.samples = nil
	return n, nil
}
