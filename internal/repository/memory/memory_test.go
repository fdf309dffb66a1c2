package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityRepository_Create_Conflicts(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := NewIdentityRepository()
	_, err := repo.Create(ctx, identity.Binding{ExternalID: "U1", EmployeeID: "12", DisplayName: "Alice"})
	require.NoError(t, err)

	// Act
	_, sameEmployee := repo.Create(ctx, identity.Binding{ExternalID: "U2", EmployeeID: "12", DisplayName: "Bob"})
	_, sameIdentity := repo.Create(ctx, identity.Binding{ExternalID: "U1", EmployeeID: "13", DisplayName: "Alice"})

	// Assert
	assert.ErrorIs(t, sameEmployee, identity.ErrConflict)
	assert.ErrorIs(t, sameIdentity, identity.ErrConflict)
	taken, err := repo.IsEmployeeIDTaken(ctx, "12")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestIdentityRepository_Create_ConcurrentSameEmployee(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository()

	var (
		wg      sync.WaitGroup
		success int32
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := repo.Create(ctx, identity.Binding{ExternalID: fmt.Sprintf("U%d", i), EmployeeID: "12"}); err == nil {
				atomic.AddInt32(&success, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), success)
}

func TestIdentityRepository_DeleteByEmployeeID(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository()
	_, err := repo.Create(ctx, identity.Binding{ExternalID: "U1", EmployeeID: "12", DisplayName: "Alice"})
	require.NoError(t, err)

	deleted, err := repo.DeleteByEmployeeID(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "U1", deleted.ExternalID)

	_, err = repo.GetByExternalID(ctx, "U1")
	assert.ErrorIs(t, err, identity.ErrBindingNotFound)
	_, err = repo.DeleteByEmployeeID(ctx, "12")
	assert.ErrorIs(t, err, identity.ErrBindingNotFound)
}

func TestStateRepository_SaveGetDeleteStale(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()
	now := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	pending := "12"

	require.NoError(t, repo.Save(ctx, conversation.State{ExternalID: "old", Phase: conversation.PhaseAwaitingName, PendingEmployeeID: &pending, UpdatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.Save(ctx, conversation.State{ExternalID: "new", Phase: conversation.PhaseAwaitingEmployeeID, UpdatedAt: now}))

	// Mutating the caller's pointer must not leak into the store.
	pending = "99"
	got, err := repo.Get(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "12", *got.PendingEmployeeID)

	removed, err := repo.DeleteStale(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, conversation.ErrStateNotFound)
	_, err = repo.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestAttendanceRepository_Append_RejectsAcceptedDuplicate(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := NewAttendanceRepository()
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	rec := attendance.Record{EmployeeID: "12", Kind: attendance.KindClockIn, WorkDate: day, OccurredAt: day.Add(8 * time.Hour), Outcome: attendance.OutcomeNormal}

	// Act
	_, first := repo.Append(ctx, rec)
	_, second := repo.Append(ctx, rec)
	rejected := rec
	rejected.Outcome = attendance.OutcomeRejectedOutOfRange
	_, audit := repo.Append(ctx, rejected)

	// Assert
	assert.NoError(t, first)
	assert.ErrorIs(t, second, attendance.ErrDuplicateRecord)
	assert.NoError(t, audit)

	records, err := repo.ListByEmployeeAndDate(ctx, "12", day)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAttendanceRepository_AppendPair_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	out := attendance.Record{EmployeeID: "12", Kind: attendance.KindClockOut, WorkDate: day, Outcome: attendance.OutcomeNormal}
	_, err := repo.Append(ctx, out)
	require.NoError(t, err)

	in := attendance.Record{EmployeeID: "12", Kind: attendance.KindClockIn, WorkDate: day, Outcome: attendance.OutcomeForgottenConfirmed}
	backfill := attendance.Record{EmployeeID: "12", Kind: attendance.KindClockOut, WorkDate: day, Outcome: attendance.OutcomeBackfilled}
	_, err = repo.AppendPair(ctx, in, backfill)

	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)
	records, err := repo.ListByEmployeeAndDate(ctx, "12", day)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendanceRepository_ListRange(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	d1 := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	d3 := d1.AddDate(0, 0, 2)
	for _, r := range []attendance.Record{
		{EmployeeID: "13", Kind: attendance.KindClockIn, WorkDate: d1, OccurredAt: d1, Outcome: attendance.OutcomeNormal},
		{EmployeeID: "12", Kind: attendance.KindClockIn, WorkDate: d2, OccurredAt: d2, Outcome: attendance.OutcomeNormal},
		{EmployeeID: "12", Kind: attendance.KindClockIn, WorkDate: d3, OccurredAt: d3, Outcome: attendance.OutcomeNormal},
	} {
		_, err := repo.Append(ctx, r)
		require.NoError(t, err)
	}

	all, err := repo.ListRange(ctx, attendance.RangeFilter{StartDate: d1, EndDate: d2})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "12", all[0].EmployeeID)

	emp := "13"
	one, err := repo.ListRange(ctx, attendance.RangeFilter{EmployeeID: &emp, StartDate: d1, EndDate: d3})
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestLocationRepository_Latest(t *testing.T) {
	ctx := context.Background()
	repo := NewLocationRepository()
	t0 := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	_, err := repo.Latest(ctx, "U1")
	assert.ErrorIs(t, err, location.ErrSampleNotFound)

	_, _ = repo.Append(ctx, location.Sample{ExternalID: "U1", Latitude: 1, OccurredAt: t0.Add(time.Minute)})
	_, _ = repo.Append(ctx, location.Sample{ExternalID: "U1", Latitude: 2, OccurredAt: t0})
	_, _ = repo.Append(ctx, location.Sample{ExternalID: "U2", Latitude: 3, OccurredAt: t0.Add(time.Hour)})

	latest, err := repo.Latest(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, float64(1), latest.Latitude)

	inRange, err := repo.ListRange(ctx, nil, t0, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)
}
