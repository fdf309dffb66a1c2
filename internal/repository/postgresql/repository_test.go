package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/database"
	"github.com/cmlabs-hris/checkin-bot/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taipei = time.FixedZone("CST", 8*3600)

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties every table.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx))
	_, err = db.Exec(ctx, `TRUNCATE TABLE bindings, conversation_states, attendance_records, location_samples`)
	require.NoError(t, err)
	return db
}

func TestIdentityRepository_Create_UniqueKeys(t *testing.T) {
	// Setup
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewIdentityRepository(db)

	// Act
	created, err := repo.Create(ctx, identity.Binding{ExternalID: "U1", EmployeeID: "12", DisplayName: "Alice", BoundAt: time.Now()})
	_, dupEmployee := repo.Create(ctx, identity.Binding{ExternalID: "U2", EmployeeID: "12", DisplayName: "Bob", BoundAt: time.Now()})
	_, dupIdentity := repo.Create(ctx, identity.Binding{ExternalID: "U1", EmployeeID: "13", DisplayName: "Alice", BoundAt: time.Now()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "12", created.EmployeeID)
	assert.ErrorIs(t, dupEmployee, identity.ErrConflict)
	assert.ErrorIs(t, dupIdentity, identity.ErrConflict)

	taken, err := repo.IsEmployeeIDTaken(ctx, "12")
	require.NoError(t, err)
	assert.True(t, taken)

	byEmployee, err := repo.GetByEmployeeID(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "U1", byEmployee.ExternalID)
}

func TestIdentityRepository_DeleteByEmployeeID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewIdentityRepository(db)
	_, err := repo.Create(ctx, identity.Binding{ExternalID: "U1", EmployeeID: "12", DisplayName: "Alice", BoundAt: time.Now()})
	require.NoError(t, err)

	deleted, err := repo.DeleteByEmployeeID(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "U1", deleted.ExternalID)

	_, err = repo.DeleteByEmployeeID(ctx, "12")
	assert.ErrorIs(t, err, identity.ErrBindingNotFound)
}

func TestStateRepository_UpsertAndExpire(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewStateRepository(db)
	now := time.Now()
	pending := "12"

	require.NoError(t, repo.Save(ctx, conversation.State{ExternalID: "U1", Phase: conversation.PhaseAwaitingEmployeeID, UpdatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.Save(ctx, conversation.State{ExternalID: "U1", Phase: conversation.PhaseAwaitingName, PendingEmployeeID: &pending, UpdatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.Save(ctx, conversation.State{ExternalID: "U2", Phase: conversation.PhaseAwaitingEmployeeID, UpdatedAt: now}))

	got, err := repo.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, conversation.PhaseAwaitingName, got.Phase)
	require.NotNil(t, got.PendingEmployeeID)
	assert.Equal(t, "12", *got.PendingEmployeeID)

	removed, err := repo.DeleteStale(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.Get(ctx, "U1")
	assert.ErrorIs(t, err, conversation.ErrStateNotFound)
}

func TestAttendanceRepository_PartialUniqueIndex(t *testing.T) {
	// Setup
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db, taipei)
	occurred := time.Date(2025, 4, 1, 8, 0, 0, 0, taipei)
	rec := attendance.Record{
		EmployeeID:  "12",
		ExternalID:  "U1",
		DisplayName: "Alice",
		Kind:        attendance.KindClockIn,
		OccurredAt:  occurred,
		WorkDate:    attendance.DateOf(occurred),
		Outcome:     attendance.OutcomeNormal,
	}

	// Act
	stored, err := repo.Append(ctx, rec)
	_, dup := repo.Append(ctx, rec)
	audit := rec
	audit.Outcome = attendance.OutcomeRejectedOutOfRange
	_, auditErr := repo.Append(ctx, audit)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.ErrorIs(t, dup, attendance.ErrDuplicateRecord)
	assert.NoError(t, auditErr)

	records, err := repo.ListByEmployeeAndDate(ctx, "12", attendance.DateOf(occurred))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].WorkDate.Equal(attendance.DateOf(occurred)))
	assert.True(t, records[0].OccurredAt.Equal(occurred))
}

func TestAttendanceRepository_AppendPair_RollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db, taipei)
	occurred := time.Date(2025, 4, 1, 18, 0, 0, 0, taipei)
	day := attendance.DateOf(occurred)

	_, err := repo.Append(ctx, attendance.Record{EmployeeID: "12", ExternalID: "U1", DisplayName: "Alice", Kind: attendance.KindClockOut, OccurredAt: occurred, WorkDate: day, Outcome: attendance.OutcomeNormal})
	require.NoError(t, err)

	_, err = repo.AppendPair(ctx,
		attendance.Record{EmployeeID: "12", ExternalID: "U1", DisplayName: "Alice", Kind: attendance.KindClockIn, OccurredAt: occurred, WorkDate: day, Outcome: attendance.OutcomeForgottenConfirmed},
		attendance.Record{EmployeeID: "12", ExternalID: "U1", DisplayName: "Alice", Kind: attendance.KindClockOut, OccurredAt: occurred, WorkDate: day, Outcome: attendance.OutcomeBackfilled},
	)
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	records, err := repo.ListByEmployeeAndDate(ctx, "12", day)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLocationRepository_LatestAndRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLocationRepository(db, taipei)
	t0 := time.Date(2025, 4, 1, 8, 0, 0, 0, taipei)

	_, err := repo.Latest(ctx, "U1")
	assert.ErrorIs(t, err, location.ErrSampleNotFound)

	for i, lat := range []float64{24.0, 24.001} {
		_, err := repo.Append(ctx, location.Sample{ExternalID: "U1", EmployeeID: "12", DisplayName: "Alice", Latitude: lat, Longitude: 121.0, OccurredAt: t0.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	latest, err := repo.Latest(ctx, "U1")
	require.NoError(t, err)
	assert.InDelta(t, 24.001, latest.Latitude, 1e-9)

	employee := "12"
	samples, err := repo.ListRange(ctx, &employee, t0, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}
