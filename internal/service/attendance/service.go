package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/utils"
)

type Config struct {
	// Location is the deployment time zone; it defines the calendar day of the dedup key.
	Location *time.Location

	GeofenceEnabled bool
	Sites           []utils.Coordinate
	RadiusMeters    float64
	// AuditRejected stores out-of-range attempts as rejected_out_of_range records.
	AuditRejected bool
	// MaxSampleAge treats older location samples as missing. Zero accepts any age.
	MaxSampleAge time.Duration

	// CheckoutThreshold marks a clock-out this long after clock-in as a likely missed checkout.
	CheckoutThreshold time.Duration

	Now func() time.Time
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	locationRepo location.LocationRepository
	stateRepo    conversation.StateRepository
	publisher    attendance.EventPublisher
	cfg          Config
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	locationRepo location.LocationRepository,
	stateRepo conversation.StateRepository,
	publisher attendance.EventPublisher,
	cfg Config,
) attendance.AttendanceService {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		locationRepo:         locationRepo,
		stateRepo:            stateRepo,
		publisher:            publisher,
		cfg:                  cfg,
	}
}

// geoFix is the position a clock event was accepted or rejected at.
type geoFix struct {
	latitude       float64
	longitude      float64
	distanceMeters float64
}

func (a *AttendanceServiceImpl) now() time.Time {
	return a.cfg.Now().In(a.cfg.Location)
}

func (a *AttendanceServiceImpl) today(ctx context.Context, employeeID string, day time.Time) (attendance.Today, error) {
	records, err := a.AttendanceRepository.ListByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.Today{}, fmt.Errorf("failed to list today's records: %w", err)
	}
	return attendance.Summarize(records), nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, binding identity.Binding) (attendance.Record, error) {
	now := a.now()
	day := attendance.DateOf(now)

	today, err := a.today(ctx, binding.EmployeeID, day)
	if err != nil {
		return attendance.Record{}, err
	}
	if today.ClockIn != nil {
		return attendance.Record{}, attendance.ErrAlreadyClockedIn
	}

	fix, err := a.checkGeofence(ctx, binding, attendance.KindClockIn, now)
	if err != nil {
		return attendance.Record{}, err
	}

	stored, err := a.AttendanceRepository.Append(ctx, newRecord(binding, attendance.KindClockIn, now, attendance.OutcomeNormal, fix))
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to record clock-in: %w", err)
	}

	a.publish(ctx, stored)
	return stored, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, binding identity.Binding) (*attendance.Record, error) {
	now := a.now()
	day := attendance.DateOf(now)

	today, err := a.today(ctx, binding.EmployeeID, day)
	if err != nil {
		return nil, err
	}

	if today.ClockIn == nil {
		err := a.stateRepo.Save(ctx, conversation.State{
			ExternalID: binding.ExternalID,
			Phase:      conversation.PhaseAwaitingConfirmForgotCheckout,
			UpdatedAt:  now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open forgot-checkout confirmation: %w", err)
		}
		return nil, nil
	}
	if today.ClockOut != nil {
		return nil, attendance.ErrAlreadyClockedOut
	}

	outcome := attendance.OutcomeNormal
	if now.Sub(today.ClockIn.OccurredAt) > a.cfg.CheckoutThreshold {
		outcome = attendance.OutcomeLikelyMissedCheckout
	}

	fix, err := a.checkGeofence(ctx, binding, attendance.KindClockOut, now)
	if err != nil {
		return nil, err
	}

	stored, err := a.AttendanceRepository.Append(ctx, newRecord(binding, attendance.KindClockOut, now, outcome, fix))
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return nil, attendance.ErrAlreadyClockedOut
		}
		return nil, fmt.Errorf("failed to record clock-out: %w", err)
	}

	a.publish(ctx, stored)
	return &stored, nil
}

// ConfirmForgotCheckout implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ConfirmForgotCheckout(ctx context.Context, binding identity.Binding) ([]attendance.Record, error) {
	state, err := a.stateRepo.Get(ctx, binding.ExternalID)
	if err != nil {
		if errors.Is(err, conversation.ErrStateNotFound) {
			return nil, attendance.ErrNoPendingConfirmation
		}
		return nil, fmt.Errorf("failed to get conversation state: %w", err)
	}
	if state.Phase != conversation.PhaseAwaitingConfirmForgotCheckout {
		return nil, attendance.ErrNoPendingConfirmation
	}

	now := a.now()
	day := attendance.DateOf(now)

	// A prompt from an earlier day must not backfill today.
	if !attendance.DateOf(state.UpdatedAt.In(a.cfg.Location)).Equal(day) {
		a.clearState(ctx, binding.ExternalID)
		return nil, attendance.ErrNoPendingConfirmation
	}

	today, err := a.today(ctx, binding.EmployeeID, day)
	if err != nil {
		return nil, err
	}
	if today.ClockIn != nil {
		a.clearState(ctx, binding.ExternalID)
		return nil, attendance.ErrNoPendingConfirmation
	}
	if today.ClockOut != nil {
		a.clearState(ctx, binding.ExternalID)
		return nil, attendance.ErrAlreadyClockedOut
	}

	// Geofence failures keep the prompt open so the user can retry from the site.
	fix, err := a.checkGeofence(ctx, binding, attendance.KindClockOut, now)
	if err != nil {
		return nil, err
	}

	stored, err := a.AttendanceRepository.AppendPair(ctx,
		newRecord(binding, attendance.KindClockIn, now, attendance.OutcomeForgottenConfirmed, fix),
		newRecord(binding, attendance.KindClockOut, now, attendance.OutcomeBackfilled, fix),
	)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			a.clearState(ctx, binding.ExternalID)
			return nil, attendance.ErrNoPendingConfirmation
		}
		return nil, fmt.Errorf("failed to record backfilled pair: %w", err)
	}

	a.clearState(ctx, binding.ExternalID)
	for _, r := range stored {
		a.publish(ctx, r)
	}
	return stored, nil
}

// CancelPendingConfirmation implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CancelPendingConfirmation(ctx context.Context, binding identity.Binding) (bool, error) {
	state, err := a.stateRepo.Get(ctx, binding.ExternalID)
	if err != nil {
		if errors.Is(err, conversation.ErrStateNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get conversation state: %w", err)
	}
	if state.Phase != conversation.PhaseAwaitingConfirmForgotCheckout {
		return false, nil
	}
	if err := a.stateRepo.Delete(ctx, binding.ExternalID); err != nil {
		return false, fmt.Errorf("failed to delete conversation state: %w", err)
	}
	return true, nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, req attendance.ListAttendanceRequest) ([]attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, a.cfg.Location)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, a.cfg.Location)

	records, err := a.AttendanceRepository.ListRange(ctx, attendance.RangeFilter{
		EmployeeID: req.EmployeeID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}
	return responses, nil
}

// checkGeofence returns nil, nil when geofencing is off. Out-of-range attempts return a
// *attendance.GeofenceError and, when auditing, leave a rejected record behind.
func (a *AttendanceServiceImpl) checkGeofence(ctx context.Context, binding identity.Binding, kind attendance.EventKind, now time.Time) (*geoFix, error) {
	if !a.cfg.GeofenceEnabled {
		return nil, nil
	}

	sample, err := a.locationRepo.Latest(ctx, binding.ExternalID)
	if err != nil {
		if errors.Is(err, location.ErrSampleNotFound) {
			return nil, attendance.ErrNoLocationData
		}
		return nil, fmt.Errorf("failed to get latest location: %w", err)
	}
	if sample.OccurredAt.After(now.Add(location.MaxClockSkew)) {
		return nil, attendance.ErrNoLocationData
	}
	if a.cfg.MaxSampleAge > 0 && now.Sub(sample.OccurredAt) > a.cfg.MaxSampleAge {
		return nil, attendance.ErrNoLocationData
	}

	distance, _ := utils.NearestDistance(
		utils.Coordinate{Latitude: sample.Latitude, Longitude: sample.Longitude},
		a.cfg.Sites,
	)
	fix := &geoFix{latitude: sample.Latitude, longitude: sample.Longitude, distanceMeters: distance}

	if distance > a.cfg.RadiusMeters {
		if a.cfg.AuditRejected {
			rejected := newRecord(binding, kind, now, attendance.OutcomeRejectedOutOfRange, fix)
			if _, err := a.AttendanceRepository.Append(ctx, rejected); err != nil {
				slog.Error("failed to audit rejected attempt", "employee_id", binding.EmployeeID, "error", err)
			}
		}
		return nil, &attendance.GeofenceError{DistanceMeters: distance, RadiusMeters: a.cfg.RadiusMeters}
	}
	return fix, nil
}

func (a *AttendanceServiceImpl) clearState(ctx context.Context, externalID string) {
	if err := a.stateRepo.Delete(ctx, externalID); err != nil {
		slog.Error("failed to clear confirmation state", "external_id", externalID, "error", err)
	}
}

// publish never fails the clock event; the record is already durable.
func (a *AttendanceServiceImpl) publish(ctx context.Context, record attendance.Record) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.PublishRecorded(ctx, record); err != nil {
		slog.Warn("failed to publish attendance record", "record_id", record.ID, "error", err)
	}
}

func newRecord(binding identity.Binding, kind attendance.EventKind, now time.Time, outcome attendance.Outcome, fix *geoFix) attendance.Record {
	r := attendance.Record{
		EmployeeID:  binding.EmployeeID,
		ExternalID:  binding.ExternalID,
		DisplayName: binding.DisplayName,
		Kind:        kind,
		OccurredAt:  now,
		WorkDate:    attendance.DateOf(now),
		Outcome:     outcome,
	}
	if fix != nil {
		lat, lon, dist := fix.latitude, fix.longitude, fix.distanceMeters
		r.Latitude = &lat
		r.Longitude = &lon
		r.DistanceMeters = &dist
	}
	return r
}
