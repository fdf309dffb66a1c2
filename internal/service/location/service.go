package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/validator"
)

type LocationServiceImpl struct {
	location.LocationRepository
	identityRepo identity.IdentityRepository
	loc          *time.Location
	now          func() time.Time
}

func NewLocationService(
	locationRepo location.LocationRepository,
	identityRepo identity.IdentityRepository,
	loc *time.Location,
	now func() time.Time,
) location.LocationService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &LocationServiceImpl{
		LocationRepository: locationRepo,
		identityRepo:       identityRepo,
		loc:                loc,
		now:                now,
	}
}

// RecordLocation implements location.LocationService.
func (s *LocationServiceImpl) RecordLocation(ctx context.Context, req location.RecordLocationRequest) (location.SampleResponse, error) {
	if err := req.Validate(); err != nil {
		return location.SampleResponse{}, err
	}

	binding, err := s.resolve(ctx, req)
	if err != nil {
		return location.SampleResponse{}, err
	}

	now := s.now()
	occurredAt := now.In(s.loc)
	if req.Timestamp != nil {
		occurredAt = time.Unix(*req.Timestamp, 0).In(s.loc)
		if occurredAt.After(now.Add(location.MaxClockSkew)) {
			return location.SampleResponse{}, validator.ValidationErrors{{
				Field:   "timestamp",
				Message: "timestamp must not be in the future",
			}}
		}
	}

	sample, err := s.LocationRepository.Append(ctx, location.Sample{
		ExternalID:  binding.ExternalID,
		EmployeeID:  binding.EmployeeID,
		DisplayName: binding.DisplayName,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return location.SampleResponse{}, fmt.Errorf("failed to record location: %w", err)
	}
	return location.ToResponse(sample), nil
}

// resolve prefers the chat identity and falls back to the employee id.
func (s *LocationServiceImpl) resolve(ctx context.Context, req location.RecordLocationRequest) (identity.Binding, error) {
	var (
		binding identity.Binding
		err     error
	)
	if req.ExternalID != "" {
		binding, err = s.identityRepo.GetByExternalID(ctx, req.ExternalID)
	} else {
		binding, err = s.identityRepo.GetByEmployeeID(ctx, req.EmployeeID)
	}
	if err != nil {
		if errors.Is(err, identity.ErrBindingNotFound) {
			return identity.Binding{}, location.ErrUnknownIdentity
		}
		return identity.Binding{}, fmt.Errorf("failed to resolve identity: %w", err)
	}
	return binding, nil
}
