package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/admin"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single operator account, with a bcrypt password hash.
type Credentials struct {
	Username     string
	PasswordHash string
}

type AdminServiceImpl struct {
	identity.IdentityRepository
	stateRepo      conversation.StateRepository
	attendanceRepo attendance.AttendanceRepository
	locationRepo   location.LocationRepository
	transactor     admin.Transactor
	jwt.Service
	credentials Credentials
}

func NewAdminService(
	identityRepo identity.IdentityRepository,
	stateRepo conversation.StateRepository,
	attendanceRepo attendance.AttendanceRepository,
	locationRepo location.LocationRepository,
	transactor admin.Transactor,
	jwtService jwt.Service,
	credentials Credentials,
) admin.AdminService {
	return &AdminServiceImpl{
		IdentityRepository: identityRepo,
		stateRepo:          stateRepo,
		attendanceRepo:     attendanceRepo,
		locationRepo:       locationRepo,
		transactor:         transactor,
		Service:            jwtService,
		credentials:        credentials,
	}
}

// Login implements admin.AdminService.
func (a *AdminServiceImpl) Login(ctx context.Context, req admin.LoginRequest) (admin.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return admin.TokenResponse{}, err
	}

	// Compare the hash even for an unknown username.
	hashErr := bcrypt.CompareHashAndPassword([]byte(a.credentials.PasswordHash), []byte(req.Password))
	if req.Username != a.credentials.Username || hashErr != nil {
		slog.Warn("admin login failed", "username", req.Username)
		return admin.TokenResponse{}, admin.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(req.Username, true)
	if err != nil {
		return admin.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return admin.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}

// ListBindings implements admin.AdminService.
func (a *AdminServiceImpl) ListBindings(ctx context.Context) ([]identity.BindingResponse, error) {
	bindings, err := a.IdentityRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bindings: %w", err)
	}

	out := make([]identity.BindingResponse, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, identity.ToResponse(b))
	}
	return out, nil
}

// DeleteBinding implements admin.AdminService.
func (a *AdminServiceImpl) DeleteBinding(ctx context.Context, employeeID string) (identity.BindingResponse, error) {
	var deleted identity.Binding
	err := a.inTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = a.IdentityRepository.DeleteByEmployeeID(ctx, employeeID)
		if err != nil {
			return err
		}
		if err := a.stateRepo.Delete(ctx, deleted.ExternalID); err != nil {
			return fmt.Errorf("failed to delete conversation state: %w", err)
		}
		return nil
	})
	if err != nil {
		return identity.BindingResponse{}, err
	}

	slog.Info("binding deleted", "employee_id", deleted.EmployeeID, "external_id", deleted.ExternalID)
	return identity.ToResponse(deleted), nil
}

// PurgeAll implements admin.AdminService.
func (a *AdminServiceImpl) PurgeAll(ctx context.Context) (admin.PurgeResponse, error) {
	var resp admin.PurgeResponse
	err := a.inTx(ctx, func(ctx context.Context) error {
		var err error
		if resp.AttendanceRecords, err = a.attendanceRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to purge attendance records: %w", err)
		}
		if resp.LocationSamples, err = a.locationRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to purge location samples: %w", err)
		}
		if resp.ConversationStates, err = a.stateRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to purge conversation states: %w", err)
		}
		if resp.Bindings, err = a.IdentityRepository.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to purge bindings: %w", err)
		}
		return nil
	})
	if err != nil {
		return admin.PurgeResponse{}, err
	}

	slog.Warn("all data purged",
		"attendance_records", resp.AttendanceRecords,
		"location_samples", resp.LocationSamples,
		"bindings", resp.Bindings,
		"conversation_states", resp.ConversationStates,
	)
	return resp, nil
}

func (a *AdminServiceImpl) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.transactor == nil {
		return fn(ctx)
	}
	return a.transactor.InTx(ctx, fn)
}
