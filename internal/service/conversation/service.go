package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/chat"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/validator"
	"golang.org/x/text/unicode/norm"
)

type Config struct {
	EmployeeIDMinDigits int
	EmployeeIDMaxDigits int
	// StateTTL is how long an idle dialogue survives ExpireStale. Zero disables expiry.
	StateTTL time.Duration
	Now      func() time.Time
}

type ConversationServiceImpl struct {
	identity.IdentityRepository
	conversation.StateRepository
	cfg Config
}

func NewConversationService(
	identityRepo identity.IdentityRepository,
	stateRepo conversation.StateRepository,
	cfg Config,
) conversation.OnboardingService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ConversationServiceImpl{
		IdentityRepository: identityRepo,
		StateRepository:    stateRepo,
		cfg:                cfg,
	}
}

// Handle implements conversation.OnboardingService.
func (s *ConversationServiceImpl) Handle(ctx context.Context, externalID string, text string) (chat.Reply, error) {
	state, err := s.StateRepository.Get(ctx, externalID)
	if err != nil {
		if errors.Is(err, conversation.ErrStateNotFound) {
			return s.start(ctx, externalID, text)
		}
		return chat.Reply{}, fmt.Errorf("failed to get conversation state: %w", err)
	}

	switch state.Phase {
	case conversation.PhaseAwaitingEmployeeID:
		return s.collectEmployeeID(ctx, state, text)
	case conversation.PhaseAwaitingName:
		return s.collectName(ctx, state, text)
	default:
		// A confirmation left behind by a binding an admin has since deleted.
		slog.Info("dropping non-onboarding state of unbound identity", "external_id", externalID, "phase", state.Phase)
		if err := s.StateRepository.Delete(ctx, externalID); err != nil {
			return chat.Reply{}, fmt.Errorf("failed to delete conversation state: %w", err)
		}
		return s.start(ctx, externalID, text)
	}
}

// start applies the unbound policy: clock and confirm keywords only get a hint, anything
// else opens the binding dialogue.
func (s *ConversationServiceImpl) start(ctx context.Context, externalID string, text string) (chat.Reply, error) {
	if chat.ParseIntent(text).IsAttendanceAction() {
		return chat.NewReply(chat.OutcomeBindRequired), nil
	}

	err := s.StateRepository.Save(ctx, conversation.State{
		ExternalID: externalID,
		Phase:      conversation.PhaseAwaitingEmployeeID,
		UpdatedAt:  s.cfg.Now(),
	})
	if err != nil {
		return chat.Reply{}, fmt.Errorf("failed to open onboarding: %w", err)
	}
	return chat.NewReply(chat.OutcomeAskEmployeeID), nil
}

func (s *ConversationServiceImpl) collectEmployeeID(ctx context.Context, state conversation.State, text string) (chat.Reply, error) {
	// NFKC folds full-width digits typed on CJK keyboards.
	employeeID := strings.TrimSpace(norm.NFKC.String(text))
	if !validator.IsValidEmployeeID(employeeID, s.cfg.EmployeeIDMinDigits, s.cfg.EmployeeIDMaxDigits) {
		return chat.NewReply(chat.OutcomeInvalidEmployeeID), nil
	}

	taken, err := s.IdentityRepository.IsEmployeeIDTaken(ctx, employeeID)
	if err != nil {
		return chat.Reply{}, fmt.Errorf("failed to check employee id: %w", err)
	}
	if taken {
		return chat.NewReply(chat.OutcomeEmployeeIDTaken, chat.ParamEmployeeID, employeeID), nil
	}

	state.Phase = conversation.PhaseAwaitingName
	state.PendingEmployeeID = &employeeID
	state.UpdatedAt = s.cfg.Now()
	if err := s.StateRepository.Save(ctx, state); err != nil {
		return chat.Reply{}, fmt.Errorf("failed to save conversation state: %w", err)
	}
	return chat.NewReply(chat.OutcomeAskName, chat.ParamEmployeeID, employeeID), nil
}

func (s *ConversationServiceImpl) collectName(ctx context.Context, state conversation.State, text string) (chat.Reply, error) {
	if state.PendingEmployeeID == nil {
		state.Phase = conversation.PhaseAwaitingEmployeeID
		state.UpdatedAt = s.cfg.Now()
		if err := s.StateRepository.Save(ctx, state); err != nil {
			return chat.Reply{}, fmt.Errorf("failed to reset conversation state: %w", err)
		}
		return chat.NewReply(chat.OutcomeAskEmployeeID), nil
	}

	name := strings.TrimSpace(norm.NFC.String(text))
	if name == "" {
		return chat.NewReply(chat.OutcomeInvalidName), nil
	}

	binding, err := s.IdentityRepository.Create(ctx, identity.Binding{
		ExternalID:  state.ExternalID,
		EmployeeID:  *state.PendingEmployeeID,
		DisplayName: name,
		BoundAt:     s.cfg.Now(),
	})
	if err != nil {
		if errors.Is(err, identity.ErrConflict) {
			if delErr := s.StateRepository.Delete(ctx, state.ExternalID); delErr != nil {
				return chat.Reply{}, fmt.Errorf("failed to delete conversation state: %w", delErr)
			}
			slog.Warn("binding lost a race", "external_id", state.ExternalID, "employee_id", *state.PendingEmployeeID)
			return chat.NewReply(chat.OutcomeBindFailed, chat.ParamEmployeeID, *state.PendingEmployeeID), nil
		}
		return chat.Reply{}, fmt.Errorf("failed to create binding: %w", err)
	}

	if err := s.StateRepository.Delete(ctx, state.ExternalID); err != nil {
		return chat.Reply{}, fmt.Errorf("failed to delete conversation state: %w", err)
	}

	slog.Info("identity bound", "external_id", binding.ExternalID, "employee_id", binding.EmployeeID)
	return chat.NewReply(chat.OutcomeBound, chat.ParamName, binding.DisplayName, chat.ParamEmployeeID, binding.EmployeeID), nil
}

// ExpireStale implements conversation.OnboardingService.
func (s *ConversationServiceImpl) ExpireStale(ctx context.Context) (int64, error) {
	if s.cfg.StateTTL <= 0 {
		return 0, nil
	}
	removed, err := s.StateRepository.DeleteStale(ctx, s.cfg.Now().Add(-s.cfg.StateTTL))
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale states: %w", err)
	}
	return removed, nil
}
