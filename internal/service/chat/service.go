package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/chat"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/keylock"
)

const timeLayout = "15:04:05"

type DispatcherImpl struct {
	identityRepo      identity.IdentityRepository
	onboardingService conversation.OnboardingService
	attendanceService attendance.AttendanceService
	locks             *keylock.KeyLock
	thresholdHours    string
}

func NewDispatcher(
	identityRepo identity.IdentityRepository,
	onboardingService conversation.OnboardingService,
	attendanceService attendance.AttendanceService,
	locks *keylock.KeyLock,
	checkoutThreshold time.Duration,
) chat.Dispatcher {
	if locks == nil {
		locks = keylock.New()
	}
	return &DispatcherImpl{
		identityRepo:      identityRepo,
		onboardingService: onboardingService,
		attendanceService: attendanceService,
		locks:             locks,
		thresholdHours:    strconv.FormatFloat(checkoutThreshold.Hours(), 'f', -1, 64),
	}
}

// HandleMessage implements chat.Dispatcher. Messages of one identity are handled one at a
// time; different identities never wait on each other.
func (d *DispatcherImpl) HandleMessage(ctx context.Context, event chat.Event) (reply chat.Reply) {
	unlock := d.locks.Lock(event.ExternalID)
	defer unlock()

	defer func() {
		if p := recover(); p != nil {
			slog.Error("panic while handling message", "external_id", event.ExternalID, "panic", fmt.Sprint(p))
			reply = chat.NewReply(chat.OutcomeInternalError)
		}
	}()

	binding, err := d.identityRepo.GetByExternalID(ctx, event.ExternalID)
	if err != nil {
		if !errors.Is(err, identity.ErrBindingNotFound) {
			return d.internalError(event.ExternalID, fmt.Errorf("failed to look up identity: %w", err))
		}
		onboardingReply, err := d.onboardingService.Handle(ctx, event.ExternalID, event.Text)
		if err != nil {
			return d.internalError(event.ExternalID, err)
		}
		return onboardingReply
	}

	return d.handleBound(ctx, binding, event.Text)
}

func (d *DispatcherImpl) handleBound(ctx context.Context, binding identity.Binding, text string) chat.Reply {
	intent := chat.ParseIntent(text)

	if intent == chat.IntentConfirm {
		pair, err := d.attendanceService.ConfirmForgotCheckout(ctx, binding)
		if err != nil {
			return d.replyForError(binding, err)
		}
		return chat.NewReply(chat.OutcomeBackfillRecorded,
			chat.ParamName, binding.DisplayName,
			chat.ParamTime, pair[len(pair)-1].OccurredAt.Format(timeLayout),
		)
	}

	// Anything but a confirmation resolves a pending prompt as declined.
	cancelled, err := d.attendanceService.CancelPendingConfirmation(ctx, binding)
	if err != nil {
		return d.internalError(binding.ExternalID, err)
	}
	if cancelled {
		return chat.NewReply(chat.OutcomeConfirmationCancelled, chat.ParamName, binding.DisplayName)
	}

	switch intent {
	case chat.IntentClockIn:
		record, err := d.attendanceService.ClockIn(ctx, binding)
		if err != nil {
			return d.replyForError(binding, err)
		}
		return chat.NewReply(chat.OutcomeClockedIn,
			chat.ParamName, binding.DisplayName,
			chat.ParamTime, record.OccurredAt.Format(timeLayout),
		)

	case chat.IntentClockOut:
		record, err := d.attendanceService.ClockOut(ctx, binding)
		if err != nil {
			return d.replyForError(binding, err)
		}
		if record == nil {
			return chat.NewReply(chat.OutcomeConfirmForgotCheckout, chat.ParamName, binding.DisplayName)
		}
		outcome := chat.OutcomeClockedOut
		if record.Outcome == attendance.OutcomeLikelyMissedCheckout {
			outcome = chat.OutcomeClockedOutLate
		}
		return chat.NewReply(outcome,
			chat.ParamName, binding.DisplayName,
			chat.ParamTime, record.OccurredAt.Format(timeLayout),
			chat.ParamThreshold, d.thresholdHours,
		)

	default:
		return chat.NewReply(chat.OutcomeHelp, chat.ParamName, binding.DisplayName)
	}
}

// replyForError turns user-recoverable attendance errors into outcomes.
func (d *DispatcherImpl) replyForError(binding identity.Binding, err error) chat.Reply {
	name := binding.DisplayName

	var geoErr *attendance.GeofenceError
	switch {
	case errors.As(err, &geoErr):
		return chat.NewReply(chat.OutcomeOutOfRange,
			chat.ParamName, name,
			chat.ParamDistance, strconv.FormatFloat(geoErr.DistanceMeters, 'f', 0, 64),
			chat.ParamRadius, strconv.FormatFloat(geoErr.RadiusMeters, 'f', 0, 64),
		)
	case errors.Is(err, attendance.ErrOutOfRange):
		return chat.NewReply(chat.OutcomeOutOfRange, chat.ParamName, name)
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		return chat.NewReply(chat.OutcomeAlreadyClockedIn, chat.ParamName, name)
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		return chat.NewReply(chat.OutcomeAlreadyClockedOut, chat.ParamName, name)
	case errors.Is(err, attendance.ErrNoLocationData):
		return chat.NewReply(chat.OutcomeNoLocationData, chat.ParamName, name)
	case errors.Is(err, attendance.ErrNoPendingConfirmation):
		return chat.NewReply(chat.OutcomeNothingToConfirm, chat.ParamName, name)
	default:
		return d.internalError(binding.ExternalID, err)
	}
}

func (d *DispatcherImpl) internalError(externalID string, err error) chat.Reply {
	slog.Error("failed to handle message", "external_id", externalID, "error", err)
	return chat.NewReply(chat.OutcomeInternalError)
}
