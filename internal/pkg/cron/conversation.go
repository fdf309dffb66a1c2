package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
)

type ConversationJobs struct {
	onboardingService conversation.OnboardingService
}

func NewConversationJobs(onboardingService conversation.OnboardingService) *ConversationJobs {
	return &ConversationJobs{onboardingService: onboardingService}
}

func (j *ConversationJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddJob("expire_stale_conversation_states", spec, time.Minute, j.ExpireStaleStates)
}

// ExpireStaleStates drops abandoned binding dialogues and unanswered confirmations.
func (j *ConversationJobs) ExpireStaleStates(ctx context.Context) error {
	removed, err := j.onboardingService.ExpireStale(ctx)
	if err != nil {
		return fmt.Errorf("failed to expire conversation states: %w", err)
	}
	if removed > 0 {
		slog.Info("Cron: expired stale conversation states", "count", removed)
	}
	return nil
}
