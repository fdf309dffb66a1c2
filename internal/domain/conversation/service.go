package conversation

import (
	"context"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/chat"
)

// OnboardingService drives unbound identities through the binding dialogue.
type OnboardingService interface {
	// Handle processes one message from an identity that is not bound yet.
	Handle(ctx context.Context, externalID string, text string) (chat.Reply, error)

	// ExpireStale drops dialogue states idle for longer than the configured TTL.
	ExpireStale(ctx context.Context) (int64, error)
}
