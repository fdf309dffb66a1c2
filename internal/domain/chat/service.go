package chat

import "context"

// Dispatcher routes a message to onboarding or to the attendance engine. It never
// returns an error: failures are logged and reported as OutcomeInternalError.
type Dispatcher interface {
	HandleMessage(ctx context.Context, event Event) Reply
}
