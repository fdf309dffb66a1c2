package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/chat"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 4, 1, 9, 0, 0, 0, time.FixedZone("CST", 8*3600))

type fixture struct {
	svc        conversation.OnboardingService
	identities identity.IdentityRepository
	states     conversation.StateRepository
}

func newFixture() fixture {
	identities := memory.NewIdentityRepository()
	states := memory.NewStateRepository()
	svc := NewConversationService(identities, states, Config{
		EmployeeIDMinDigits: 2,
		EmployeeIDMaxDigits: 3,
		StateTTL:            24 * time.Hour,
		Now:                 func() time.Time { return fixedNow },
	})
	return fixture{svc: svc, identities: identities, states: states}
}

func TestConversationService_Handle_BindScenario(t *testing.T) {
	// Setup
	f := newFixture()
	ctx := context.Background()

	// Act & Assert: bind-start opens the dialogue.
	reply, err := f.svc.Handle(ctx, "U1", "bind")
	require.NoError(t, err)
	assert.Equal(t, chat.OutcomeAskEmployeeID, reply.Outcome)
	state, err := f.states.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, conversation.PhaseAwaitingEmployeeID, state.Phase)

	// Employee id moves to awaiting_name with the pending id.
	reply, err = f.svc.Handle(ctx, "U1", "12")
	require.NoError(t, err)
	assert.Equal(t, chat.OutcomeAskName, reply.Outcome)
	state, err = f.states.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, conversation.PhaseAwaitingName, state.Phase)
	require.NotNil(t, state.PendingEmployeeID)
	assert.Equal(t, "12", *state.PendingEmployeeID)

	// Name completes the binding and clears the state.
	reply, err = f.svc.Handle(ctx, "U1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, chat.OutcomeBound, reply.Outcome)
	assert.Equal(t, "Alice", reply.Params[chat.ParamName])

	binding, err := f.identities.GetByExternalID(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, "12", binding.EmployeeID)
	assert.Equal(t, "Alice", binding.DisplayName)
	_, err = f.states.Get(ctx, "U1")
	assert.ErrorIs(t, err, conversation.ErrStateNotFound)
}

func TestConversationService_Handle_NameWithoutStateDoesNotBind(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reply, err := f.svc.Handle(ctx, "U1", "Alice")
	require.NoError(t, err)

	assert.Equal(t, chat.OutcomeAskEmployeeID, reply.Outcome)
	bound, err := f.identities.IsBound(ctx, "U1")
	require.NoError(t, err)
	assert.False(t, bound)
}

func TestConversationService_Handle_ClockKeywordRequiresBind(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, text := range []string{"上班", "Tan làm", "確認"} {
		reply, err := f.svc.Handle(ctx, "U1", text)
		require.NoError(t, err)
		assert.Equal(t, chat.OutcomeBindRequired, reply.Outcome, text)
	}

	_, err := f.states.Get(ctx, "U1")
	assert.ErrorIs(t, err, conversation.ErrStateNotFound)
}

func TestConversationService_Handle_InvalidEmployeeID(t *testing.T) {
	cases := []string{"1", "1234", "ab", "1a", ""}
	for _, input := range cases {
		f := newFixture()
		ctx := context.Background()
		_, err := f.svc.Handle(ctx, "U1", "bind")
		require.NoError(t, err)

		reply, err := f.svc.Handle(ctx, "U1", input)
		require.NoError(t, err)

		assert.Equal(t, chat.OutcomeInvalidEmployeeID, reply.Outcome, "input %q", input)
		state, err := f.states.Get(ctx, "U1")
		require.NoError(t, err)
		assert.Equal(t, conversation.PhaseAwaitingEmployeeID, state.Phase)
	}
}

func TestConversationService_Handle_FullWidthDigits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.Handle(ctx, "U1", "bind")
	require.NoError(t, err)

	reply, err := f.svc.Handle(ctx, "U1", "１２")
	require.NoError(t, err)

	assert.Equal(t, chat.OutcomeAskName, reply.Outcome)
	assert.Equal(t, "12", reply.Params[chat.ParamEmployeeID])
}

func TestConversationService_Handle_EmployeeIDTaken(t *testing.T) {
	// Setup
	f := newFixture()
	ctx := context.Background()
	_, err := f.identities.Create(ctx, identity.Binding{ExternalID: "U0", EmployeeID: "12", DisplayName: "Zed"})
	require.NoError(t, err)
	_, err = f.svc.Handle(ctx, "U1", "hi")
	require.NoError(t, err)

	// Act
	reply, err := f.svc.Handle(ctx, "U1", "12")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, chat.OutcomeEmployeeIDTaken, reply.Outcome)
	state, err := f.states.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, conversation.PhaseAwaitingEmployeeID, state.Phase)
}

func TestConversationService_Handle_BindRaceLost(t *testing.T) {
	// Setup: U1 reaches awaiting_name, then U2 binds the same id first.
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.Handle(ctx, "U1", "bind")
	require.NoError(t, err)
	_, err = f.svc.Handle(ctx, "U1", "12")
	require.NoError(t, err)
	_, err = f.identities.Create(ctx, identity.Binding{ExternalID: "U2", EmployeeID: "12", DisplayName: "Bob"})
	require.NoError(t, err)

	// Act
	reply, err := f.svc.Handle(ctx, "U1", "Alice")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, chat.OutcomeBindFailed, reply.Outcome)
	_, err = f.states.Get(ctx, "U1")
	assert.ErrorIs(t, err, conversation.ErrStateNotFound)
	bound, err := f.identities.IsBound(ctx, "U1")
	require.NoError(t, err)
	assert.False(t, bound)
}

func TestConversationService_Handle_BlankName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, _ = f.svc.Handle(ctx, "U1", "bind")
	_, _ = f.svc.Handle(ctx, "U1", "12")

	reply, err := f.svc.Handle(ctx, "U1", "   ")

	require.NoError(t, err)
	assert.Equal(t, chat.OutcomeInvalidName, reply.Outcome)
	state, err := f.states.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, conversation.PhaseAwaitingName, state.Phase)
}

func TestConversationService_Handle_LeftoverConfirmStateRestartsOnboarding(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.states.Save(ctx, conversation.State{
		ExternalID: "U1",
		Phase:      conversation.PhaseAwaitingConfirmForgotCheckout,
		UpdatedAt:  fixedNow,
	}))

	reply, err := f.svc.Handle(ctx, "U1", "hello")

	require.NoError(t, err)
	assert.Equal(t, chat.OutcomeAskEmployeeID, reply.Outcome)
	state, err := f.states.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, conversation.PhaseAwaitingEmployeeID, state.Phase)
}

func TestConversationService_ExpireStale(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.states.Save(ctx, conversation.State{ExternalID: "old", Phase: conversation.PhaseAwaitingEmployeeID, UpdatedAt: fixedNow.Add(-25 * time.Hour)}))
	require.NoError(t, f.states.Save(ctx, conversation.State{ExternalID: "fresh", Phase: conversation.PhaseAwaitingEmployeeID, UpdatedAt: fixedNow.Add(-time.Hour)}))

	removed, err := f.svc.ExpireStale(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

type failingStates struct {
	conversation.StateRepository
}

func (failingStates) Get(ctx context.Context, externalID string) (conversation.State, error) {
	return conversation.State{}, errors.New("connection refused")
}

func TestConversationService_Handle_StorageError(t *testing.T) {
	svc := NewConversationService(memory.NewIdentityRepository(), failingStates{}, Config{EmployeeIDMinDigits: 2, EmployeeIDMaxDigits: 3})

	_, err := svc.Handle(context.Background(), "U1", "bind")

	assert.ErrorContains(t, err, "connection refused")
}
