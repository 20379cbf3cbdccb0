package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
	"github.com/ahmetyavas01/SahaBul/internal/infrastructure/push"
	ws "github.com/ahmetyavas01/SahaBul/internal/infrastructure/websocket"
	"github.com/ahmetyavas01/SahaBul/pkg/errors"
)

type participantFixture struct {
	uc              *ParticipantUseCase
	matchRepo       *fakeMatchRepo
	participantRepo *fakeParticipantRepo
	chatRepo        *fakeChatRepo
	userRepo        *fakeUserRepo
	match           *entity.Match
}

func newParticipantFixture(t *testing.T) *participantFixture {
	t.Helper()

	matchRepo := newFakeMatchRepo()
	participantRepo := newFakeParticipantRepo()
	chatRepo := newFakeChatRepo()
	userRepo := newFakeUserRepo(
		&entity.User{ID: "organizer", Username: "organizer", FullName: "Mehmet Organizatör"},
		&entity.User{ID: "player", Username: "ahmetcan", FullName: "Ahmetcan Yavaş"},
	)

	match := &entity.Match{
		MatchName: "Salı Halısaha",
		Date:      time.Now().Add(24 * time.Hour),
		UserID:    "organizer",
	}
	require.NoError(t, matchRepo.Create(context.Background(), match))

	uc := NewParticipantUseCase(
		participantRepo, matchRepo, chatRepo, userRepo,
		push.NewDispatcher(userRepo, ""), // disabled, notifications stay best-effort
		ws.NewManager(),
	)

	return &participantFixture{
		uc:              uc,
		matchRepo:       matchRepo,
		participantRepo: participantRepo,
		chatRepo:        chatRepo,
		userRepo:        userRepo,
		match:           match,
	}
}

func TestRequestJoinCreatesPendingAndThread(t *testing.T) {
	f := newParticipantFixture(t)

	result, err := f.uc.RequestJoin(context.Background(), "player", f.match.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.ParticipantID(f.match.ID, "player"), result.Participant.ID)
	assert.Equal(t, entity.ParticipantStatusPending, result.Participant.Status)
	assert.Equal(t, f.match.ID, result.Chat.MatchID)

	// thread id is the match id, one thread per match
	assert.Equal(t, f.match.ID, result.Chat.ID)
}

func TestRequestJoinSelfJoin(t *testing.T) {
	f := newParticipantFixture(t)

	_, err := f.uc.RequestJoin(context.Background(), "organizer", f.match.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "SELF_JOIN"))
	assert.Zero(t, f.participantRepo.count())
}

func TestRequestJoinUnknownMatch(t *testing.T) {
	f := newParticipantFixture(t)

	_, err := f.uc.RequestJoin(context.Background(), "player", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestRequestJoinIsIdempotent(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	first, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
	require.NoError(t, err)

	second, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Participant.ID, second.Participant.ID)
	assert.Equal(t, first.Chat.ID, second.Chat.ID)
	assert.Equal(t, 1, f.participantRepo.count(), "repeat requests must not add rows")
}

func TestRequestJoinAfterDecisionReturnsExisting(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	first, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
	require.NoError(t, err)

	_, err = f.uc.Decide(ctx, "organizer", first.Participant.ID, entity.ParticipantStatusRejected)
	require.NoError(t, err)

	// a rejected player asking again gets the same terminal row back,
	// not a fresh pending request
	again, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ParticipantStatusRejected, again.Participant.Status)
	assert.Equal(t, 1, f.participantRepo.count())
}

func TestRequestJoinResumesAfterThreadFailure(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	f.chatRepo.createErr = errors.Store("Failed to create chat", nil)

	_, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
	require.Error(t, err)
	assert.Equal(t, 1, f.participantRepo.count(), "participant insert survives the thread failure")

	// retry picks the existing participant up and finishes the thread
	result, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ParticipantStatusPending, result.Participant.Status)
	assert.Equal(t, f.match.ID, result.Chat.ID)
	assert.Equal(t, 1, f.participantRepo.count())
}

func TestDecideTransitions(t *testing.T) {
	for _, decision := range []string{entity.ParticipantStatusApproved, entity.ParticipantStatusRejected} {
		t.Run(decision, func(t *testing.T) {
			f := newParticipantFixture(t)
			ctx := context.Background()

			result, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
			require.NoError(t, err)

			updated, err := f.uc.Decide(ctx, "organizer", result.Participant.ID, decision)
			require.NoError(t, err)
			assert.Equal(t, decision, updated.Status)
			assert.True(t, updated.IsTerminal())
		})
	}
}

func TestDecideIsSingleShot(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	result, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
	require.NoError(t, err)

	_, err = f.uc.Decide(ctx, "organizer", result.Participant.ID, entity.ParticipantStatusApproved)
	require.NoError(t, err)

	_, err = f.uc.Decide(ctx, "organizer", result.Participant.ID, entity.ParticipantStatusRejected)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))

	stored, err := f.participantRepo.GetByID(ctx, result.Participant.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ParticipantStatusApproved, stored.Status, "the first decision stands")
}

func TestDecideRejectsInvalidValue(t *testing.T) {
	f := newParticipantFixture(t)

	_, err := f.uc.Decide(context.Background(), "organizer", "whatever", "maybe")
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "decision", appErr.Field)
}

func TestDecideOrganizerOnly(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	result, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
	require.NoError(t, err)

	_, err = f.uc.Decide(ctx, "player", result.Participant.ID, entity.ParticipantStatusApproved)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	stored, err := f.participantRepo.GetByID(ctx, result.Participant.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ParticipantStatusPending, stored.Status)
}

func TestListParticipantsMasksAndOrders(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	f.userRepo.Upsert(ctx, &entity.User{ID: "second", Username: "çağrıhan", FullName: "Çağrıhan Uzun"})

	_, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
	require.NoError(t, err)
	_, err = f.uc.RequestJoin(ctx, "second", f.match.ID)
	require.NoError(t, err)

	listed, err := f.uc.ListParticipants(ctx, "organizer", f.match.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// newest first
	assert.Equal(t, "second", listed[0].Participant.UserID)
	assert.Equal(t, "player", listed[1].Participant.UserID)

	// identities reach the organizer masked
	assert.Equal(t, "ç*****an", listed[0].Username)
	assert.Equal(t, "a*****an", listed[1].Username)
	assert.NotContains(t, listed[1].FullName, "Ahmetcan")
}

func TestListParticipantsOrganizerOnly(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	_, err := f.uc.RequestJoin(ctx, "player", f.match.ID)
	require.NoError(t, err)

	_, err = f.uc.ListParticipants(ctx, "player", f.match.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
