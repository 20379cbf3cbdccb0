package usecase

import (
	"context"
	"time"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
	"github.com/ahmetyavas01/SahaBul/internal/domain/repository"
	"github.com/ahmetyavas01/SahaBul/internal/infrastructure/push"
	"github.com/ahmetyavas01/SahaBul/internal/infrastructure/ratelimit"
	ws "github.com/ahmetyavas01/SahaBul/internal/infrastructure/websocket"
	"github.com/ahmetyavas01/SahaBul/pkg/errors"
	"github.com/ahmetyavas01/SahaBul/pkg/logger"
	"github.com/ahmetyavas01/SahaBul/pkg/utils"
)

// ParticipantUseCase drives the join request state machine: pending on
// creation, one organizer decision to approved or rejected, nothing after
// that. Uniqueness per (match, user) and the single transition both rest
// on the store's conditional writes, not on locks here.
type ParticipantUseCase struct {
	participantRepo repository.ParticipantRepository
	matchRepo       repository.MatchRepository
	chatRepo        repository.ChatRepository
	userRepo        repository.UserRepository
	dispatcher      *push.Dispatcher
	wsManager       *ws.Manager
	rateLimiter     *ratelimit.RateLimiter
}

func NewParticipantUseCase(
	participantRepo repository.ParticipantRepository,
	matchRepo repository.MatchRepository,
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	dispatcher *push.Dispatcher,
	wsManager *ws.Manager,
) *ParticipantUseCase {
	return &ParticipantUseCase{
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		chatRepo:        chatRepo,
		userRepo:        userRepo,
		dispatcher:      dispatcher,
		wsManager:       wsManager,
		rateLimiter:     ratelimit.NewRateLimiter(),
	}
}

type JoinResult struct {
	Participant *entity.Participant `json:"participant"`
	Chat        *entity.Chat        `json:"chat"`
}

// RequestJoin files a join request and opens (or resumes) the match's chat
// thread. The call is idempotent: a repeated request returns the existing
// participant and thread regardless of status, and a request that failed
// between the participant insert and the thread creation is resumed on
// retry.
func (uc *ParticipantUseCase) RequestJoin(ctx context.Context, userID, matchID string) (*JoinResult, error) {
	if allowed, _ := uc.rateLimiter.Allow(userID, "request_join"); !allowed {
		return nil, errors.TooManyRequests("Too many join requests, please wait")
	}

	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if match.UserID == userID {
		return nil, errors.SelfJoin()
	}

	participant, err := uc.participantRepo.GetByMatchAndUser(ctx, matchID, userID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}

		participant = &entity.Participant{
			MatchID: matchID,
			UserID:  userID,
			Status:  entity.ParticipantStatusPending,
		}
		if err := uc.participantRepo.CreateIfAbsent(ctx, participant); err != nil {
			if !errors.Is(err, "CONFLICT") {
				return nil, err
			}
			// a concurrent request from the same user won the insert
			participant, err = uc.participantRepo.GetByMatchAndUser(ctx, matchID, userID)
			if err != nil {
				return nil, err
			}
		} else {
			uc.notifyJoinRequested(match, userID)
		}
	}

	// the join is complete only once the thread exists; on failure the
	// participant row stays behind and the retry resumes from here
	chat, err := uc.chatRepo.GetOrCreateByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	return &JoinResult{
		Participant: participant,
		Chat:        chat,
	}, nil
}

// Decide moves a pending participant to a terminal state. Only the match
// organizer may call it; the caller's identity comes from the request
// context and is trusted as verified.
func (uc *ParticipantUseCase) Decide(ctx context.Context, callerID, participantID, decision string) (*entity.Participant, error) {
	if !entity.IsValidDecision(decision) {
		return nil, errors.Validation("decision", "Decision must be approved or rejected")
	}

	participant, err := uc.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}

	match, err := uc.matchRepo.GetByID(ctx, participant.MatchID)
	if err != nil {
		return nil, err
	}

	if match.UserID != callerID {
		return nil, errors.Forbidden("Only the match organizer can decide join requests", nil)
	}

	updated, err := uc.participantRepo.UpdateStatusIfPending(ctx, participantID, decision)
	if err != nil {
		return nil, err
	}

	uc.notifyDecision(match, updated)

	return updated, nil
}

// ParticipantResponse pairs a join request with the requester's masked
// identity. Organizer-facing only; the raw username never crosses this
// boundary.
type ParticipantResponse struct {
	*entity.Participant
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

func (uc *ParticipantUseCase) ListParticipants(ctx context.Context, callerID, matchID string) ([]*ParticipantResponse, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if match.UserID != callerID {
		return nil, errors.Forbidden("Only the match organizer can list join requests", nil)
	}

	participants, err := uc.participantRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ParticipantResponse, 0, len(participants))
	for _, participant := range participants {
		var username, fullName string
		if profile, err := uc.userRepo.GetByID(ctx, participant.UserID); err == nil {
			username = profile.Username
			fullName = profile.FullName
		}

		responses = append(responses, &ParticipantResponse{
			Participant: participant,
			Username:    utils.MaskName(username),
			FullName:    utils.MaskName(fullName),
		})
	}

	return responses, nil
}

func (uc *ParticipantUseCase) notifyJoinRequested(match *entity.Match, requesterID string) {
	payload := ws.NewEvent(ws.EventTypeParticipantUpdate, map[string]string{
		"match_id": match.ID,
		"status":   entity.ParticipantStatusPending,
	})
	uc.wsManager.SendToUser(match.UserID, payload)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		uc.dispatcher.Send(ctx, []string{match.UserID},
			"Yeni katılım isteği",
			match.MatchName+" maçına katılmak isteyen var",
			map[string]interface{}{
				"matchId":       match.ID,
				"participantId": entity.ParticipantID(match.ID, requesterID),
			})
	}()
}

func (uc *ParticipantUseCase) notifyDecision(match *entity.Match, participant *entity.Participant) {
	payload := ws.NewEvent(ws.EventTypeParticipantUpdate, map[string]string{
		"match_id": match.ID,
		"status":   participant.Status,
	})
	uc.wsManager.SendToUser(participant.UserID, payload)

	title := "Katılım isteğin onaylandı"
	body := match.MatchName + " maçındasın!"
	if participant.Status == entity.ParticipantStatusRejected {
		title = "Katılım isteğin reddedildi"
		body = match.MatchName + " maçı için isteğin reddedildi"
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		uc.dispatcher.Send(ctx, []string{participant.UserID}, title, body,
			map[string]interface{}{
				"matchId":       match.ID,
				"participantId": participant.ID,
			})
	}()

	logger.Info("Participant %s %s for match %s", participant.ID, participant.Status, match.ID)
}
