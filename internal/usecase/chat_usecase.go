package usecase

import (
	"context"
	"strings"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
	"github.com/ahmetyavas01/SahaBul/internal/domain/repository"
	"github.com/ahmetyavas01/SahaBul/internal/infrastructure/ratelimit"
	ws "github.com/ahmetyavas01/SahaBul/internal/infrastructure/websocket"
	"github.com/ahmetyavas01/SahaBul/pkg/errors"
	"github.com/ahmetyavas01/SahaBul/pkg/logger"
	"github.com/ahmetyavas01/SahaBul/pkg/utils"
)

// ChatUseCase bridges the single per-match thread to realtime delivery.
// Fan-out over the WebSocket manager is at-least-once and not globally
// ordered across authors; consumers dedupe on message id and re-sort by
// creation time before display.
type ChatUseCase struct {
	chatRepo        repository.ChatRepository
	matchRepo       repository.MatchRepository
	participantRepo repository.ParticipantRepository
	userRepo        repository.UserRepository
	wsManager       *ws.Manager
	rateLimiter     *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	matchRepo repository.MatchRepository,
	participantRepo repository.ParticipantRepository,
	userRepo repository.UserRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:        chatRepo,
		matchRepo:       matchRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		wsManager:       wsManager,
		rateLimiter:     ratelimit.NewRateLimiter(),
	}
}

// ResolveThread returns the match's thread if it exists. It never creates
// one: thread creation is a side effect of a join request only.
func (uc *ChatUseCase) ResolveThread(ctx context.Context, userID, matchID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByMatchID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if err := uc.authorize(ctx, userID, chat.MatchID); err != nil {
		return nil, err
	}

	return chat, nil
}

type MessageResponse struct {
	*entity.Message
	AuthorName string `json:"author_name"`
}

// PostMessage appends to a thread and fans the new message out to every
// room member except the author.
func (uc *ChatUseCase) PostMessage(ctx context.Context, userID, chatID, content string) (*MessageResponse, error) {
	if allowed, _ := uc.rateLimiter.Allow(userID, "send_message"); !allowed {
		return nil, errors.TooManyRequests("You are sending messages too quickly")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.Validation("content", "Message content cannot be empty")
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if err := uc.authorize(ctx, userID, chat.MatchID); err != nil {
		return nil, err
	}

	message := &entity.Message{
		ChatID:  chatID,
		UserID:  userID,
		Content: content,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	authorName := ""
	if author, err := uc.userRepo.GetByID(ctx, userID); err == nil {
		authorName = author.Username
	}

	// recipients see the author through the mask, never raw
	uc.wsManager.BroadcastToRoom(chatID, ws.NewEvent(ws.EventTypeNewMessage, &MessageResponse{
		Message:    message,
		AuthorName: utils.MaskName(authorName),
	}), userID)

	logger.Debug("Message %s posted to chat %s by %s", message.ID, chatID, userID)

	return &MessageResponse{
		Message:    message,
		AuthorName: authorName,
	}, nil
}

// ListMessages returns a page of the thread ordered by creation time
// ascending. Author names other than the caller's own are masked.
func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, chatID string, limit, offset int) ([]*MessageResponse, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}

	if err := uc.authorize(ctx, userID, chat.MatchID); err != nil {
		return nil, 0, err
	}

	messages, total, err := uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	names := make(map[string]string)
	responses := make([]*MessageResponse, 0, len(messages))
	for _, message := range messages {
		name, ok := names[message.UserID]
		if !ok {
			if author, err := uc.userRepo.GetByID(ctx, message.UserID); err == nil {
				name = author.Username
			}
			names[message.UserID] = name
		}

		if message.UserID != userID {
			name = utils.MaskName(name)
		}

		responses = append(responses, &MessageResponse{
			Message:    message,
			AuthorName: name,
		})
	}

	return responses, total, nil
}

// authorize admits the match organizer and anyone with a join request of
// any status; the thread exists for them from the moment they ask to join.
func (uc *ChatUseCase) authorize(ctx context.Context, userID, matchID string) error {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}

	if match.UserID == userID {
		return nil
	}

	if _, err := uc.participantRepo.GetByMatchAndUser(ctx, matchID, userID); err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return errors.Forbidden("You are not part of this match", nil)
		}
		return err
	}

	return nil
}
