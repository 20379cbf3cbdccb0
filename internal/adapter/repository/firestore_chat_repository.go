package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
	"github.com/ahmetyavas01/SahaBul/internal/domain/repository"
	"github.com/ahmetyavas01/SahaBul/pkg/errors"
	"github.com/ahmetyavas01/SahaBul/pkg/logger"
)

// Chat documents are keyed by their match id: one thread per match is a
// store-level invariant, not something callers have to coordinate on.
type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Store("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Store("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) GetByMatchID(ctx context.Context, matchID string) (*entity.Chat, error) {
	return r.GetByID(ctx, matchID)
}

func (r *firestoreChatRepository) GetOrCreateByMatch(ctx context.Context, matchID string) (*entity.Chat, error) {
	chat := &entity.Chat{
		ID:        matchID,
		MatchID:   matchID,
		CreatedAt: time.Now(),
	}

	_, err := r.client.Collection("chats").Doc(matchID).Create(ctx, chat)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			// a concurrent join request won the create; use its thread
			return r.GetByID(ctx, matchID)
		}
		return nil, errors.Store("Failed to create chat", err)
	}

	return chat, nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	_, err := r.client.Collection("chats").Doc(message.ChatID).Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Store("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	// creation time ascending, document id as the tie-breaker so equal
	// timestamps keep a stable order
	query := r.client.Collection("chats").Doc(chatID).Collection("messages").
		OrderBy("createdAt", firestore.Asc).
		OrderBy(firestore.DocumentID, firestore.Asc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching messages for chat %s: %v", chatID, err)
		return nil, 0, errors.Store("Failed to fetch messages", err)
	}

	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var messages []*entity.Message
	for i := start; i < end; i++ {
		var message entity.Message
		if err := allDocs[i].DataTo(&message); err != nil {
			logger.Error("Error parsing message %s in chat %s: %v", allDocs[i].Ref.ID, chatID, err)
			continue
		}
		messages = append(messages, &message)
	}

	return messages, total, nil
}
