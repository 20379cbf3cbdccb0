package repository

import (
	"context"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
)

type ChatRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	// GetByMatchID returns the match's thread or a NOT_FOUND error. It
	// never creates one; creation happens only through GetOrCreateByMatch
	// as a side effect of a join request.
	GetByMatchID(ctx context.Context, matchID string) (*entity.Chat, error)
	// GetOrCreateByMatch resolves the single thread for a match, creating
	// it atomically if absent. Concurrent callers get the same thread.
	GetOrCreateByMatch(ctx context.Context, matchID string) (*entity.Chat, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	// ListMessages returns messages ordered by creation time ascending,
	// ties broken by insertion order.
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
}
