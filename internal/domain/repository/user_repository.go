package repository

import (
	"context"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Upsert(ctx context.Context, user *entity.User) error
	// GetPushTokens resolves the stored push tokens for the given users,
	// silently skipping users without one.
	GetPushTokens(ctx context.Context, userIDs []string) ([]string, error)
}
