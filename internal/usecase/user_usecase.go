package usecase

import (
	"context"
	"strings"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
	"github.com/ahmetyavas01/SahaBul/internal/domain/repository"
	"github.com/ahmetyavas01/SahaBul/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

type SyncProfileInput struct {
	Username  string
	FullName  string
	PushToken string
}

// SyncProfile upserts the caller's profile. The push token is optional
// and only overwritten when the client sends one, so a login from a
// device without notification permission does not wipe the stored token.
func (uc *UserUseCase) SyncProfile(ctx context.Context, userID string, input SyncProfileInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, errors.Validation("username", "Username is required")
	}

	user := &entity.User{
		ID:        userID,
		Username:  username,
		FullName:  strings.TrimSpace(input.FullName),
		PushToken: input.PushToken,
	}

	if existing, err := uc.userRepo.GetByID(ctx, userID); err == nil {
		user.CreatedAt = existing.CreatedAt
		if user.PushToken == "" {
			user.PushToken = existing.PushToken
		}
	}

	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}
