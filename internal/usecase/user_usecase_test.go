package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
	"github.com/ahmetyavas01/SahaBul/pkg/errors"
)

func TestSyncProfileRequiresUsername(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo())

	_, err := uc.SyncProfile(context.Background(), "user-1", SyncProfileInput{Username: "  "})
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "username", appErr.Field)
}

func TestSyncProfilePreservesPushToken(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{
		ID:        "user-1",
		Username:  "ahmetcan",
		PushToken: "ExponentPushToken[abc]",
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	uc := NewUserUseCase(userRepo)

	// a login without notification permission sends no token
	updated, err := uc.SyncProfile(context.Background(), "user-1", SyncProfileInput{
		Username: "ahmetcan",
		FullName: "Ahmetcan Yavaş",
	})
	require.NoError(t, err)

	assert.Equal(t, "ExponentPushToken[abc]", updated.PushToken)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), updated.CreatedAt)
	assert.Equal(t, "Ahmetcan Yavaş", updated.FullName)
}

func TestSyncProfileOverwritesToken(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "user-1", Username: "ahmetcan", PushToken: "old"})
	uc := NewUserUseCase(userRepo)

	updated, err := uc.SyncProfile(context.Background(), "user-1", SyncProfileInput{
		Username:  "ahmetcan",
		PushToken: "new",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.PushToken)
}
