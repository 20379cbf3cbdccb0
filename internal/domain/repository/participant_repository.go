package repository

import (
	"context"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
)

type ParticipantRepository interface {
	// CreateIfAbsent inserts the participant unless a document already
	// exists for its (match, user) pair, in which case it returns a
	// CONFLICT error without touching the existing row.
	CreateIfAbsent(ctx context.Context, participant *entity.Participant) error
	GetByID(ctx context.Context, id string) (*entity.Participant, error)
	GetByMatchAndUser(ctx context.Context, matchID, userID string) (*entity.Participant, error)
	// ListByMatch returns participants ordered by creation time descending.
	ListByMatch(ctx context.Context, matchID string) ([]*entity.Participant, error)
	// UpdateStatusIfPending atomically moves a pending participant to the
	// given terminal status. It returns an INVALID_TRANSITION error if the
	// participant is no longer pending.
	UpdateStatusIfPending(ctx context.Context, id, status string) (*entity.Participant, error)
}
