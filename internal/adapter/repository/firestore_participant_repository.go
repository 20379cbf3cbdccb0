package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
	"github.com/ahmetyavas01/SahaBul/internal/domain/repository"
	"github.com/ahmetyavas01/SahaBul/pkg/errors"
	"github.com/ahmetyavas01/SahaBul/pkg/logger"
)

// Participants are stored under a deterministic document id derived from
// the (match, user) pair, so the store itself enforces the at-most-one-row
// invariant without a separate uniqueness index.
type firestoreParticipantRepository struct {
	client *firestore.Client
}

func NewFirestoreParticipantRepository(client *firestore.Client) repository.ParticipantRepository {
	return &firestoreParticipantRepository{
		client: client,
	}
}

func (r *firestoreParticipantRepository) CreateIfAbsent(ctx context.Context, participant *entity.Participant) error {
	if participant.ID == "" {
		participant.ID = entity.ParticipantID(participant.MatchID, participant.UserID)
	}
	participant.CreatedAt = time.Now()

	// Create, unlike Set, fails on an existing document
	_, err := r.client.Collection("participants").Doc(participant.ID).Create(ctx, participant)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Participant already exists for this match and user")
		}
		return errors.Store("Failed to create participant", err)
	}

	return nil
}

func (r *firestoreParticipantRepository) GetByID(ctx context.Context, id string) (*entity.Participant, error) {
	doc, err := r.client.Collection("participants").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Participant", err)
		}
		return nil, errors.Store("Failed to get participant", err)
	}

	var participant entity.Participant
	if err := doc.DataTo(&participant); err != nil {
		return nil, errors.Store("Failed to parse participant data", err)
	}

	return &participant, nil
}

func (r *firestoreParticipantRepository) GetByMatchAndUser(ctx context.Context, matchID, userID string) (*entity.Participant, error) {
	return r.GetByID(ctx, entity.ParticipantID(matchID, userID))
}

func (r *firestoreParticipantRepository) ListByMatch(ctx context.Context, matchID string) ([]*entity.Participant, error) {
	iter := r.client.Collection("participants").
		Where("matchId", "==", matchID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	var participants []*entity.Participant
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while listing participants for match %s: %v", matchID, err)
			return nil, errors.Store("Failed to list participants", err)
		}

		var participant entity.Participant
		if err := doc.DataTo(&participant); err != nil {
			logger.Error("Error parsing participant %s: %v", doc.Ref.ID, err)
			continue
		}
		participants = append(participants, &participant)
	}

	return participants, nil
}

// UpdateStatusIfPending runs the status transition inside a transaction so
// a participant can never leave the pending state twice, no matter how many
// organizers race on the decision.
func (r *firestoreParticipantRepository) UpdateStatusIfPending(ctx context.Context, id, newStatus string) (*entity.Participant, error) {
	docRef := r.client.Collection("participants").Doc(id)

	var updated entity.Participant
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Participant", err)
			}
			return errors.Store("Failed to get participant", err)
		}

		var participant entity.Participant
		if err := doc.DataTo(&participant); err != nil {
			return errors.Store("Failed to parse participant data", err)
		}

		if participant.Status != entity.ParticipantStatusPending {
			return errors.InvalidTransition("Participant has already been " + participant.Status)
		}

		participant.Status = newStatus
		updated = participant

		return tx.Set(docRef, &participant)
	})
	if err != nil {
		if errors.Is(err, "INVALID_TRANSITION") || errors.Is(err, "NOT_FOUND") || errors.Is(err, "STORE_ERROR") {
			return nil, err
		}
		return nil, errors.Store("Failed to update participant status", err)
	}

	return &updated, nil
}
