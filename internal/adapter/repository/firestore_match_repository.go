package repository

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
	"github.com/ahmetyavas01/SahaBul/internal/domain/repository"
	"github.com/ahmetyavas01/SahaBul/pkg/errors"
	"github.com/ahmetyavas01/SahaBul/pkg/logger"
)

type firestoreMatchRepository struct {
	client *firestore.Client
}

func NewFirestoreMatchRepository(client *firestore.Client) repository.MatchRepository {
	return &firestoreMatchRepository{
		client: client,
	}
}

func (r *firestoreMatchRepository) Create(ctx context.Context, match *entity.Match) error {
	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	match.CreatedAt = time.Now()

	_, err := r.client.Collection("matches").Doc(match.ID).Set(ctx, match)
	if err != nil {
		return errors.Store("Failed to create match", err)
	}

	return nil
}

func (r *firestoreMatchRepository) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	doc, err := r.client.Collection("matches").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Match", err)
		}
		return nil, errors.Store("Failed to get match", err)
	}

	var match entity.Match
	if err := doc.DataTo(&match); err != nil {
		return nil, errors.Store("Failed to parse match data", err)
	}

	return &match, nil
}

func (r *firestoreMatchRepository) List(ctx context.Context) ([]*entity.Match, error) {
	iter := r.client.Collection("matches").OrderBy("createdAt", firestore.Asc).Documents(ctx)

	var matches []*entity.Match
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while listing matches: %v", err)
			return nil, errors.Store("Failed to list matches", err)
		}

		var match entity.Match
		if err := doc.DataTo(&match); err != nil {
			logger.Error("Error parsing match %s: %v", doc.Ref.ID, err)
			continue
		}
		matches = append(matches, &match)
	}

	return matches, nil
}

// WatchChanges bridges the Firestore snapshot stream to the resync
// contract: every snapshot tick fires fn with no payload, and the
// subscriber re-reads the full list. The stream is at-least-once and may
// coalesce bursts, which is harmless because fn is a full resync.
func (r *firestoreMatchRepository) WatchChanges(ctx context.Context, fn func()) func() {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		snapshots := r.client.Collection("matches").Snapshots(ctx)
		defer snapshots.Stop()

		// the first snapshot is the current state, not a change
		if _, err := snapshots.Next(); err != nil {
			if status.Code(err) != codes.Canceled {
				logger.Error("Match change feed closed: %v", err)
			}
			return
		}

		for {
			_, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("Match change feed closed: %v", err)
				}
				return
			}
			fn()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
	}
}
