package repository

import (
	"context"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
)

type MatchRepository interface {
	Create(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	// List returns every match ordered by creation time ascending. The
	// collection is small enough that discovery works on the full set.
	List(ctx context.Context) ([]*entity.Match, error)
	// WatchChanges invokes fn on every insert/update/delete in the match
	// collection. The feed is at-least-once and may coalesce bursts, so fn
	// carries no payload: subscribers re-issue List instead of patching.
	// The returned unsubscribe func stops further callbacks and is safe to
	// call more than once.
	WatchChanges(ctx context.Context, fn func()) (unsubscribe func())
}
