package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
	"github.com/ahmetyavas01/SahaBul/internal/domain/repository"
	"github.com/ahmetyavas01/SahaBul/internal/infrastructure/geocode"
	ws "github.com/ahmetyavas01/SahaBul/internal/infrastructure/websocket"
	"github.com/ahmetyavas01/SahaBul/pkg/errors"
	"github.com/ahmetyavas01/SahaBul/pkg/geo"
	"github.com/ahmetyavas01/SahaBul/pkg/logger"
	"github.com/ahmetyavas01/SahaBul/pkg/utils"
)

type MatchUseCase struct {
	matchRepo repository.MatchRepository
	userRepo  repository.UserRepository
	geocoder  *geocode.Client
	wsManager *ws.Manager
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	userRepo repository.UserRepository,
	geocoder *geocode.Client,
	wsManager *ws.Manager,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo: matchRepo,
		userRepo:  userRepo,
		geocoder:  geocoder,
		wsManager: wsManager,
	}
}

type CreateMatchInput struct {
	MatchName         string
	Location          string
	Latitude          *float64
	Longitude         *float64
	Date              time.Time
	Price             int
	PlayersCount      int
	RequiredPositions []string
}

// MatchResponse is a Match as rendered to a specific viewer: the creator
// name is masked unless the viewer is the creator.
type MatchResponse struct {
	*entity.Match
	CreatorName string `json:"creator_name"`
}

func (uc *MatchUseCase) toResponse(match *entity.Match, viewerID string) *MatchResponse {
	name := match.CreatorName
	if match.UserID != viewerID {
		name = utils.MaskName(name)
	}
	return &MatchResponse{
		Match:       match,
		CreatorName: name,
	}
}

// CreateMatch validates the draft and persists a new listing. Validation
// failures name the first failing field and never reach the store.
func (uc *MatchUseCase) CreateMatch(ctx context.Context, userID string, input CreateMatchInput) (*entity.Match, error) {
	name := strings.TrimSpace(input.MatchName)
	if name == "" {
		return nil, errors.Validation("match_name", "Match name is required")
	}

	label := strings.TrimSpace(input.Location)
	if label == "" || input.Latitude == nil || input.Longitude == nil {
		return nil, errors.Validation("location", "Location must be selected from the map")
	}

	if input.PlayersCount <= 0 {
		return nil, errors.Validation("players_count", "Player count must be a positive number")
	}

	if input.Price < 0 {
		return nil, errors.Validation("price", "Price cannot be negative")
	}

	if input.Date.IsZero() {
		return nil, errors.Validation("date", "Match date is required")
	}

	// prettify the label; the submitted free text is the fallback
	if resolved, err := uc.geocoder.ReverseGeocode(ctx, *input.Latitude, *input.Longitude); err == nil {
		label = resolved
	} else {
		logger.Debug("Reverse geocoding failed, keeping submitted label: %v", err)
	}

	creatorName := ""
	if creator, err := uc.userRepo.GetByID(ctx, userID); err == nil {
		creatorName = creator.Username
	} else {
		logger.Warn("No profile for match creator %s: %v", userID, err)
	}

	match := &entity.Match{
		MatchName:         name,
		Location:          label,
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		Date:              input.Date,
		Price:             input.Price,
		PlayersCount:      input.PlayersCount,
		RequiredPositions: input.RequiredPositions,
		UserID:            userID,
		CreatorName:       creatorName,
	}

	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	return match, nil
}

// ListMatches returns the full listing set filtered by the discovery mode,
// ordered by creation time ascending.
func (uc *MatchUseCase) ListMatches(ctx context.Context, viewerID string, mode geo.Mode, ref geo.Point) ([]*MatchResponse, error) {
	matches, err := uc.matchRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matches = geo.Filter(matches, mode, ref, time.Now())

	responses := make([]*MatchResponse, 0, len(matches))
	for _, match := range matches {
		responses = append(responses, uc.toResponse(match, viewerID))
	}
	return responses, nil
}

func (uc *MatchUseCase) GetMatch(ctx context.Context, viewerID, matchID string) (*MatchResponse, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	return uc.toResponse(match, viewerID), nil
}

// StartChangeFeed bridges the store's change feed to connected clients.
// Events carry no payload: subscribers re-issue the list call instead of
// patching, so duplicated or coalesced deliveries only cost a redundant
// fetch. The returned func tears the subscription down.
func (uc *MatchUseCase) StartChangeFeed(ctx context.Context) func() {
	return uc.matchRepo.WatchChanges(ctx, func() {
		uc.wsManager.BroadcastAll(ws.NewEvent(ws.EventTypeMatchFeed, nil))
	})
}
