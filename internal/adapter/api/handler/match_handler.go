package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ahmetyavas01/SahaBul/internal/usecase"
	"github.com/ahmetyavas01/SahaBul/pkg/geo"
	"github.com/ahmetyavas01/SahaBul/pkg/response"
)

type MatchHandler struct {
	matchUseCase *usecase.MatchUseCase
}

func NewMatchHandler(matchUseCase *usecase.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

type createMatchRequest struct {
	MatchName         string    `json:"match_name"`
	Location          string    `json:"location"`
	Latitude          *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude         *float64  `json:"longitude" validate:"omitempty,longitude"`
	Date              time.Time `json:"date"`
	Price             int       `json:"price"`
	PlayersCount      int       `json:"players_count"`
	RequiredPositions []string  `json:"required_positions"`
}

func (h *MatchHandler) CreateMatch(c echo.Context) error {
	var req createMatchRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	// coordinate range only; the use case owns presence validation so
	// the first failing field is reported consistently
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	match, err := h.matchUseCase.CreateMatch(c.Request().Context(), userID, usecase.CreateMatchInput{
		MatchName:         req.MatchName,
		Location:          req.Location,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Date:              req.Date,
		Price:             req.Price,
		PlayersCount:      req.PlayersCount,
		RequiredPositions: req.RequiredPositions,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, match)
}

func (h *MatchHandler) ListMatches(c echo.Context) error {
	userID := c.Get("uid").(string)

	mode := geo.Mode(c.QueryParam("filter"))
	if mode == "" {
		mode = geo.ModeAll
	}

	var ref geo.Point
	ref.Lat, _ = strconv.ParseFloat(c.QueryParam("lat"), 64)
	ref.Lng, _ = strconv.ParseFloat(c.QueryParam("lng"), 64)

	matches, err := h.matchUseCase.ListMatches(c.Request().Context(), userID, mode, ref)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, matches)
}

func (h *MatchHandler) GetMatch(c echo.Context) error {
	userID := c.Get("uid").(string)

	match, err := h.matchUseCase.GetMatch(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, match)
}
