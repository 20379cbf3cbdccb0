package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ahmetyavas01/SahaBul/internal/usecase"
	"github.com/ahmetyavas01/SahaBul/pkg/response"
)

type ParticipantHandler struct {
	participantUseCase *usecase.ParticipantUseCase
}

func NewParticipantHandler(participantUseCase *usecase.ParticipantUseCase) *ParticipantHandler {
	return &ParticipantHandler{
		participantUseCase: participantUseCase,
	}
}

type decisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

// RequestJoin files a join request for the match in the path. Repeating
// the call is safe; the same participant and chat come back.
func (h *ParticipantHandler) RequestJoin(c echo.Context) error {
	userID := c.Get("uid").(string)

	result, err := h.participantUseCase.RequestJoin(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *ParticipantHandler) Decide(c echo.Context) error {
	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	participant, err := h.participantUseCase.Decide(c.Request().Context(), userID, c.Param("id"), req.Decision)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, participant)
}

func (h *ParticipantHandler) ListParticipants(c echo.Context) error {
	userID := c.Get("uid").(string)

	participants, err := h.participantUseCase.ListParticipants(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, participants)
}
