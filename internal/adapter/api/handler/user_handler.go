package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ahmetyavas01/SahaBul/internal/usecase"
	"github.com/ahmetyavas01/SahaBul/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type syncProfileRequest struct {
	Username  string `json:"username" validate:"required"`
	FullName  string `json:"full_name"`
	PushToken string `json:"push_token"`
}

// SyncProfile upserts the caller's profile after a Firebase sign-in so
// the store has a username and push token to work with.
func (h *UserHandler) SyncProfile(c echo.Context) error {
	var req syncProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.userUseCase.SyncProfile(c.Request().Context(), userID, usecase.SyncProfileInput{
		Username:  req.Username,
		FullName:  req.FullName,
		PushToken: req.PushToken,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) GetMe(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
