package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ahmetyavas01/SahaBul/internal/usecase"
	"github.com/ahmetyavas01/SahaBul/pkg/response"
	"github.com/ahmetyavas01/SahaBul/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// ResolveThread returns the chat thread for the match in the path. The
// thread only exists once someone has asked to join; before that this is
// a 404, never an implicit create.
func (h *ChatHandler) ResolveThread(c echo.Context) error {
	userID := c.Get("uid").(string)

	chat, err := h.chatUseCase.ResolveThread(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.chatUseCase.PostMessage(c.Request().Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), userID, c.Param("id"), pagination.Limit, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Limit, pagination.Offset)
}
