package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ahmetyavas01/SahaBul/internal/adapter/api/handler"
	"github.com/ahmetyavas01/SahaBul/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()
	participantHandler := handler.GetParticipantHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("/:id/messages", chatHandler.ListMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)

	participants := e.Group("/v1/participants")
	participants.Use(authMiddleware.Authenticate)

	participants.POST("/:id/decision", participantHandler.Decide)
}
