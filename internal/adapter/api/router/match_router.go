package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ahmetyavas01/SahaBul/internal/adapter/api/handler"
	"github.com/ahmetyavas01/SahaBul/internal/adapter/api/middleware"
)

func SetupMatchRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	matchHandler := handler.GetMatchHandler()
	participantHandler := handler.GetParticipantHandler()
	chatHandler := handler.GetChatHandler()

	matches := e.Group("/v1/matches")
	matches.Use(authMiddleware.Authenticate)

	matches.GET("", matchHandler.ListMatches)
	matches.POST("", matchHandler.CreateMatch)
	matches.GET("/:id", matchHandler.GetMatch)

	matches.POST("/:id/join", participantHandler.RequestJoin)
	matches.GET("/:id/participants", participantHandler.ListParticipants)

	matches.GET("/:id/chat", chatHandler.ResolveThread)
}
