package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ahmetyavas01/SahaBul/internal/adapter/api/handler"
	"github.com/ahmetyavas01/SahaBul/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	auth := e.Group("/v1/auth")
	auth.Use(authMiddleware.Authenticate)

	auth.POST("/sync", userHandler.SyncProfile)
	auth.GET("/me", userHandler.GetMe)
}
