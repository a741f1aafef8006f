// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"coachly/internal/delivery/http/middleware"
	"coachly/internal/delivery/http/router/handler"
	"coachly/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	SessionHandler *handler.SessionHandler
	TrainerHandler *handler.TrainerHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	sessionHandler *handler.SessionHandler
	trainerHandler *handler.TrainerHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		sessionHandler: params.SessionHandler,
		trainerHandler: params.TrainerHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/healthz", handler.HealthCheck)

	api := e.Group("/api/v1")

	// Registration and session lifecycle
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Account routes that require authentication
	userGroup := api.Group("/users", r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.GetProfile)
		userGroup.PATCH("/me", r.userHandler.UpdateProfile)
		userGroup.PUT("/me/password", r.userHandler.ChangePassword)
		userGroup.DELETE("/me", r.userHandler.DeleteAccount)

		userGroup.GET("/me/sessions", r.sessionHandler.GetSessions)
		userGroup.DELETE("/me/sessions/:id", r.sessionHandler.RevokeSession)
		userGroup.DELETE("/me/sessions", r.sessionHandler.RevokeAllSessions)
	}

	// Public trainer discovery
	trainerGroup := api.Group("/trainers")
	{
		trainerGroup.GET("", r.trainerHandler.ListTrainers)
		trainerGroup.GET("/nearby", r.trainerHandler.NearbyTrainers)
	}

	// Trainer self-service routes require authentication and the "trainer" role
	myTrainerGroup := trainerGroup.Group("/me")
	myTrainerGroup.Use(r.authMiddleware.Authenticate)
	myTrainerGroup.Use(r.authMiddleware.RequireRole(string(entity.RoleTrainer)))
	{
		myTrainerGroup.PUT("", r.trainerHandler.UpsertMyProfile)
		myTrainerGroup.GET("", r.trainerHandler.GetMyProfile)
		myTrainerGroup.GET("/invite-qr", r.trainerHandler.InviteQR)
	}
}
