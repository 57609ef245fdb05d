// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"spendtrack/internal/delivery/http/middleware"
	"spendtrack/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CategoryHandler *handler.CategoryHandler
	ExpenseHandler  *handler.ExpenseHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	categoryHandler *handler.CategoryHandler
	expenseHandler  *handler.ExpenseHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		categoryHandler: params.CategoryHandler,
		expenseHandler:  params.ExpenseHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Public auth routes
	api.POST("/register", r.authHandler.Register)
	api.POST("/login", r.authHandler.Login)

	// Authenticated auth routes
	authGroup := api.Group("")
	authGroup.Use(r.authMiddleware.Authenticate)
	{
		authGroup.GET("/me", r.authHandler.Me)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Category routes: global resources behind authentication
	categoryGroup := api.Group("/categories")
	categoryGroup.Use(r.authMiddleware.Authenticate)
	{
		categoryGroup.GET("", r.categoryHandler.List)
		categoryGroup.POST("", r.categoryHandler.Create)
		categoryGroup.GET("/:id", r.categoryHandler.Get)
		categoryGroup.PUT("/:id", r.categoryHandler.Update)
		categoryGroup.DELETE("/:id", r.categoryHandler.Delete)
	}

	// Expense routes: always scoped to the authenticated owner
	expenseGroup := api.Group("/expenses")
	expenseGroup.Use(r.authMiddleware.Authenticate)
	{
		expenseGroup.GET("", r.expenseHandler.List)
		expenseGroup.POST("", r.expenseHandler.Create)
		expenseGroup.GET("/summary", r.expenseHandler.Summary)
		expenseGroup.GET("/:id", r.expenseHandler.Get)
		expenseGroup.PUT("/:id", r.expenseHandler.Update)
		expenseGroup.DELETE("/:id", r.expenseHandler.Delete)
	}
}
