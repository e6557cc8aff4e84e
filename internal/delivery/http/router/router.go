// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/config"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config            *config.Config
	AccountHandler    *handler.AccountHandler
	ProfileHandler    *handler.ProfileHandler
	CatalogHandler    *handler.CatalogHandler
	ReviewHandler     *handler.ReviewHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	accountHandler *handler.AccountHandler
	profileHandler *handler.ProfileHandler
	catalogHandler *handler.CatalogHandler
	reviewHandler  *handler.ReviewHandler
	session        *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		accountHandler: params.AccountHandler,
		profileHandler: params.ProfileHandler,
		catalogHandler: params.CatalogHandler,
		reviewHandler:  params.ReviewHandler,
		session:        params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Credential endpoints share one per-IP limiter.
	limiter := middleware.NewCredentialRateLimiter(r.cfg)
	e.POST("/register", r.accountHandler.Register, limiter)
	e.POST("/login", r.accountHandler.Login, limiter)

	authenticated := []echo.MiddlewareFunc{r.session.Authenticate, r.session.RequireSession}
	e.GET("/profile/:id", r.profileHandler.GetProfile, authenticated...)

	products := e.Group("/products")
	{
		products.GET("/type/:type", r.catalogHandler.ListByType)
		products.GET("/:id", r.catalogHandler.GetProduct)
	}

	e.POST("/reviews", r.reviewHandler.CreateReview, authenticated...)
	e.GET("/reviews", r.reviewHandler.ListReviews)
}
