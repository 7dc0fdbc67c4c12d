package api

import (
	"net/http"
	"time"

	"portfolio_pro/internal/api/handler"
	"portfolio_pro/internal/api/middleware"
	"portfolio_pro/internal/app/service"
	"portfolio_pro/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokens *security.TokenIssuer,
	authService *service.AuthService,
	userService *service.UserService,
	projectService *service.ProjectService,
	resetLimiter *middleware.ResetRequestLimiter,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token and puts claims in the request context.
	// Authorization decisions happen in middleware.Authenticator below.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		userHandler := handler.NewUserHandler(userService)
		projectHandler := handler.NewProjectHandler(projectService)

		// Auth routes (public)
		v1.Route("/auth", func(auth chi.Router) {
			authHandler.RegisterRoutes(auth)
			auth.Group(func(limited chi.Router) {
				limited.Use(resetLimiter.Handler)
				authHandler.RegisterForgotPassword(limited)
			})
		})

		// User routes (public card list, authed reads, owner-gated mutations)
		v1.Route("/users", func(users chi.Router) {
			userHandler.RegisterPublicRoutes(users)
			users.Group(func(authed chi.Router) {
				authed.Use(middleware.Authenticator(tokens))
				userHandler.RegisterAuthedRoutes(authed)
				authed.Group(func(owner chi.Router) {
					owner.Use(middleware.OwnerOnly)
					userHandler.RegisterOwnerRoutes(owner)
				})
			})
		})

		// Project routes (authenticated; ownership enforced per row)
		v1.Route("/projects", func(projects chi.Router) {
			projects.Use(middleware.Authenticator(tokens))
			projectHandler.RegisterRoutes(projects)
		})
	})

	return r
}
