package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestion-clients/internal/application/auth"
	"github.com/jhoicas/gestion-clients/internal/application/clients"
	"github.com/jhoicas/gestion-clients/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ClientsUC *clients.UseCase
	UserUC    *usecase.UserUseCase
	JWTSecret string
	LoginRate RateLimitConfig
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, login con límite por IP)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", RateLimit(deps.LoginRate), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	homeHandler := NewHomeHandler(deps.ClientsUC, deps.Log)
	protected.Get("/home", homeHandler.Get)

	clientsGroup := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientsUC, deps.Log)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Post("/bulk_update_date", clientHandler.BulkUpdateDate)
	clientsGroup.Get("/:id", clientHandler.Show)
	clientsGroup.Put("/:id", clientHandler.Update)
	clientsGroup.Patch("/:id", clientHandler.Update)
	clientsGroup.Delete("/:id", clientHandler.Delete)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
