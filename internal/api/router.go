package api

import (
	"net/http"

	"github.com/Aayush1011/poker-planning-backend/internal/api/handlers"
	"github.com/Aayush1011/poker-planning-backend/internal/api/middleware"
	"github.com/Aayush1011/poker-planning-backend/internal/config"
	"github.com/Aayush1011/poker-planning-backend/internal/repository"
	"github.com/Aayush1011/poker-planning-backend/internal/service"
	"github.com/Aayush1011/poker-planning-backend/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub, repos *repository.Repositories, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	sessionHandler := handlers.NewSessionHandler(services.Session)
	storyHandler := handlers.NewStoryHandler(services.Story)
	userHandler := handlers.NewUserHandler(services.Session)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Public auth routes
	r.Put("/signup", authHandler.SignUp)
	r.Post("/login", authHandler.Login)
	r.Post("/refresh-jwt", authHandler.Refresh)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))

		r.Post("/sessions", sessionHandler.Create)

		r.Route("/sessions/{sessionId}", func(r chi.Router) {
			r.Get("/", sessionHandler.Get)
			r.Post("/users/{userId}", sessionHandler.Join)
			r.Get("/stories", storyHandler.List)

			// Story mutations additionally require the moderator role
			r.Group(func(r chi.Router) {
				r.Use(middleware.Moderator(repos.Participant))
				r.Post("/story", storyHandler.Add)
				r.Put("/stories/{storyId}", storyHandler.Edit)
				r.Delete("/stories/{storyId}", storyHandler.Delete)
			})
		})

		r.Get("/users/{userId}/sessions", userHandler.GetSessions)
	})

	// WebSocket endpoint (independent of HTTP authentication)
	r.Get("/ws", wsHandler.Handle)

	return r
}
