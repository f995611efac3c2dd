package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"openrouter-chat/internal/handlers"
	"openrouter-chat/internal/service"
	"openrouter-chat/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService service.ChatService
	CallStore   storage.CallStore
	DB          *sql.DB
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	healthHandler := handlers.NewHealthHandler(deps.DB)
	callsHandler := handlers.NewCallsHandler(deps.CallStore)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodGet, "/calls", callsHandler)
	})

	return r
}
