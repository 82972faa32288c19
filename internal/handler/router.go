package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskmate-ai/taskmate/backend/internal/config"
	chathandler "github.com/taskmate-ai/taskmate/backend/internal/handler/chat"
	healthhandler "github.com/taskmate-ai/taskmate/backend/internal/handler/health"
	taskhandler "github.com/taskmate-ai/taskmate/backend/internal/handler/task"
	middlewarePkg "github.com/taskmate-ai/taskmate/backend/internal/middleware"
	"github.com/taskmate-ai/taskmate/backend/internal/service/assistant"
	chatservice "github.com/taskmate-ai/taskmate/backend/internal/service/chat"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(serverCfg config.ServerConfig, store *chatservice.Store, assistantSvc *assistant.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(serverCfg.AllowedOrigins))

	r.Route("/chat", chathandler.New(store).RegisterRoutes)
	r.Route("/task", taskhandler.New(assistantSvc).RegisterRoutes)
	healthhandler.New().RegisterRoutes(r)

	return r
}
