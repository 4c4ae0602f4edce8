package handlers

import (
	"ListKeeper/internal/config"
	"ListKeeper/internal/middleware"
	"ListKeeper/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	listService *service.ListService,
	imageService *service.ImageService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	listHandler := NewListHandler(listService, logger)
	imageHandler := NewImageHandler(imageService, logger, config)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/logout", userHandler.Logout)

	// Картинки публичные, как объекты публичного бакета
	r.Get("/api/images/{key}", imageHandler.Download)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/api/user/me", userHandler.Me)

		r.Get("/api/lists", listHandler.List)
		r.Post("/api/lists", listHandler.Create)
		r.Get("/api/lists/search", listHandler.Search)
		r.Get("/api/lists/{id}", listHandler.Get)
		r.Put("/api/lists/{id}", listHandler.Update)
		r.Delete("/api/lists/{id}", listHandler.Remove)

		r.Post("/api/images", imageHandler.Upload)
	})

	return &Handler{Router: r}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
