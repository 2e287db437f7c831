package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-social-platform/internal/transport/http/handlers"
	"github.com/pribylovaa/go-social-platform/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// Gate — Identity Gate; nil означает, что все запросы анонимны.
	Gate     middleware.Resolver
	BasePath string
}

// NewRouter собирает http.Handler с chi, мидлварами и маршрутами постов.
func NewRouter(posts handlers.Posts, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования: request_id попадает в логгер
		middleware.Logging(opts.Logger),
		middleware.Metrics(),
	)
	if opts.Gate != nil {
		root.Use(middleware.Identity(opts.Gate))
	}
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	h := handlers.New(posts)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// create
	r.Post("/create/initiate", h.InitiatePost)
	r.Post("/create", h.CreatePost)

	// creation
	r.Put("/creation/{postId}", h.EditPost)
	r.Delete("/creation/{postId}", h.DeletePost)
	r.Put("/creation/{postId}/updateimagefullnamesarray", h.AttachImages)

	// post
	r.Get("/post/id/{postId}", h.ViewPost)

	// save
	r.Post("/save/{postId}", h.ToggleSave)
}
