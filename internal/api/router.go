package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mari/gift-list-website/internal/api/handlers"
	"github.com/mari/gift-list-website/internal/api/middleware"
	"github.com/mari/gift-list-website/internal/live"
	"github.com/mari/gift-list-website/internal/media"
	"github.com/mari/gift-list-website/internal/service"
	"github.com/sirupsen/logrus"
)

func NewRouter(services *service.Services, hub *live.Hub, mediaStore *media.Store, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, log)
	profileHandler := handlers.NewProfileHandler(services.Profile, log)
	giftHandler := handlers.NewGiftHandler(services.Gift, hub, log)
	demoHandler := handlers.NewDemoHandler()
	mediaHandler := handlers.NewMediaHandler(mediaStore, log)
	wsHandler := handlers.NewWebSocketHandler(hub, log)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth, log))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Public directory
		r.Get("/listas", profileHandler.ListPublic)

		// Public gift pages; /gift/demo must win over /gift/{username}
		r.Route("/gift", func(r chi.Router) {
			r.Get("/demo", demoHandler.Get)
			r.Get("/{username}", profileHandler.GetPublic)
		})

		// Owner-only admin panel, guarded by username
		r.Route("/admin/{username}", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, log))
			r.Use(middleware.OwnerGuard)

			r.Get("/profile", profileHandler.GetOwn)
			r.Put("/profile", profileHandler.UpdateOwn)

			r.Route("/gifts", func(r chi.Router) {
				r.Get("/", giftHandler.List)
				r.Post("/", giftHandler.Create)
				r.Put("/{giftID}", giftHandler.Update)
				r.Delete("/{giftID}", giftHandler.Delete)
			})
		})

		// Image uploads
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, log))
			r.Post("/media/upload", mediaHandler.Upload)
		})
	})

	// Live updates for open public pages
	r.Get("/ws/gift/{username}", wsHandler.Subscribe)

	return r
}
