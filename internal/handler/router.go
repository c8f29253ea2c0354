/*
Package handler provides the HTTP handlers and routing setup for the chat server.

This file defines the main Router, applying logging, CORS, and per-IP rate
limiting before delegating to the sign, user, and chat handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"chatapp/internal/pkg/limiter"
	"chatapp/internal/pkg/logx"
	"chatapp/internal/pkg/resp"
)

const (
	// SignRate limits account creation and login attempts per IP.
	SignRate  = 0.5
	SignBurst = 5
)

// Router builds the application's routing table.
func Router(deps *AppDeps) http.Handler {
	signLimiter := limiter.NewIPRateLimiter(rate.Limit(SignRate), SignBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Chat App Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/sign", func(sign chi.Router) {
		sign.Use(signLimiter.Middleware)
		sign.Post("/register", HandleRegister(deps))
		sign.Post("/activate", HandleActivate(deps))
		sign.Post("/login", HandleLogin(deps))
		sign.Post("/login/guest", HandleGuestLogin(deps))
	})

	r.Route("/user", func(user chi.Router) {
		user.Use(SessionMiddleware(deps.Directory))
		user.Post("/logout", HandleLogout(deps))
		user.Put("/update", HandleUpdate(deps))
		user.Patch("/mute", HandleMute(deps))
		user.Patch("/status", HandleStatus(deps))
	})

	r.Route("/chat", func(chat chi.Router) {
		// History of the broadcast room and the user listing stay readable
		// without a session; everything else requires one.
		chat.Get("/users", HandleActiveUsers(deps))
		chat.Get("/main", HandleMainNewest(deps))
		chat.Get("/main/download", HandleMainDownload(deps))

		chat.Group(func(private chi.Router) {
			private.Use(SessionMiddleware(deps.Directory))
			private.Get("/private", HandlePrivateRoom(deps))
			private.Get("/room", HandleRoomHistory(deps))
			private.Post("/room", HandlePostRoom(deps))
			private.Post("/main", HandlePostMain(deps))
		})
	})

	return r
}
