// Package main: HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar ve global middleware'ları sarar:
//
//	Logging → Recover → CORS → mux
//	                           ├── GET /api/health
//	                           ├── /api/auth/*  → RateLimit → auth mux
//	                           └── /           → 404 JSON
package main

import (
	"net/http"

	"github.com/akinalp/kushauth/config"
	"github.com/akinalp/kushauth/handlers"
	"github.com/akinalp/kushauth/middleware"
	"github.com/akinalp/kushauth/pkg/ratelimit"
	"github.com/rs/cors"
)

func initRoutes(
	h *Handlers,
	svcs *Services,
	limiter ratelimit.Limiter,
	cfg *config.Config,
) http.Handler {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(svcs.Auth)
	rateMw := middleware.NewRateLimitMiddleware(limiter, cfg.Server.TrustProxy)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(handler)
	}

	// ─── Auth group ───
	// Kendi mux'ı var ki rate limiter sadece bu grubu sarsın.
	// Eşleşmeyen /api/auth/* path'leri (yanlış method dahil) JSON 404 alır.
	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /api/auth/signup", h.Auth.Signup)
	authMux.HandleFunc("POST /api/auth/signin", h.Auth.Signin)
	authMux.Handle("GET /api/auth/profile", auth(h.Auth.Profile))
	authMux.Handle("POST /api/auth/logout", auth(h.Auth.Logout))
	authMux.HandleFunc("/", handlers.NotFound)

	// ─── Root ───
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health.Health)
	mux.Handle("/api/auth/", rateMw.Limit(authMux))
	mux.HandleFunc("/", handlers.NotFound)

	// ─── CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
	})

	return middleware.Logging(cfg.Server.TrustProxy)(
		middleware.Recover(corsHandler.Handler(mux)),
	)
}
