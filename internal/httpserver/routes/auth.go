package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/marks/internal/httpserver/mw"
)

func init() { Register("auth", registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.With(authLimit(d)).Post("/register", handlers.Register(d))
		r.With(authLimit(d)).Post("/login", handlers.Login(d))
		r.With(mw.RequireUser(d.Auth, d.Logger)).Post("/logout", handlers.Logout(d))
	})
}

// authLimit returns a fresh limiter, one per route.
func authLimit(d deps.Deps) Middleware {
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.AuthBurst,
		RefillPerIPPerMin: d.AuthRate,
		MaxEntries:        10_000,
		TrustProxy:        d.TrustProxy,
	})
}
