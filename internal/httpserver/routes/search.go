package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/marks/internal/httpserver/mw"
)

func init() { Register("search", registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger), mw.RequireUser(d.Auth, d.Logger)).Route("/search", func(r chi.Router) {
		r.Get("/", handlers.Search(d))
		r.Get("/hostnames", handlers.Hostnames(d))
	})
}
