package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/marks/internal/httpserver/mw"
)

func init() { Register("collections", registerCollections) }

func registerCollections(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger), mw.RequireUser(d.Auth, d.Logger)).Route("/collections", func(r chi.Router) {
		r.Get("/", handlers.ListCollections(d))
		r.Post("/", handlers.CreateCollection(d))
		r.Get("/{path}", handlers.ViewCollection(d))
		r.Post("/{path}/edit", handlers.EditCollection(d))
		r.Post("/{path}/delete", handlers.DeleteCollection(d))
	})
}
