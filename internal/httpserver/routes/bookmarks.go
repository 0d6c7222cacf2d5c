package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/marks/internal/httpserver/mw"
)

func init() { Register("bookmarks", registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/bookmarks", handlers.RedirectHome)

	// The bookmarklet posts from arbitrary pages, so the add route answers
	// preflights before authentication.
	r.With(mw.CORS(d.CORSOrigins), mw.EnforceHost(d.AllowedHosts, d.Logger), mw.RequireUser(d.Auth, d.Logger)).
		Post("/bookmarks/add", handlers.AddBookmark(d))
	r.With(mw.CORS(d.CORSOrigins)).Options("/bookmarks/add", handlers.NoContent)

	r.Group(func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Use(mw.RequireUser(d.Auth, d.Logger))
		r.Get("/", handlers.Index(d))
		r.Get("/bookmarks/{id}", handlers.ViewBookmark(d))
		r.Post("/bookmarks/{id}/edit", handlers.EditBookmark(d))
		r.Post("/bookmarks/{id}/delete", handlers.DeleteBookmark(d))
	})
}
