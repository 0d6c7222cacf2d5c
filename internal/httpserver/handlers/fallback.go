package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/marks/internal/errs"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
)

func NotFound(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, d, errs.ErrNotFound)
	}
}

func MethodNotAllowed(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := errorResponse{Error: "method not allowed"}
		if responseFormat(r) == formatJSON {
			writeJSON(w, http.StatusMethodNotAllowed, body)
			return
		}
		renderError(w, http.StatusMethodNotAllowed, body)
	}
}

// RedirectHome sends legacy list URLs to the index.
func RedirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusMovedPermanently)
}

// NoContent answers CORS preflights once the CORS middleware has set its
// headers.
func NoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
