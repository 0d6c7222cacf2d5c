package mw

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows cross-origin posts from the bookmarklet. Credentials are
// never shared cross-origin: the bookmarklet sends a bearer token.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
