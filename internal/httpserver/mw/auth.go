package mw

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/marks/internal/errs"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/service"
)

// TokenCookie carries the access token for browser clients.
const TokenCookie = "marks_token"

// TokenFromRequest returns the bearer token, falling back to the cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// RequireUser rejects requests without a valid, unrevoked token with 401
// and stores the caller's user ID in the request context.
func RequireUser(auth *service.AuthService, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.Authenticate(r.Context(), TokenFromRequest(r))
			if err != nil {
				if !errors.Is(err, errs.ErrUnauthorized) {
					log.Error("authentication failed", logger.Error(err))
					writeJSONError(w, http.StatusInternalServerError, "internal error")
					return
				}
				w.Header().Set("WWW-Authenticate", `Bearer realm="marks"`)
				writeJSONError(w, http.StatusUnauthorized, errs.ErrUnauthorized.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}
