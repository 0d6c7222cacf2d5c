package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/service"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func readCredentials(w http.ResponseWriter, r *http.Request) (credentials, error) {
	var c credentials
	filled, err := decodeBody(w, r, &c)
	if err != nil || filled {
		return c, err
	}
	return credentials{Username: r.PostFormValue("username"), Password: r.PostFormValue("password")}, nil
}

type registerResponse struct {
	User *domain.User `json:"user"`
	service.Token
}

// Register creates an account and logs the new user in, as Login would.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := readCredentials(w, r)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		u, err := d.Auth.Register(r.Context(), c.Username, c.Password)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		d.Logger.Info("user registered", logger.String("user_id", u.ID))

		tok, err := d.Auth.Login(r.Context(), c.Username, c.Password)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		setTokenCookie(w, r, tok)

		if responseFormat(r) == formatJSON {
			writeJSON(w, http.StatusCreated, registerResponse{User: u, Token: tok})
			return
		}
		seeOther(w, r, "/")
	}
}

// Login issues a token, returned in the body and set as a cookie for
// browser clients.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := readCredentials(w, r)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		tok, err := d.Auth.Login(r.Context(), c.Username, c.Password)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		setTokenCookie(w, r, tok)

		if responseFormat(r) == formatJSON {
			writeJSON(w, http.StatusOK, tok)
			return
		}
		seeOther(w, r, "/")
	}
}

func setTokenCookie(w http.ResponseWriter, r *http.Request, tok service.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     mw.TokenCookie,
		Value:    tok.Value,
		Path:     "/",
		Expires:  tok.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// Logout revokes the caller's token and clears the cookie.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Auth.Logout(r.Context(), mw.TokenFromRequest(r)); err != nil {
			writeError(w, r, d, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     mw.TokenCookie,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
		})

		if responseFormat(r) == formatJSON {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		seeOther(w, r, "/")
	}
}
