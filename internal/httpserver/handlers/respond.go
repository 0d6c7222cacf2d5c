package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/marks/internal/errs"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

// Response formats selected by the format parameter.
const (
	formatJSON    = "json"
	formatPartial = "partial"
	formatPage    = "page"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// responseFormat picks json, partial or page from the format parameter,
// defaulting to json for API clients.
func responseFormat(r *http.Request) string {
	switch strings.ToLower(r.FormValue("format")) {
	case formatJSON:
		return formatJSON
	case formatPartial:
		return formatPartial
	case "":
		if isJSONRequest(r) {
			return formatJSON
		}
	}
	return formatPage
}

func isJSONRequest(r *http.Request) bool {
	if ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && ct == "application/json" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and renders it in the requested
// format. Unclassified errors are logged and answered with an apology.
func writeError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	status, body := classify(err)
	if status == http.StatusInternalServerError {
		d.Logger.Error("request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err))
	}

	if responseFormat(r) == formatJSON {
		writeJSON(w, status, body)
		return
	}
	renderError(w, status, body)
}

func classify(err error) (int, errorResponse) {
	var verr *errs.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: verr.Fields}
	case errors.Is(err, errs.ErrMalformedURL):
		return http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: map[string]string{"href": err.Error()},
		}
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized"}
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests, errorResponse{Error: "rate limited"}
	default:
		return http.StatusInternalServerError, errorResponse{
			Error: "Sorry, something went wrong on our side. Please try again later.",
		}
	}
}

// decodeBody fills dst from a JSON body or, for form posts, lets the
// caller read r.Form. It reports whether dst was filled.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) (bool, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(dst); err != nil {
			return false, errs.Invalid("body", "invalid json: "+err.Error())
		}
		return true, nil
	}
	if err := r.ParseForm(); err != nil {
		return false, errs.Invalid("body", "invalid form: "+err.Error())
	}
	return false, nil
}

// formList reads a multi-valued form field, also splitting comma lists.
func formList(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.Form[key] {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// seeOther answers a successful form post with a redirect, as browsers
// expect.
func seeOther(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
