package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Mode   string `json:"mode,omitempty"`
	Impact string `json:"impact,omitempty"`
	Error  string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"store": checkStore(r, d),
			"cache": checkCache(r, d),
		}
		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func overallStatus(components map[string]componentStatus) string {
	if store, ok := components["store"]; ok && !store.OK {
		return "critical"
	}
	if cache, ok := components["cache"]; ok && !cache.OK {
		return "degraded"
	}
	return "ok"
}

func checkStore(r *http.Request, d deps.Deps) componentStatus {
	if err := ping(r.Context(), d.Store); err != nil {
		return componentStatus{OK: false, Mode: d.StoreName, Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: d.StoreName}
}

func checkCache(r *http.Request, d deps.Deps) componentStatus {
	if d.Cache == nil {
		return componentStatus{OK: true, Mode: "disabled", Impact: "searches-uncached"}
	}
	if err := ping(r.Context(), d.Cache); err != nil {
		return componentStatus{OK: false, Mode: "redis", Impact: "searches-uncached", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "redis"}
}
