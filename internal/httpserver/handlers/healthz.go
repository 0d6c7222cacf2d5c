package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Store         string `json:"store"`
	Cache         bool   `json:"cache"`
	Version       string `json:"version,omitempty"`
	Commit        string `json:"commit,omitempty"`
	BuildDate     string `json:"build_date,omitempty"`
	GoVersion     string `json:"go_version,omitempty"`
}

// Healthz is the liveness probe. It never touches the store; see Readyz.
func Healthz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		up := time.Since(d.StartTime).Truncate(time.Second)
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			Uptime:        up.String(),
			UptimeSeconds: int64(up.Seconds()),
			Store:         d.StoreName,
			Cache:         d.Cache != nil,
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
		})
	}
}
