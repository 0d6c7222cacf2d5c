package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/utils"
)

// RestrictToNetworks answers 403 to clients outside every listed IP or
// CIDR. An empty list lets everyone through.
func RestrictToNetworks(networks []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	allowed := utils.NewIPMatcher(networks)
	if allowed.IsEmpty() {
		return func(next http.Handler) http.Handler { return next }
	}
	log = log.With(logger.String("middleware", "restrict_networks"))
	log.Debug("network restriction enabled", logger.Strings("networks", networks))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := utils.ClientIP(r, trustProxy); !allowed.Allow(ip) {
				log.Debug("client outside allowed networks",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
