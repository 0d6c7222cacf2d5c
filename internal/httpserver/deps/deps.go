package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/service"
)

// Pinger is a component whose health the probes report.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	AllowedHosts []string // Host headers allowed to access the server
	AllowedCIDRS []string // IPs allowed to access healthz/readyz/infra endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)

	Auth        *service.AuthService
	Bookmarks   *service.BookmarkService
	Collections *service.CollectionService

	StoreName string // "postgres" | "memory"
	Store     Pinger // primary store, checked by readyz
	Cache     Pinger // Redis, nil when disabled

	AuthRate    int      // login/register requests per minute per client
	AuthBurst   int      // login/register burst per client
	CORSOrigins []string // origins allowed to POST /bookmarks/add
}
