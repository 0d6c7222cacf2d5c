// Package routes holds one registrar per concern. Each file adds itself
// from init(), and httpserver mounts them all with RegisterAll.
package routes

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	name string
	reg  Registrar
	mws  []Middleware
}

var registry = map[string]entry{}

// Register adds a named registrar with optional middlewares applied to
// every route it declares. Registering a name twice panics.
func Register(name string, reg Registrar, mws ...Middleware) {
	if _, dup := registry[name]; dup {
		panic("routes: duplicate registrar " + name)
	}
	registry[name] = entry{name: name, reg: reg, mws: mws}
}

// Names lists the registered route groups in mount order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterAll mounts every group on r, in name order so the route table
// does not depend on file init order.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, name := range Names() {
		e := registry[name]
		sub := r
		if len(e.mws) > 0 {
			sub = r.With(e.mws...)
		}
		e.reg(sub, d)
		d.Logger.Debug("routes registered", logger.String("group", name))
	}
}
