package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
)

type hostnamesResponse struct {
	Hostnames []string `json:"hostnames"`
}

// Search filters the caller's bookmarks by q (title, href or text) and
// hostname. Invalid expressions are matched literally, never rejected.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := domain.SearchParams{
			Keyword:  r.URL.Query().Get("q"),
			Hostname: r.URL.Query().Get("hostname"),
		}
		results, err := d.Bookmarks.Search(r.Context(), owner(r), params)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		renderBookmarks(w, r, listView{Title: searchTitle(params), Bookmarks: results})
	}
}

func searchTitle(p domain.SearchParams) string {
	switch {
	case p.Keyword != "" && p.Hostname != "":
		return "Search: " + p.Keyword + " on " + p.Hostname
	case p.Keyword != "":
		return "Search: " + p.Keyword
	case p.Hostname != "":
		return "Search: " + p.Hostname
	}
	return "Search"
}

// Hostnames lists the distinct hosts of the caller's bookmarks, for the
// search form.
func Hostnames(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hosts, err := d.Bookmarks.Hostnames(r.Context(), owner(r))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		if hosts == nil {
			hosts = []string{}
		}
		writeJSON(w, http.StatusOK, hostnamesResponse{Hostnames: hosts})
	}
}
