package handlers

import (
	"html/template"
	"net/http"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

// Views: a list page, the same list as a fragment for in-place updates,
// and an error page.
var views = template.Must(template.New("views").Parse(`
{{define "list"}}<ul class="bookmarks">
{{- range .Bookmarks}}
  <li data-id="{{.ID}}"><a href="{{.Href}}">{{.Title}}</a> <small>{{.URL.Hostname}}</small>
  {{- if .Description}}<p>{{.Description}}</p>{{end}}</li>
{{- else}}
  <li class="empty">No bookmarks.</li>
{{- end}}
</ul>{{end}}

{{define "page"}}<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} · marks</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{template "list" .}}
</body>
</html>{{end}}

{{define "error"}}<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Error}} · marks</title></head>
<body>
<h1>{{.Error}}</h1>
{{with .Fields}}<ul class="errors">{{range $field, $msg := .}}<li><b>{{$field}}</b> {{$msg}}</li>{{end}}</ul>{{end}}
</body>
</html>{{end}}
`))

type listView struct {
	Title       string
	Description string
	Bookmarks   []*domain.Bookmark
}

type bookmarksResponse struct {
	Bookmarks []*domain.Bookmark `json:"bookmarks"`
}

// renderBookmarks shapes a result list by the format parameter:
// json, an HTML fragment, or a full page.
func renderBookmarks(w http.ResponseWriter, r *http.Request, view listView) {
	if view.Bookmarks == nil {
		view.Bookmarks = []*domain.Bookmark{}
	}
	switch responseFormat(r) {
	case formatJSON:
		writeJSON(w, http.StatusOK, bookmarksResponse{Bookmarks: view.Bookmarks})
	case formatPartial:
		renderHTML(w, http.StatusOK, "list", view)
	default:
		renderHTML(w, http.StatusOK, "page", view)
	}
}

func renderError(w http.ResponseWriter, status int, body errorResponse) {
	renderHTML(w, status, "error", body)
}

func renderHTML(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = views.ExecuteTemplate(w, name, data)
}
