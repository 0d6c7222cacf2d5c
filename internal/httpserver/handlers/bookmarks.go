package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/marks/internal/service"
)

type bookmarkRequest struct {
	Href          string   `json:"href"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Collections   []string `json:"collections"`
	NewCollection string   `json:"new_collection"`
	Action        string   `json:"action"`
}

func (b bookmarkRequest) input() service.BookmarkInput {
	href := b.Href
	if strings.TrimSpace(href) == "" {
		href = b.URL
	}
	return service.BookmarkInput{
		Href:          href,
		Title:         b.Title,
		Description:   b.Description,
		Collections:   b.Collections,
		NewCollection: b.NewCollection,
	}
}

// readBookmark accepts a JSON body or a form post. The bookmarklet sends
// the page address as "url".
func readBookmark(w http.ResponseWriter, r *http.Request) (bookmarkRequest, error) {
	var b bookmarkRequest
	filled, err := decodeBody(w, r, &b)
	if err != nil || filled {
		return b, err
	}
	return bookmarkRequest{
		Href:          r.PostFormValue("href"),
		URL:           r.PostFormValue("url"),
		Title:         r.PostFormValue("title"),
		Description:   r.PostFormValue("description"),
		Collections:   formList(r, "collections"),
		NewCollection: r.PostFormValue("new_collection"),
		Action:        r.PostFormValue("action"),
	}, nil
}

// owner is set by mw.RequireUser on every bookmark and collection route.
func owner(r *http.Request) string {
	id, _ := mw.UserID(r.Context())
	return id
}

// Index lists all of the caller's bookmarks, newest first.
func Index(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := d.Bookmarks.Search(r.Context(), owner(r), domain.SearchParams{})
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		renderBookmarks(w, r, listView{Title: "Bookmarks", Bookmarks: results})
	}
}

func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := readBookmark(w, r)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		b, err := d.Bookmarks.Create(r.Context(), owner(r), req.input())
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		if responseFormat(r) == formatJSON {
			writeJSON(w, http.StatusCreated, b)
			return
		}
		seeOther(w, r, "/bookmarks/"+b.ID)
	}
}

func ViewBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := d.Bookmarks.Get(r.Context(), owner(r), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		if responseFormat(r) == formatJSON {
			writeJSON(w, http.StatusOK, b)
			return
		}
		renderBookmarks(w, r, listView{Title: b.Title, Description: b.Description, Bookmarks: []*domain.Bookmark{b}})
	}
}

// EditBookmark saves the posted fields. action=delete deletes instead.
func EditBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := readBookmark(w, r)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		id := chi.URLParam(r, "id")

		if strings.EqualFold(req.Action, "delete") {
			deleteBookmark(w, r, d, id)
			return
		}

		b, err := d.Bookmarks.Update(r.Context(), owner(r), id, req.input())
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		if responseFormat(r) == formatJSON {
			writeJSON(w, http.StatusOK, b)
			return
		}
		seeOther(w, r, "/bookmarks/"+b.ID)
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleteBookmark(w, r, d, chi.URLParam(r, "id"))
	}
}

func deleteBookmark(w http.ResponseWriter, r *http.Request, d deps.Deps, id string) {
	if err := d.Bookmarks.Delete(r.Context(), owner(r), id); err != nil {
		writeError(w, r, d, err)
		return
	}

	if responseFormat(r) == formatJSON {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	seeOther(w, r, "/")
}
