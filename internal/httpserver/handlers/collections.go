package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/service"
)

type collectionsResponse struct {
	Collections []*domain.Collection `json:"collections"`
}

type collectionResponse struct {
	Collection *domain.Collection `json:"collection"`
	Bookmarks  []*domain.Bookmark `json:"bookmarks"`
}

func readCollection(w http.ResponseWriter, r *http.Request) (service.CollectionInput, error) {
	var in service.CollectionInput
	filled, err := decodeBody(w, r, &in)
	if err != nil || filled {
		return in, err
	}
	return service.CollectionInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	}, nil
}

func ListCollections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := d.Collections.List(r.Context(), owner(r))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		if cs == nil {
			cs = []*domain.Collection{}
		}
		writeJSON(w, http.StatusOK, collectionsResponse{Collections: cs})
	}
}

func CreateCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := readCollection(w, r)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		c, err := d.Collections.Create(r.Context(), owner(r), in)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		if responseFormat(r) == formatJSON {
			writeJSON(w, http.StatusCreated, c)
			return
		}
		seeOther(w, r, "/collections/"+c.Path)
	}
}

// ViewCollection lists the collection's bookmarks, newest first.
func ViewCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := owner(r)
		c, err := d.Collections.Get(r.Context(), ownerID, chi.URLParam(r, "path"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		results, err := d.Bookmarks.Search(r.Context(), ownerID, domain.SearchParams{Collection: c.Path})
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		if responseFormat(r) == formatJSON {
			if results == nil {
				results = []*domain.Bookmark{}
			}
			writeJSON(w, http.StatusOK, collectionResponse{Collection: c, Bookmarks: results})
			return
		}
		renderBookmarks(w, r, listView{Title: c.Name, Description: c.Description, Bookmarks: results})
	}
}

// EditCollection renames or redescribes a collection. Its path is kept.
func EditCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := readCollection(w, r)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		c, err := d.Collections.Update(r.Context(), owner(r), chi.URLParam(r, "path"), in)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		if responseFormat(r) == formatJSON {
			writeJSON(w, http.StatusOK, c)
			return
		}
		seeOther(w, r, "/collections/"+c.Path)
	}
}

// DeleteCollection removes the collection and strips it from its bookmarks.
func DeleteCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Collections.Delete(r.Context(), owner(r), chi.URLParam(r, "path")); err != nil {
			writeError(w, r, d, err)
			return
		}

		if responseFormat(r) == formatJSON {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		seeOther(w, r, "/collections")
	}
}
