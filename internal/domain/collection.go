package domain

import (
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/MrSnakeDoc/marks/internal/errs"
)

// Collection is a named, owner-scoped grouping of bookmarks.
//
// Path is derived from Name the first time the collection is saved and is
// never regenerated, so renaming a collection keeps its URL and the
// membership of existing bookmarks stable.
type Collection struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Path        string    `json:"path"`
	Created     time.Time `json:"created"`
}

// Slugify returns the URL-safe path for a collection name.
// "Dev Tools" -> "dev-tools".
func Slugify(name string) string {
	return strings.ToLower(slug.Make(name))
}

// Prepare validates c and fills Path when it is still empty.
func (c Collection) Prepare() (Collection, error) {
	out := c
	out.Name = strings.TrimSpace(out.Name)

	verr := errs.NewValidationError()
	if out.OwnerID == "" {
		verr.Add("owner", "is required")
	}
	if out.Name == "" {
		verr.Add("name", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return c, err
	}

	if out.Path == "" {
		out.Path = Slugify(out.Name)
	}
	if out.Path == "" {
		return c, errs.Invalid("path", "name must contain at least one letter or digit")
	}
	return out, nil
}
