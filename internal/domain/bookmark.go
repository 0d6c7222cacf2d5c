package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/marks/internal/errs"
)

// Bookmark is a stored URL with its metadata, owned by a single user.
type Bookmark struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is assigned on creation and never changes.
	ID string `json:"id"`

	// OwnerID is the user who created the bookmark.
	// Every read and write is scoped to it.
	OwnerID string `json:"owner_id"`

	// ─────────────────────────────
	// User supplied
	// ─────────────────────────────

	// Href is the raw URL as entered. Duplicates are allowed.
	Href string `json:"href"`

	// Title is a short human label. Defaults to Href on creation.
	Title string `json:"title"`

	// Description is optional free text.
	Description string `json:"description"`

	// Collections holds the paths of the owner's collections this bookmark
	// belongs to. Order carries no meaning.
	Collections []string `json:"collections"`

	// ─────────────────────────────
	// Derived
	// ─────────────────────────────

	// URL is the structured decomposition of Href.
	// It is replaced as a whole whenever Href changes.
	URL URL `json:"url"`

	// Created is set once on creation.
	Created time.Time `json:"created"`

	// Updated changes on every successful save.
	Updated time.Time `json:"updated"`
}

// Prepare validates b and refreshes its derived fields before it is
// persisted. It returns a new value and leaves b untouched, so a failed
// Prepare never produces a half-normalized record.
//
// Normalization only runs when Href differs from the stored URL.Href.
func (b Bookmark) Prepare() (Bookmark, error) {
	out := b
	out.Href = strings.TrimSpace(out.Href)
	out.Title = strings.TrimSpace(out.Title)
	out.Collections = CleanPaths(out.Collections)

	verr := errs.NewValidationError()
	if out.OwnerID == "" {
		verr.Add("owner", "is required")
	}
	if out.Href == "" {
		verr.Add("href", "is required")
	}
	if out.Title == "" {
		verr.Add("title", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return b, err
	}

	if out.Href != out.URL.Href {
		u, err := Normalize(out.Href)
		if err != nil {
			return b, err
		}
		out.URL = u
	}
	return out, nil
}

// NewBookmark builds an unsaved bookmark for owner, applying the
// title-defaults-to-href rule.
func NewBookmark(ownerID, href, title, description string, collections []string) Bookmark {
	href = strings.TrimSpace(href)
	if strings.TrimSpace(title) == "" {
		title = href
	}
	return Bookmark{
		OwnerID:     ownerID,
		Href:        href,
		Title:       title,
		Description: description,
		Collections: collections,
	}
}

// InCollection reports whether the bookmark is tagged with path.
func (b *Bookmark) InCollection(path string) bool {
	for _, p := range b.Collections {
		if p == path {
			return true
		}
	}
	return false
}

// RemoveCollection drops path from the bookmark's collections and reports
// whether anything changed.
func (b *Bookmark) RemoveCollection(path string) bool {
	kept := b.Collections[:0:0]
	for _, p := range b.Collections {
		if p != path {
			kept = append(kept, p)
		}
	}
	changed := len(kept) != len(b.Collections)
	b.Collections = kept
	return changed
}

func (b *Bookmark) String() string {
	return fmt.Sprintf("bookmark %s (%s)", b.ID, b.Href)
}

// CleanPaths trims, drops empty entries and removes duplicates while
// keeping the first occurrence order.
func CleanPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
