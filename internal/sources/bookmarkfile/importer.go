package bookmarkfile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/marks/internal/errs"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/service"
)

// Result summarises an import run.
type Result struct {
	Collections int
	Created     int
	Failed      []EntryError
}

// EntryError ties a rejected entry to its position in the file. Entries
// of the collections list carry their Collection name instead of an Href.
type EntryError struct {
	Index      int
	Href       string
	Collection string
	Err        error
}

func (e EntryError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("collection #%d (%s): %v", e.Index+1, e.Collection, e.Err)
	}
	return fmt.Sprintf("bookmark #%d (%s): %v", e.Index+1, e.Href, e.Err)
}

func (e EntryError) Unwrap() error { return e.Err }

// Importer writes a decoded File through the regular services, so every
// entry is normalized and validated like an interactive save.
type Importer struct {
	bookmarks   *service.BookmarkService
	collections *service.CollectionService
	log         logger.Logger
}

// NewImporter creates an importer.
func NewImporter(bookmarks *service.BookmarkService, collections *service.CollectionService, log logger.Logger) *Importer {
	return &Importer{bookmarks: bookmarks, collections: collections, log: log}
}

// Import stores f for ownerID. Invalid entries are reported in the result
// and skipped; store failures abort the run.
func (im *Importer) Import(ctx context.Context, ownerID string, f File) (Result, error) {
	var res Result
	paths := map[string]string{} // name -> path

	ensure := func(name, description string) (string, error) {
		name = strings.TrimSpace(name)
		if p, ok := paths[name]; ok {
			return p, nil
		}
		c, err := im.collections.Ensure(ctx, ownerID, name)
		if err != nil {
			return "", err
		}
		if description != "" && c.Description == "" {
			if c, err = im.collections.Update(ctx, ownerID, c.Path, service.CollectionInput{
				Name:        c.Name,
				Description: description,
			}); err != nil {
				return "", err
			}
		}
		paths[name] = c.Path
		res.Collections++
		return c.Path, nil
	}

	for i, ce := range f.Collections {
		if strings.TrimSpace(ce.Name) == "" {
			continue
		}
		if _, err := ensure(ce.Name, ce.Description); err != nil {
			entryErr := EntryError{Index: i, Collection: ce.Name, Err: err}
			if !rejected(err) {
				return res, entryErr
			}
			res.Failed = append(res.Failed, entryErr)
			im.log.Warn("import collection rejected",
				logger.Int("index", i),
				logger.String("name", ce.Name),
				logger.Error(err))
		}
	}

	for i, e := range f.Bookmarks {
		var cols []string
		var entryErr error
		for _, name := range e.Collections {
			if strings.TrimSpace(name) == "" {
				continue
			}
			p, err := ensure(name, "")
			if err != nil {
				entryErr = err
				break
			}
			cols = append(cols, p)
		}
		if entryErr == nil {
			_, entryErr = im.bookmarks.Create(ctx, ownerID, service.BookmarkInput{
				Href:        e.Href,
				Title:       e.Title,
				Description: e.Description,
				Collections: cols,
			})
		}
		if entryErr != nil {
			if !rejected(entryErr) {
				return res, EntryError{Index: i, Href: e.Href, Err: entryErr}
			}
			res.Failed = append(res.Failed, EntryError{Index: i, Href: e.Href, Err: entryErr})
			im.log.Warn("import entry rejected",
				logger.Int("index", i),
				logger.String("href", e.Href),
				logger.Error(entryErr))
			continue
		}
		res.Created++
	}

	im.log.Info("import finished",
		logger.String("owner", ownerID),
		logger.Int("created", res.Created),
		logger.Int("failed", len(res.Failed)),
		logger.Int("collections", res.Collections))
	return res, nil
}

// rejected reports whether err is the entry's fault rather than the store's.
func rejected(err error) bool {
	return errors.Is(err, errs.ErrMalformedURL) || errs.IsValidation(err)
}
