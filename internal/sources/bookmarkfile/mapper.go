package bookmarkfile

import (
	"sort"
	"strings"
)

// MapHomepageBookmarks converts bookmarks.yaml: each category becomes a
// collection and each bookmark name its title.
func MapHomepageBookmarks(cfg HomepageBookmarks) File {
	var out File
	seen := map[string]bool{}

	for _, category := range cfg {
		for _, categoryName := range sortedKeys(category) {
			addCollection(&out, seen, categoryName)
			for _, bookmarkMap := range category[categoryName] {
				for _, name := range sortedKeys(bookmarkMap) {
					// Each bookmark has a list with a single entry
					entries := bookmarkMap[name]
					if len(entries) == 0 || strings.TrimSpace(entries[0].Href) == "" {
						continue
					}
					out.Bookmarks = append(out.Bookmarks, Entry{
						Href:        entries[0].Href,
						Title:       name,
						Collections: []string{categoryName},
					})
				}
			}
		}
	}
	return out
}

// MapHomepageServices converts services.yaml: each group becomes a
// collection, each service a bookmark carrying its description.
func MapHomepageServices(cfg HomepageServices) File {
	var out File
	seen := map[string]bool{}

	for _, group := range cfg {
		for _, groupName := range sortedKeys(group) {
			addCollection(&out, seen, groupName)
			for _, serviceMap := range group[groupName] {
				for _, name := range sortedKeys(serviceMap) {
					props := serviceMap[name]
					if strings.TrimSpace(props.Href) == "" {
						continue
					}
					out.Bookmarks = append(out.Bookmarks, Entry{
						Href:        props.Href,
						Title:       name,
						Description: props.Description,
						Collections: []string{groupName},
					})
				}
			}
		}
	}
	return out
}

func addCollection(f *File, seen map[string]bool, name string) {
	if name == "" || seen[name] {
		return
	}
	seen[name] = true
	f.Collections = append(f.Collections, CollectionEntry{Name: name})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
