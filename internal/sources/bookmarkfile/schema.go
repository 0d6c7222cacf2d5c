// Package bookmarkfile imports bookmarks from data files: the native
// marks format (JSON, YAML or TOML) and Homepage's bookmarks.yaml and
// services.yaml.
package bookmarkfile

// File is the native import document.
//
//	collections:
//	  - name: Dev Tools
//	    description: things I use
//	bookmarks:
//	  - href: https://go.dev/
//	    title: Go
//	    collections: [Dev Tools]
type File struct {
	Collections []CollectionEntry `json:"collections" yaml:"collections" toml:"collections"`
	Bookmarks   []Entry           `json:"bookmarks" yaml:"bookmarks" toml:"bookmarks"`
}

// CollectionEntry declares a collection, optionally with a description.
type CollectionEntry struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// Entry is one bookmark. Collections are collection names; missing ones
// are created.
type Entry struct {
	Href        string   `json:"href" yaml:"href" toml:"href"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Collections []string `json:"collections" yaml:"collections" toml:"collections"`
}

// HomepageBookmarkEntry is a single bookmark entry in Homepage's bookmarks.yaml
type HomepageBookmarkEntry struct {
	Icon string `yaml:"icon"`
	Abbr string `yaml:"abbr"`
	Href string `yaml:"href"`
}

// HomepageBookmarks is the root of bookmarks.yaml:
// - CategoryName: [ - BookmarkName: [{ icon, abbr, href }] ]
type HomepageBookmarks []map[string][]map[string][]HomepageBookmarkEntry

// HomepageServiceProps holds the service fields marks cares about
type HomepageServiceProps struct {
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}

// HomepageServices is the root of services.yaml:
// - GroupName: [ - ServiceName: { href, description, ... } ]
type HomepageServices []map[string][]map[string]HomepageServiceProps
