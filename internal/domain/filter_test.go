package domain

import (
	"testing"
	"time"
)

func mustBookmark(t *testing.T, owner, href, title, description string, created time.Time, collections ...string) *Bookmark {
	t.Helper()
	b, err := NewBookmark(owner, href, title, description, collections).Prepare()
	if err != nil {
		t.Fatalf("Prepare(%q) error = %v", href, err)
	}
	b.ID = href
	b.Created = created
	return &b
}

func matching(q Query, bookmarks []*Bookmark) []string {
	var out []string
	for _, b := range bookmarks {
		if q.Match(b) {
			out = append(out, b.Href)
		}
	}
	return out
}

func TestBuildQueryHostname(t *testing.T) {
	now := time.Now()
	bookmarks := []*Bookmark{
		mustBookmark(t, "u1", "https://example.com/", "a", "", now),
		mustBookmark(t, "u1", "https://sub.example.com/", "b", "", now),
		mustBookmark(t, "u1", "https://other.com/", "c", "", now),
	}

	tests := []struct {
		name     string
		hostname string
		literal  bool
		want     []string
	}{
		{
			name:     "escaped dot regex is unanchored",
			hostname: `example\.com`,
			want:     []string{"https://example.com/", "https://sub.example.com/"},
		},
		{
			name:     "anchored regex",
			hostname: `^example\.com$`,
			want:     []string{"https://example.com/"},
		},
		{
			name:     "invalid regex falls back to literal",
			hostname: "(",
			literal:  true,
			want:     nil,
		},
		{
			name:     "trailing paren is matched literally",
			hostname: "example.com(",
			literal:  true,
			want:     nil,
		},
		{
			name:     "hostname match is case sensitive",
			hostname: "EXAMPLE",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildQuery("u1", SearchParams{Hostname: tt.hostname})
			if q.Hostname == nil {
				t.Fatal("Hostname pattern should be set")
			}
			if q.Hostname.Literal != tt.literal {
				t.Errorf("Literal = %v, want %v", q.Hostname.Literal, tt.literal)
			}
			got := matching(q, bookmarks)
			if !slicesEqual(got, tt.want) {
				t.Errorf("matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildQueryKeyword(t *testing.T) {
	now := time.Now()
	bookmarks := []*Bookmark{
		mustBookmark(t, "u1", "https://book.example.org/", "Git Book", "", now),
		mustBookmark(t, "u1", "http://git-scm.com", "Homepage", "", now),
		mustBookmark(t, "u1", "https://go.dev/", "The Go site", "Language docs", now),
	}

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{
			name:    "case insensitive title or href",
			keyword: "git",
			want:    []string{"https://book.example.org/", "http://git-scm.com"},
		},
		{
			name:    "upper case keyword",
			keyword: "GIT",
			want:    []string{"https://book.example.org/", "http://git-scm.com"},
		},
		{
			name:    "full text over description",
			keyword: "docs",
			want:    []string{"https://go.dev/"},
		},
		{
			name:    "regex alternation",
			keyword: "book|go site",
			want:    []string{"https://book.example.org/", "https://go.dev/"},
		},
		{
			name:    "invalid regex degrades to literal plus full text",
			keyword: "git[",
			want:    []string{"https://book.example.org/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildQuery("u1", SearchParams{Keyword: tt.keyword})
			got := matching(q, bookmarks)
			if !slicesEqual(got, tt.want) {
				t.Errorf("matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildQueryCombined(t *testing.T) {
	now := time.Now()
	bookmarks := []*Bookmark{
		mustBookmark(t, "u1", "https://github.com/golang/go", "Go repo", "", now),
		mustBookmark(t, "u1", "https://gitlab.com/gitlab-org", "GitLab", "", now),
		mustBookmark(t, "u1", "https://github.com/torvalds/linux", "Linux", "", now),
	}

	q := BuildQuery("u1", SearchParams{Keyword: "go", Hostname: "github"})
	got := matching(q, bookmarks)
	want := []string{"https://github.com/golang/go"}
	if !slicesEqual(got, want) {
		t.Errorf("matches = %v, want %v", got, want)
	}
}

func TestBuildQueryEmptyMatchesAllOwned(t *testing.T) {
	now := time.Now()
	bookmarks := []*Bookmark{
		mustBookmark(t, "u1", "https://a.example/", "a", "", now),
		mustBookmark(t, "u2", "https://b.example/", "b", "", now),
	}

	q := BuildQuery("u1", SearchParams{Keyword: "   ", Hostname: ""})
	if !q.All() {
		t.Error("All() = false for blank inputs")
	}
	got := matching(q, bookmarks)
	if !slicesEqual(got, []string{"https://a.example/"}) {
		t.Errorf("matches = %v, want only the owner's bookmark", got)
	}

	other := BuildQuery("u3", SearchParams{})
	if got := matching(other, bookmarks); len(got) != 0 {
		t.Errorf("user without bookmarks matched %v", got)
	}
}

func TestBuildQueryCollection(t *testing.T) {
	now := time.Now()
	bookmarks := []*Bookmark{
		mustBookmark(t, "u1", "https://a.example/", "a", "", now, "dev-tools"),
		mustBookmark(t, "u1", "https://b.example/", "b", "", now, "reading", "dev-tools"),
		mustBookmark(t, "u1", "https://c.example/", "c", "", now),
	}

	q := BuildQuery("u1", SearchParams{Collection: "dev-tools"})
	got := matching(q, bookmarks)
	want := []string{"https://a.example/", "https://b.example/"}
	if !slicesEqual(got, want) {
		t.Errorf("matches = %v, want %v", got, want)
	}
}

func TestQueryLiteral(t *testing.T) {
	q := BuildQuery("u1", SearchParams{Keyword: "a.c", Hostname: `x\.y`})
	lit := q.Literal()

	if !lit.Keyword.Literal || !lit.Hostname.Literal {
		t.Fatal("Literal() should degrade every pattern")
	}
	if q.Keyword.Literal {
		t.Error("Literal() must not modify the receiver")
	}
	if !lit.Keyword.Match("A.C") {
		t.Error("literal keyword should stay case insensitive")
	}
	if lit.Keyword.Match("abc") {
		t.Error("literal keyword should not treat . as a wildcard")
	}
}

func TestTextMatch(t *testing.T) {
	tests := []struct {
		text string
		doc  string
		want bool
	}{
		{"docs", "Language docs", true},
		{"language DOCS", "Language docs", true},
		{"doc", "Language docs", false},
		{"go rust", "Go only", true},
		{"git tutorial", "Git Book", true},
		{"rust zig", "Go only", false},
		{"", "anything", false},
		{"!!", "anything", false},
	}

	for _, tt := range tests {
		if got := TextMatch(tt.text, tt.doc); got != tt.want {
			t.Errorf("TextMatch(%q, %q) = %v, want %v", tt.text, tt.doc, got, tt.want)
		}
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bookmarks := []*Bookmark{
		{ID: "old", Created: base},
		{ID: "new", Created: base.Add(2 * time.Hour)},
		{ID: "tie-a", Created: base.Add(time.Hour)},
		{ID: "tie-b", Created: base.Add(time.Hour)},
	}

	SortNewestFirst(bookmarks)

	got := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		got = append(got, b.ID)
	}
	want := []string{"new", "tie-a", "tie-b", "old"}
	if !slicesEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestQueryMatch_AnyWordOfKeyword(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	book := mustBookmark(t, "u1", "https://git-scm.com/book", "Git Book", "", now)

	if !BuildQuery("u1", SearchParams{Keyword: "git tutorial"}).Match(book) {
		t.Error(`keyword "git tutorial" should match "Git Book" through its first word`)
	}
	if BuildQuery("u1", SearchParams{Keyword: "rust tutorial"}).Match(book) {
		t.Error(`keyword "rust tutorial" should not match "Git Book"`)
	}
}
