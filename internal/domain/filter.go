package domain

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// SearchParams are the raw, user supplied search inputs.
type SearchParams struct {
	Keyword    string // q
	Hostname   string // hostname
	Collection string // collection path, empty for all
}

// Pattern is a compiled match predicate over a single string field.
// Literal patterns come from input that failed to compile as a regex and
// match it as a plain substring instead.
type Pattern struct {
	Raw             string
	Expr            string
	Literal         bool
	CaseInsensitive bool

	re *regexp.Regexp
}

// NewPattern compiles raw as a regular expression. When raw is not a
// valid expression the pattern degrades to a literal substring match.
func NewPattern(raw string, caseInsensitive bool) *Pattern {
	p := &Pattern{Raw: raw, Expr: raw, CaseInsensitive: caseInsensitive}
	re, err := regexp.Compile(withFlags(raw, caseInsensitive))
	if err != nil {
		return LiteralPattern(raw, caseInsensitive)
	}
	p.re = re
	return p
}

// LiteralPattern matches raw as a plain substring.
func LiteralPattern(raw string, caseInsensitive bool) *Pattern {
	expr := regexp.QuoteMeta(raw)
	return &Pattern{
		Raw:             raw,
		Expr:            expr,
		Literal:         true,
		CaseInsensitive: caseInsensitive,
		re:              regexp.MustCompile(withFlags(expr, caseInsensitive)),
	}
}

func withFlags(expr string, caseInsensitive bool) string {
	if caseInsensitive {
		return "(?i)" + expr
	}
	return expr
}

// Match reports whether s contains a match. Unanchored.
func (p *Pattern) Match(s string) bool {
	if p == nil {
		return true
	}
	re := p.re
	if re == nil {
		re = regexp.MustCompile(withFlags(regexp.QuoteMeta(p.Raw), p.CaseInsensitive))
	}
	return re.MatchString(s)
}

// Query is the compiled, owner-scoped filter produced by BuildQuery.
// Store backends execute it; building it never touches storage.
//
//	owner == OwnerID
//	AND (Hostname matches url.hostname)
//	AND (Keyword matches title OR Keyword matches href OR Text full-text matches)
//	AND (Collection in collections)
//
// Results are ordered by Created, newest first.
type Query struct {
	OwnerID    string
	Hostname   *Pattern
	Keyword    *Pattern
	Text       string
	Collection string
}

// BuildQuery turns raw search input into a Query for ownerID.
// Blank inputs are ignored; invalid patterns never fail the build.
func BuildQuery(ownerID string, params SearchParams) Query {
	q := Query{
		OwnerID:    ownerID,
		Collection: strings.TrimSpace(params.Collection),
	}
	if hn := strings.TrimSpace(params.Hostname); hn != "" {
		q.Hostname = NewPattern(hn, false)
	}
	if kw := strings.TrimSpace(params.Keyword); kw != "" {
		q.Keyword = NewPattern(kw, true)
		q.Text = kw
	}
	return q
}

// All reports whether the query only carries the owner scope.
func (q Query) All() bool {
	return q.Hostname == nil && q.Keyword == nil && q.Collection == ""
}

// Literal returns a copy where every pattern is matched as plain text.
// Backends whose regex dialect rejects an expression fall back to it.
func (q Query) Literal() Query {
	out := q
	if q.Hostname != nil && !q.Hostname.Literal {
		out.Hostname = LiteralPattern(q.Hostname.Raw, q.Hostname.CaseInsensitive)
	}
	if q.Keyword != nil && !q.Keyword.Literal {
		out.Keyword = LiteralPattern(q.Keyword.Raw, q.Keyword.CaseInsensitive)
	}
	return out
}

// Match evaluates the query against a single bookmark in memory.
func (q Query) Match(b *Bookmark) bool {
	if b == nil || b.OwnerID != q.OwnerID {
		return false
	}
	if q.Collection != "" && !b.InCollection(q.Collection) {
		return false
	}
	if q.Hostname != nil && !q.Hostname.Match(b.URL.Hostname) {
		return false
	}
	if q.Keyword != nil {
		return q.Keyword.Match(b.Title) ||
			q.Keyword.Match(b.Href) ||
			TextMatch(q.Text, b.Title+" "+b.Description)
	}
	return true
}

// TextMatch is the in-memory stand-in for a full-text index: doc matches
// when any word of the search text appears in it as a whole word,
// ignoring case.
func TextMatch(text, doc string) bool {
	terms := TextTerms(text)
	if len(terms) == 0 {
		return false
	}
	have := make(map[string]struct{})
	for _, w := range TextTerms(doc) {
		have[w] = struct{}{}
	}
	for _, t := range terms {
		if _, ok := have[t]; ok {
			return true
		}
	}
	return false
}

// TextTerms splits s into lowercased words of letters and digits.
func TextTerms(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SortNewestFirst orders bookmarks by Created descending. Bookmarks with
// equal timestamps keep their relative input order.
func SortNewestFirst(bookmarks []*Bookmark) {
	sort.SliceStable(bookmarks, func(i, j int) bool {
		return bookmarks[i].Created.After(bookmarks[j].Created)
	})
}
