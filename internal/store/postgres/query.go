package postgres

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

const bookmarkColumns = `id::text, owner_id::text, href, title, description, url, collections, created_at, updated_at`

const textSearchVector = `to_tsvector('english', title || ' ' || description)`

// compileSearch renders q as a parameterised SELECT.
//
// Hostname and keyword patterns use the POSIX regex operators (~ and ~*),
// the keyword's words are matched against the full-text index, any one of
// them being enough.
func compileSearch(q domain.Query) (string, []any) {
	args := []any{q.OwnerID}
	where := []string{"owner_id = $1"}

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Collection != "" {
		where = append(where, next(q.Collection)+" = ANY(collections)")
	}
	if q.Hostname != nil {
		where = append(where, "url->>'hostname' "+regexOp(q.Hostname)+" "+next(q.Hostname.Expr))
	}
	if q.Keyword != nil {
		op := regexOp(q.Keyword)
		kw := next(q.Keyword.Expr)
		text := next(anyTerm(q.Text))
		where = append(where, fmt.Sprintf(
			"(title %s %s OR href %s %s OR %s @@ websearch_to_tsquery('english', %s))",
			op, kw, op, kw, textSearchVector, text,
		))
	}

	sql := "SELECT " + bookmarkColumns + " FROM bookmarks WHERE " +
		strings.Join(where, " AND ") +
		" ORDER BY created_at DESC"
	return sql, args
}

// anyTerm rewrites text as a websearch_to_tsquery disjunction. Bare "or"
// words are dropped so they are not read as operators.
func anyTerm(text string) string {
	terms := make([]string, 0, 4)
	for _, t := range domain.TextTerms(text) {
		if t != "or" {
			terms = append(terms, t)
		}
	}
	return strings.Join(terms, " or ")
}

func regexOp(p *domain.Pattern) string {
	if p.CaseInsensitive {
		return "~*"
	}
	return "~"
}
