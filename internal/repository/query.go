package repository

import (
	"fmt"
	"strings"
)

// Paging defaults shared by every list endpoint.
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Page bounds a list query.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps the page into the accepted window.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	return p
}

// whereBuilder accumulates positional predicates the way list filters need them.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(format string, value any) {
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

// contains adds a case-insensitive substring match on column.
func (w *whereBuilder) contains(column, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	w.add(column+" ILIKE $%d", "%"+escapeLike(term)+"%")
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// paginate appends LIMIT/OFFSET for page and returns the final query and args.
func (w *whereBuilder) paginate(base, orderBy string, page Page) (string, []any) {
	page = page.Normalize()
	args := append(w.args, page.Limit, page.Skip)
	query := fmt.Sprintf("%s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		base, w.sql(), orderBy, len(args)-1, len(args))
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
