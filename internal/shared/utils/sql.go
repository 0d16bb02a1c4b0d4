package utils

import (
	"fmt"
	"strings"
)

// EscapeLike neutralizes LIKE wildcards in user input.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of strings with OR operator
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

// WhereBuilder collects filter clauses and numbers their placeholders.
// Each "?" in a clause becomes the next $n.
type WhereBuilder struct {
	clauses []string
	args    []any
}

// Add appends clause, binding one argument per "?".
func (w *WhereBuilder) Add(clause string, args ...any) *WhereBuilder {
	if strings.Count(clause, "?") != len(args) {
		panic(fmt.Sprintf("where clause %q expects %d args, got %d", clause, strings.Count(clause, "?"), len(args)))
	}

	var b strings.Builder
	i := 0
	for _, r := range clause {
		if r == '?' {
			w.args = append(w.args, args[i])
			fmt.Fprintf(&b, "$%d", len(w.args))
			i++
			continue
		}
		b.WriteRune(r)
	}
	w.clauses = append(w.clauses, b.String())
	return w
}

// AnyOf appends (c1 OR c2 ...) as a single clause.
func (w *WhereBuilder) AnyOf(clause []string, args ...[]any) *WhereBuilder {
	sub := &WhereBuilder{args: w.args}
	for i, c := range clause {
		sub.Add(c, args[i]...)
	}
	w.args = sub.args
	w.clauses = append(w.clauses, "("+JoinWithOr(sub.clauses)+")")
	return w
}

// SQL renders "WHERE ..." or "" when no clause was added.
func (w *WhereBuilder) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + JoinWithAnd(w.clauses)
}

// Args returns the bound arguments in placeholder order.
func (w *WhereBuilder) Args() []any {
	return w.args
}

// Placeholder returns the $n that the next appended argument will take.
func (w *WhereBuilder) Placeholder(offset int) string {
	return fmt.Sprintf("$%d", len(w.args)+offset)
}
