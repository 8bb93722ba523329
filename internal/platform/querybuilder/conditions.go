package querybuilder

import "strings"

// Condition renders one WHERE predicate, binding its values through w.
type Condition interface {
	render(w *sqlWriter)
}

type conditionFunc func(w *sqlWriter)

func (f conditionFunc) render(w *sqlWriter) { f(w) }

// Eq is column = value.
func Eq(column string, value any) Condition {
	return conditionFunc(func(w *sqlWriter) {
		w.raw(column, " = ")
		w.bind(value)
	})
}

// EqFold compares column and value case-insensitively.
func EqFold(column, value string) Condition {
	return conditionFunc(func(w *sqlWriter) {
		w.raw("LOWER(", column, ") = LOWER(")
		w.bind(value)
		w.raw(")")
	})
}

// Contains matches term as a case-insensitive substring of column.
// LIKE wildcards in term match literally.
func Contains(column, term string) Condition {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	return conditionFunc(func(w *sqlWriter) {
		w.raw(column, " ILIKE ")
		w.bind(pattern)
	})
}

// Or joins conditions with OR. An empty Or matches nothing.
func Or(conditions ...Condition) Condition {
	return conditionFunc(func(w *sqlWriter) {
		if len(conditions) == 0 {
			w.raw("1=0")
			return
		}
		w.raw("(")
		for i, c := range conditions {
			if i > 0 {
				w.raw(" OR ")
			}
			c.render(w)
		}
		w.raw(")")
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
