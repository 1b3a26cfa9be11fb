package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// Where accumulates AND-ed SQL conditions with positional ($n) arguments
type Where struct {
	conditions []string
	args       []interface{}
}

// Arg registers a query argument and returns its placeholder
func (w *Where) Arg(v interface{}) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *Where) And(condition string) {
	w.conditions = append(w.conditions, condition)
}

// Clause renders "WHERE ..." or an empty string when there are no conditions
func (w *Where) Clause() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + JoinWithAnd(w.conditions)
}

// Args returns a copy of the registered arguments, never nil
func (w *Where) Args() []interface{} {
	return append([]interface{}{}, w.args...)
}
