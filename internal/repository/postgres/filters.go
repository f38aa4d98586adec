package postgres

import (
	"fmt"
	"strings"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

// whereBuilder collects AND-ed conditions with positional placeholders.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func (w *whereBuilder) add(format string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) dateRange(column string, from, to domain.Date) {
	if !from.IsZero() {
		w.add(column+" >= $%d", from)
	}
	if !to.IsZero() {
		w.add(column+" <= $%d", to)
	}
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func buildMovementFilterClause(filter repository.MovementFilter) (string, []interface{}) {
	var w whereBuilder
	if filter.Chemical != "" {
		w.add("chemical_name = $%d", filter.Chemical)
	}
	if filter.Type != "" {
		w.add("movement_type = $%d", string(filter.Type))
	}
	w.dateRange("movement_date", filter.From, filter.To)
	return w.String(), w.args
}

func buildWorkOrderFilterClause(filter domain.WorkOrderFilter) (string, []interface{}) {
	var w whereBuilder
	if filter.Status != "" {
		w.add("w.status = $%d", filter.Status)
	}
	w.dateRange("w.due_date", filter.From, filter.To)
	return w.String(), w.args
}

func buildTodoFilterClause(filter domain.TodoFilter) (string, []interface{}) {
	var w whereBuilder
	if filter.Operator != "" {
		w.add("t.operator = $%d", filter.Operator)
	}
	if filter.Status != "" {
		w.add("d.status = $%d", filter.Status)
	}
	w.dateRange("d.due_date", filter.From, filter.To)
	return w.String(), w.args
}
