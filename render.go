package deparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zoobzio/deparse/internal/render"
	"github.com/zoobzio/deparse/internal/types"
)

// identifierPattern matches aliases that can be emitted as quoted identifiers.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][0-9a-zA-Z_]*$`)

// renderContext tracks sub-select nesting depth. It is passed by value, so every call
// owns its own copy and rendering shares no state.
type renderContext struct {
	depth    int
	maxDepth int
}

// descend returns the context for a child node.
func (ctx renderContext) descend() (renderContext, error) {
	if ctx.maxDepth > 0 && ctx.depth >= ctx.maxDepth {
		return ctx, fmt.Errorf("%w (%d)", render.ErrMaxDepth, ctx.maxDepth)
	}
	return renderContext{depth: ctx.depth + 1, maxDepth: ctx.maxDepth}, nil
}

// renderUnion renders stmt followed by each UNION member.
func (ctx renderContext) renderUnion(stmt *types.Select) (string, error) {
	head, err := ctx.renderSelect(stmt)
	if err != nil {
		return "", err
	}
	if len(stmt.Union) == 0 {
		return head, nil
	}

	parts := make([]string, 0, 1+2*len(stmt.Union))
	parts = append(parts, head)
	for i, next := range stmt.Union {
		if next == nil {
			return "", fmt.Errorf("union[%d]: %w", i, render.ErrMissingNode)
		}
		child, err := ctx.descend()
		if err != nil {
			return "", err
		}
		sql, err := child.renderUnion(next)
		if err != nil {
			return "", err
		}
		parts = append(parts, "UNION", sql)
	}

	return strings.Join(parts, " "), nil
}

func (ctx renderContext) renderSelect(stmt *types.Select) (string, error) {
	var sql strings.Builder
	sql.WriteString("SELECT")

	if len(stmt.Options) > 0 {
		sql.WriteString(" ")
		sql.WriteString(strings.Join(stmt.Options, " "))
	}

	// An empty keyword adds nothing to the statement.
	if distinct, ok := stmt.Distinct.Get(); ok && distinct != "" {
		sql.WriteString(" ")
		sql.WriteString(distinct)
	}

	sql.WriteString(" ")
	if len(stmt.Columns) == 0 {
		sql.WriteString("*")
	} else {
		cols, err := ctx.renderColumns(stmt.Columns)
		if err != nil {
			return "", err
		}
		sql.WriteString(cols)
	}

	// FROM + joins
	if len(stmt.From) > 0 {
		tables, err := ctx.renderTables(stmt.From)
		if err != nil {
			return "", err
		}
		sql.WriteString(" FROM ")
		sql.WriteString(tables)
	}

	if stmt.Where != nil {
		where, err := ctx.exprString(stmt.Where)
		if err != nil {
			return "", fmt.Errorf("where: %w", err)
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(where)
	}

	if len(stmt.GroupBy) > 0 {
		groups, err := ctx.exprListToSQL(stmt.GroupBy)
		if err != nil {
			return "", fmt.Errorf("group by: %w", err)
		}
		sql.WriteString(" GROUP BY ")
		sql.WriteString(strings.Join(groups, ", "))
	}

	if stmt.Having != nil {
		having, err := ctx.exprString(stmt.Having)
		if err != nil {
			return "", fmt.Errorf("having: %w", err)
		}
		sql.WriteString(" HAVING ")
		sql.WriteString(having)
	}

	if len(stmt.OrderBy) > 0 {
		orderParts := make([]string, 0, len(stmt.OrderBy))
		for i, order := range stmt.OrderBy {
			expr, err := ctx.exprString(order.Expr)
			if err != nil {
				return "", fmt.Errorf("order by[%d]: %w", i, err)
			}
			if order.Direction != "" {
				expr += " " + string(order.Direction)
			}
			orderParts = append(orderParts, expr)
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(orderParts, ", "))
	}

	// LIMIT offset,count keeps the comma form it was parsed from.
	if len(stmt.Limit) > 0 {
		limits, err := ctx.exprListToSQL(stmt.Limit)
		if err != nil {
			return "", fmt.Errorf("limit: %w", err)
		}
		sql.WriteString(" LIMIT ")
		sql.WriteString(strings.Join(limits, ","))
	}

	return sql.String(), nil
}

// renderColumns renders the SELECT list.
func (ctx renderContext) renderColumns(columns []types.Column) (string, error) {
	selections := make([]string, 0, len(columns))
	for i, column := range columns {
		str, err := ctx.exprString(column.Expr)
		if err != nil {
			return "", fmt.Errorf("columns[%d]: %w", i, err)
		}

		if alias, ok := column.As.Get(); ok {
			str += " AS "
			if identifierPattern.MatchString(alias) {
				str += quoteIdentifier(alias)
			} else {
				str += "'" + Escape(alias) + "'"
			}
		}

		selections = append(selections, str)
	}
	return strings.Join(selections, ", "), nil
}

// renderTables renders the FROM list. Every entry after the first carries
// its own leading separator: the join keyword, or a comma for an implicit
// cross join.
func (ctx renderContext) renderTables(tables []types.TableRef) (string, error) {
	var sql strings.Builder
	for i, table := range tables {
		if i > 0 {
			// No join keyword means an implicit cross join.
			if join, ok := table.Join.Get(); ok && join != "" {
				sql.WriteString(" ")
				sql.WriteString(join)
				sql.WriteString(" ")
			} else {
				sql.WriteString(", ")
			}
		}

		ref, err := ctx.renderTableRef(table)
		if err != nil {
			return "", fmt.Errorf("from[%d]: %w", i, err)
		}
		sql.WriteString(ref)

		if i > 0 && table.On != nil {
			on, err := ctx.exprString(table.On)
			if err != nil {
				return "", fmt.Errorf("from[%d].on: %w", i, err)
			}
			sql.WriteString(" ON ")
			sql.WriteString(on)
		}
	}
	return sql.String(), nil
}

func (ctx renderContext) renderTableRef(table types.TableRef) (string, error) {
	var str string
	if !table.IsDerived() {
		str = quoteIdentifier(table.Table.Value())
		if db, ok := table.DB.Get(); ok && db != "" {
			str = db + "." + str
		}
	} else {
		if table.Expr == nil {
			return "", render.ErrMissingNode
		}
		derived, err := ctx.exprString(table.Expr)
		if err != nil {
			return "", err
		}
		// A derived table is always parenthesized in SQL.
		if sub, ok := table.Expr.(*types.Select); ok && !sub.Parentheses {
			derived = "(" + derived + ")"
		}
		str = derived
	}

	if alias, ok := table.As.Get(); ok {
		str += " AS " + quoteIdentifier(alias)
	}
	return str, nil
}

// quoteIdentifier wraps name in double quotes, doubling embedded quotes.
func quoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `"` + escaped + `"`
}

// parenthesize wraps str in parentheses when wrap is set.
func parenthesize(str string, wrap bool) string {
	if !wrap {
		return str
	}
	return "(" + str + ")"
}
