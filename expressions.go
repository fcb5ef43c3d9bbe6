package deparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/deparse/internal/render"
	"github.com/zoobzio/deparse/internal/types"
)

// rendered is the result of rendering an expression: either a single SQL
// fragment or, for an expression list, the rendered elements. Operators
// branch on list to rewrite themselves (= becomes IN, BETWEEN joins its
// bounds with AND).
type rendered struct {
	items []string
	list  bool
}

func scalar(sql string) rendered {
	return rendered{items: []string{sql}}
}

// String renders the result in scalar position. A list renders as a
// parenthesized comma list.
func (r rendered) String() string {
	if r.list {
		return "(" + strings.Join(r.items, ", ") + ")"
	}
	if len(r.items) == 0 {
		return ""
	}
	return r.items[0]
}

// exprToSQL is the single recursive entry point for expressions.
func (ctx renderContext) exprToSQL(expr types.Expr) (rendered, error) {
	if types.IsNil(expr) {
		return rendered{}, render.ErrMissingNode
	}

	switch e := expr.(type) {
	case *types.Literal:
		return scalar(literalToSQL(e)), nil
	case *types.ColumnRef:
		return scalar(columnRefToSQL(e)), nil
	case *types.BinaryExpr:
		return ctx.binaryToSQL(e)
	case *types.UnaryExpr:
		return ctx.unaryToSQL(e)
	case *types.ExprList:
		items, err := ctx.exprListToSQL(e.Value)
		if err != nil {
			return rendered{}, err
		}
		return rendered{items: items, list: true}, nil
	case *types.Function:
		return ctx.funcToSQL(e)
	case *types.Aggregate:
		return ctx.aggrToSQL(e)
	case *types.Case:
		return ctx.caseToSQL(e)
	case *types.Cast:
		return ctx.castToSQL(e)
	case *types.Select:
		// Only sub-selects count toward the depth limit.
		child, err := ctx.descend()
		if err != nil {
			return rendered{}, err
		}
		sql, err := child.renderUnion(e)
		if err != nil {
			return rendered{}, err
		}
		return scalar(parenthesize(sql, e.Parentheses)), nil
	default:
		return rendered{}, render.NewUnknownNodeError(string(expr.Type()), "")
	}
}

// exprString renders expr in scalar position.
func (ctx renderContext) exprString(expr types.Expr) (string, error) {
	r, err := ctx.exprToSQL(expr)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

// exprListToSQL renders each element of an expression list.
func (ctx renderContext) exprListToSQL(exprs []types.Expr) ([]string, error) {
	items := make([]string, 0, len(exprs))
	for i, expr := range exprs {
		str, err := ctx.exprString(expr)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		items = append(items, str)
	}
	return items, nil
}

func (ctx renderContext) aggrToSQL(expr *types.Aggregate) (rendered, error) {
	str, err := ctx.exprString(expr.Args.Expr)
	if err != nil {
		return rendered{}, fmt.Errorf("%s: %w", expr.Name, err)
	}

	if expr.Args.Distinct.Valid() {
		str = "DISTINCT " + str
	}

	return scalar(expr.Name + "(" + str + ")"), nil
}

func (ctx renderContext) binaryToSQL(expr *types.BinaryExpr) (rendered, error) {
	left, err := ctx.exprString(expr.Left)
	if err != nil {
		return rendered{}, err
	}
	right, err := ctx.exprToSQL(expr.Right)
	if err != nil {
		return rendered{}, err
	}

	operator := expr.Operator
	rstr := right.String()
	if right.list {
		switch operator {
		case types.EQ:
			operator = types.IN
		case types.NE:
			operator = types.NotIn
		}

		if operator == types.BETWEEN || operator == types.NotBetween {
			if len(right.items) != 2 {
				return rendered{}, fmt.Errorf("%s requires 2 bounds, got %d", operator, len(right.items))
			}
			rstr = right.items[0] + " AND " + right.items[1]
		}
	}

	str := left + " " + string(operator) + " " + rstr
	return scalar(parenthesize(str, expr.Parentheses)), nil
}

func (ctx renderContext) unaryToSQL(expr *types.UnaryExpr) (rendered, error) {
	str, err := ctx.exprString(expr.Expr)
	if err != nil {
		return rendered{}, err
	}
	return scalar(parenthesize(string(expr.Operator)+" "+str, expr.Parentheses)), nil
}

func (ctx renderContext) caseToSQL(expr *types.Case) (rendered, error) {
	res := []string{"CASE"}

	if expr.Expr != nil {
		str, err := ctx.exprString(expr.Expr)
		if err != nil {
			return rendered{}, err
		}
		res = append(res, str)
	}

	for i, arm := range expr.Args {
		res = append(res, strings.ToUpper(string(arm.Type)))
		if arm.Cond != nil {
			cond, err := ctx.exprString(arm.Cond)
			if err != nil {
				return rendered{}, fmt.Errorf("case arm %d: %w", i, err)
			}
			res = append(res, cond, "THEN")
		}
		result, err := ctx.exprString(arm.Result)
		if err != nil {
			return rendered{}, fmt.Errorf("case arm %d: %w", i, err)
		}
		res = append(res, result)
	}

	res = append(res, "END")
	return scalar(strings.Join(res, " ")), nil
}

func (ctx renderContext) castToSQL(expr *types.Cast) (rendered, error) {
	str, err := ctx.exprString(expr.Expr)
	if err != nil {
		return rendered{}, err
	}

	target := expr.Target.DataType
	if expr.Target.Length > 0 {
		target += "(" + strconv.Itoa(expr.Target.Length) + ")"
	}

	return scalar("CAST(" + str + " AS " + target + ")"), nil
}

func columnRefToSQL(expr *types.ColumnRef) string {
	str := types.Wildcard
	if !expr.IsWildcard() {
		str = quoteIdentifier(expr.Column)
	}
	if table, ok := expr.Table.Get(); ok {
		str = quoteIdentifier(table) + "." + str
	}
	return parenthesize(str, expr.Parentheses)
}

func (ctx renderContext) funcToSQL(expr *types.Function) (rendered, error) {
	args, err := ctx.exprListToSQL(expr.Args.Value)
	if err != nil {
		return rendered{}, fmt.Errorf("%s: %w", expr.Name, err)
	}
	str := expr.Name + "(" + strings.Join(args, ", ") + ")"
	return scalar(parenthesize(str, expr.Parentheses)), nil
}
