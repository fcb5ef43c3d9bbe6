package deparse

import (
	"testing"

	"github.com/zoobzio/deparse/internal/types"
)

// Node constructors for tests.

func num(v string) *types.Literal {
	return &types.Literal{Kind: types.NodeNumber, Value: v}
}

func str(v string) *types.Literal {
	return &types.Literal{Kind: types.NodeString, Value: v}
}

func col(name string) *types.ColumnRef {
	return &types.ColumnRef{Column: name}
}

func qcol(table, name string) *types.ColumnRef {
	return &types.ColumnRef{Table: types.Some(table), Column: name}
}

func list(values ...types.Expr) *types.ExprList {
	return &types.ExprList{Value: values}
}

func bin(left types.Expr, op types.Operator, right types.Expr) *types.BinaryExpr {
	return &types.BinaryExpr{Left: left, Operator: op, Right: right}
}

func table(name string) types.TableRef {
	return types.TableRef{Table: types.Some(name)}
}

func cols(exprs ...types.Expr) []types.Column {
	out := make([]types.Column, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, types.Column{Expr: e})
	}
	return out
}

// selectFrom builds SELECT <cols> FROM "<name>".
func selectFrom(name string, exprs ...types.Expr) *types.Select {
	return &types.Select{
		Columns: cols(exprs...),
		From:    []types.TableRef{table(name)},
	}
}

// mustRender renders stmt and fails the test on error.
func mustRender(t *testing.T, stmt Statement) string {
	t.Helper()
	sql, err := ToSQL(stmt)
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}
	return sql
}

// mustExpr renders a single expression in scalar position.
func mustExpr(t *testing.T, expr types.Expr) string {
	t.Helper()
	ctx := renderContext{maxDepth: DefaultMaxDepth}
	sql, err := ctx.exprString(expr)
	if err != nil {
		t.Fatalf("exprString() error = %v", err)
	}
	return sql
}
