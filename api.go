// Package deparse renders a parsed SQL SELECT syntax tree back into SQL text.
//
// It is the inverse of a SQL parser: given the tree a parser produced for a
// SELECT statement, its sub-expressions, joins and UNION chain, it returns a
// single SQL string that parses back to an equivalent tree.
//
// # Basic Usage
//
// Trees usually arrive as the parser's JSON (or YAML) object form:
//
//	stmt, err := deparse.DecodeJSON(data)
//	if err != nil {
//		return err
//	}
//
//	sql, err := deparse.ToSQL(stmt)
//	// sql: SELECT "id", "name" FROM "users" WHERE "id" IN (1, 2, 3)
//
// # Output Format
//
// Identifiers are double quoted, string literals single quoted with
// backslash escapes (see Escape), keywords upper case, and the output never
// contains a newline. A binary operator whose right side is an expression
// list is rewritten: = becomes IN, != becomes NOT IN, and BETWEEN joins its
// two bounds with AND.
//
// Only SELECT statements are supported. Any other statement kind fails with
// an UnsupportedStatementError.
//
// # Schema Validation
//
// A Schema built from a DBML project checks that the tables and columns a
// statement references exist before it is rendered:
//
//	schema, err := deparse.NewSchema(project)
//	if err := schema.Validate(stmt); err != nil {
//		return err
//	}
package deparse

import (
	"github.com/zoobzio/deparse/internal/render"
	"github.com/zoobzio/deparse/internal/types"
)

// Statement is a parsed top-level statement.
type Statement = types.Statement

// Expr is an expression node.
type Expr = types.Expr

// NodeType is the discriminant of an AST node.
type NodeType = types.NodeType

// Node types re-exported for consumers.
type (
	Select         = types.Select
	OtherStatement = types.OtherStatement
	Column         = types.Column
	TableRef       = types.TableRef
	OrderBy        = types.OrderBy
	Literal        = types.Literal
	ColumnRef      = types.ColumnRef
	BinaryExpr     = types.BinaryExpr
	UnaryExpr      = types.UnaryExpr
	ExprList       = types.ExprList
	Function       = types.Function
	Aggregate      = types.Aggregate
	AggregateArgs  = types.AggregateArgs
	Case           = types.Case
	CaseArm        = types.CaseArm
	Cast           = types.Cast
	CastTarget     = types.CastTarget
)

// Opt is a tri-state optional field: absent, null, or present.
type Opt[T any] = types.Opt[T]

// Some returns an Opt holding v.
func Some[T any](v T) Opt[T] {
	return types.Some(v)
}

// NullOf returns an Opt that was supplied as null.
func NullOf[T any]() Opt[T] {
	return types.NullOf[T]()
}

// Walk visits e and its children depth first. Returning false from fn
// skips the children of that node.
func Walk(e Expr, fn func(Expr) bool) {
	types.Walk(e, fn)
}

// Error types re-exported for errors.As and errors.Is.
type (
	UnsupportedStatementError = render.UnsupportedStatementError
	UnknownNodeError          = render.UnknownNodeError
)

var (
	ErrMaxDepth    = render.ErrMaxDepth
	ErrMissingNode = render.ErrMissingNode
)
