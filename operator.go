package deparse

import "github.com/zoobzio/deparse/internal/types"

// Operator is a binary or unary operator as spelled in SQL.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	// Comparison operators.
	EQ = types.EQ
	NE = types.NE
	GT = types.GT
	GE = types.GE
	LT = types.LT
	LE = types.LE

	// Logical operators.
	AND = types.AND
	OR  = types.OR
	NOT = types.NOT

	// Operators rewritten or produced for expression lists.
	IN         = types.IN
	NotIn      = types.NotIn
	BETWEEN    = types.BETWEEN
	NotBetween = types.NotBetween

	LIKE  = types.LIKE
	IS    = types.IS
	IsNot = types.IsNot

	// Arithmetic operators.
	Plus  = types.Plus
	Minus = types.Minus
	Mul   = types.Mul
	Div   = types.Div
)
