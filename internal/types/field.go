package types

// Wildcard is the column name that denotes all columns.
const Wildcard = "*"

// ColumnRef references a column, optionally qualified by table or alias.
type ColumnRef struct {
	Table       Opt[string]
	Column      string
	Parentheses bool
}

func (*ColumnRef) Type() NodeType { return NodeColumnRef }
func (*ColumnRef) exprNode()      {}

// IsWildcard reports whether the reference is the * marker.
func (c *ColumnRef) IsWildcard() bool {
	return c.Column == Wildcard
}

// Column is one entry of a SELECT list.
type Column struct {
	Expr Expr
	As   Opt[string]
}
