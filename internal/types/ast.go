package types

// NodeType is the discriminant carried by every AST node.
type NodeType string

const (
	NodeNumber    NodeType = "number"
	NodeString    NodeType = "string"
	NodeBool      NodeType = "bool"
	NodeNull      NodeType = "null"
	NodeStar      NodeType = "star"
	NodeColumnRef NodeType = "column_ref"
	NodeBinary    NodeType = "binary_expr"
	NodeUnary     NodeType = "unary_expr"
	NodeExprList  NodeType = "expr_list"
	NodeFunction  NodeType = "function"
	NodeAggregate NodeType = "aggr_func"
	NodeCase      NodeType = "case"
	NodeCast      NodeType = "cast"
	NodeSelect    NodeType = "select"
)

// IsLiteral reports whether t is one of the atomic value kinds.
func (t NodeType) IsLiteral() bool {
	switch t {
	case NodeNumber, NodeString, NodeBool, NodeNull, NodeStar:
		return true
	}
	return false
}

// Expr is an expression node. The set of implementations is closed to
// this package.
type Expr interface {
	Type() NodeType
	exprNode()
}

// Statement is a top-level parsed statement.
type Statement interface {
	StatementType() string
	statementNode()
}

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// OrderBy represents one ORDER BY term.
type OrderBy struct {
	Expr      Expr
	Direction Direction
}

// Select represents a SELECT statement. It is both a Statement and, when
// nested, an Expr (sub-select or derived table).
//
// Union holds the statements chained to this one with UNION, in order.
//
//nolint:govet // fieldalignment: clause order is preferred over memory optimization
type Select struct {
	Options     []string
	Distinct    Opt[string]
	Columns     []Column // empty renders as *
	From        []TableRef
	Where       Expr
	GroupBy     []Expr
	Having      Expr
	OrderBy     []OrderBy
	Limit       []Expr
	Union       []*Select
	Parentheses bool
}

func (*Select) Type() NodeType        { return NodeSelect }
func (*Select) StatementType() string { return string(NodeSelect) }
func (*Select) exprNode()             {}
func (*Select) statementNode()        {}

// Chain returns the statement followed by every UNION member, in order.
func (s *Select) Chain() []*Select {
	if s == nil {
		return nil
	}
	chain := make([]*Select, 0, 1+len(s.Union))
	chain = append(chain, s)
	return append(chain, s.Union...)
}

// OtherStatement is any statement kind besides SELECT that a parser
// produced (insert, update, delete, create, ...). It carries only its type.
type OtherStatement struct {
	Kind string
}

func (o *OtherStatement) StatementType() string { return o.Kind }
func (*OtherStatement) statementNode()          {}
