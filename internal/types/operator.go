package types

// Operator is a binary or unary operator as spelled in SQL.
type Operator string

const (
	EQ         Operator = "="
	NE         Operator = "!="
	GT         Operator = ">"
	GE         Operator = ">="
	LT         Operator = "<"
	LE         Operator = "<="
	AND        Operator = "AND"
	OR         Operator = "OR"
	NOT        Operator = "NOT"
	IN         Operator = "IN"
	NotIn      Operator = "NOT IN"
	BETWEEN    Operator = "BETWEEN"
	NotBetween Operator = "NOT BETWEEN"
	LIKE       Operator = "LIKE"
	IS         Operator = "IS"
	IsNot      Operator = "IS NOT"
	Plus       Operator = "+"
	Minus      Operator = "-"
	Mul        Operator = "*"
	Div        Operator = "/"
)

// BinaryExpr is `left OP right`.
type BinaryExpr struct {
	Left        Expr
	Right       Expr
	Operator    Operator
	Parentheses bool
}

func (*BinaryExpr) Type() NodeType { return NodeBinary }
func (*BinaryExpr) exprNode()      {}

// UnaryExpr is `OP expr`.
type UnaryExpr struct {
	Expr        Expr
	Operator    Operator
	Parentheses bool
}

func (*UnaryExpr) Type() NodeType { return NodeUnary }
func (*UnaryExpr) exprNode()      {}
