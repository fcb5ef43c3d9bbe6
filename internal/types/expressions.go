package types

// Literal is an atomic value: number, string, bool, null or star.
//
// Value holds the value as the parser produced it. Number values are
// trusted to already be valid numeric tokens. A Literal whose Kind is not a
// literal kind comes from lenient decoding of an unrecognized node.
type Literal struct {
	Value       any
	Kind        NodeType
	Parentheses bool
}

func (l *Literal) Type() NodeType { return l.Kind }
func (*Literal) exprNode()        {}

// ExprList is a parenthesized comma list, e.g. the right side of IN or the
// bounds of BETWEEN.
type ExprList struct {
	Value []Expr
}

func (*ExprList) Type() NodeType { return NodeExprList }
func (*ExprList) exprNode()      {}

// Function is a scalar function call. Args is always list shaped.
type Function struct {
	Name        string
	Args        ExprList
	Parentheses bool
}

func (*Function) Type() NodeType { return NodeFunction }
func (*Function) exprNode()      {}

// AggregateArgs is the argument of an aggregate call.
type AggregateArgs struct {
	Expr     Expr
	Distinct Opt[string]
}

// Aggregate is an aggregate function call such as COUNT or SUM.
type Aggregate struct {
	Name string
	Args AggregateArgs
}

func (*Aggregate) Type() NodeType { return NodeAggregate }
func (*Aggregate) exprNode()      {}

// CastTarget is the target type of a CAST. Length zero means no length.
type CastTarget struct {
	DataType string
	Length   int
}

// Cast is CAST(expr AS type).
type Cast struct {
	Expr   Expr
	Target CastTarget
}

func (*Cast) Type() NodeType { return NodeCast }
func (*Cast) exprNode()      {}
