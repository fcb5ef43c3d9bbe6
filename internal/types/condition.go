package types

// ArmType is the kind of a CASE arm.
type ArmType string

const (
	When ArmType = "when"
	Else ArmType = "else"
)

// CaseArm is a single WHEN ... THEN ... or ELSE ... arm.
// Cond is nil for ELSE arms.
type CaseArm struct {
	Cond   Expr
	Result Expr
	Type   ArmType
}

// Case is a CASE expression, with an optional switch expression.
type Case struct {
	Expr Expr
	Args []CaseArm
}

func (*Case) Type() NodeType { return NodeCase }
func (*Case) exprNode()      {}
