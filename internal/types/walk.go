package types

import "reflect"

// Walk visits e and its children depth first. When fn returns false the
// children of that node are skipped. The children of a *Select are the
// clause expressions of the statement and of its UNION members.
func Walk(e Expr, fn func(Expr) bool) {
	if IsNil(e) || !fn(e) {
		return
	}

	switch n := e.(type) {
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *UnaryExpr:
		Walk(n.Expr, fn)
	case *ExprList:
		for _, v := range n.Value {
			Walk(v, fn)
		}
	case *Function:
		for _, v := range n.Args.Value {
			Walk(v, fn)
		}
	case *Aggregate:
		Walk(n.Args.Expr, fn)
	case *Case:
		Walk(n.Expr, fn)
		for _, arm := range n.Args {
			Walk(arm.Cond, fn)
			Walk(arm.Result, fn)
		}
	case *Cast:
		Walk(n.Expr, fn)
	case *Select:
		for _, s := range n.Chain() {
			walkSelect(s, fn)
		}
	}
}

// IsNil reports whether e is nil or a nil node pointer.
func IsNil(e Expr) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func walkSelect(s *Select, fn func(Expr) bool) {
	if s == nil {
		return
	}
	for _, c := range s.Columns {
		Walk(c.Expr, fn)
	}
	for _, t := range s.From {
		Walk(t.Expr, fn)
		Walk(t.On, fn)
	}
	Walk(s.Where, fn)
	for _, g := range s.GroupBy {
		Walk(g, fn)
	}
	Walk(s.Having, fn)
	for _, o := range s.OrderBy {
		Walk(o.Expr, fn)
	}
	for _, l := range s.Limit {
		Walk(l, fn)
	}
}
