package deparse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/deparse/internal/render"
	"github.com/zoobzio/deparse/internal/types"
)

// DecodeOption configures Decode.
type DecodeOption func(*decoder)

// Lenient makes unrecognized expression types decode as literal-like
// nodes that render their "value" verbatim, instead of failing with an
// UnknownNodeError.
func Lenient() DecodeOption {
	return func(d *decoder) {
		d.lenient = true
	}
}

type decoder struct {
	// visited holds the select objects on the current _next chain.
	visited map[uintptr]bool
	// ancestors holds the expression objects between the root and the node
	// being decoded. Caller-built trees may be cyclic; shared subtrees are fine.
	ancestors map[uintptr]bool
	lenient   bool
}

// DecodeJSON decodes a parser AST serialized as JSON. Number tokens are kept
// verbatim.
func DecodeJSON(data []byte, opts ...DecodeOption) (Statement, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode JSON AST: %w", err)
	}
	return Decode(tree, opts...)
}

// DecodeYAML decodes a parser AST serialized as YAML.
func DecodeYAML(data []byte, opts ...DecodeOption) (Statement, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode YAML AST: %w", err)
	}
	return Decode(tree, opts...)
}

// Decode converts a generic object tree, as produced by a SQL parser, into
// a typed Statement. Fields that are absent are kept distinct from fields
// given as null.
func Decode(tree map[string]any, opts ...DecodeOption) (Statement, error) {
	d := &decoder{ancestors: make(map[uintptr]bool)}
	for _, opt := range opts {
		opt(d)
	}

	if tree == nil {
		return nil, fmt.Errorf("statement: %w", render.ErrMissingNode)
	}

	kind, err := stringField(tree, "type", "statement")
	if err != nil {
		return nil, err
	}
	if kind != string(types.NodeSelect) {
		return &types.OtherStatement{Kind: kind}, nil
	}
	stmt, err := d.decodeSelect(tree, "statement")
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// has reports whether key is present in obj, even when its value is null.
func has(obj map[string]any, key string) bool {
	_, ok := obj[key]
	return ok
}

// isSet reports whether key is present in obj with a non-null value.
func isSet(obj map[string]any, key string) bool {
	return has(obj, key) && obj[key] != nil
}

func (d *decoder) decodeSelect(obj map[string]any, path string) (*types.Select, error) {
	d.visited = map[uintptr]bool{reflect.ValueOf(obj).Pointer(): true}
	head, err := d.decodeSelectNode(obj, path)
	if err != nil {
		return nil, err
	}

	next := obj
	for i := 0; isSet(next, "_next"); i++ {
		linkPath := fmt.Sprintf("%s._next[%d]", path, i)
		link, ok := next["_next"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected object, got %T", linkPath, next["_next"])
		}
		ptr := reflect.ValueOf(link).Pointer()
		if d.visited[ptr] {
			return nil, fmt.Errorf("%s: union chain is cyclic", linkPath)
		}
		d.visited[ptr] = true

		kind, err := stringField(link, "type", linkPath)
		if err != nil {
			return nil, err
		}
		if kind != string(types.NodeSelect) {
			return nil, fmt.Errorf("%s: %w", linkPath, render.NewUnsupportedStatementError(kind))
		}

		member, err := d.decodeSelectNode(link, linkPath)
		if err != nil {
			return nil, err
		}
		head.Union = append(head.Union, member)
		next = link
	}

	return head, nil
}

// decodeSelectNode decodes one select object, without its _next chain.
func (d *decoder) decodeSelectNode(obj map[string]any, path string) (*types.Select, error) {
	var err error
	stmt := &types.Select{Parentheses: truthy(obj["parentheses"])}

	if opts, ok := obj["options"].([]any); ok {
		for _, o := range opts {
			stmt.Options = append(stmt.Options, formatValue(o))
		}
	}

	if stmt.Distinct, err = optString(obj, "distinct", path); err != nil {
		return nil, err
	}

	if cols, ok := obj["columns"].([]any); ok {
		for i, c := range cols {
			colPath := fmt.Sprintf("%s.columns[%d]", path, i)
			col, err := d.decodeColumn(c, colPath)
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
		}
	}

	if from, ok := obj["from"].([]any); ok {
		for i, f := range from {
			ref, err := d.decodeTableRef(f, fmt.Sprintf("%s.from[%d]", path, i))
			if err != nil {
				return nil, err
			}
			stmt.From = append(stmt.From, ref)
		}
	}

	if stmt.Where, err = d.optExpr(obj, "where", path); err != nil {
		return nil, err
	}

	if groups, ok := obj["groupby"].([]any); ok {
		if stmt.GroupBy, err = d.decodeExprs(groups, path+".groupby"); err != nil {
			return nil, err
		}
	}

	if stmt.Having, err = d.optExpr(obj, "having", path); err != nil {
		return nil, err
	}

	if orders, ok := obj["orderby"].([]any); ok {
		for i, o := range orders {
			orderPath := fmt.Sprintf("%s.orderby[%d]", path, i)
			item, ok := o.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: expected object, got %T", orderPath, o)
			}
			expr, err := d.decodeExpr(item["expr"], orderPath+".expr")
			if err != nil {
				return nil, err
			}
			dir, err := optString(item, "type", orderPath)
			if err != nil {
				return nil, err
			}
			stmt.OrderBy = append(stmt.OrderBy, types.OrderBy{Expr: expr, Direction: types.Direction(dir.Value())})
		}
	}

	if limits, ok := obj["limit"].([]any); ok {
		if stmt.Limit, err = d.decodeExprs(limits, path+".limit"); err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

func (d *decoder) decodeColumn(v any, path string) (types.Column, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return types.Column{}, fmt.Errorf("%s: expected object, got %T", path, v)
	}
	expr, err := d.decodeExpr(obj["expr"], path+".expr")
	if err != nil {
		return types.Column{}, err
	}
	as, err := optString(obj, "as", path)
	if err != nil {
		return types.Column{}, err
	}
	return types.Column{Expr: expr, As: as}, nil
}

func (d *decoder) decodeTableRef(v any, path string) (types.TableRef, error) {
	var ref types.TableRef
	obj, ok := v.(map[string]any)
	if !ok {
		return ref, fmt.Errorf("%s: expected object, got %T", path, v)
	}

	var err error
	fields := []struct {
		dst *types.Opt[string]
		key string
	}{
		{&ref.DB, "db"},
		{&ref.Table, "table"},
		{&ref.As, "as"},
		{&ref.Join, "join"},
	}
	for _, f := range fields {
		if *f.dst, err = optString(obj, f.key, path); err != nil {
			return ref, err
		}
	}

	if ref.On, err = d.optExpr(obj, "on", path); err != nil {
		return ref, err
	}

	if ref.IsDerived() {
		if ref.Expr, err = d.decodeExpr(obj["expr"], path+".expr"); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// optExpr decodes obj[key] when it is present and non-null.
func (d *decoder) optExpr(obj map[string]any, key, path string) (types.Expr, error) {
	if !isSet(obj, key) {
		return nil, nil
	}
	return d.decodeExpr(obj[key], path+"."+key)
}

func (d *decoder) decodeExprs(values []any, path string) ([]types.Expr, error) {
	exprs := make([]types.Expr, 0, len(values))
	for i, v := range values {
		expr, err := d.decodeExpr(v, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func (d *decoder) decodeExpr(v any, path string) (types.Expr, error) {
	if v == nil {
		return nil, fmt.Errorf("%s: %w", path, render.ErrMissingNode)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected object, got %T", path, v)
	}

	ptr := reflect.ValueOf(obj).Pointer()
	if d.ancestors[ptr] {
		return nil, fmt.Errorf("%s: expression is cyclic", path)
	}
	d.ancestors[ptr] = true
	defer delete(d.ancestors, ptr)

	kind, err := stringField(obj, "type", path)
	if err != nil {
		return nil, err
	}
	parens := truthy(obj["parentheses"])

	switch nt := types.NodeType(kind); nt {
	case types.NodeNumber, types.NodeString, types.NodeBool, types.NodeNull, types.NodeStar:
		return &types.Literal{Kind: nt, Value: obj["value"], Parentheses: parens}, nil

	case types.NodeColumnRef:
		table, err := optString(obj, "table", path)
		if err != nil {
			return nil, err
		}
		column, err := stringField(obj, "column", path)
		if err != nil {
			return nil, err
		}
		return &types.ColumnRef{Table: table, Column: column, Parentheses: parens}, nil

	case types.NodeBinary:
		op, err := stringField(obj, "operator", path)
		if err != nil {
			return nil, err
		}
		left, err := d.decodeExpr(obj["left"], path+".left")
		if err != nil {
			return nil, err
		}
		right, err := d.decodeExpr(obj["right"], path+".right")
		if err != nil {
			return nil, err
		}
		return &types.BinaryExpr{Operator: types.Operator(op), Left: left, Right: right, Parentheses: parens}, nil

	case types.NodeUnary:
		op, err := stringField(obj, "operator", path)
		if err != nil {
			return nil, err
		}
		expr, err := d.decodeExpr(obj["expr"], path+".expr")
		if err != nil {
			return nil, err
		}
		return &types.UnaryExpr{Operator: types.Operator(op), Expr: expr, Parentheses: parens}, nil

	case types.NodeExprList:
		values, _ := obj["value"].([]any)
		exprs, err := d.decodeExprs(values, path+".value")
		if err != nil {
			return nil, err
		}
		return &types.ExprList{Value: exprs}, nil

	case types.NodeFunction:
		name, err := stringField(obj, "name", path)
		if err != nil {
			return nil, err
		}
		args, err := d.decodeArgs(obj, path)
		if err != nil {
			return nil, err
		}
		return &types.Function{Name: name, Args: args, Parentheses: parens}, nil

	case types.NodeAggregate:
		return d.decodeAggregate(obj, path)

	case types.NodeCase:
		return d.decodeCase(obj, path)

	case types.NodeCast:
		return d.decodeCast(obj, path)

	case types.NodeSelect:
		return d.decodeNestedSelect(obj, path)

	default:
		if d.lenient {
			return &types.Literal{Kind: nt, Value: obj["value"], Parentheses: parens}, nil
		}
		return nil, render.NewUnknownNodeError(kind, path)
	}
}

// decodeArgs decodes function arguments. A bare expression is wrapped into
// a one-element list.
func (d *decoder) decodeArgs(obj map[string]any, path string) (types.ExprList, error) {
	if !isSet(obj, "args") {
		return types.ExprList{}, nil
	}
	expr, err := d.decodeExpr(obj["args"], path+".args")
	if err != nil {
		return types.ExprList{}, err
	}
	if list, ok := expr.(*types.ExprList); ok {
		return *list, nil
	}
	return types.ExprList{Value: []types.Expr{expr}}, nil
}

func (d *decoder) decodeAggregate(obj map[string]any, path string) (types.Expr, error) {
	name, err := stringField(obj, "name", path)
	if err != nil {
		return nil, err
	}
	args, ok := obj["args"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s.args: expected object, got %T", path, obj["args"])
	}
	expr, err := d.decodeExpr(args["expr"], path+".args.expr")
	if err != nil {
		return nil, err
	}
	distinct, err := optString(args, "distinct", path+".args")
	if err != nil {
		return nil, err
	}
	return &types.Aggregate{Name: name, Args: types.AggregateArgs{Expr: expr, Distinct: distinct}}, nil
}

func (d *decoder) decodeCase(obj map[string]any, path string) (types.Expr, error) {
	expr, err := d.optExpr(obj, "expr", path)
	if err != nil {
		return nil, err
	}
	c := &types.Case{Expr: expr}

	arms, _ := obj["args"].([]any)
	for i, a := range arms {
		armPath := fmt.Sprintf("%s.args[%d]", path, i)
		armObj, ok := a.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected object, got %T", armPath, a)
		}
		kind, err := stringField(armObj, "type", armPath)
		if err != nil {
			return nil, err
		}
		cond, err := d.optExpr(armObj, "cond", armPath)
		if err != nil {
			return nil, err
		}
		result, err := d.decodeExpr(armObj["result"], armPath+".result")
		if err != nil {
			return nil, err
		}
		c.Args = append(c.Args, types.CaseArm{Type: types.ArmType(kind), Cond: cond, Result: result})
	}
	return c, nil
}

func (d *decoder) decodeCast(obj map[string]any, path string) (types.Expr, error) {
	expr, err := d.decodeExpr(obj["expr"], path+".expr")
	if err != nil {
		return nil, err
	}
	target, ok := obj["target"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s.target: expected object, got %T", path, obj["target"])
	}
	dataType, err := stringField(target, "dataType", path+".target")
	if err != nil {
		return nil, err
	}
	length, err := intValue(target["length"], path+".target.length")
	if err != nil {
		return nil, err
	}
	return &types.Cast{Expr: expr, Target: types.CastTarget{DataType: dataType, Length: length}}, nil
}

// decodeNestedSelect decodes a sub-select with its own UNION chain. The
// outer chain's cycle tracking is restored afterwards.
func (d *decoder) decodeNestedSelect(obj map[string]any, path string) (types.Expr, error) {
	outer := d.visited
	defer func() { d.visited = outer }()

	stmt, err := d.decodeSelect(obj, path)
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func stringField(obj map[string]any, key, path string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s.%s: %w", path, key, render.ErrMissingNode)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s.%s: expected string, got %T", path, key, v)
	}
	return s, nil
}

// optString decodes a nullable string field, keeping absent and null apart.
func optString(obj map[string]any, key, path string) (types.Opt[string], error) {
	if !has(obj, key) {
		return types.Opt[string]{}, nil
	}
	switch v := obj[key].(type) {
	case nil:
		return types.NullOf[string](), nil
	case string:
		return types.Some(v), nil
	default:
		return types.Opt[string]{}, fmt.Errorf("%s.%s: expected string, got %T", path, key, v)
	}
}

func intValue(v any, path string) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%s: expected number, got %T", path, v)
	}
}
