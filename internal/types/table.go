package types

// TableRef is an entry of a FROM list. Either Table names a base table or
// Expr holds a derived table (normally a parenthesized *Select).
//
// Join and On are only meaningful on entries after the first.
type TableRef struct {
	DB    Opt[string]
	Table Opt[string]
	Expr  Expr
	As    Opt[string]
	Join  Opt[string]
	On    Expr
}

// IsDerived reports whether the entry is a derived table.
func (t TableRef) IsDerived() bool {
	name, ok := t.Table.Get()
	return !ok || name == ""
}

// Name returns the name the entry is referenced by: its alias if set,
// otherwise its table name.
func (t TableRef) Name() string {
	if alias, ok := t.As.Get(); ok {
		return alias
	}
	return t.Table.Value()
}
