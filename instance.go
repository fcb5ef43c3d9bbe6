package deparse

import (
	"errors"
	"fmt"

	"github.com/zoobzio/dbml"

	"github.com/zoobzio/deparse/internal/render"
	"github.com/zoobzio/deparse/internal/types"
)

// Schema validates statements against a DBML schema.
type Schema struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables map[string]*dbml.Table
	fields map[string]map[string]*dbml.Column // table -> field -> column
}

// NewSchema creates a Schema from a DBML project.
func NewSchema(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string]*dbml.Table),
		fields:  make(map[string]map[string]*dbml.Column),
	}

	for _, table := range project.Tables {
		s.tables[table.Name] = table
		s.fields[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			s.fields[table.Name][col.Name] = col
		}
	}

	return s, nil
}

// Project returns the DBML project the schema was built from.
func (s *Schema) Project() *dbml.Project {
	return s.project
}

// HasTable reports whether the schema defines table.
func (s *Schema) HasTable(table string) bool {
	_, ok := s.tables[table]
	return ok
}

// HasColumn reports whether table defines column.
func (s *Schema) HasColumn(table, column string) bool {
	_, ok := s.fields[table][column]
	return ok
}

// scope maps the names visible in one SELECT to schema tables. A derived
// table maps to "" since its columns are not known to the schema.
type scope struct {
	parent  *scope
	names   map[string]string
	aliases map[string]bool // select list aliases
}

func (sc *scope) resolve(name string) (string, bool) {
	for s := sc; s != nil; s = s.parent {
		if table, ok := s.names[name]; ok {
			return table, true
		}
	}
	return "", false
}

// Validate checks that every table and column stmt references exists in the
// schema. All problems found are returned joined.
func (s *Schema) Validate(stmt Statement) error {
	sel, ok := stmt.(*types.Select)
	if !ok || sel == nil {
		kind := ""
		if stmt != nil {
			kind = stmt.StatementType()
		}
		return render.NewUnsupportedStatementError(kind)
	}

	var errs []error
	for _, member := range sel.Chain() {
		errs = append(errs, s.validateSelect(member, nil)...)
	}
	return errors.Join(errs...)
}

func (s *Schema) validateSelect(sel *types.Select, parent *scope) []error {
	if sel == nil {
		return nil
	}

	var errs []error
	sc := &scope{
		parent:  parent,
		names:   make(map[string]string),
		aliases: make(map[string]bool),
	}

	for _, ref := range sel.From {
		if ref.IsDerived() {
			if sub, ok := ref.Expr.(*types.Select); ok {
				for _, member := range sub.Chain() {
					errs = append(errs, s.validateSelect(member, parent)...)
				}
			}
			sc.names[ref.Name()] = ""
			continue
		}

		table := ref.Table.Value()
		if !s.HasTable(table) {
			errs = append(errs, fmt.Errorf("table '%s' not found in schema", table))
			sc.names[ref.Name()] = ""
			continue
		}
		sc.names[ref.Name()] = table
	}

	for _, col := range sel.Columns {
		if alias, ok := col.As.Get(); ok {
			sc.aliases[alias] = true
		}
	}

	check := func(e types.Expr) bool {
		switch n := e.(type) {
		case *types.ColumnRef:
			if err := s.validateColumn(n, sc); err != nil {
				errs = append(errs, err)
			}
		case *types.Select:
			for _, member := range n.Chain() {
				errs = append(errs, s.validateSelect(member, sc)...)
			}
			return false
		}
		return true
	}

	for _, col := range sel.Columns {
		types.Walk(col.Expr, check)
	}
	for _, ref := range sel.From {
		types.Walk(ref.On, check)
	}
	types.Walk(sel.Where, check)
	for _, g := range sel.GroupBy {
		types.Walk(g, check)
	}
	types.Walk(sel.Having, check)
	for _, o := range sel.OrderBy {
		types.Walk(o.Expr, check)
	}

	return errs
}

func (s *Schema) validateColumn(ref *types.ColumnRef, sc *scope) error {
	if qualifier, ok := ref.Table.Get(); ok {
		table, found := sc.resolve(qualifier)
		if !found {
			return fmt.Errorf("table or alias '%s' not found in scope", qualifier)
		}
		if table == "" || ref.IsWildcard() || s.HasColumn(table, ref.Column) {
			return nil
		}
		return fmt.Errorf("field '%s.%s' not found in schema", table, ref.Column)
	}

	if ref.IsWildcard() {
		return nil
	}

	for current := sc; current != nil; current = current.parent {
		if current.aliases[ref.Column] {
			return nil
		}
		for _, table := range current.names {
			if table == "" || s.HasColumn(table, ref.Column) {
				return nil
			}
		}
	}
	return fmt.Errorf("field '%s' not found in schema", ref.Column)
}
