package deparse

import (
	"fmt"

	"github.com/zoobzio/deparse/internal/render"
	"github.com/zoobzio/deparse/internal/types"
)

// DefaultMaxDepth bounds sub-select nesting for New().
const DefaultMaxDepth = 512

// Renderer converts a parsed statement back into SQL text.
// A Renderer holds no mutable state and is safe for concurrent use.
type Renderer struct {
	// MaxDepth bounds sub-select nesting. Expression nesting is not
	// limited. Zero disables the limit.
	MaxDepth int
}

// New creates a renderer with DefaultMaxDepth.
func New() *Renderer {
	return &Renderer{MaxDepth: DefaultMaxDepth}
}

var defaultRenderer = New()

// ToSQL renders stmt with the default renderer.
func ToSQL(stmt Statement) (string, error) {
	return defaultRenderer.Render(stmt)
}

// Render converts stmt to SQL. Only SELECT statements (with their UNION
// chain) are supported; any other statement kind fails with an
// UnsupportedStatementError.
func (r *Renderer) Render(stmt Statement) (string, error) {
	if stmt == nil {
		return "", render.NewUnsupportedStatementError("")
	}

	sel, ok := stmt.(*types.Select)
	if !ok {
		return "", render.NewUnsupportedStatementError(stmt.StatementType())
	}
	if sel == nil {
		return "", fmt.Errorf("statement: %w", render.ErrMissingNode)
	}

	ctx := renderContext{maxDepth: r.MaxDepth}
	return ctx.renderUnion(sel)
}
