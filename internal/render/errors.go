package render

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxDepth is returned when an AST nests deeper than the renderer allows.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")

	// ErrMissingNode is returned when a required child node is nil.
	ErrMissingNode = errors.New("missing node")
)

// UnsupportedStatementError indicates a statement kind that cannot be rendered.
type UnsupportedStatementError struct {
	Type string
}

func (e UnsupportedStatementError) Error() string {
	if e.Type == "" {
		return "unsupported statement: only SELECT statements are supported"
	}
	return fmt.Sprintf("unsupported statement %q: only SELECT statements are supported", e.Type)
}

// NewUnsupportedStatementError creates a new unsupported statement error.
func NewUnsupportedStatementError(stmtType string) error {
	return UnsupportedStatementError{Type: stmtType}
}

// UnknownNodeError indicates an expression node whose type tag is not recognized.
type UnknownNodeError struct {
	Type string
	Path string
}

func (e UnknownNodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: unknown node type %q", e.Path, e.Type)
	}
	return fmt.Sprintf("unknown node type %q", e.Type)
}

// NewUnknownNodeError creates a new unknown node error. Path locates the
// node in the source tree and may be empty.
func NewUnknownNodeError(nodeType, path string) error {
	return UnknownNodeError{Type: nodeType, Path: path}
}
