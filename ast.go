package deparse

import "github.com/zoobzio/deparse/internal/types"

// Re-export node type constants for public API.
const (
	NodeNumber    = types.NodeNumber
	NodeString    = types.NodeString
	NodeBool      = types.NodeBool
	NodeNull      = types.NodeNull
	NodeStar      = types.NodeStar
	NodeColumnRef = types.NodeColumnRef
	NodeBinary    = types.NodeBinary
	NodeUnary     = types.NodeUnary
	NodeExprList  = types.NodeExprList
	NodeFunction  = types.NodeFunction
	NodeAggregate = types.NodeAggregate
	NodeCase      = types.NodeCase
	NodeCast      = types.NodeCast
	NodeSelect    = types.NodeSelect
)

// Re-export direction and CASE arm constants for public API.
const (
	ASC  = types.ASC
	DESC = types.DESC

	When = types.When
	Else = types.Else
)
