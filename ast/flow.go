package ast

// FlowCategory is the classification a parent hands down to a child during
// memory-flow analysis: how the child's value will be used.
type FlowCategory int8

const (
	// FlowBorrowing: the value is merely observed during the statement. If
	// it is a managed temporary, it is released when the statement ends.
	FlowBorrowing FlowCategory = iota
	// FlowEscaping: the value is consumed or bound by the parent, which
	// becomes its owner.
	FlowEscaping
	// FlowReturn: the value leaves the function as its return value.
	FlowReturn
)

func (c FlowCategory) String() string {
	switch c {
	case FlowBorrowing:
		return "borrowing"
	case FlowEscaping:
		return "escaping"
	case FlowReturn:
		return "return"
	default:
		return "unknown"
	}
}

// FlowAnalyser is the narrow view of the memory-flow pass that nodes use to
// analyse their children. The concrete implementation lives in the memflow
// package.
type FlowAnalyser interface {
	// AnalyseExpr runs memory-flow analysis on a child with the given
	// category.
	AnalyseExpr(e Expr, category FlowCategory)
	// Take records that the current node consumes e's value and becomes its
	// owner, cancelling e's end-of-statement release.
	Take(e Expr)
}
