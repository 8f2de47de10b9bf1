package ast

import (
	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/types"
)

// UnaryExpr is embedded by expressions that operate on the value produced by
// exactly one child expression.
type UnaryExpr struct {
	ExprBase
	expr Expr
}

// Child returns the wrapped expression.
func (u *UnaryExpr) Child() Expr { return u.expr }

// UnaryForwarding is embedded by unary expressions that do not themselves
// affect the flow category or value category of their child: the same
// category is forwarded, and claiming the wrapper's value claims the
// child's.
//
// Expressions in this family must not pass their result to handleResult: if
// the resulting value is temporary it is the child's to release, as the
// wrapper has not taken the value.
type UnaryForwarding struct {
	UnaryExpr
}

func (u *UnaryForwarding) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {
	a.AnalyseExpr(u.expr, category)
}

func (u *UnaryForwarding) unsetIsTemporaryPost() {
	UnsetIsTemporary(u.expr)
}

// ProducesTemporaryObject reports the child's registration: the forwarding
// node's value is the child's value, and the release decision is the
// child's.
func (u *UnaryForwarding) ProducesTemporaryObject() bool {
	return u.expr.ProducesTemporaryObject()
}

// Reinterpretation reinterprets its child's value as another type without
// touching the value itself, e.g. for a class upcast. The analyser inserts
// these during expectation handling; they never occur in a parsed tree, so
// they are constructed already analysed.
type Reinterpretation struct {
	UnaryForwarding
}

// NewReinterpretation wraps child, whose analysis must have completed, into
// a reinterpretation node of type to.
func NewReinterpretation(child Expr, to types.Type) *Reinterpretation {
	r := &Reinterpretation{}
	r.ExprBase = newExprBase(child.Pos())
	r.expr = child
	r.exprType = to
	r.state = stateAnalysed
	return r
}

func (r *Reinterpretation) analyse(Analyser, types.Expectation) (types.Type, error) {
	panic("ast: reinterpretation nodes are created during analysis")
}

func (r *Reinterpretation) generate(g *codegen.FuncGen) ir.Value {
	return Generate(r.expr, g)
}
