package ast

import (
	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/types"
)

// IntLiteral is an integer literal.
type IntLiteral struct {
	ExprBase
	value int64
}

// NewIntLiteral creates an integer literal.
func NewIntLiteral(value int64, pos SourcePos) *IntLiteral {
	return &IntLiteral{ExprBase: newExprBase(pos), value: value}
}

func (l *IntLiteral) analyse(a Analyser, expectation types.Expectation) (types.Type, error) {
	return types.Integer(), nil
}

func (l *IntLiteral) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {}

func (l *IntLiteral) generate(g *codegen.FuncGen) ir.Value {
	return g.ConstInt(l.value)
}

// BoolLiteral is a 👍 or 👎 literal.
type BoolLiteral struct {
	ExprBase
	value bool
}

// NewBoolLiteral creates a boolean literal.
func NewBoolLiteral(value bool, pos SourcePos) *BoolLiteral {
	return &BoolLiteral{ExprBase: newExprBase(pos), value: value}
}

func (l *BoolLiteral) analyse(a Analyser, expectation types.Expectation) (types.Type, error) {
	return types.Boolean(), nil
}

func (l *BoolLiteral) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {}

func (l *BoolLiteral) generate(g *codegen.FuncGen) ir.Value {
	return g.ConstBool(l.value)
}

// NoValue is the 🤷 literal: an absent optional. Its type is dictated by the
// expectation, since the literal alone does not determine the payload.
type NoValue struct {
	ExprBase
}

// NewNoValue creates an absent-optional literal.
func NewNoValue(pos SourcePos) *NoValue {
	return &NoValue{ExprBase: newExprBase(pos)}
}

func (n *NoValue) analyse(a Analyser, expectation types.Expectation) (types.Type, error) {
	t, ok := expectation.Type()
	if !ok {
		return types.NoReturn(), a.SemanticFault(n.Pos(), "🤷 requires a type expectation")
	}
	if _, isOptional := t.OptionalPayload(); !isOptional {
		return types.NoReturn(), a.SemanticFault(n.Pos(), "🤷 cannot be used where %v is expected", t)
	}
	return t, nil
}

func (n *NoValue) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {}

func (n *NoValue) generate(g *codegen.FuncGen) ir.Value {
	return g.NoValue(n.ExpressionType())
}

// Closure is a callable literal (🍇 … 🍉). Lowering the closure's body is
// the function layer's concern; at the expression level the closure is the
// managed callable object it materializes.
type Closure struct {
	ExprBase
	signature types.Type
}

// NewClosure creates a callable literal with the given callable signature.
func NewClosure(signature types.Type, pos SourcePos) *Closure {
	if signature.Kind() != types.KindCallable {
		panic("ast: closure signature must be a callable type")
	}
	return &Closure{ExprBase: newExprBase(pos), signature: signature}
}

func (c *Closure) analyse(a Analyser, expectation types.Expectation) (types.Type, error) {
	return c.signature, nil
}

func (c *Closure) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {}

func (c *Closure) generate(g *codegen.FuncGen) ir.Value {
	return c.handleResult(g, g.Closure(c.signature), ir.Value(0))
}

// OptionalBox wraps a value into an optional of its type. The analyser
// inserts these to satisfy an optional expectation; they never occur in a
// parsed tree, so they are constructed already analysed.
type OptionalBox struct {
	UnaryExpr
}

// NewOptionalBox wraps child, whose analysis must have completed, into an
// optional of the given type.
func NewOptionalBox(child Expr, optional types.Type) *OptionalBox {
	if _, ok := optional.OptionalPayload(); !ok {
		panic("ast: optional box must produce an optional type")
	}
	b := &OptionalBox{}
	b.ExprBase = newExprBase(child.Pos())
	b.expr = child
	b.exprType = optional
	b.state = stateAnalysed
	return b
}

func (b *OptionalBox) analyse(Analyser, types.Expectation) (types.Type, error) {
	panic("ast: optional box nodes are created during analysis")
}

func (b *OptionalBox) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {
	// The box consumes the child's value; the optional owns it from here on.
	a.AnalyseExpr(b.expr, FlowEscaping)
	a.Take(b.expr)
}

func (b *OptionalBox) generate(g *codegen.FuncGen) ir.Value {
	payload := Generate(b.expr, g)
	return b.handleResult(g, g.SomeValue(b.ExpressionType(), payload), ir.Value(0))
}
