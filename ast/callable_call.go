package ast

import (
	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/types"
)

// CallableCall invokes a first-class callable value (🍭).
//
// A callable call is never itself error-prone: if invoking the callable can
// fail, that failure is surfaced through the callable's own type, not
// through this node's error channel, so the call contract is trivially
// satisfied.
type CallableCall struct {
	CallBase

	callable Expr
	args     *Arguments
}

// NewCallableCall creates a call of the given callable expression.
func NewCallableCall(callable Expr, args *Arguments, pos SourcePos) *CallableCall {
	return &CallableCall{CallBase: newCallBase(pos), callable: callable, args: args}
}

// Callable returns the expression producing the value being invoked.
func (c *CallableCall) Callable() Expr { return c.callable }

// Arguments returns the call's argument list.
func (c *CallableCall) Arguments() *Arguments { return c.args }

// ErrorType implements [Call]. As the call cannot error, this returns the
// callable's own expression type as a structural placeholder.
func (c *CallableCall) ErrorType() types.Type { return c.callable.ExpressionType() }

// IsErrorProne implements [Call]; a callable call never is.
func (c *CallableCall) IsErrorProne() bool { return false }

func (c *CallableCall) analyse(a Analyser, expectation types.Expectation) (types.Type, error) {
	t, err := a.AnalyseExpr(&c.callable, types.NoExpectation())
	if err != nil {
		return types.NoReturn(), err
	}
	if t.Kind() != types.KindCallable {
		return types.NoReturn(), a.SemanticFault(c.callable.Pos(), "value of type %v cannot be called", t)
	}
	if err := c.args.analyse(a, t.Parameters(), c.Pos()); err != nil {
		return types.NoReturn(), err
	}
	if err := c.ensureErrorIsHandled(a, c); err != nil {
		return types.NoReturn(), err
	}
	return t.ReturnType(), nil
}

func (c *CallableCall) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {
	a.AnalyseExpr(c.callable, FlowBorrowing)
	c.args.analyseMemoryFlow(a)
}

func (c *CallableCall) generate(g *codegen.FuncGen) ir.Value {
	callable := Generate(c.callable, g)
	args := c.args.generate(g)
	result := g.CallIndirect(callable, c.ExpressionType(), args)
	return c.handleResult(g, result, ir.Value(0))
}
