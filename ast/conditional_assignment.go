package ast

import (
	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/types"
)

// ConditionalAssignment is the conditional binding 🍦 x expr: it evaluates
// an optional-valued expression and, if a value is present, binds it to a
// fresh variable visible on the success path. The expression's own value is
// the presence flag.
type ConditionalAssignment struct {
	ExprBase

	varName string
	expr    Expr
	varID   codegen.VariableID
	payload types.Type
}

// NewConditionalAssignment creates a conditional binding of expr to the
// named variable.
func NewConditionalAssignment(varName string, expr Expr, pos SourcePos) *ConditionalAssignment {
	return &ConditionalAssignment{ExprBase: newExprBase(pos), varName: varName, expr: expr}
}

// VariableID returns the handle of the bound variable, usable by later
// statements on the success path. Valid after analysis.
func (c *ConditionalAssignment) VariableID() codegen.VariableID { return c.varID }

func (c *ConditionalAssignment) analyse(a Analyser, expectation types.Expectation) (types.Type, error) {
	t, err := a.AnalyseExpr(&c.expr, types.NoExpectation())
	if err != nil {
		return types.NoReturn(), err
	}
	payload, ok := t.OptionalPayload()
	if !ok {
		return types.NoReturn(), a.SemanticFault(c.expr.Pos(),
			"🍦 requires an optional value, got %v", t)
	}
	c.payload = payload
	c.varID = a.DeclareVariable(c.varName, payload)
	return types.Boolean(), nil
}

func (c *ConditionalAssignment) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {
	a.AnalyseExpr(c.expr, FlowEscaping)
	// The bound variable becomes the owner of the payload; the optional must
	// not be released when the statement ends.
	a.Take(c.expr)
}

func (c *ConditionalAssignment) generate(g *codegen.FuncGen) ir.Value {
	optional := Generate(c.expr, g)
	present := g.ExtractFlag(optional)

	bind := g.NewBlock("present")
	join := g.NewBlock("join")
	g.CondBr(present, bind, join)

	g.SetInsertBlock(bind)
	storage := g.Alloca(c.payload)
	g.BindVariable(c.varID, storage)
	g.Store(g.ExtractPayload(c.payload, optional), storage)
	g.Br(join)

	g.SetInsertBlock(join)
	return present
}
