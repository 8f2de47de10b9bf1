package ast

import (
	"fmt"

	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/types"
)

// passState tracks which of the three compilation passes have run for a
// node. Every pass entry point asserts the state it requires, so calling a
// later-pass operation on an earlier-pass node is an immediate panic rather
// than silent miscompilation.
type passState int8

const (
	stateNew passState = iota
	stateAnalysed
	stateFlowAnalysed
	stateGenerated
)

// Expr is an expression node. The three pass methods are unexported: the
// node-kind set is closed, and all traffic into a pass goes through
// [Analyse], [AnalyseMemoryFlow] and [Generate], which enforce pass
// ordering.
type Expr interface {
	Node

	// analyse computes the node's exact result type under the given
	// expectation, raising faults through a.
	analyse(a Analyser, expectation types.Expectation) (types.Type, error)
	// analyseMemoryFlow distributes the flow category the parent determined
	// for this node's value to the node's children.
	analyseMemoryFlow(a FlowAnalyser, category FlowCategory)
	// generate lowers the node. Every value that is potentially a managed
	// object must be routed through handleResult exactly once.
	generate(g *codegen.FuncGen) ir.Value
	// unsetIsTemporaryPost runs at the end of [UnsetIsTemporary] for
	// node-specific propagation.
	unsetIsTemporaryPost()

	base() *ExprBase

	// ExpressionType is the exact type this node produces. It is the
	// no-return sentinel until type analysis has run.
	ExpressionType() types.Type
	// IsTemporary reports whether this node's value is still an unclaimed
	// statement-scoped temporary.
	IsTemporary() bool
	// ProducesTemporaryObject reports whether the node's value will be
	// registered for automatic release. Valid only after memory-flow
	// analysis.
	ProducesTemporaryObject() bool
	// MutateReference informs a node denoting an addressable location that
	// the location is about to be written through. The default does nothing.
	MutateReference(a Analyser)
}

// ExprBase carries the state shared by all expression nodes and is embedded
// by every concrete node kind.
type ExprBase struct {
	node

	state       passState
	exprType    types.Type // zero value is the no-return sentinel
	isTemporary bool
	registered  bool // temporary registered with the code generator
}

func newExprBase(pos SourcePos) ExprBase {
	return ExprBase{node: node{pos: pos}, isTemporary: true}
}

func (b *ExprBase) base() *ExprBase { return b }

// ExpressionType implements [Expr].
func (b *ExprBase) ExpressionType() types.Type { return b.exprType }

// IsTemporary implements [Expr].
func (b *ExprBase) IsTemporary() bool { return b.isTemporary }

// MutateReference implements [Expr] as a no-op.
func (b *ExprBase) MutateReference(a Analyser) {}

// unsetIsTemporaryPost implements [Expr] as a no-op.
func (b *ExprBase) unsetIsTemporaryPost() {}

// ProducesTemporaryObject implements [Expr].
func (b *ExprBase) ProducesTemporaryObject() bool {
	if b.state < stateFlowAnalysed {
		panic(fmt.Sprintf("ast: ProducesTemporaryObject before memory-flow analysis at %v", b.pos))
	}
	return b.isTemporary && b.exprType.IsManaged()
}

// handleResult must be called from generate for every value the expression
// creates that must potentially be released. If the expression is still
// temporary and its type is managed, the value is registered with the code
// generator's end-of-statement release list.
//
// vtReference may carry a reference to the same value already resident in
// memory, so that no temporary spill is needed; pass the zero value when no
// such reference exists. Returns result unchanged.
func (b *ExprBase) handleResult(g *codegen.FuncGen, result, vtReference ir.Value) ir.Value {
	if b.isTemporary && b.exprType.IsManaged() {
		if b.registered {
			panic(fmt.Sprintf("ast: temporary registered twice at %v", b.pos))
		}
		b.registered = true
		v := result
		if !vtReference.Nil() {
			v = vtReference
		}
		g.AddTemporaryObject(v, b.exprType)
	}
	return result
}

// Analyse runs type analysis on e. It must be called exactly once per node;
// the resolved type is recorded on the node and returned.
func Analyse(e Expr, a Analyser, expectation types.Expectation) (types.Type, error) {
	b := e.base()
	if b.state != stateNew {
		panic(fmt.Sprintf("ast: analyse called twice on %T at %v", e, e.Pos()))
	}
	t, err := e.analyse(a, expectation)
	if err != nil {
		return types.NoReturn(), err
	}
	b.exprType = t
	b.state = stateAnalysed
	return t, nil
}

// AnalyseMemoryFlow runs memory-flow analysis on e with the category its
// parent determined for it. It must be called exactly once per node, after
// type analysis of the whole subtree.
func AnalyseMemoryFlow(e Expr, a FlowAnalyser, category FlowCategory) {
	b := e.base()
	if b.state != stateAnalysed {
		panic(fmt.Sprintf("ast: memory-flow analysis in state %d on %T at %v", b.state, e, e.Pos()))
	}
	e.analyseMemoryFlow(a, category)
	b.state = stateFlowAnalysed
}

// Generate lowers e, returning the produced value. It must be called exactly
// once per node, after both analysis passes.
func Generate(e Expr, g *codegen.FuncGen) ir.Value {
	b := e.base()
	if b.state != stateFlowAnalysed {
		panic(fmt.Sprintf("ast: generate in state %d on %T at %v", b.state, e, e.Pos()))
	}
	v := e.generate(g)
	b.state = stateGenerated
	return v
}

// UnsetIsTemporary informs e that its value has been claimed by a consumer:
// if it creates a temporary object, the object must not be released at the
// end of the statement. Exactly one consumer may claim a value.
func UnsetIsTemporary(e Expr) {
	b := e.base()
	if b.state == stateGenerated {
		panic(fmt.Sprintf("ast: UnsetIsTemporary after generation at %v", e.Pos()))
	}
	if !b.isTemporary {
		panic(fmt.Sprintf("ast: value at %v claimed by two consumers", e.Pos()))
	}
	b.isTemporary = false
	e.unsetIsTemporaryPost()
}

// Insert replaces the expression held in slot with a new node wrapping it.
// The wrapper adopts the wrapped node's source position, and the wrapped
// node remains reachable only as the wrapper's child.
func Insert[T Expr](slot *Expr, wrap func(child Expr) T) T {
	child := *slot
	wrapper := wrap(child)
	wrapper.base().pos = child.Pos()
	*slot = wrapper
	return wrapper
}
