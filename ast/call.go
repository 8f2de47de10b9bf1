package ast

import (
	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/types"
)

// Call is an expression representing an invocation that may additionally
// produce a value on a secondary error channel.
type Call interface {
	Expr

	// ErrorType returns the error payload type, or the no-return sentinel
	// when this specific call cannot error.
	ErrorType() types.Type
	// IsErrorProne reports whether this call can produce an error.
	IsErrorProne() bool
	// SetHandledError informs the call that a possible error return is dealt
	// with by the surrounding context.
	SetHandledError()
	// SetErrorPointer associates caller-owned storage that generated code
	// writes the error indicator into.
	SetErrorPointer(dest ir.Value)
	// ErrorPointer returns the associated error destination, if any.
	ErrorPointer() (ir.Value, bool)
}

// CallBase carries the error-obligation state shared by all call nodes and
// is embedded by every call-like node kind.
type CallBase struct {
	ExprBase

	handledError bool
	errorDest    ir.Value
}

func newCallBase(pos SourcePos) CallBase {
	return CallBase{ExprBase: newExprBase(pos)}
}

// SetHandledError implements [Call].
func (b *CallBase) SetHandledError() { b.handledError = true }

// HandledError reports whether the surrounding context accounted for a
// possible error of this call.
func (b *CallBase) HandledError() bool { return b.handledError }

// SetErrorPointer implements [Call]. The storage is owned by the caller, not
// by this node.
func (b *CallBase) SetErrorPointer(dest ir.Value) { b.errorDest = dest }

// ErrorPointer implements [Call].
func (b *CallBase) ErrorPointer() (ir.Value, bool) {
	return b.errorDest, !b.errorDest.Nil()
}

// ensureErrorIsHandled enforces the error obligation near the end of a call
// node's analysis: an error-prone call must have been marked handled, or
// have an error destination, before code generation may begin.
func (b *CallBase) ensureErrorIsHandled(a Analyser, c Call) error {
	if !c.IsErrorProne() || b.handledError {
		return nil
	}
	if _, ok := b.ErrorPointer(); ok {
		return nil
	}
	return a.UnhandledErrorFault(c.Pos(), "call may raise a %v error that nothing handles", c.ErrorType())
}

// errorDestination picks the storage generated code writes the error
// indicator into. When the caller supplied no destination, the default
// propagation strategy applies: the error is written to the enclosing
// function's own error channel and rethrown, so rethrow is true and the
// caller of this method must emit the rethrow check.
func (b *CallBase) errorDestination(g *codegen.FuncGen, c Call) (dest ir.Value, rethrow bool) {
	if !c.IsErrorProne() {
		return ir.Value(0), false
	}
	if dest, ok := b.ErrorPointer(); ok {
		return dest, false
	}
	channel, ok := g.ErrorChannel()
	if !ok {
		// ensureErrorIsHandled and the analyser's rethrow check keep this
		// path from being reached.
		panic("ast: error-prone call without destination in a non-error-prone function")
	}
	return channel, true
}

// emitRethrow emits the default propagation: if the channel holds an error,
// terminate the enclosing function's normal path and surface it.
func emitRethrow(g *codegen.FuncGen, channel ir.Value) {
	raised := g.Load(types.Boolean(), channel)
	rethrow := g.NewBlock("rethrow")
	cont := g.NewBlock("cont")
	g.CondBr(raised, rethrow, cont)
	g.SetInsertBlock(rethrow)
	g.RetError(channel)
	g.SetInsertBlock(cont)
}
