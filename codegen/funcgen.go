// Package codegen provides the code-generation context that expression nodes
// lower themselves through: an IR builder plus the bookkeeping the
// memory-flow contract needs, most importantly the end-of-statement release
// list for temporary objects.
package codegen

import (
	"fmt"

	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/types"
)

// VariableID is a stable handle for a local variable, allocated by the
// analyser's scope and resolved to storage here.
type VariableID int

// FuncGen builds the IR for one function body. It is owned by exactly one
// pass pipeline; nothing in it is safe for concurrent use.
type FuncGen struct {
	fn    *ir.Func
	block *ir.Block

	vars map[VariableID]ir.Value

	// Values produced by expressions that no consumer claimed. They are
	// released, newest first, when the enclosing statement ends.
	temporaries []temporary

	self     ir.Value
	errorRet ir.Value // storage of the enclosing function's error channel
}

type temporary struct {
	value ir.Value
	ty    types.Type
}

// Option configures a FuncGen.
type Option func(*FuncGen)

// WithSelf provides the callee value for functions that run on an instance,
// materialized as an implicit first value of the given type.
func WithSelf(t types.Type) Option {
	return func(g *FuncGen) {
		g.self = g.emit(ir.Instr{Op: ir.OpSelf, Type: t})
	}
}

// WithErrorChannel allocates the enclosing function's own error channel, the
// default destination error-prone calls propagate through when the caller
// supplied no explicit destination.
func WithErrorChannel(errorType types.Type) Option {
	return func(g *FuncGen) {
		g.errorRet = g.emit(ir.Instr{Op: ir.OpAlloca, Type: errorType})
	}
}

// NewFuncGen creates a generator for a function body.
func NewFuncGen(name string, opts ...Option) *FuncGen {
	g := &FuncGen{
		fn:   ir.NewFunc(name),
		vars: make(map[VariableID]ir.Value),
	}
	g.block = g.fn.Entry()
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Func returns the IR built so far.
func (g *FuncGen) Func() *ir.Func { return g.fn }

func (g *FuncGen) emit(instr ir.Instr) ir.Value {
	return g.fn.Append(g.block, instr)
}

// NewBlock creates a new basic block without moving the insert point.
func (g *FuncGen) NewBlock(name string) *ir.Block {
	return g.fn.NewBlock(name)
}

// SetInsertBlock moves the insert point to the given block.
func (g *FuncGen) SetInsertBlock(b *ir.Block) {
	g.block = b
}

// InsertBlock returns the current insert point.
func (g *FuncGen) InsertBlock() *ir.Block { return g.block }

// Self returns the callee value. Panics if this function has none; super
// dispatch outside an instance context is rejected during analysis.
func (g *FuncGen) Self() ir.Value {
	if g.self.Nil() {
		panic("codegen: function has no callee value")
	}
	return g.self
}

// ErrorChannel returns the enclosing function's error channel storage. ok is
// false if the function is not error-prone.
func (g *FuncGen) ErrorChannel() (ir.Value, bool) {
	return g.errorRet, !g.errorRet.Nil()
}

// ConstInt emits an integer constant.
func (g *FuncGen) ConstInt(v int64) ir.Value {
	return g.emit(ir.Instr{Op: ir.OpConstInt, Type: types.Integer(), Const: v})
}

// ConstBool emits a boolean constant.
func (g *FuncGen) ConstBool(v bool) ir.Value {
	c := int64(0)
	if v {
		c = 1
	}
	return g.emit(ir.Instr{Op: ir.OpConstBool, Type: types.Boolean(), Const: c})
}

// SizeOf emits the compile-time size of t as a memory-size constant.
func (g *FuncGen) SizeOf(t types.Type) ir.Value {
	size, ok := t.Size()
	if !ok {
		panic(fmt.Sprintf("codegen: size of %v is not resolvable", t))
	}
	return g.emit(ir.Instr{Op: ir.OpSizeOf, Type: types.MemorySize(), Const: int64(size)})
}

// TypeObject emits a reference to the runtime type object reifying t.
func (g *FuncGen) TypeObject(t types.Type) ir.Value {
	return g.emit(ir.Instr{Op: ir.OpTypeObj, Type: t})
}

// Alloca emits stack storage for a value of t.
func (g *FuncGen) Alloca(t types.Type) ir.Value {
	return g.emit(ir.Instr{Op: ir.OpAlloca, Type: t})
}

// Load emits a load of a value of t from storage.
func (g *FuncGen) Load(t types.Type, storage ir.Value) ir.Value {
	return g.emit(ir.Instr{Op: ir.OpLoad, Type: t, Args: []ir.Value{storage}})
}

// Store emits a store of value into storage.
func (g *FuncGen) Store(value, storage ir.Value) {
	g.emit(ir.Instr{Op: ir.OpStore, Type: types.NoReturn(), Args: []ir.Value{value, storage}})
}

// CallSuper emits a non-dynamic call of fn on the superclass with self as
// the callee.
func (g *FuncGen) CallSuper(fn *types.Function, self ir.Value, args []ir.Value, errorDest ir.Value) ir.Value {
	all := append([]ir.Value{self}, args...)
	if !errorDest.Nil() {
		all = append(all, errorDest)
	}
	ret := fn.ReturnType()
	if fn.IsInitializer() {
		// A super initializer call initializes self in place.
		ret = types.NoReturn()
	}
	return g.emit(ir.Instr{Op: ir.OpCallSuper, Type: ret, Fn: fn, Args: all})
}

// CallIndirect emits a call of a first-class callable value.
func (g *FuncGen) CallIndirect(callable ir.Value, returnType types.Type, args []ir.Value) ir.Value {
	all := append([]ir.Value{callable}, args...)
	return g.emit(ir.Instr{Op: ir.OpCallIndirect, Type: returnType, Args: all})
}

// ExtractFlag emits the presence flag of an optional value.
func (g *FuncGen) ExtractFlag(optional ir.Value) ir.Value {
	return g.emit(ir.Instr{Op: ir.OpExtractFlag, Type: types.Boolean(), Args: []ir.Value{optional}})
}

// ExtractPayload emits the payload of an optional value.
func (g *FuncGen) ExtractPayload(payload types.Type, optional ir.Value) ir.Value {
	return g.emit(ir.Instr{Op: ir.OpExtractPayload, Type: payload, Args: []ir.Value{optional}})
}

// SomeValue emits the wrapping of payload into a present optional value.
func (g *FuncGen) SomeValue(optional types.Type, payload ir.Value) ir.Value {
	return g.emit(ir.Instr{Op: ir.OpSomeValue, Type: optional, Args: []ir.Value{payload}})
}

// NoValue emits an absent optional value of the given type.
func (g *FuncGen) NoValue(optional types.Type) ir.Value {
	return g.emit(ir.Instr{Op: ir.OpNoValue, Type: optional})
}

// Closure emits the materialization of a callable object.
func (g *FuncGen) Closure(signature types.Type) ir.Value {
	return g.emit(ir.Instr{Op: ir.OpClosure, Type: signature})
}

// Release emits a reference-count decrement.
func (g *FuncGen) Release(value ir.Value) {
	g.emit(ir.Instr{Op: ir.OpRelease, Type: types.NoReturn(), Args: []ir.Value{value}})
}

// Br emits an unconditional branch.
func (g *FuncGen) Br(target *ir.Block) {
	g.emit(ir.Instr{Op: ir.OpBr, Type: types.NoReturn(), Blocks: []*ir.Block{target}})
}

// CondBr emits a conditional branch.
func (g *FuncGen) CondBr(cond ir.Value, then, otherwise *ir.Block) {
	g.emit(ir.Instr{Op: ir.OpCondBr, Type: types.NoReturn(), Args: []ir.Value{cond}, Blocks: []*ir.Block{then, otherwise}})
}

// Ret emits a return. value may be nil for functions without a result.
func (g *FuncGen) Ret(value ir.Value) {
	in := ir.Instr{Op: ir.OpRet, Type: types.NoReturn()}
	if !value.Nil() {
		in.Args = []ir.Value{value}
	}
	g.emit(in)
}

// RetError emits the abnormal return that surfaces the error in the given
// channel storage to the caller.
func (g *FuncGen) RetError(errorChannel ir.Value) {
	g.emit(ir.Instr{Op: ir.OpRetError, Type: types.NoReturn(), Args: []ir.Value{errorChannel}})
}

// BindVariable associates a variable handle with its storage.
func (g *FuncGen) BindVariable(id VariableID, storage ir.Value) {
	if _, dup := g.vars[id]; dup {
		panic(fmt.Sprintf("codegen: variable %d bound twice", id))
	}
	g.vars[id] = storage
}

// VariableStorage resolves a variable handle to its storage.
func (g *FuncGen) VariableStorage(id VariableID) ir.Value {
	storage, ok := g.vars[id]
	if !ok {
		panic(fmt.Sprintf("codegen: variable %d has no storage", id))
	}
	return storage
}

// AddTemporaryObject registers a managed value for release at the end of the
// current statement. Expression nodes reach this through their handleResult
// path; nothing else should call it.
func (g *FuncGen) AddTemporaryObject(value ir.Value, t types.Type) {
	for _, tmp := range g.temporaries {
		if tmp.value == value {
			panic("codegen: value registered as temporary twice")
		}
	}
	g.temporaries = append(g.temporaries, temporary{value: value, ty: t})
}

// TemporaryCount returns the number of values currently registered for
// end-of-statement release.
func (g *FuncGen) TemporaryCount() int {
	return len(g.temporaries)
}

// ReleaseTemporaries emits releases for all registered temporaries, newest
// first, and clears the list. The statement driver calls this once per
// statement.
func (g *FuncGen) ReleaseTemporaries() {
	for i := len(g.temporaries) - 1; i >= 0; i-- {
		g.Release(g.temporaries[i].value)
	}
	g.temporaries = g.temporaries[:0]
}
