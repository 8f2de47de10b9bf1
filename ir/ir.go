// Package ir defines the instruction-level intermediate representation that
// expression lowering targets. It is deliberately small: a function is a list
// of basic blocks, a block is a list of instructions, and an instruction's
// operands are compressed arena pointers to earlier instructions.
//
// Reference-count releases appear explicitly in this IR; the expression
// layer's memory-flow analysis decides where they go, and the backend below
// this package merely translates them. Retains are the business of the
// statement layer above, which owns assignment and return, so this layer
// has no instruction for them.
package ir

import (
	"github.com/joeskeen/emojicode/internal/arena"
	"github.com/joeskeen/emojicode/types"
)

// Op identifies an instruction.
type Op uint8

const (
	OpInvalid Op = iota

	OpConstInt  // integer constant (Const field)
	OpConstBool // boolean constant (Const field, 0 or 1)
	OpSizeOf    // compile-time size of a type, materialized as a constant
	OpTypeObj   // reference to the runtime type object for a type

	OpSelf   // the implicit callee value of an instance function
	OpAlloca // stack storage for a value of Type
	OpLoad   // load from storage operand
	OpStore  // store operand 0 into storage operand 1

	OpCallIndirect // call of callable value Args[0] with Args[1:]
	OpCallSuper    // non-dynamic call of Fn on superclass; Args[0] is self

	OpExtractFlag    // presence flag of an optional value
	OpExtractPayload // payload of an optional value
	OpSomeValue      // wrap Args[0] into a present optional
	OpNoValue        // an absent optional of Type
	OpClosure        // materialize a callable object of Type

	OpRelease // decrement reference count of operand

	OpBr       // unconditional branch to Blocks[0]
	OpCondBr   // branch on Args[0] to Blocks[0] else Blocks[1]
	OpRet      // return Args[0], or nothing if no operands
	OpRetError // abort the normal path, surfacing the error in Args[0]
)

var opNames = [...]string{
	OpInvalid:        "invalid",
	OpConstInt:       "const",
	OpConstBool:      "const",
	OpSizeOf:         "sizeof",
	OpTypeObj:        "typeobj",
	OpSelf:           "self",
	OpAlloca:         "alloca",
	OpLoad:           "load",
	OpStore:          "store",
	OpCallIndirect:   "callind",
	OpCallSuper:      "callsuper",
	OpExtractFlag:    "extractflag",
	OpExtractPayload: "extractpayload",
	OpSomeValue:      "some",
	OpNoValue:        "novalue",
	OpClosure:        "closure",
	OpRelease:        "release",
	OpBr:             "br",
	OpCondBr:         "condbr",
	OpRet:            "ret",
	OpRetError:       "reterror",
}

// String returns the op's mnemonic.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "op?"
}

// Value is a compressed reference to an instruction's result. The zero value
// means "no value".
type Value arena.Pointer[Instr]

// Nil returns whether this is the "no value" reference.
func (v Value) Nil() bool {
	return arena.Pointer[Instr](v).Nil()
}

// Instr is a single IR instruction.
type Instr struct {
	Op     Op
	Type   types.Type      // result type; the no-return sentinel for void ops
	Args   []Value         // operand values
	Blocks []*Block        // branch targets
	Const  int64           // immediate for constants
	Fn     *types.Function // callee for super calls
}

// Block is a basic block: a named, ordered list of instructions.
type Block struct {
	Name   string
	Instrs []Value
}

// Func owns the instructions of one lowered function body. All values in a
// Func live on its arena; values from different Funcs must never be mixed,
// which the single-owner pass pipeline guarantees.
type Func struct {
	Name   string
	Blocks []*Block

	instrs arena.Arena[Instr]
}

// NewFunc creates an empty function with an entry block.
func NewFunc(name string) *Func {
	f := &Func{Name: name}
	f.Blocks = []*Block{{Name: "entry"}}
	return f
}

// Entry returns the function's entry block.
func (f *Func) Entry() *Block {
	return f.Blocks[0]
}

// NewBlock appends a new basic block with the given name.
func (f *Func) NewBlock(name string) *Block {
	b := &Block{Name: name}
	f.Blocks = append(f.Blocks, b)
	return b
}

// Append allocates instr on the function's arena and appends it to block,
// returning its value reference.
func (f *Func) Append(block *Block, instr Instr) Value {
	v := Value(f.instrs.New(instr))
	block.Instrs = append(block.Instrs, v)
	return v
}

// InstrOf returns the instruction a value refers to.
func (f *Func) InstrOf(v Value) *Instr {
	return arena.Pointer[Instr](v).In(&f.instrs)
}

// NumInstrs returns the number of instructions in the function.
func (f *Func) NumInstrs() int {
	return f.instrs.Len()
}
