package ir

import (
	"fmt"
	"strings"
)

// String renders the function as text. The format is stable and is what the
// golden dumps under the repository's testdata directory compare against.
func (f *Func) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "func %s:\n", f.Name)
	for _, block := range f.Blocks {
		fmt.Fprintf(&b, "%s:\n", block.Name)
		for _, v := range block.Instrs {
			b.WriteString("  ")
			b.WriteString(f.formatInstr(v))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (f *Func) formatInstr(v Value) string {
	in := f.InstrOf(v)

	var b strings.Builder
	if producesValue(in) {
		fmt.Fprintf(&b, "%%%d = ", uint32(v))
	}
	b.WriteString(in.Op.String())

	switch in.Op {
	case OpConstInt:
		fmt.Fprintf(&b, " %d", in.Const)
	case OpConstBool:
		fmt.Fprintf(&b, " %t", in.Const != 0)
	case OpSizeOf, OpTypeObj, OpAlloca, OpNoValue, OpClosure:
		fmt.Fprintf(&b, " %v", in.Type)
	case OpCallSuper:
		fmt.Fprintf(&b, " %s%v", in.Fn.Name(), in.Fn.Mood())
	}

	for _, arg := range in.Args {
		fmt.Fprintf(&b, " %%%d", uint32(arg))
	}
	for _, target := range in.Blocks {
		fmt.Fprintf(&b, " %s", target.Name)
	}
	return b.String()
}

func producesValue(in *Instr) bool {
	switch in.Op {
	case OpStore, OpRelease, OpBr, OpCondBr, OpRet, OpRetError:
		return false
	default:
		return !in.Type.IsNoReturn() || in.Op == OpAlloca
	}
}
