package ast

import (
	"fmt"

	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/types"
)

// Arguments is the syntactic payload of a call-like expression: positional
// argument expressions, generic type arguments, and the call's mood. It
// holds no analysis logic of its own; the owning call node drives analysis
// of each element in declaration order and writes results back.
type Arguments struct {
	node

	mood            types.Mood
	args            []Expr
	genericArgs     []*TypeNode
	genericArgTypes []types.Type
	genericsSet     bool
}

// NewArguments creates an empty, imperative argument list.
func NewArguments(pos SourcePos) *Arguments {
	return &Arguments{node: node{pos: pos}}
}

// NewArgumentsWithMood creates an empty argument list with the given mood.
func NewArgumentsWithMood(pos SourcePos, mood types.Mood) *Arguments {
	return &Arguments{node: node{pos: pos}, mood: mood}
}

// Mood returns the call's grammatical form.
func (a *Arguments) Mood() types.Mood { return a.mood }

// SetMood sets the call's grammatical form.
func (a *Arguments) SetMood(mood types.Mood) { a.mood = mood }

// AddArgument appends a positional argument, preserving order.
func (a *Arguments) AddArgument(arg Expr) {
	a.args = append(a.args, arg)
}

// Args returns the positional arguments in declaration order. Call nodes may
// rewrite elements in place during analysis.
func (a *Arguments) Args() []Expr { return a.args }

// AddGenericArgument appends a generic type argument, preserving order.
func (a *Arguments) AddGenericArgument(t *TypeNode) {
	a.genericArgs = append(a.genericArgs, t)
}

// GenericArguments returns the generic type arguments as written.
func (a *Arguments) GenericArguments() []*TypeNode { return a.genericArgs }

// SetGenericArgumentTypes records the resolved generic argument types. The
// list must match the syntactic generic arguments one to one; it is never
// partially populated.
func (a *Arguments) SetGenericArgumentTypes(resolved []types.Type) {
	if len(resolved) != len(a.genericArgs) {
		panic(fmt.Sprintf("ast: %d generic argument types for %d generic arguments at %v",
			len(resolved), len(a.genericArgs), a.pos))
	}
	a.genericArgTypes = resolved
	a.genericsSet = true
}

// GenericArgumentTypes returns the resolved generic argument types, empty
// until [SetGenericArgumentTypes] ran.
func (a *Arguments) GenericArgumentTypes() []types.Type { return a.genericArgTypes }

// analyse drives analysis of the argument list against the parameter types
// of the resolved callee, and resolves the generic type arguments.
func (a *Arguments) analyse(an Analyser, params []types.Type, callPos SourcePos) error {
	if len(a.args) != len(params) {
		return an.SemanticFault(callPos, "expected %d arguments, got %d", len(params), len(a.args))
	}
	for i, param := range params {
		if _, err := an.ExpectType(param, &a.args[i]); err != nil {
			return err
		}
	}
	if len(a.genericArgs) > 0 && !a.genericsSet {
		resolved := make([]types.Type, len(a.genericArgs))
		for i, node := range a.genericArgs {
			t, err := an.ResolveType(node)
			if err != nil {
				return err
			}
			resolved[i] = t
		}
		a.SetGenericArgumentTypes(resolved)
	}
	return nil
}

// analyseMemoryFlow hands each argument to the flow pass. Arguments are
// borrowed for the duration of the call: a temporary argument stays the
// statement's to release.
func (a *Arguments) analyseMemoryFlow(fa FlowAnalyser) {
	for _, arg := range a.args {
		fa.AnalyseExpr(arg, FlowBorrowing)
	}
}

// generate lowers all arguments in order.
func (a *Arguments) generate(g *codegen.FuncGen) []ir.Value {
	vals := make([]ir.Value, len(a.args))
	for i, arg := range a.args {
		vals[i] = Generate(arg, g)
	}
	return vals
}
