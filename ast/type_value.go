package ast

import (
	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/types"
)

// TypeAsValue reifies a type as an ordinary value (🔳): its result is the
// runtime type object for the referenced type.
type TypeAsValue struct {
	ExprBase

	typeNode *TypeNode
	instance types.Type
}

// NewTypeAsValue creates a reification of the referenced type.
func NewTypeAsValue(typeNode *TypeNode, pos SourcePos) *TypeAsValue {
	return &TypeAsValue{ExprBase: newExprBase(pos), typeNode: typeNode}
}

func (t *TypeAsValue) analyse(a Analyser, expectation types.Expectation) (types.Type, error) {
	instance, err := a.ResolveType(t.typeNode)
	if err != nil {
		return types.NoReturn(), err
	}
	t.instance = instance
	return types.MetaType(instance), nil
}

// Type objects are not reference counted, so the node takes no part in
// memory flow.
func (t *TypeAsValue) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {}

func (t *TypeAsValue) generate(g *codegen.FuncGen) ir.Value {
	return g.TypeObject(t.instance)
}

// SizeOf queries the storage size of a type (📏). The size is computed at
// compile time; the expression lowers to a constant.
type SizeOf struct {
	ExprBase

	typeNode *TypeNode
	resolved types.Type
}

// NewSizeOf creates a size query for the referenced type.
func NewSizeOf(typeNode *TypeNode, pos SourcePos) *SizeOf {
	return &SizeOf{ExprBase: newExprBase(pos), typeNode: typeNode}
}

func (s *SizeOf) analyse(a Analyser, expectation types.Expectation) (types.Type, error) {
	resolved, err := a.ResolveType(s.typeNode)
	if err != nil {
		return types.NoReturn(), err
	}
	if _, ok := resolved.Size(); !ok {
		return types.NoReturn(), a.SemanticFault(s.typeNode.Pos(),
			"size of %v cannot be determined", resolved)
	}
	s.resolved = resolved
	return types.MemorySize(), nil
}

// A size never produces a managed value; the node takes no part in memory
// flow.
func (s *SizeOf) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {}

func (s *SizeOf) generate(g *codegen.FuncGen) ir.Value {
	return g.SizeOf(s.resolved)
}
