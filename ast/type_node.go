package ast

import "github.com/joeskeen/emojicode/types"

// TypeNode is a syntactic type reference: a type name as written in source,
// resolved to a type during analysis through [Analyser.ResolveType].
type TypeNode struct {
	node

	name     string
	resolved types.Type
	ok       bool
}

// NewTypeNode creates a syntactic reference to the named type.
func NewTypeNode(name string, pos SourcePos) *TypeNode {
	return &TypeNode{node: node{pos: pos}, name: name}
}

// Name returns the type name as written.
func (t *TypeNode) Name() string { return t.name }

// Resolved returns the resolved type, if resolution has happened.
func (t *TypeNode) Resolved() (types.Type, bool) {
	return t.resolved, t.ok
}

// SetResolved records the resolution result. The analyser calls this once.
func (t *TypeNode) SetResolved(resolved types.Type) {
	if t.ok {
		panic("ast: type node resolved twice at " + t.pos.String())
	}
	t.resolved = resolved
	t.ok = true
}
