package analysis

import (
	"github.com/tidwall/btree"

	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/types"
)

// Scope tracks the variables declared in one function body. Variable IDs
// are dense and stable for the lifetime of the scope, so code generation
// can index storage by them.
type Scope struct {
	byName btree.Map[string, codegen.VariableID]
	vars   []variable
}

type variable struct {
	name string
	ty   types.Type
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// Declare adds a variable and returns its ID. Declaring a name again
// shadows the earlier variable; both retain their IDs.
func (s *Scope) Declare(name string, t types.Type) codegen.VariableID {
	id := codegen.VariableID(len(s.vars))
	s.vars = append(s.vars, variable{name: name, ty: t})
	s.byName.Set(name, id)
	return id
}

// Lookup resolves a name to the most recently declared variable with that
// name.
func (s *Scope) Lookup(name string) (codegen.VariableID, bool) {
	return s.byName.Get(name)
}

// VariableType returns the declared type of id. It panics if id was not
// issued by this scope.
func (s *Scope) VariableType(id codegen.VariableID) types.Type {
	return s.vars[id].ty
}

// VariableName returns the declared name of id. It panics if id was not
// issued by this scope.
func (s *Scope) VariableName(id codegen.VariableID) string {
	return s.vars[id].name
}

// Len reports how many variables have been declared, shadowed ones
// included.
func (s *Scope) Len() int {
	return len(s.vars)
}
