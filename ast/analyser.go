package ast

import (
	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/types"
)

// Analyser is the slice of the expression analyser that nodes call back into
// during type analysis: analysing children, resolving syntactic types,
// allocating variables, and raising faults. The concrete implementation
// lives in the analysis package.
//
// All fault methods report the diagnostic to the surrounding handler and
// return an error that aborts analysis of the enclosing compilation unit.
type Analyser interface {
	// AnalyseExpr analyses the child held in slot under the given
	// expectation. The analyser may rewrite the tree through slot, e.g. to
	// insert an implicit conversion above the child.
	AnalyseExpr(slot *Expr, expectation types.Expectation) (types.Type, error)
	// ExpectType analyses the child held in slot and requires its type to be
	// usable where target is expected, inserting conversions as needed.
	ExpectType(target types.Type, slot *Expr) (types.Type, error)
	// ResolveType resolves a syntactic type reference to a type.
	ResolveType(node *TypeNode) (types.Type, error)
	// DeclareVariable allocates a variable in the enclosing scope and
	// returns its stable handle.
	DeclareVariable(name string, t types.Type) codegen.VariableID

	// CalleeType returns the type methods of the enclosing function run on.
	// ok is false outside an instance context.
	CalleeType() (types.Type, bool)
	// Function returns the symbol of the function being analysed.
	Function() *types.Function

	SemanticFault(pos SourcePos, format string, args ...any) error
	UnresolvedMemberFault(pos SourcePos, format string, args ...any) error
	UnhandledErrorFault(pos SourcePos, format string, args ...any) error
	SuperContextFault(pos SourcePos, format string, args ...any) error
}
