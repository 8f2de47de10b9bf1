package types

// Expectation is the ambient type hint handed to expression analysis. It is
// advice for inference and coercion, not a constraint the expression must
// satisfy; the expression's exact type is whatever analysis computes.
type Expectation struct {
	ty Type
	ok bool
}

// Expect returns an expectation for the given type.
func Expect(t Type) Expectation {
	return Expectation{ty: t, ok: true}
}

// NoExpectation returns the absent expectation.
func NoExpectation() Expectation {
	return Expectation{}
}

// Type returns the expected type, if one was provided.
func (e Expectation) Type() (Type, bool) {
	return e.ty, e.ok
}
