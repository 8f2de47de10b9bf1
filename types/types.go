// Package types models the slice of the Emojicode type system that the
// expression layer needs: just enough structure to record analysis results,
// answer managed-ness queries during memory-flow analysis, and drive
// lowering. The full type checker lives above this package and consumes the
// same values.
package types

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Kind discriminates the shapes of [Type].
type Kind int8

const (
	// KindNoReturn is the sentinel kind of expressions that never produce a
	// value. It is the expression type of every node before analysis.
	KindNoReturn Kind = iota
	KindClass
	KindValueType
	KindOptional
	KindCallable
	KindMetaType
	KindBoolean
	KindInteger
	KindMemorySize
)

// Type describes the type of a value. Types are immutable values; composite
// types share their component types structurally.
type Type struct {
	kind    Kind
	class   *Class
	valueTy *ValueTypeDef
	inner   *Type  // optional payload or metatype instance type
	params  []Type // callable parameters
	ret     *Type  // callable return type
}

// NoReturn returns the "never produces a value" sentinel type.
func NoReturn() Type {
	return Type{kind: KindNoReturn}
}

// Boolean returns the boolean type.
func Boolean() Type {
	return Type{kind: KindBoolean}
}

// Integer returns the integer type.
func Integer() Type {
	return Type{kind: KindInteger}
}

// MemorySize returns the platform memory-size type, the result type of a
// size-of expression.
func MemorySize() Type {
	return Type{kind: KindMemorySize}
}

// ClassInstance returns the type of instances of the given class.
func ClassInstance(class *Class) Type {
	return Type{kind: KindClass, class: class}
}

// Value returns the type of instances of the given value type.
func Value(def *ValueTypeDef) Type {
	return Type{kind: KindValueType, valueTy: def}
}

// Optional returns the optional type carrying payload, Emojicode's 🍬 type.
func Optional(payload Type) Type {
	if payload.kind == KindOptional || payload.kind == KindNoReturn {
		panic(fmt.Sprintf("types: cannot make %v optional", payload))
	}
	return Type{kind: KindOptional, inner: &payload}
}

// Callable returns the type of a first-class callable with the given
// parameter and return types.
func Callable(params []Type, ret Type) Type {
	return Type{kind: KindCallable, params: params, ret: &ret}
}

// MetaType returns the type of the reified type object for instance.
func MetaType(instance Type) Type {
	return Type{kind: KindMetaType, inner: &instance}
}

// Kind returns this type's kind.
func (t Type) Kind() Kind { return t.kind }

// IsNoReturn reports whether this is the sentinel "never produces a value"
// type.
func (t Type) IsNoReturn() bool { return t.kind == KindNoReturn }

// IsManaged reports whether values of this type are reference counted or
// contain reference-counted parts, i.e. whether a temporary of this type
// must be released at the end of its statement.
func (t Type) IsManaged() bool {
	switch t.kind {
	case KindClass, KindCallable:
		return true
	case KindValueType:
		return t.valueTy.managed
	case KindOptional:
		return t.inner.IsManaged()
	default:
		return false
	}
}

// Class returns the class of a class-instance type, or nil.
func (t Type) Class() *Class {
	return t.class
}

// ValueTypeDef returns the definition of a value type, or nil.
func (t Type) ValueTypeDef() *ValueTypeDef {
	return t.valueTy
}

// OptionalPayload returns the payload type of an optional. ok is false if
// this type is not an optional.
func (t Type) OptionalPayload() (Type, bool) {
	if t.kind != KindOptional {
		return NoReturn(), false
	}
	return *t.inner, true
}

// Parameters returns the parameter types of a callable type. Valid only for
// KindCallable.
func (t Type) Parameters() []Type { return t.params }

// ReturnType returns the return type of a callable type. Valid only for
// KindCallable.
func (t Type) ReturnType() Type { return *t.ret }

// MetaTypeInstance returns the instance type a metatype reifies. Valid only
// for KindMetaType.
func (t Type) MetaTypeInstance() Type { return *t.inner }

// Equal reports structural type equality.
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindClass:
		return t.class == other.class
	case KindValueType:
		return t.valueTy == other.valueTy
	case KindOptional, KindMetaType:
		return t.inner.Equal(*other.inner)
	case KindCallable:
		if len(t.params) != len(other.params) || !t.ret.Equal(*other.ret) {
			return false
		}
		for i, p := range t.params {
			if !p.Equal(other.params[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// AssignableTo reports whether a value of this type can be used where target
// is expected. Beyond equality this covers class upcasts and wrapping a
// value into an optional of a compatible payload.
func (t Type) AssignableTo(target Type) bool {
	if t.Equal(target) {
		return true
	}
	if t.kind == KindClass && target.kind == KindClass {
		for c := t.class; c != nil; c = c.superclass {
			if c == target.class {
				return true
			}
		}
		return false
	}
	if payload, ok := target.OptionalPayload(); ok && t.kind != KindOptional {
		return t.AssignableTo(payload)
	}
	return false
}

// Size returns the storage size of a value of this type in bytes, and false
// if the type has no resolvable size (the sentinel, or a class whose layout
// is not yet complete).
func (t Type) Size() (uint64, bool) {
	switch t.kind {
	case KindBoolean:
		return 1, true
	case KindInteger, KindMemorySize, KindClass, KindMetaType:
		// References and type objects are pointer sized.
		return 8, true
	case KindCallable:
		// Function pointer plus capture reference.
		return 16, true
	case KindValueType:
		if t.valueTy.size == 0 {
			return 0, false
		}
		return t.valueTy.size, true
	case KindOptional:
		size, ok := t.inner.Size()
		if !ok {
			return 0, false
		}
		align, _ := t.inner.Alignment()
		// Payload followed by the presence flag, padded out to alignment.
		return alignUp(size+1, align), true
	default:
		return 0, false
	}
}

// Alignment returns the alignment of a value of this type in bytes, and
// false if the type has no resolvable layout.
func (t Type) Alignment() (uint64, bool) {
	switch t.kind {
	case KindBoolean:
		return 1, true
	case KindInteger, KindMemorySize, KindClass, KindMetaType, KindCallable:
		return 8, true
	case KindValueType:
		if t.valueTy.align == 0 {
			return 0, false
		}
		return t.valueTy.align, true
	case KindOptional:
		return t.inner.Alignment()
	default:
		return 0, false
	}
}

// String renders the type for diagnostics.
func (t Type) String() string {
	switch t.kind {
	case KindNoReturn:
		return "no return"
	case KindClass:
		return t.class.name
	case KindValueType:
		return t.valueTy.name
	case KindOptional:
		return "🍬" + t.inner.String()
	case KindCallable:
		var b strings.Builder
		b.WriteString("🍇")
		for i, p := range t.params {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString("➡️")
		b.WriteString(t.ret.String())
		return b.String()
	case KindMetaType:
		return "🔳" + t.inner.String()
	case KindBoolean:
		return "👌"
	case KindInteger:
		return "🔢"
	case KindMemorySize:
		return "📏"
	default:
		return fmt.Sprintf("types.Kind(%d)", t.kind)
	}
}

// alignUp rounds n up to the next multiple of align.
func alignUp[T constraints.Unsigned](n, align T) T {
	if align == 0 {
		return n
	}
	return (n + align - 1) / align * align
}
