package types

import (
	"github.com/tidwall/btree"
)

// Mood is the grammatical form of a call: it selects which member of a type
// a name resolves to. Imperative (❗) is the default; interrogative (❓)
// selects the querying form of a method.
type Mood int8

const (
	Imperative Mood = iota
	Interrogative
)

// String returns the mood's sigil.
func (m Mood) String() string {
	if m == Interrogative {
		return "❓"
	}
	return "❗"
}

// Function is a callable member of a class: a method or an initializer.
// Functions live in class member tables and outlive any one syntax tree;
// expression nodes reference them but never own them.
type Function struct {
	name        string
	mood        Mood
	owner       *Class
	params      []Type
	returnType  Type
	errorType   Type // NoReturn when the function cannot error
	initializer bool
}

// NewFunction creates a method symbol. errorType is the type carried on the
// error channel; pass [NoReturn] for a function that cannot error.
func NewFunction(name string, mood Mood, params []Type, returnType, errorType Type) *Function {
	return &Function{name: name, mood: mood, params: params, returnType: returnType, errorType: errorType}
}

// NewInitializer creates an initializer symbol for a class. Initializers are
// always imperative; their return type is filled in when they are added to
// their class.
func NewInitializer(name string, params []Type, errorType Type) *Function {
	return &Function{name: name, params: params, returnType: NoReturn(), errorType: errorType, initializer: true}
}

func (f *Function) Name() string       { return f.name }
func (f *Function) Mood() Mood         { return f.mood }
func (f *Function) Owner() *Class      { return f.owner }
func (f *Function) Parameters() []Type { return f.params }
func (f *Function) ReturnType() Type   { return f.returnType }

// ErrorType returns the type of the value carried on the error channel, or
// the no-return sentinel if this function cannot error.
func (f *Function) ErrorType() Type { return f.errorType }

// IsErrorProne reports whether calling this function can produce an error.
func (f *Function) IsErrorProne() bool { return !f.errorType.IsNoReturn() }

// IsInitializer reports whether this function is an initializer.
func (f *Function) IsInitializer() bool { return f.initializer }

// Class is a reference type with single inheritance. Member tables are
// ordered by name so that lookups and diagnostics are deterministic.
type Class struct {
	name       string
	superclass *Class

	methods      btree.Map[string, *Function]
	initializers btree.Map[string, *Function]
}

// NewClass creates a class. superclass may be nil.
func NewClass(name string, superclass *Class) *Class {
	return &Class{name: name, superclass: superclass}
}

func (c *Class) Name() string       { return c.name }
func (c *Class) Superclass() *Class { return c.superclass }

// AddMethod registers a method on this class. Methods are keyed by name and
// mood; registering the same pair twice panics, since duplicate members are
// caught long before this layer runs.
func (c *Class) AddMethod(f *Function) *Function {
	key := memberKey(f.name, f.mood)
	if _, dup := c.methods.Get(key); dup {
		panic("types: duplicate method " + key + " on " + c.name)
	}
	f.owner = c
	c.methods.Set(key, f)
	return f
}

// AddInitializer registers an initializer on this class. The initializer's
// return type becomes an instance of this class.
func (c *Class) AddInitializer(f *Function) *Function {
	if !f.initializer {
		panic("types: AddInitializer with non-initializer " + f.name)
	}
	if _, dup := c.initializers.Get(f.name); dup {
		panic("types: duplicate initializer " + f.name + " on " + c.name)
	}
	f.owner = c
	f.returnType = ClassInstance(c)
	c.initializers.Set(f.name, f)
	return f
}

// LookupMethod resolves a method by name and mood on this class, walking up
// the superclass chain.
func (c *Class) LookupMethod(name string, mood Mood) *Function {
	for cl := c; cl != nil; cl = cl.superclass {
		if f, ok := cl.methods.Get(memberKey(name, mood)); ok {
			return f
		}
	}
	return nil
}

// LookupInitializer resolves an initializer by name on this class only;
// initializers are not inherited.
func (c *Class) LookupInitializer(name string) *Function {
	f, _ := c.initializers.Get(name)
	return f
}

func memberKey(name string, mood Mood) string {
	return name + mood.String()
}

// ValueTypeDef describes a value type's layout and whether its fields hold
// managed references.
type ValueTypeDef struct {
	name    string
	size    uint64
	align   uint64
	managed bool
}

// NewValueType creates a value-type definition with a fixed layout.
func NewValueType(name string, size, align uint64, managed bool) *ValueTypeDef {
	return &ValueTypeDef{name: name, size: size, align: align, managed: managed}
}

func (v *ValueTypeDef) Name() string { return v.name }
