package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeskeen/emojicode/types"
)

func TestAssignability(t *testing.T) {
	t.Parallel()

	animal := types.NewClass("🐾", nil)
	fish := types.NewClass("🐟", animal)
	rock := types.NewClass("🗿", nil)

	assert.True(t, types.ClassInstance(fish).AssignableTo(types.ClassInstance(animal)))
	assert.False(t, types.ClassInstance(animal).AssignableTo(types.ClassInstance(fish)))
	assert.False(t, types.ClassInstance(rock).AssignableTo(types.ClassInstance(animal)))

	// Non-optionals promote into optionals of a compatible payload, through
	// upcasts too.
	assert.True(t, types.Integer().AssignableTo(types.Optional(types.Integer())))
	assert.True(t, types.ClassInstance(fish).AssignableTo(types.Optional(types.ClassInstance(animal))))
	assert.False(t, types.Optional(types.Integer()).AssignableTo(types.Optional(types.Boolean())))
}

func TestCallableEquality(t *testing.T) {
	t.Parallel()

	a := types.Callable([]types.Type{types.Integer()}, types.Boolean())
	b := types.Callable([]types.Type{types.Integer()}, types.Boolean())
	c := types.Callable([]types.Type{types.Boolean()}, types.Boolean())

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(types.Callable(nil, types.Boolean())))
}

func TestManaged(t *testing.T) {
	t.Parallel()

	class := types.NewClass("🐟", nil)

	assert.True(t, types.ClassInstance(class).IsManaged())
	assert.True(t, types.Callable(nil, types.NoReturn()).IsManaged())
	assert.True(t, types.Optional(types.ClassInstance(class)).IsManaged())
	assert.True(t, types.Value(types.NewValueType("📦", 16, 8, true)).IsManaged())

	assert.False(t, types.Boolean().IsManaged())
	assert.False(t, types.Integer().IsManaged())
	assert.False(t, types.Optional(types.Integer()).IsManaged())
	assert.False(t, types.Value(types.NewValueType("📐", 16, 8, false)).IsManaged())
}

func TestOptionalLayout(t *testing.T) {
	t.Parallel()

	// Payload, presence flag, padding out to the payload's alignment.
	size, ok := types.Optional(types.Integer()).Size()
	require.True(t, ok)
	assert.Equal(t, uint64(16), size)

	align, ok := types.Optional(types.Integer()).Alignment()
	require.True(t, ok)
	assert.Equal(t, uint64(8), align)

	size, ok = types.Optional(types.Boolean()).Size()
	require.True(t, ok)
	assert.Equal(t, uint64(2), size)
}

func TestUnresolvableSize(t *testing.T) {
	t.Parallel()

	_, ok := types.NoReturn().Size()
	assert.False(t, ok)

	incomplete := types.Value(types.NewValueType("🚧", 0, 0, false))
	_, ok = incomplete.Size()
	assert.False(t, ok)
	_, ok = types.Optional(incomplete).Size()
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	t.Parallel()

	fish := types.NewClass("🐟", nil)

	assert.Equal(t, "🍬🐟", types.Optional(types.ClassInstance(fish)).String())
	assert.Equal(t, "🔳🐟", types.MetaType(types.ClassInstance(fish)).String())
	assert.Equal(t, "🍇🔢, 👌➡️🐟",
		types.Callable([]types.Type{types.Integer(), types.Boolean()}, types.ClassInstance(fish)).String())
	assert.Equal(t, "📏", types.MemorySize().String())
}
