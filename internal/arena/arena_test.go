package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joeskeen/emojicode/internal/arena"
)

func TestPointerStability(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var a arena.Arena[int]

	p1 := a.New(5)
	v1 := p1.In(&a)
	assert.Equal(5, *v1)

	// Force the arena through two chunk growths and make sure earlier
	// pointers still resolve to the same memory.
	for i := 0; i < 48; i++ {
		a.New(i + 6)
	}
	assert.Same(v1, p1.In(&a))
	assert.Equal(49, a.Len())
	assert.Equal(21, *arena.Pointer[int](17).In(&a))
}

func TestNilPointer(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var p arena.Pointer[int]
	assert.True(p.Nil())

	var a arena.Arena[int]
	assert.False(a.New(1).Nil())
	assert.Panics(func() { a.At(arena.Untyped(99)) })
}

func TestValues(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var a arena.Arena[string]
	a.New("x")
	a.New("y")
	a.New("z")

	var got []string
	a.Values(func(p arena.Untyped, s *string) bool {
		assert.False(p.Nil())
		got = append(got, *s)
		return len(got) < 2
	})
	assert.Equal([]string{"x", "y"}, got)
}
