package arbor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachGet(t *testing.T) {
	t.Parallel()
	n := NewNode("n")
	h := &health{hp: 3}

	Attach(n, h)
	got, ok := Get[*health](n)
	require.True(t, ok)
	assert.Same(t, h, got)
	assert.True(t, Has[*health](n))
}

func TestGet_Missing(t *testing.T) {
	t.Parallel()
	n := NewNode("n")

	got, ok := Get[*health](n)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestAttach_ValueAndPointerAreDistinct(t *testing.T) {
	t.Parallel()
	n := NewNode("n")
	Attach(n, health{hp: 1})

	assert.True(t, Has[health](n))
	assert.False(t, Has[*health](n))
}

func TestAttach_ReplacesSameType(t *testing.T) {
	t.Parallel()
	n := NewNode("n")
	Attach(n, &health{hp: 1})
	Attach(n, &health{hp: 2})

	got, _ := Get[*health](n)
	assert.Equal(t, 2, got.hp)
	assert.Len(t, CapabilityTypes(n), 1)
}

func TestAttach_InterfaceKey(t *testing.T) {
	t.Parallel()
	n := NewNode("n")
	Attach[fmt.Stringer](n, NewNode("inner"))

	s, ok := Get[fmt.Stringer](n)
	require.True(t, ok)
	assert.Contains(t, s.String(), "inner")
	assert.False(t, Has[*Node](n))
}

func TestDetach(t *testing.T) {
	t.Parallel()
	n := NewNode("n")
	Attach(n, &health{})
	Attach(n, &collider{})

	assert.True(t, Detach[*health](n))
	assert.False(t, Detach[*health](n))
	assert.False(t, Has[*health](n))
	assert.Equal(t, []string{"*arbor.collider"}, CapabilityNames(n))
}

func TestCapabilityTypes_AttachOrder(t *testing.T) {
	t.Parallel()
	n := NewNode("n")
	Attach(n, &collider{})
	Attach(n, &health{})

	types := CapabilityTypes(n)
	require.Len(t, types, 2)
	assert.Equal(t, "*arbor.collider", types[0].String())
	assert.Equal(t, "*arbor.health", types[1].String())
}
