package event

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

func TestNewDeclaresNativePointerEvents(t *testing.T) {
	c := New("change")

	for _, name := range []string{"click", "mousedown", "mouseup", "mouseover", "mouseout", "change"} {
		assert.True(t, c.Declared(name), "expected %q to be declared", name)
	}
	assert.False(t, c.Declared("resize"))
}

func TestOnRejectsUndeclaredEvent(t *testing.T) {
	c := New()

	_, err := c.On("resize", func(string, any) {})
	require.Error(t, err)

	var invalid *gooeyerrors.InvalidEventError
	require.True(t, stderrors.As(err, &invalid))
	assert.Equal(t, "resize", invalid.Event)
}

func TestFireRejectsUndeclaredEvent(t *testing.T) {
	c := New()

	delivered, err := c.Fire("resize", nil)
	require.Error(t, err)
	assert.False(t, delivered)
}

func TestFireDeliversInRegistrationOrder(t *testing.T) {
	c := New("change")

	var order []string
	_, err := c.On("change", func(name string, payload any) {
		order = append(order, "first")
		assert.Equal(t, "change", name)
		assert.Equal(t, 42, payload)
	})
	require.NoError(t, err)
	_, err = c.On("change", func(string, any) {
		order = append(order, "second")
	})
	require.NoError(t, err)

	delivered, err := c.Fire("change", 42)
	require.NoError(t, err)
	assert.True(t, delivered)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSuspendBlocksDeliveryWithoutLosingListeners(t *testing.T) {
	c := New("change")

	calls := 0
	_, err := c.On("change", func(string, any) { calls++ })
	require.NoError(t, err)

	c.Suspend()
	assert.True(t, c.Suspended())

	delivered, err := c.Fire("change", nil)
	require.NoError(t, err)
	assert.False(t, delivered)
	assert.Zero(t, calls)

	c.Resume()
	delivered, err = c.Fire("change", nil)
	require.NoError(t, err)
	assert.True(t, delivered)
	assert.Equal(t, 1, calls)
}

func TestOffRemovesOnlyFirstMatch(t *testing.T) {
	c := New("change")

	calls := 0
	sub, err := c.On("change", func(string, any) { calls++ })
	require.NoError(t, err)
	_, err = c.On("change", func(string, any) { calls += 10 })
	require.NoError(t, err)

	c.Off(sub)
	c.Off(sub) // second removal is a no-op

	_, err = c.Fire("change", nil)
	require.NoError(t, err)
	assert.Equal(t, 10, calls)
}

func TestOffAllClearsName(t *testing.T) {
	c := New("change")

	calls := 0
	_, err := c.On("change", func(string, any) { calls++ })
	require.NoError(t, err)
	_, err = c.On("click", func(string, any) { calls += 100 })
	require.NoError(t, err)

	c.OffAll("change")

	_, err = c.Fire("change", nil)
	require.NoError(t, err)
	_, err = c.Fire("click", nil)
	require.NoError(t, err)
	assert.Equal(t, 100, calls)
}

func TestDispatchNativeSharesDispatchPath(t *testing.T) {
	c := New()

	var got any
	_, err := c.On("click", func(_ string, payload any) { got = payload })
	require.NoError(t, err)

	delivered, err := c.DispatchNative("click", "pointer")
	require.NoError(t, err)
	assert.True(t, delivered)
	assert.Equal(t, "pointer", got)
}

func TestEventsSorted(t *testing.T) {
	c := New("zeta", "alpha")
	events := c.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "alpha", events[0])
}
