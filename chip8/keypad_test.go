package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypadState(t *testing.T) {
	var k Keypad

	assert.NoError(t, k.Set(0xA, Pressed))
	assert.True(t, k.IsPressed(0xA))

	state, err := k.State(0xA)
	assert.NoError(t, err)
	assert.Equal(t, Pressed, state)
	assert.Equal(t, "pressed", state.String())

	assert.NoError(t, k.Set(0xA, Released))
	assert.False(t, k.IsPressed(0xA))
	assert.False(t, k.Waiting())
}

func TestKeypadOutOfRange(t *testing.T) {
	var k Keypad

	assert.True(t, errors.Is(k.Set(16, Pressed), ErrKeyOutOfRange))

	_, err := k.State(0x20)
	assert.True(t, errors.Is(err, ErrKeyOutOfRange))
	assert.False(t, k.IsPressed(0x20))
}

func TestKeypadLatch(t *testing.T) {
	var k Keypad

	k.Wait(3)
	assert.True(t, k.Waiting())

	// releasing doesn't resolve the latch
	assert.NoError(t, k.Set(5, Released))
	assert.True(t, k.Waiting())

	assert.NoError(t, k.Set(9, Pressed))
	assert.False(t, k.Waiting())

	x, key, ok := k.take()
	assert.True(t, ok)
	assert.Equal(t, uint8(3), x)
	assert.Equal(t, uint8(9), key)

	_, _, ok = k.take()
	assert.False(t, ok)
}

func TestKeypadPressWithoutLatch(t *testing.T) {
	var k Keypad

	assert.NoError(t, k.Set(1, Pressed))

	_, _, ok := k.take()
	assert.False(t, ok)
}
