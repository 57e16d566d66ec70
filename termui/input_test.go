package termui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/assert"
)

type fakeKeypad struct {
	events []string
}

func (k *fakeKeypad) PressKey(key uint8) error {
	if key > 15 {
		return chip8.ErrKeyOutOfRange
	}
	k.events = append(k.events, "press "+string("0123456789ABCDEF"[key]))
	return nil
}

func (k *fakeKeypad) ReleaseKey(key uint8) error {
	k.events = append(k.events, "release "+string("0123456789ABCDEF"[key]))
	return nil
}

func TestKeyMapCoversKeypad(t *testing.T) {
	seen := map[uint8]bool{}
	for _, key := range KeyMap {
		seen[key] = true
	}
	assert.Equal(t, 16, len(seen))
}

func TestInputCommands(t *testing.T) {
	in := NewInput(&fakeKeypad{}, DefaultHold)
	now := time.Now()

	tests := []struct {
		b   byte
		cmd Command
	}{
		{0x03, Quit},
		{0x7F, Restart},
		{0x08, Restart},
		{' ', Pause},
		{'?', None},
	}

	for _, tt := range tests {
		cmd, err := in.Feed(tt.b, now)
		assert.NoError(t, err)
		assert.Equal(t, tt.cmd, cmd)
	}
	assert.Equal(t, 0, in.Held())
}

func TestInputHoldAndRelease(t *testing.T) {
	keys := &fakeKeypad{}
	in := NewInput(keys, 100*time.Millisecond)
	start := time.Now()

	_, err := in.Feed('4', start)
	assert.NoError(t, err)
	_, err = in.Feed('V', start)
	assert.NoError(t, err)
	assert.Equal(t, []string{"press C", "press F"}, keys.events)

	// a repeat extends the hold without another press
	_, err = in.Feed('4', start.Add(80*time.Millisecond))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(keys.events))

	assert.NoError(t, in.Expire(start.Add(120*time.Millisecond)))
	assert.Equal(t, []string{"press C", "press F", "release F"}, keys.events)
	assert.Equal(t, 1, in.Held())

	assert.NoError(t, in.Expire(start.Add(200*time.Millisecond)))
	assert.Equal(t, "release C", keys.events[3])
	assert.Equal(t, 0, in.Held())
}

func TestReadKeys(t *testing.T) {
	ch := ReadKeys(context.Background(), strings.NewReader("qx"))

	var got []byte
	for b := range ch {
		got = append(got, b)
	}
	assert.Equal(t, []byte("qx"), got)
}

type failingKeypad struct{ fakeKeypad }

func (k *failingKeypad) PressKey(uint8) error {
	return errors.New("stopped")
}

func TestInputPropagatesErrors(t *testing.T) {
	in := NewInput(&failingKeypad{}, DefaultHold)

	_, err := in.Feed('1', time.Now())
	assert.ErrorContains(t, err, "stopped")
}
