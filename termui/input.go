// Package termui runs the CHIP-8 display and keypad in a text terminal.
//
// Terminals report key presses but never key releases, so a pressed key
// is held for a short time and then released unless the terminal repeats it.
package termui

import (
	"context"
	"io"
	"time"
)

// DefaultHold is how long a key stays pressed without a repeat.
const DefaultHold = 200 * time.Millisecond

// Command is a host action bound to a control key.
type Command int

const (
	None Command = iota
	Quit
	Restart
	Pause
)

// KeyMap maps the keyboard to the CHIP-8 keypad, keeping the keypad layout:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var KeyMap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Keypad receives key events.
type Keypad interface {
	PressKey(key uint8) error
	ReleaseKey(key uint8) error
}

// Input turns terminal bytes into keypad presses and emulated releases.
type Input struct {
	keys    Keypad
	hold    time.Duration
	pressed map[uint8]time.Time // release deadlines
}

// NewInput creates an input translator for keys.
func NewInput(keys Keypad, hold time.Duration) *Input {
	return &Input{
		keys:    keys,
		hold:    hold,
		pressed: make(map[uint8]time.Time),
	}
}

// Feed handles a byte read from the terminal at time now.
func (in *Input) Feed(b byte, now time.Time) (Command, error) {
	switch b {
	case 0x03: // ctrl-c
		return Quit, nil
	case 0x08, 0x7F: // backspace
		return Restart, nil
	case ' ':
		return Pause, nil
	}

	// upper case
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	key, ok := KeyMap[b]
	if !ok {
		return None, nil
	}

	// repeats only extend the hold
	_, held := in.pressed[key]
	in.pressed[key] = now.Add(in.hold)
	if held {
		return None, nil
	}

	return None, in.keys.PressKey(key)
}

// Expire releases keys whose hold time passed.
func (in *Input) Expire(now time.Time) error {
	for key, deadline := range in.pressed {
		if now.Before(deadline) {
			continue
		}

		delete(in.pressed, key)

		if err := in.keys.ReleaseKey(key); err != nil {
			return err
		}
	}
	return nil
}

// Held returns the number of keys currently pressed.
func (in *Input) Held() int {
	return len(in.pressed)
}

// ReadKeys reads r one byte at a time until r fails. The channel is closed
// when reading stops. Cancelling ctx stops delivery of further bytes, but a
// Read already blocked in r only returns once input arrives or r is closed.
func ReadKeys(ctx context.Context, r io.Reader) <-chan byte {
	ch := make(chan byte)

	go func() {
		defer close(ch)

		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case ch <- buf[0]:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	return ch
}
