package chip8

/// KeyState is the state of a single hex keypad key.
///
type KeyState uint8

const (
	/// Released is the state of a key that isn't held down.
	///
	Released KeyState = iota

	/// Pressed is the state of a key that is held down.
	///
	Pressed
)

/// String returns "pressed" or "released".
///
func (s KeyState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

/// NumKeys is the number of keys on the hex keypad.
///
const NumKeys = 16

/// latch tracks a pending FX0A instruction.
///
type latch uint8

const (
	notWaiting latch = iota
	waiting
	resolved
)

/// Keypad holds the state of the 16 hex keys and the wait-for-key latch.
///
type Keypad struct {
	keys [NumKeys]KeyState

	// wait-for-key latch, the register to load and the key that released it
	latch  latch
	target uint8
	key    uint8
}

/// State returns the current state of a key.
///
func (k *Keypad) State(key uint8) (KeyState, error) {
	if key >= NumKeys {
		return Released, ErrKeyOutOfRange
	}
	return k.keys[key], nil
}

/// IsPressed is true if the key is currently held down. Keys outside
/// the keypad are never pressed.
///
func (k *Keypad) IsPressed(key uint8) bool {
	return key < NumKeys && k.keys[key] == Pressed
}

/// Set updates the state of a key. Pressing any key while waiting for
/// one resolves the latch with that key.
///
func (k *Keypad) Set(key uint8, state KeyState) error {
	if key >= NumKeys {
		return ErrKeyOutOfRange
	}

	k.keys[key] = state

	if state == Pressed && k.latch == waiting {
		k.latch = resolved
		k.key = key
	}

	return nil
}

/// Wait arms the latch to load the next key pressed into register x.
///
func (k *Keypad) Wait(x uint8) {
	k.latch = waiting
	k.target = x
}

/// Waiting is true while a wait-for-key instruction has no key yet.
///
func (k *Keypad) Waiting() bool {
	return k.latch == waiting
}

/// take returns the register and key of a resolved latch and clears it.
///
func (k *Keypad) take() (x, key uint8, ok bool) {
	if k.latch != resolved {
		return 0, 0, false
	}

	k.latch = notWaiting

	return k.target, k.key, true
}
