package chip8

import (
	"errors"
	"fmt"
)

var (
	/// ErrStackOverflow is a call with all 16 stack entries in use.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is a return with an empty stack.
	///
	ErrStackUnderflow = errors.New("stack underflow")

	/// ErrAddressOutOfRange is a fetch, sprite read or register block
	/// access past the end of memory.
	///
	ErrAddressOutOfRange = errors.New("address out of range")

	/// ErrKeyOutOfRange is a key index above 0xF.
	///
	ErrKeyOutOfRange = errors.New("key out of range")

	/// ErrProgramTooLarge is a program that doesn't fit above 0x200.
	///
	ErrProgramTooLarge = errors.New("program too large to fit in memory")
)

/// Fault is a fatal engine error. It records where the engine was when
/// it stopped. The engine will not step again until it is reset.
///
type Fault struct {
	PC   uint16
	Inst Instruction
	Err  error
}

/// Error formats the fault as "PC (instruction): cause".
///
func (f *Fault) Error() string {
	return fmt.Sprintf("%04X (%04X): %v", f.PC, uint16(f.Inst), f.Err)
}

/// Unwrap returns the sentinel error that caused the fault.
///
func (f *Fault) Unwrap() error {
	return f.Err
}
