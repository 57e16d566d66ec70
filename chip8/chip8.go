package chip8

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// ProgramStart is where programs are loaded and execution begins.
	///
	ProgramStart = 0x200

	/// MaxProgramSize is the largest program that fits above ProgramStart.
	///
	MaxProgramSize = MemorySize - ProgramStart

	/// StackDepth is the number of nested calls allowed.
	///
	StackDepth = 16
)

/// CHIP_8 virtual machine emulator.
///
type CHIP_8 struct {
	/// Memory addressable by CHIP-8. The first 512 bytes are reserved
	/// for the font sprites, the program is loaded at 0x200.
	///
	Memory [MemorySize]byte

	/// Video memory for CHIP-8 (64x32 bits).
	///
	Video Framebuffer

	/// Keys hold the current state for the 16-key pad and the wait latch.
	///
	Keys Keypad

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers. VF doubles as the carry, borrow
	/// and collision flag.
	///
	V [16]byte

	/// Stack holds return addresses, SP is the number in use.
	///
	Stack [StackDepth]uint16
	SP    uint8

	/// The delay and sound timers. They count down once per Tick.
	///
	DT byte
	ST byte

	/// Cycles is how many instructions have been executed since reset.
	///
	Cycles uint64

	/// Unknown is how many unassigned instructions were skipped.
	///
	Unknown uint64

	/// Quirks selects ambiguous instruction behaviors.
	///
	Quirks Quirks

	// program is the last loaded ROM, reloaded by Restart
	program []byte

	// fault is set once a fatal error stops the engine
	fault *Fault

	rng    *rand.Rand
	logger *log.Logger
}

/// Option configures a new CHIP_8.
///
type Option func(vm *CHIP_8)

/// WithQuirks sets the instruction set quirks.
///
func WithQuirks(q Quirks) Option {
	return func(vm *CHIP_8) {
		vm.Quirks = q
	}
}

/// WithRand sets the random source used by CXNN.
///
func WithRand(r *rand.Rand) Option {
	return func(vm *CHIP_8) {
		vm.rng = r
	}
}

/// WithLogger sets the logger for unknown instructions and faults.
///
func WithLogger(logger *log.Logger) Option {
	return func(vm *CHIP_8) {
		vm.logger = logger
	}
}

/// New creates a reset CHIP-8 virtual machine with no program.
///
func New(opts ...Option) *CHIP_8 {
	vm := &CHIP_8{}

	for _, opt := range opts {
		opt(vm)
	}

	if vm.rng == nil {
		vm.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	vm.Reset()

	return vm
}

/// LoadROM creates a new CHIP-8 virtual machine running program.
///
func LoadROM(program []byte, opts ...Option) (*CHIP_8, error) {
	vm := New(opts...)

	if err := vm.Load(program); err != nil {
		return nil, err
	}

	return vm, nil
}

/// Reset the CHIP-8 virtual machine. Memory is cleared except for the
/// font sprites and the program counter is set to 0x200.
///
func (vm *CHIP_8) Reset() {
	vm.Memory = [MemorySize]byte{}

	// copy the font sprites into low memory
	copy(vm.Memory[:], glyphs[:])

	// reset video memory and keys
	vm.Video.Clear()
	vm.Keys = Keypad{}

	// reset program counter and stack
	vm.PC = ProgramStart
	vm.Stack = [StackDepth]uint16{}
	vm.SP = 0

	// reset address and virtual registers
	vm.I = 0
	vm.V = [16]byte{}

	// reset timer registers
	vm.DT = 0
	vm.ST = 0

	vm.Cycles = 0
	vm.Unknown = 0
	vm.fault = nil
}

/// Load replaces the program area with a program and points PC at
/// 0x200. Programs that don't fit are rejected without touching memory.
/// Registers, timers and the display are kept, Reset first for a clean
/// machine.
///
func (vm *CHIP_8) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%d bytes: %w", len(program), ErrProgramTooLarge)
	}

	// nothing of a previous program survives
	n := copy(vm.Memory[ProgramStart:], program)
	clear(vm.Memory[ProgramStart+n:])

	vm.PC = ProgramStart

	// remember the program for Restart
	vm.program = append(vm.program[:0], program...)

	return nil
}

/// Restart resets the virtual machine and reloads the last program.
///
func (vm *CHIP_8) Restart() {
	vm.Reset()

	// the program already fit once
	copy(vm.Memory[ProgramStart:], vm.program)
}

/// Program returns the last loaded program.
///
func (vm *CHIP_8) Program() []byte {
	return vm.program
}

/// Fault returns the error that halted the engine or nil.
///
func (vm *CHIP_8) Fault() *Fault {
	return vm.fault
}

/// Halted is true once a fatal error has stopped the engine.
///
func (vm *CHIP_8) Halted() bool {
	return vm.fault != nil
}

/// Waiting is true while FX0A waits for a key press.
///
func (vm *CHIP_8) Waiting() bool {
	return vm.Keys.Waiting()
}

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *CHIP_8) PressKey(key uint8) error {
	return vm.Keys.Set(key, Pressed)
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *CHIP_8) ReleaseKey(key uint8) error {
	return vm.Keys.Set(key, Released)
}

/// Tick counts both timers down by one. Call it at 60 Hz, independent
/// of how fast instructions are stepped.
///
func (vm *CHIP_8) Tick() {
	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}
}

/// Sound is true while the sound timer is running.
///
func (vm *CHIP_8) Sound() bool {
	return vm.ST > 0
}

/// Frame returns a copy of the display and whether it changed since the
/// last call to MarkPresented.
///
func (vm *CHIP_8) Frame() (Framebuffer, bool) {
	return vm.Video, vm.Video.Changed()
}

/// MarkPresented clears the display changed flag.
///
func (vm *CHIP_8) MarkPresented() {
	vm.Video.MarkPresented()
}

/// Step the CHIP-8 virtual machine a single instruction. Any error
/// returned is a *Fault and the engine stays halted until reset.
///
func (vm *CHIP_8) Step() error {
	if vm.fault != nil {
		return vm.fault
	}

	if int(vm.PC) >= MemorySize-1 {
		return vm.halt(vm.PC, 0, fmt.Errorf("fetch at %04X: %w", vm.PC, ErrAddressOutOfRange))
	}

	// blocked on FX0A
	if vm.Keys.Waiting() {
		return nil
	}

	// a key was pressed for FX0A, finish it
	if x, key, ok := vm.Keys.take(); ok {
		vm.V[x] = key
		vm.PC += 2
		return nil
	}

	// fetch the next instruction
	pc := vm.PC
	inst := vm.fetch()

	if err := vm.execute(inst); err != nil {
		return vm.halt(pc, inst, err)
	}

	// increment the cycle count
	vm.Cycles++

	return nil
}

/// Fetch the next 16-bit instruction and advance the program counter.
///
func (vm *CHIP_8) fetch() Instruction {
	i := vm.PC

	// advance the program counter
	vm.PC += 2

	return Decode(vm.Memory[i], vm.Memory[i+1])
}

/// halt records a fatal fault for the instruction at pc.
///
func (vm *CHIP_8) halt(pc uint16, inst Instruction, err error) error {
	vm.fault = &Fault{PC: pc, Inst: inst, Err: err}

	if vm.logger != nil {
		vm.logger.Debug("Engine halted",
			log.Hex("pc", pc),
			log.Hex("instruction", uint16(inst)),
			log.Err(err))
	}

	return vm.fault
}

/// unknown logs an instruction that isn't part of the instruction set.
///
func (vm *CHIP_8) unknown(inst Instruction) {
	vm.Unknown++

	if vm.logger != nil {
		vm.logger.Warn("Unknown instruction",
			log.Hex("pc", vm.PC-2),
			log.Hex("instruction", uint16(inst)))
	}
}

/// span checks that n bytes starting at I lie within memory.
///
func (vm *CHIP_8) span(n int) error {
	if int(vm.I)+n > MemorySize {
		return fmt.Errorf("I=%04X length %d: %w", vm.I, n, ErrAddressOutOfRange)
	}
	return nil
}
