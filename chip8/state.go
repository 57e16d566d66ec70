package chip8

/// State is a copy of the virtual machine registers and display, safe
/// to hand to another goroutine.
///
type State struct {
	PC    uint16
	I     uint16
	SP    uint8
	V     [16]byte
	Stack [StackDepth]uint16
	DT    byte
	ST    byte

	Video   Framebuffer
	Waiting bool

	Cycles  uint64
	Unknown uint64

	/// Fault is nil unless the engine halted.
	///
	Fault *Fault

	/// Listing is the disassembly around the program counter, one
	/// instruction per line starting two instructions before PC.
	///
	Listing []string
}

/// listingSize is how many instructions Snapshot disassembles.
///
const listingSize = 16

/// Snapshot copies the current state of the virtual machine.
///
func (vm *CHIP_8) Snapshot() State {
	s := State{
		PC:      vm.PC,
		I:       vm.I,
		SP:      vm.SP,
		V:       vm.V,
		Stack:   vm.Stack,
		DT:      vm.DT,
		ST:      vm.ST,
		Video:   vm.Video,
		Waiting: vm.Keys.Waiting(),
		Cycles:  vm.Cycles,
		Unknown: vm.Unknown,
		Fault:   vm.fault,
		Listing: make([]string, 0, listingSize),
	}

	// start a little before the program counter
	address := vm.PC
	if address >= 4 {
		address -= 4
	}

	for i := 0; i < listingSize; i++ {
		if line := vm.Disassemble(address); line != "" {
			s.Listing = append(s.Listing, line)
		}
		address += 2
	}

	return s
}
