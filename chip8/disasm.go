package chip8

import "fmt"

/// Disassemble the CHIP-8 instruction at an address.
///
func (vm *CHIP_8) Disassemble(address uint16) string {
	if int(address) >= len(vm.Memory)-1 {
		return ""
	}

	// fetch the instruction at this location
	inst := Decode(vm.Memory[address], vm.Memory[address+1])

	// end of program memory?
	if inst == 0 {
		return fmt.Sprintf("%04X -", address)
	}

	return fmt.Sprintf("%04X - %s", address, Mnemonic(inst))
}

/// Mnemonic returns the assembly text of a single instruction.
///
func Mnemonic(inst Instruction) string {
	a, b, n := inst.NNN(), inst.NN(), inst.N()
	x, y := inst.X(), inst.Y()

	switch inst.Class() {
	case 0x0:
		switch inst {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
		return fmt.Sprintf("SYS    #%03X", a)
	case 0x1:
		return fmt.Sprintf("JP     #%03X", a)
	case 0x2:
		return fmt.Sprintf("CALL   #%03X", a)
	case 0x3:
		return fmt.Sprintf("SE     V%X, #%02X", x, b)
	case 0x4:
		return fmt.Sprintf("SNE    V%X, #%02X", x, b)
	case 0x5:
		if n == 0 {
			return fmt.Sprintf("SE     V%X, V%X", x, y)
		}
	case 0x6:
		return fmt.Sprintf("LD     V%X, #%02X", x, b)
	case 0x7:
		return fmt.Sprintf("ADD    V%X, #%02X", x, b)
	case 0x8:
		switch n {
		case 0x0:
			return fmt.Sprintf("LD     V%X, V%X", x, y)
		case 0x1:
			return fmt.Sprintf("OR     V%X, V%X", x, y)
		case 0x2:
			return fmt.Sprintf("AND    V%X, V%X", x, y)
		case 0x3:
			return fmt.Sprintf("XOR    V%X, V%X", x, y)
		case 0x4:
			return fmt.Sprintf("ADD    V%X, V%X", x, y)
		case 0x5:
			return fmt.Sprintf("SUB    V%X, V%X", x, y)
		case 0x6:
			return fmt.Sprintf("SHR    V%X, V%X", x, y)
		case 0x7:
			return fmt.Sprintf("SUBN   V%X, V%X", x, y)
		case 0xE:
			return fmt.Sprintf("SHL    V%X, V%X", x, y)
		}
	case 0x9:
		if n == 0 {
			return fmt.Sprintf("SNE    V%X, V%X", x, y)
		}
	case 0xA:
		return fmt.Sprintf("LD     I, #%03X", a)
	case 0xB:
		return fmt.Sprintf("JP     V0, #%03X", a)
	case 0xC:
		return fmt.Sprintf("RND    V%X, #%02X", x, b)
	case 0xD:
		return fmt.Sprintf("DRW    V%X, V%X, %d", x, y, n)
	case 0xE:
		switch b {
		case 0x9E:
			return fmt.Sprintf("SKP    V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP   V%X", x)
		}
	case 0xF:
		switch b {
		case 0x07:
			return fmt.Sprintf("LD     V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("LD     V%X, K", x)
		case 0x15:
			return fmt.Sprintf("LD     DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("LD     ST, V%X", x)
		case 0x1E:
			return fmt.Sprintf("ADD    I, V%X", x)
		case 0x29:
			return fmt.Sprintf("LD     F, V%X", x)
		case 0x33:
			return fmt.Sprintf("LD     B, V%X", x)
		case 0x55:
			return fmt.Sprintf("LD     [I], V%X", x)
		case 0x65:
			return fmt.Sprintf("LD     V%X, [I]", x)
		}
	}

	// unknown instruction
	return fmt.Sprintf("??     #%04X", uint16(inst))
}
