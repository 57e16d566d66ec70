package chip8

import (
	"fmt"
)

/// execute dispatches a decoded instruction. The program counter has
/// already been advanced past it.
///
func (vm *CHIP_8) execute(inst Instruction) error {
	x, y := inst.X(), inst.Y()

	switch inst.Class() {
	case 0x0:
		switch inst {
		case 0x00E0:
			vm.cls()
		case 0x00EE:
			return vm.ret()
		default:
			// 0NNN machine code routines aren't supported
			vm.unknown(inst)
		}
	case 0x1:
		vm.jump(inst.NNN())
	case 0x2:
		return vm.call(inst.NNN())
	case 0x3:
		vm.skipIf(x, inst.NN())
	case 0x4:
		vm.skipIfNot(x, inst.NN())
	case 0x5:
		if inst.N() != 0 {
			vm.unknown(inst)
			break
		}
		vm.skipIfXY(x, y)
	case 0x6:
		vm.loadX(x, inst.NN())
	case 0x7:
		vm.addX(x, inst.NN())
	case 0x8:
		switch inst.N() {
		case 0x0:
			vm.loadXY(x, y)
		case 0x1:
			vm.or(x, y)
		case 0x2:
			vm.and(x, y)
		case 0x3:
			vm.xor(x, y)
		case 0x4:
			vm.addXY(x, y)
		case 0x5:
			vm.subXY(x, y)
		case 0x6:
			vm.shr(x, y)
		case 0x7:
			vm.subYX(x, y)
		case 0xE:
			vm.shl(x, y)
		default:
			vm.unknown(inst)
		}
	case 0x9:
		if inst.N() != 0 {
			vm.unknown(inst)
			break
		}
		vm.skipIfNotXY(x, y)
	case 0xA:
		vm.loadI(inst.NNN())
	case 0xB:
		vm.jumpV0(x, inst.NNN())
	case 0xC:
		vm.rnd(x, inst.NN())
	case 0xD:
		return vm.drw(x, y, inst.N())
	case 0xE:
		switch inst.NN() {
		case 0x9E:
			return vm.skipIfPressed(x)
		case 0xA1:
			return vm.skipIfNotPressed(x)
		default:
			vm.unknown(inst)
		}
	case 0xF:
		switch inst.NN() {
		case 0x07:
			vm.loadXDT(x)
		case 0x0A:
			vm.loadXK(x)
		case 0x15:
			vm.loadDTX(x)
		case 0x18:
			vm.loadSTX(x)
		case 0x1E:
			vm.addIX(x)
		case 0x29:
			vm.loadF(x)
		case 0x33:
			return vm.loadB(x)
		case 0x55:
			return vm.saveRegs(x)
		case 0x65:
			return vm.loadRegs(x)
		default:
			vm.unknown(inst)
		}
	}

	return nil
}

/// Clear the video display memory.
///
func (vm *CHIP_8) cls() {
	vm.Video.Clear()
}

/// call a subroutine at address.
///
func (vm *CHIP_8) call(address uint16) error {
	if vm.SP >= StackDepth {
		return ErrStackOverflow
	}

	// push program counter onto stack
	vm.Stack[vm.SP] = vm.PC
	vm.SP++

	// jump to address
	vm.PC = address

	return nil
}

/// return from subroutine.
///
func (vm *CHIP_8) ret() error {
	if vm.SP == 0 {
		return ErrStackUnderflow
	}

	// restore program counter
	vm.SP--
	vm.PC = vm.Stack[vm.SP]

	return nil
}

/// jump to address.
///
func (vm *CHIP_8) jump(address uint16) {
	vm.PC = address
}

/// jump to address + v0 (or vx + address with the CHIP-48 quirk).
///
func (vm *CHIP_8) jumpV0(x uint8, address uint16) {
	if vm.Quirks.JumpUsesVX {
		vm.PC = address + uint16(vm.V[x])
	} else {
		vm.PC = address + uint16(vm.V[0])
	}
}

/// skip next instruction if vx == n.
///
func (vm *CHIP_8) skipIf(x uint8, b byte) {
	if vm.V[x] == b {
		vm.PC += 2
	}
}

/// skip next instruction if vx != n.
///
func (vm *CHIP_8) skipIfNot(x uint8, b byte) {
	if vm.V[x] != b {
		vm.PC += 2
	}
}

/// skip next instruction if vx == vy.
///
func (vm *CHIP_8) skipIfXY(x, y uint8) {
	if vm.V[x] == vm.V[y] {
		vm.PC += 2
	}
}

/// skip next instruction if vx != vy.
///
func (vm *CHIP_8) skipIfNotXY(x, y uint8) {
	if vm.V[x] != vm.V[y] {
		vm.PC += 2
	}
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *CHIP_8) skipIfPressed(x uint8) error {
	state, err := vm.Keys.State(vm.V[x])
	if err != nil {
		return fmt.Errorf("V%X=%02X: %w", x, vm.V[x], err)
	}

	if state == Pressed {
		vm.PC += 2
	}

	return nil
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *CHIP_8) skipIfNotPressed(x uint8) error {
	state, err := vm.Keys.State(vm.V[x])
	if err != nil {
		return fmt.Errorf("V%X=%02X: %w", x, vm.V[x], err)
	}

	if state == Released {
		vm.PC += 2
	}

	return nil
}

/// load n into vx.
///
func (vm *CHIP_8) loadX(x uint8, b byte) {
	vm.V[x] = b
}

/// load y into vx.
///
func (vm *CHIP_8) loadXY(x, y uint8) {
	vm.V[x] = vm.V[y]
}

/// load delay timer into vx.
///
func (vm *CHIP_8) loadXDT(x uint8) {
	vm.V[x] = vm.DT
}

/// load vx into delay timer.
///
func (vm *CHIP_8) loadDTX(x uint8) {
	vm.DT = vm.V[x]
}

/// load vx into sound timer.
///
func (vm *CHIP_8) loadSTX(x uint8) {
	vm.ST = vm.V[x]
}

/// load vx with next key hit (blocking). The program counter stays on
/// this instruction until a key is pressed.
///
func (vm *CHIP_8) loadXK(x uint8) {
	vm.Keys.Wait(x)
	vm.PC -= 2
}

/// load address register.
///
func (vm *CHIP_8) loadI(address uint16) {
	vm.I = address
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(x uint8) error {
	if err := vm.span(3); err != nil {
		return err
	}

	n := uint16(vm.V[x])
	b := uint16(0)

	// double dabble, 8 shifts
	for i := uint(0); i < 8; i++ {
		if (b>>0)&0xF >= 5 {
			b += 3
		}
		if (b>>4)&0xF >= 5 {
			b += 3 << 4
		}
		if (b>>8)&0xF >= 5 {
			b += 3 << 8
		}

		// apply shift, pull next bit
		b = (b << 1) | (n >> (7 - i) & 1)
	}

	// write to memory
	vm.Memory[vm.I+0] = byte(b>>8) & 0xF
	vm.Memory[vm.I+1] = byte(b>>4) & 0xF
	vm.Memory[vm.I+2] = byte(b>>0) & 0xF

	return nil
}

/// load font sprite for vx into I.
///
func (vm *CHIP_8) loadF(x uint8) {
	vm.I = uint16(vm.V[x]) * GlyphSize
}

/// or vx with vy into vx.
///
func (vm *CHIP_8) or(x, y uint8) {
	vm.V[x] |= vm.V[y]
	vm.resetFlag()
}

/// and vx with vy into vx.
///
func (vm *CHIP_8) and(x, y uint8) {
	vm.V[x] &= vm.V[y]
	vm.resetFlag()
}

/// xor vx with vy into vx.
///
func (vm *CHIP_8) xor(x, y uint8) {
	vm.V[x] ^= vm.V[y]
	vm.resetFlag()
}

/// resetFlag clears vf after a logic op with the COSMAC quirk.
///
func (vm *CHIP_8) resetFlag() {
	if vm.Quirks.LogicResetsVF {
		vm.V[0xF] = 0
	}
}

/// shift source for 8XY6 and 8XYE.
///
func (vm *CHIP_8) shiftSource(x, y uint8) byte {
	if vm.Quirks.ShiftUsesVY {
		return vm.V[y]
	}
	return vm.V[x]
}

/// shl 1 bit into vx, set carry to MSB of the source before shift.
///
func (vm *CHIP_8) shl(x, y uint8) {
	s := vm.shiftSource(x, y)

	vm.V[x] = s << 1
	vm.V[0xF] = s >> 7
}

/// shr 1 bit into vx, set carry to LSB of the source before shift.
///
func (vm *CHIP_8) shr(x, y uint8) {
	s := vm.shiftSource(x, y)

	vm.V[x] = s >> 1
	vm.V[0xF] = s & 1
}

/// add n to vx, no carry.
///
func (vm *CHIP_8) addX(x uint8, b byte) {
	vm.V[x] += b
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(x, y uint8) {
	sum := uint16(vm.V[x]) + uint16(vm.V[y])

	vm.V[x] = byte(sum)
	vm.V[0xF] = byte(sum >> 8)
}

/// add vx to i.
///
func (vm *CHIP_8) addIX(x uint8) {
	vm.I += uint16(vm.V[x])
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *CHIP_8) subXY(x, y uint8) {
	vm.V[x], vm.V[0xF] = sub(vm.V[x], vm.V[y])
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *CHIP_8) subYX(x, y uint8) {
	vm.V[x], vm.V[0xF] = sub(vm.V[y], vm.V[x])
}

/// sub returns a - b and 1 if there was no borrow.
///
func sub(a, b byte) (byte, byte) {
	if a >= b {
		return a - b, 1
	}
	return a - b, 0
}

/// load a random number & n into vx.
///
func (vm *CHIP_8) rnd(x uint8, b byte) {
	vm.V[x] = byte(vm.rng.Intn(256)) & b
}

/// draw a sprite at I to video memory at vx, vy.
///
func (vm *CHIP_8) drw(x, y, n uint8) error {
	if err := vm.span(int(n)); err != nil {
		return err
	}

	sprite := vm.Memory[vm.I : vm.I+uint16(n)]

	// set carry flag if any collision occurred
	if vm.Video.Draw(int(vm.V[x]), int(vm.V[y]), sprite) {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}

	return nil
}

/// save registers v0..vx to I.
///
func (vm *CHIP_8) saveRegs(x uint8) error {
	if err := vm.span(int(x) + 1); err != nil {
		return err
	}

	copy(vm.Memory[vm.I:], vm.V[:x+1])

	if vm.Quirks.LoadStoreIncrementsI {
		vm.I += uint16(x) + 1
	}

	return nil
}

/// load registers v0..vx from I.
///
func (vm *CHIP_8) loadRegs(x uint8) error {
	if err := vm.span(int(x) + 1); err != nil {
		return err
	}

	copy(vm.V[:x+1], vm.Memory[vm.I:])

	if vm.Quirks.LoadStoreIncrementsI {
		vm.I += uint16(x) + 1
	}

	return nil
}
