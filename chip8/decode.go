package chip8

/// Instruction is a single 16-bit CHIP-8 instruction word. The four
/// nibbles are the instruction class, X, Y and N.
///
type Instruction uint16

/// Decode an instruction from its two big-endian bytes.
///
func Decode(hi, lo byte) Instruction {
	return Instruction(uint16(hi)<<8 | uint16(lo))
}

/// Encode an instruction word from its four nibbles.
///
func Encode(class, x, y, n uint8) Instruction {
	return Instruction(uint16(class&0xF)<<12 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF))
}

/// Class is the high nibble, selecting the instruction family.
///
func (inst Instruction) Class() uint8 {
	return uint8(inst >> 12)
}

/// X is the first register operand (bits 8-11).
///
func (inst Instruction) X() uint8 {
	return uint8(inst>>8) & 0xF
}

/// Y is the second register operand (bits 4-7).
///
func (inst Instruction) Y() uint8 {
	return uint8(inst>>4) & 0xF
}

/// N is the immediate nibble.
///
func (inst Instruction) N() uint8 {
	return uint8(inst) & 0xF
}

/// NN is the immediate byte.
///
func (inst Instruction) NN() byte {
	return byte(inst)
}

/// NNN is the immediate 12-bit address.
///
func (inst Instruction) NNN() uint16 {
	return uint16(inst) & 0xFFF
}
