package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestRegisterLines(t *testing.T) {
	s := chip8.State{PC: 0x2AE, I: 0x300, DT: 0x3C, Cycles: 12}
	s.V[0xA] = 0x7F

	lines := RegisterLines(&s)
	assert.Equal(t, 16, len(lines))

	assert.Equal(t, "V0 - #00   PC - #02AE", lines[0])
	assert.Equal(t, "V3 - #00   DT - #3C", lines[3])
	assert.Equal(t, "V5 - #00", lines[5])
	assert.Equal(t, "VA - #7F", lines[10])
	assert.True(t, strings.HasSuffix(lines[6], "CY - 12"))
}

func TestRegisterLinesStatus(t *testing.T) {
	s := chip8.State{
		Waiting: true,
		Fault:   &chip8.Fault{PC: 0x200, Inst: 0x00EE, Err: chip8.ErrStackUnderflow},
	}

	lines := RegisterLines(&s)
	assert.True(t, strings.HasSuffix(lines[9], "WAITING KEY"))
	assert.True(t, strings.HasSuffix(lines[11], "HALTED"))
	assert.True(t, errors.Is(s.Fault, chip8.ErrStackUnderflow))
}
