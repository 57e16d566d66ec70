package termui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestRender(t *testing.T) {
	var fb chip8.Framebuffer

	// column 0 on rows 0 and 1, column 1 on row 0, column 2 on row 1
	fb.Draw(0, 0, []byte{0xC0, 0xA0})

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, &fb))

	out := strings.TrimPrefix(buf.String(), CursorHome)
	lines := strings.Split(out, "\r\n")
	assert.Equal(t, chip8.Height/2+1, len(lines))
	assert.Equal(t, "", lines[len(lines)-1])

	first := []rune(lines[0])
	assert.Equal(t, chip8.Width, len(first))
	assert.Equal(t, '█', first[0])
	assert.Equal(t, '▀', first[1])
	assert.Equal(t, '▄', first[2])
	assert.Equal(t, ' ', first[3])

	assert.Equal(t, strings.Repeat(" ", chip8.Width), lines[1])
}

func TestStatus(t *testing.T) {
	s := chip8.State{PC: 0x200, I: 0x2F0, DT: 0x10}

	assert.Equal(t, "PC 0200  I 02F0  DT 10  ST 00  running\x1b[K", Status(&s, false))
	assert.Contains(t, Status(&s, true), "paused")

	s.Waiting = true
	assert.Contains(t, Status(&s, false), "waiting for key")

	s.Fault = &chip8.Fault{PC: 0x200, Inst: 0x00EE, Err: chip8.ErrStackUnderflow}
	line := Status(&s, true)
	assert.Contains(t, line, "halted: 0200 (00EE)")
	assert.True(t, len(line) <= Cols+len("\x1b[K"))
}

func TestRenderStatus(t *testing.T) {
	var buf bytes.Buffer
	s := chip8.State{}

	assert.NoError(t, RenderStatus(&buf, &s, false))
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[17;1H"))
}
