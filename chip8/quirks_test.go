package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseQuirks(t *testing.T) {
	tests := []struct {
		name     string
		expected Quirks
		err      bool
	}{
		{"", ModernQuirks, false},
		{"modern", ModernQuirks, false},
		{"COSMAC", CosmacQuirks, false},
		{"chip-48", Chip48Quirks, false},
		{"schip2", Quirks{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuirks(tt.name)
			if tt.err {
				assert.ErrorContains(t, err, "unknown quirks preset")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, q)
		})
	}
}

func TestShiftQuirk(t *testing.T) {
	vm := newTestVM(t, 0x8016, 0x801E)
	vm.Quirks.ShiftUsesVY = true
	vm.V[0] = 0xFF
	vm.V[1] = 0x03

	steps(t, vm, 1)
	assert.Equal(t, byte(0x01), vm.V[0])
	assert.Equal(t, byte(1), vm.V[0xF])

	vm.V[1] = 0x80
	steps(t, vm, 1)
	assert.Equal(t, byte(0x00), vm.V[0])
	assert.Equal(t, byte(1), vm.V[0xF])
	assert.Equal(t, byte(0x80), vm.V[1])
}

func TestLoadStoreQuirk(t *testing.T) {
	vm := newTestVM(t, 0xA400, 0xF355, 0xF165)
	vm.Quirks.LoadStoreIncrementsI = true

	steps(t, vm, 2)
	assert.Equal(t, uint16(0x404), vm.I)

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x406), vm.I)
}

func TestJumpQuirk(t *testing.T) {
	vm := newTestVM(t, 0xB220)
	vm.Quirks.JumpUsesVX = true
	vm.V[0] = 0x01
	vm.V[2] = 0x10

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x230), vm.PC)
}

func TestLogicQuirk(t *testing.T) {
	vm := newTestVM(t, 0x8011, 0x8012, 0x8013)
	vm.Quirks.LogicResetsVF = true

	for i := 0; i < 3; i++ {
		vm.V[0xF] = 0x55
		steps(t, vm, 1)
		assert.Equal(t, byte(0), vm.V[0xF])
	}
}
