package chip8

import (
	"fmt"
	"strings"
)

/// Quirks select between behaviors that historical CHIP-8 interpreters
/// disagree on.
///
type Quirks struct {
	/// ShiftUsesVY makes 8XY6 and 8XYE shift VY into VX, as the original
	/// COSMAC VIP did. Otherwise VX is shifted in place.
	///
	ShiftUsesVY bool

	/// LoadStoreIncrementsI leaves I pointing past the last register
	/// after FX55 and FX65.
	///
	LoadStoreIncrementsI bool

	/// JumpUsesVX makes BXNN jump to VX + XNN (CHIP-48) instead of V0 + NNN.
	///
	JumpUsesVX bool

	/// LogicResetsVF clears VF after 8XY1, 8XY2 and 8XY3.
	///
	LogicResetsVF bool
}

var (
	/// ModernQuirks is the behavior most contemporary ROMs expect.
	///
	ModernQuirks = Quirks{}

	/// CosmacQuirks matches the original COSMAC VIP interpreter.
	///
	CosmacQuirks = Quirks{
		ShiftUsesVY:          true,
		LoadStoreIncrementsI: true,
		LogicResetsVF:        true,
	}

	/// Chip48Quirks matches the HP-48 CHIP-48 interpreter.
	///
	Chip48Quirks = Quirks{
		JumpUsesVX: true,
	}
)

/// ParseQuirks returns a named quirks preset.
///
func ParseQuirks(name string) (Quirks, error) {
	switch strings.ToLower(name) {
	case "", "modern":
		return ModernQuirks, nil
	case "cosmac", "vip":
		return CosmacQuirks, nil
	case "chip48", "chip-48":
		return Chip48Quirks, nil
	}

	return Quirks{}, fmt.Errorf("unknown quirks preset: %s (valid: modern, cosmac, chip48)", name)
}
