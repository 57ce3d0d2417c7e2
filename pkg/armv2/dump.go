package armv2

import "github.com/davecgh/go-spew/spew"

// DumpState renders the full register file, packed PC, and banked R13/R14
// cells as a human-readable multi-line string, for the launcher's debug
// single-step mode, in the shape of the pack's go-spew-backed debugger
// dumps.
func (c *CPU) DumpState() string {
	snapshot := struct {
		R         [15]uint32
		PC        uint32
		Mode      string
		BankedR13 [4]uint32
		BankedR14 [4]uint32
		N, Z, C, V bool
	}{
		R:         c.r,
		PC:        c.pc,
		Mode:      c.Mode().String(),
		BankedR13: c.bankedR13,
		BankedR14: c.bankedR14,
		N:         c.N(),
		Z:         c.Z(),
		C:         c.C(),
		V:         c.V(),
	}
	return spew.Sdump(snapshot)
}
