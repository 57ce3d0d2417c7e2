package armv2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackedPCModeInvariant(t *testing.T) {
	c := NewCPU()
	c.setMode(ModeSUP)
	assert.Equal(t, ModeSUP, c.Mode())
	assert.Equal(t, uint32(ModeSUP), c.pc&pcModeMask, "low two bits of packed PC always equal current mode")
}

func TestBankedR13R14PerMode(t *testing.T) {
	c := NewCPU()
	c.setMode(ModeUSR)
	c.SetReg(13, 0x1000)
	c.setMode(ModeSUP)
	c.SetReg(13, 0x2000)
	c.setMode(ModeIRQ)
	c.SetReg(13, 0x3000)

	c.setMode(ModeUSR)
	assert.Equal(t, uint32(0x1000), c.Reg(13))
	c.setMode(ModeSUP)
	assert.Equal(t, uint32(0x2000), c.Reg(13))
	c.setMode(ModeIRQ)
	assert.Equal(t, uint32(0x3000), c.Reg(13))
}

func TestSetNZCVPreservesRestOfPackedPC(t *testing.T) {
	c := NewCPU()
	c.setMode(ModeSUP)
	c.SetPCAddr(0x100)
	c.SetNZCV(true, false, true, false)

	assert.True(t, c.N())
	assert.False(t, c.Z())
	assert.True(t, c.C())
	assert.False(t, c.V())
	assert.Equal(t, uint32(0x100), c.PCAddr())
	assert.Equal(t, ModeSUP, c.Mode())
}

func TestRegR15ReadsPackedPC(t *testing.T) {
	c := NewCPU()
	c.SetPCAddr(0x40)
	assert.Equal(t, c.pc, c.Reg(15))
}
