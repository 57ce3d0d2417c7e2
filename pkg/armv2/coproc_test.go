package armv2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoprocessorBusAbsentSlotIsUndefinedInstruction(t *testing.T) {
	bus := NewCoprocessorBus()
	exc := bus.dataOperation(5, 0, 0, 0, 0, 0)
	assert.Equal(t, ExcUndefinedInstruction, exc)
}

func TestCoprocessorBusRegisterAndUnregister(t *testing.T) {
	bus := NewCoprocessorBus()
	hw := NewHardwareManager(2)
	require.NoError(t, bus.Register(0, hw))

	exc := bus.dataOperation(0, 0, 0, 3, 0, hwOpNumDevices)
	assert.Equal(t, NoException, exc)
	assert.Equal(t, uint32(2), hw.regs[3])

	bus.Unregister(0)
	exc = bus.dataOperation(0, 0, 0, 3, 0, hwOpNumDevices)
	assert.Equal(t, ExcUndefinedInstruction, exc)
}

func TestCoprocessorBusRegisterTransferDirection(t *testing.T) {
	bus := NewCoprocessorBus()
	hw := NewHardwareManager(0)
	require.NoError(t, bus.Register(0, hw))
	c := NewCPU()
	c.SetReg(1, 0x42)

	store := (hwSubMovRegister << 1) | 0 // direction bit 0 = store
	exc := bus.registerTransfer(c, 0, 0, 0, 1, 5, store)
	assert.Equal(t, NoException, exc)
	assert.Equal(t, uint32(0x42), hw.regs[5])

	load := (hwSubMovRegister << 1) | 1
	c.SetReg(2, 0)
	exc = bus.registerTransfer(c, 0, 0, 0, 2, 5, load)
	assert.Equal(t, NoException, exc)
	assert.Equal(t, uint32(0x42), c.Reg(2))
}

func TestCoprocessorBusRegisterRejectsOutOfRangeID(t *testing.T) {
	bus := NewCoprocessorBus()
	err := bus.Register(16, NewHardwareManager(0))
	assert.Error(t, err)
}
