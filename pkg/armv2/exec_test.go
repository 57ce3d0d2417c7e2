package armv2

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario PCs in spec.md are expressed relative to a running image;
// these tests temporarily grant page 0 write permission to poke scenario
// instructions directly via Memory rather than going through LoadROM's
// byte-stream contract.

func TestScenarioS1ImmediateMove(t *testing.T) {
	m, err := New(PageSize * 2)
	require.NoError(t, err)
	m.Memory().slots[0].perm |= PermWrite
	require.Equal(t, NoException, m.Memory().WriteWord(0, 0xE3A01C0A))

	_, err = m.Step()
	require.NoError(t, err)

	assert.Equal(t, uint32(0x00000A00), m.CPU().Reg(1))
	assert.False(t, m.CPU().N())
	assert.False(t, m.CPU().Z())
	assert.False(t, m.CPU().C())
	assert.False(t, m.CPU().V())
	assert.Equal(t, uint32(4), m.CPU().PCAddr())
}

func TestScenarioS2AddCarryOut(t *testing.T) {
	m, err := New(PageSize * 2)
	require.NoError(t, err)
	m.Memory().slots[0].perm |= PermWrite
	require.Equal(t, NoException, m.Memory().WriteWord(0, 0xE0913002))
	m.CPU().SetReg(1, 0xFFFFFFFF)
	m.CPU().SetReg(2, 0x00000001)

	_, err = m.Step()
	require.NoError(t, err)

	assert.Equal(t, uint32(0), m.CPU().Reg(3))
	assert.False(t, m.CPU().N())
	assert.True(t, m.CPU().Z())
	assert.True(t, m.CPU().C())
	assert.False(t, m.CPU().V())
}

func TestScenarioS3SignedOverflow(t *testing.T) {
	m, err := New(PageSize * 2)
	require.NoError(t, err)
	m.Memory().slots[0].perm |= PermWrite
	require.Equal(t, NoException, m.Memory().WriteWord(0, 0xE0913002))
	m.CPU().SetReg(1, 0x7FFFFFFF)
	m.CPU().SetReg(2, 0x00000001)

	_, err = m.Step()
	require.NoError(t, err)

	assert.Equal(t, uint32(0x80000000), m.CPU().Reg(3))
	assert.True(t, m.CPU().N())
	assert.False(t, m.CPU().Z())
	assert.False(t, m.CPU().C())
	assert.True(t, m.CPU().V())
}

func TestScenarioS4BranchWithLink(t *testing.T) {
	m, err := New(PageSize * 2)
	require.NoError(t, err)
	m.Memory().slots[0].perm |= PermWrite
	m.CPU().SetPCAddr(0x20)
	require.Equal(t, NoException, m.Memory().WriteWord(0x20, 0xEB000002))

	_, err = m.Step()
	require.NoError(t, err)

	assert.Equal(t, uint32(0x30), m.CPU().PCAddr())
	assert.Equal(t, uint32(0x24), m.CPU().LinkRegister())
}

func TestScenarioS5ConditionalSkip(t *testing.T) {
	m, err := New(PageSize * 2)
	require.NoError(t, err)
	m.Memory().slots[0].perm |= PermWrite
	require.Equal(t, NoException, m.Memory().WriteWord(0, 0x03A01001))
	m.CPU().SetReg(1, 0x55)
	m.CPU().SetNZCV(false, false, false, false) // Z=0

	_, err = m.Step()
	require.NoError(t, err)

	assert.Equal(t, uint32(0x55), m.CPU().Reg(1), "condition false: destination unchanged")
	assert.Equal(t, uint32(4), m.CPU().PCAddr())
}

func TestScenarioS6CoprocessorNumDevices(t *testing.T) {
	m, err := New(PageSize * 2)
	require.NoError(t, err)
	m.Memory().slots[0].perm |= PermWrite
	hw := m.HardwareManager()
	require.NotNil(t, hw)
	hw.SetNumDevices(3)

	// CDP p0, #0(opcode), cr2, cr0, cr0, #0 -- crd=2.
	// cond=AL(0xE) 1110 opcode1=0000 CRn=0000 CRd=0010 CPnum=0000 op2=000 0 CRm=0000
	instr := uint32(0xE << 28)
	instr |= 0b1110 << 24
	instr |= 2 << 12 // CRd = crd = 2
	require.Equal(t, NoException, m.Memory().WriteWord(0, instr))

	_, err = m.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), hw.regs[2])
}

func TestInvariant4FlagsUnchangedWhenSClearAndRdNotR15(t *testing.T) {
	m, err := New(PageSize * 2)
	require.NoError(t, err)
	m.Memory().slots[0].perm |= PermWrite
	m.CPU().SetNZCV(true, true, true, true)
	// MOV R1, #1 (S clear): cond=AL, I=1, opcode=MOV(0xD), S=0, Rd=1, imm8=1 rot=0.
	instr := uint32(0xE << 28)
	instr |= 1 << 25 // I
	instr |= 0xD << 21
	instr |= 1 << 12 // Rd=1
	instr |= 1       // imm=1
	require.Equal(t, NoException, m.Memory().WriteWord(0, instr))

	_, err = m.Step()
	require.NoError(t, err)

	assert.True(t, m.CPU().N())
	assert.True(t, m.CPU().Z())
	assert.True(t, m.CPU().C())
	assert.True(t, m.CPU().V())
	assert.Equal(t, uint32(1), m.CPU().Reg(1))
}

func TestTrapSequenceEntersSupervisorMode(t *testing.T) {
	m, err := New(PageSize)
	require.NoError(t, err)
	// No instruction installed at page 1+ so executing past page 0
	// triggers an abort; directly invoke trap to test the sequence in
	// isolation instead of relying on a faulting fetch.
	m.cpu.SetPCAddr(0x1000)
	m.trap(ExcUndefinedInstruction)

	assert.Equal(t, ModeSUP, m.CPU().Mode())
	assert.Equal(t, uint32(0x04), m.CPU().PCAddr())
	assert.True(t, m.cpu.iMasked())
}

// TestTrapSequenceResetSetsBothMasksAndFullAddress exercises the vectors
// and mask combinations TestTrapSequenceEntersSupervisorMode's 0x04/I-only
// case does not: Reset's vector (0x00) and its requirement that both I and
// F end up set, with a pre-trap PC address reaching into the top half of
// the 26-bit address space (bit 25 set) to confirm the address field is
// not truncated by the I/F mask.
func TestTrapSequenceResetSetsBothMasksAndFullAddress(t *testing.T) {
	m, err := New(PageSize)
	require.NoError(t, err)
	m.cpu.SetPCAddr(0x02000000)
	require.Equal(t, uint32(0x02000000), m.CPU().PCAddr())

	m.trap(ExcReset)

	assert.Equal(t, ModeSUP, m.CPU().Mode())
	assert.Equal(t, uint32(0x00), m.CPU().PCAddr())
	assert.True(t, m.cpu.iMasked())
	assert.True(t, m.cpu.fMasked())
}

// TestTrapSequenceIrqSetsIOnly confirms Irq's vector (0x18) lands correctly
// and only the I mask is forced, not F.
func TestTrapSequenceIrqSetsIOnly(t *testing.T) {
	m, err := New(PageSize)
	require.NoError(t, err)
	m.cpu.SetPCAddr(0x40)

	m.trap(ExcIrq)

	assert.Equal(t, ModeIRQ, m.CPU().Mode())
	assert.Equal(t, uint32(0x18), m.CPU().PCAddr())
	assert.True(t, m.cpu.iMasked())
	assert.False(t, m.cpu.fMasked())
}

// TestPCAddrCoversFull26BitSpace confirms the address field is not
// truncated to 22 bits: the top of MaxMemory must round-trip through
// PCAddr/SetPCAddr untouched by the I/F or mode bits.
func TestPCAddrCoversFull26BitSpace(t *testing.T) {
	c := NewCPU()
	c.setMode(ModeSUP)
	c.setIF(true, true)
	top := uint32(MaxMemory - 4)
	c.SetPCAddr(top)
	assert.Equal(t, top, c.PCAddr())
	assert.Equal(t, ModeSUP, c.Mode())
	assert.True(t, c.iMasked())
	assert.True(t, c.fMasked())
}

func TestLoadROMRejectsShortImages(t *testing.T) {
	m, err := New(PageSize)
	require.NoError(t, err)
	err = m.LoadROM(bytes.NewReader(make([]byte, 10)))
	assert.Error(t, err)
}

func TestLoadROMInstallsIntoPage0(t *testing.T) {
	m, err := New(PageSize)
	require.NoError(t, err)
	data := make([]byte, minROMBytes)
	data[0x20] = 0x0A
	data[0x21] = 0x1C
	data[0x22] = 0xA0
	data[0x23] = 0xE3
	require.NoError(t, m.LoadROM(bytes.NewReader(data)))

	v, exc := m.Memory().ReadWord(0x20, PermExec)
	require.Equal(t, NoException, exc)
	assert.Equal(t, uint32(0xE3A01C0A), v)
}
