package armv2

// Hardware-manager coprocessor opcodes (C10). NumDevices is the only
// defined data-operation opcode; MovRegister is the only defined
// register-transfer sub-opcode.
const (
	hwOpNumDevices   = 0
	hwSubMovRegister = 0
)

// HwManagerNumRegs bounds the hardware manager's own register file; crd/crn
// indices outside [0, HwManagerNumRegs) are InvalidArgs.
const HwManagerNumRegs = 16

// HardwareManager is the coprocessor slot-0 peripheral: it reports the
// number of registered hardware devices and exposes a small register file
// reachable via generic coprocessor register moves.
type HardwareManager struct {
	regs       [HwManagerNumRegs]uint32
	numDevices uint32
}

// NewHardwareManager returns a hardware manager reporting numDevices
// devices.
func NewHardwareManager(numDevices uint32) *HardwareManager {
	return &HardwareManager{numDevices: numDevices}
}

// SetNumDevices updates the device count NUM_DEVICES reports.
func (h *HardwareManager) SetNumDevices(n uint32) { h.numDevices = n }

// DataOperation implements NUM_DEVICES: write the device count into
// coprocessor register crd.
func (h *HardwareManager) DataOperation(crm, aux, crd, crn, opcode uint32) StatusCode {
	if crd >= HwManagerNumRegs {
		return InvalidArgs
	}
	switch opcode {
	case hwOpNumDevices:
		h.regs[crd] = h.numDevices
		return Ok
	default:
		return UnknownOpcode
	}
}

// RegisterTransfer implements MOV_REGISTER: load moves coprocessor
// register crn into CPU register rd (flags-only if rd==15, applied by
// writeLoadedValue); store moves CPU register rd
// into coprocessor register crn.
func (h *HardwareManager) RegisterTransfer(c *CPU, crm, aux, rd, crn, opcode uint32, load bool) StatusCode {
	if crn >= HwManagerNumRegs {
		return InvalidArgs
	}
	switch opcode {
	case hwSubMovRegister:
		if load {
			writeLoadedValue(c, rd, h.regs[crn])
		} else {
			h.regs[crn] = c.Reg(rd)
		}
		return Ok
	default:
		return UnknownOpcode
	}
}
