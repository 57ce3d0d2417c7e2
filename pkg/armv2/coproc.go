package armv2

// Coprocessor is the capability pair every coprocessor slot exposes:
// a data-operation entry point and a register-transfer entry point.
// Absence of a Coprocessor in a slot is a first-class value (nil).
type Coprocessor interface {
	// DataOperation performs purely intra-coprocessor work addressed by
	// opcode, with crm/aux/crn as auxiliary operands and crd the
	// destination coprocessor register.
	DataOperation(crm, aux, crd, crn, opcode uint32) StatusCode

	// RegisterTransfer moves a value between CPU register rd and
	// coprocessor register crn. The low bit of opcode, already split out
	// by the bus into load, indicates direction (true = coprocessor to
	// CPU). The bus does not touch CPU registers itself: the
	// implementation reads and writes them through c, and when load and
	// rd==15 it applies the transferred value to the flag bits only
	// (writeLoadedValue does this).
	RegisterTransfer(c *CPU, crm, aux, rd, crn, opcode uint32, load bool) StatusCode
}

// CoprocessorBus routes coprocessor instructions to the registered
// coprocessor for their 4-bit id. Slot 0 is reserved for the hardware
// manager; other slots are unused by this specification but remain
// addressable.
type CoprocessorBus struct {
	slots [16]Coprocessor
}

// NewCoprocessorBus returns an empty bus (all 16 slots absent).
func NewCoprocessorBus() *CoprocessorBus {
	return &CoprocessorBus{}
}

// Register installs a coprocessor at the given 4-bit id, replacing
// whatever (if anything) previously occupied that slot.
func (b *CoprocessorBus) Register(id uint32, cp Coprocessor) error {
	if id > 15 {
		return statusf(InvalidArgs, "coprocessor id %d out of range", id)
	}
	b.slots[id] = cp
	return nil
}

// Unregister removes whatever coprocessor occupies id, if any.
func (b *CoprocessorBus) Unregister(id uint32) {
	if id <= 15 {
		b.slots[id] = nil
	}
}

func (b *CoprocessorBus) lookup(id uint32) (Coprocessor, Exception) {
	if id > 15 || b.slots[id] == nil {
		return nil, ExcUndefinedInstruction
	}
	return b.slots[id], NoException
}

// dataOperation routes a coprocessor-data-operation instruction. Failure
// model per §4.9: Ok, InvalidArgs, UnknownOpcode, or UniverseBroken.
func (b *CoprocessorBus) dataOperation(id, crm, aux, crd, crn, opcode uint32) Exception {
	cp, exc := b.lookup(id)
	if exc != NoException {
		return exc
	}
	switch cp.DataOperation(crm, aux, crd, crn, opcode) {
	case Ok:
		return NoException
	case InvalidArgs, UnknownOpcode:
		return ExcUndefinedInstruction
	default: // UniverseBroken or anything unexpected
		panic(&StatusError{Code: UniverseBroken, Msg: "coprocessor data operation returned an unreachable status"})
	}
}

// registerTransfer routes a coprocessor-register-transfer instruction. The
// low bit of opcode selects direction (1 = load coprocessor -> CPU).
func (b *CoprocessorBus) registerTransfer(c *CPU, id, crm, aux, rd, crn, opcode uint32) Exception {
	cp, exc := b.lookup(id)
	if exc != NoException {
		return exc
	}
	load := opcode&1 != 0
	switch cp.RegisterTransfer(c, crm, aux, rd, crn, opcode>>1, load) {
	case Ok:
		return NoException
	case InvalidArgs, UnknownOpcode:
		return ExcUndefinedInstruction
	default:
		panic(&StatusError{Code: UniverseBroken, Msg: "coprocessor register transfer returned an unreachable status"})
	}
}

// writeLoadedValue applies a register-transfer load result to rd, honoring
// the R15 flags-only special case described in §4.9.
func writeLoadedValue(c *CPU, rd, value uint32) {
	if rd == 15 {
		n := value&flagN != 0
		z := value&flagZ != 0
		cf := value&flagC != 0
		v := value&flagV != 0
		c.SetNZCV(n, z, cf, v)
		return
	}
	c.SetReg(rd, value)
}
