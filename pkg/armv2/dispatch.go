package armv2

// instrClass is one of the ten architectural classes the dispatcher
// recognizes by bits [27:25] plus refinement bits, per §4.4.
type instrClass int

const (
	classUndefined instrClass = iota
	classDataProcessing
	classMultiply
	classSingleDataSwap
	classSingleDataTransfer
	classBlockDataTransfer
	classBranch
	classCoprocDataTransfer
	classCoprocDataOperation
	classCoprocRegisterTransfer
	classSoftwareInterrupt
)

// classify implements C8's classification table.
func classify(instr uint32) instrClass {
	top3 := (instr >> 25) & 0x7

	switch top3 {
	case 0b000:
		if (instr>>4)&0xF == 0b1001 && (instr>>22)&0x3F == 0 {
			return classMultiply
		}
		if (instr>>4)&0xF == 0b1001 && (instr>>23)&0x1F == 0b00010 {
			return classSingleDataSwap
		}
		return classDataProcessing
	case 0b001:
		return classDataProcessing
	case 0b010, 0b011:
		return classSingleDataTransfer
	case 0b100:
		return classBlockDataTransfer
	case 0b101:
		return classBranch
	case 0b110:
		return classCoprocDataTransfer
	case 0b111:
		if instr&(1<<24) != 0 {
			return classSoftwareInterrupt
		}
		if (instr>>4)&1 == 0 {
			return classCoprocDataOperation
		}
		return classCoprocRegisterTransfer
	default:
		return classUndefined
	}
}

// stepResult is what dispatching one instruction produces: either an
// exception (handled by the execution loop's trap sequence) or, on a
// branch, an explicit new PC address to install instead of the loop's
// default +4 advance.
type stepResult struct {
	exception Exception
	newPC     uint32
	hasNewPC  bool
}

// dispatch invokes the handler for instr's class, per §4.4/§4.8/§4.9.
func dispatch(c *CPU, mem *Memory, bus *CoprocessorBus, instr uint32) stepResult {
	switch classify(instr) {
	case classDataProcessing:
		execDataProcessing(c, instr)
		return stepResult{}
	case classBranch:
		target, _ := execBranch(c, instr)
		return stepResult{newPC: target, hasNewPC: true}
	case classCoprocDataOperation:
		id, crm, aux, crd, crn, opcode := decodeCoprocDataOp(instr)
		return stepResult{exception: bus.dataOperation(id, crm, aux, crd, crn, opcode)}
	case classCoprocRegisterTransfer:
		id, crm, aux, rd, crn, opcode := decodeCoprocRegTransfer(instr)
		return stepResult{exception: bus.registerTransfer(c, id, crm, aux, rd, crn, opcode)}
	case classMultiply:
		return stepResult{exception: execMultiplyStub(c, instr)}
	case classSingleDataSwap:
		return stepResult{exception: execSwapStub(c, instr)}
	case classSingleDataTransfer:
		return stepResult{exception: execSingleDataTransferStub(c, instr)}
	case classBlockDataTransfer:
		return stepResult{exception: execBlockDataTransferStub(c, instr)}
	case classCoprocDataTransfer:
		return stepResult{exception: execCoprocDataTransferStub(c, instr)}
	case classSoftwareInterrupt:
		return stepResult{exception: ExcSoftwareInterrupt}
	default:
		return stepResult{exception: ExcUndefinedInstruction}
	}
}

// execDataProcessing implements C6 end to end: compute Op1/Op2, apply the
// ALU, and write back the destination and flags per §4.6.
func execDataProcessing(c *CPU, instr uint32) {
	immediate := instr&(1<<25) != 0
	op := DPOpcode((instr >> 21) & 0xF)
	s := instr&(1<<20) != 0
	rn := (instr >> 16) & 0xF
	rd := (instr >> 12) & 0xF

	op1 := c.Reg(rn)
	sh := operand2(c, instr, immediate)
	res := executeALU(op, op1, sh.value, c.C(), sh.carry)

	if !op.comparelike() {
		writeDPDest(c, rd, res.value, s)
	}

	if s && rd != 15 {
		c.SetNZCV(res.n, res.z, res.carry, res.ovfl)
	}
}

// writeDPDest applies §4.6's Rd==R15 write-back rules.
func writeDPDest(c *CPU, rd uint32, result uint32, s bool) {
	if rd != 15 {
		c.SetReg(rd, result)
		return
	}
	if s {
		if c.Mode() == ModeUSR {
			c.pc = (c.pc &^ PCUnprotectedBits) | (result & PCUnprotectedBits)
		} else {
			c.pc = result
		}
		return
	}
	c.SetPCAddr(result)
}

func decodeCoprocDataOp(instr uint32) (id, crm, aux, crd, crn, opcode uint32) {
	id = (instr >> 8) & 0xF
	crm = instr & 0xF
	aux = (instr >> 5) & 0x7
	crn = (instr >> 16) & 0xF
	crd = (instr >> 12) & 0xF
	opcode = (instr >> 20) & 0xF
	return
}

func decodeCoprocRegTransfer(instr uint32) (id, crm, aux, rd, crn, opcode uint32) {
	id = (instr >> 8) & 0xF
	crm = instr & 0xF
	aux = (instr >> 5) & 0x7
	crn = (instr >> 16) & 0xF
	rd = (instr >> 12) & 0xF
	opcode = ((instr>>21)&0x7)<<1 | ((instr >> 20) & 1)
	return
}

// The following implement §4.8's contract for unimplemented classes: their
// dispatch entries are reachable, they never corrupt the packed PC's flag
// bits, and they return NoException unless they detect an undefined form.
// Full semantics are out of scope for this core.

func execMultiplyStub(c *CPU, instr uint32) Exception {
	return NoException
}

func execSwapStub(c *CPU, instr uint32) Exception {
	return NoException
}

func execSingleDataTransferStub(c *CPU, instr uint32) Exception {
	return NoException
}

func execBlockDataTransferStub(c *CPU, instr uint32) Exception {
	return NoException
}

func execCoprocDataTransferStub(c *CPU, instr uint32) Exception {
	return NoException
}
