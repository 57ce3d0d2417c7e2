package armv2

// ShiftType is the 2-bit field at bits [6:5] of a register-form data
// processing operand.
type ShiftType uint32

const (
	ShiftLSL ShiftType = iota
	ShiftLSR
	ShiftASR
	ShiftROR
)

// shiftResult is the barrel shifter's output pair: the shifted value fed
// to the ALU and the carry-out it produces, independent of the ALU's own
// arithmetic carry.
type shiftResult struct {
	value uint32
	carry bool
}

// operand2 computes the ALU's second operand and its shifter-carry-out from
// the low 12 bits of a data-processing instruction, per §4.5.
func operand2(c *CPU, instr uint32, immediate bool) shiftResult {
	if immediate {
		rotate := 2 * ((instr >> 8) & 0xF)
		imm := instr & 0xFF
		return rotateRight(imm, rotate, c.C())
	}
	rm := instr & 0xF
	src := c.Reg(rm)
	st := ShiftType((instr >> 5) & 0x3)
	byReg := instr&(1<<4) != 0
	var amount uint32
	if byReg {
		rs := (instr >> 8) & 0xF
		amount = c.Reg(rs) & 0xFF
	} else {
		amount = (instr >> 7) & 0x1F
	}
	return shift(st, src, amount, byReg, c.C())
}

// rotateRight implements the immediate-operand form: an 8-bit value
// rotated right by an even amount in [0,30]. Amount 0 leaves the value and
// carry-in untouched (identity, per the imm-form row of §4.5's table);
// carry for a nonzero rotate is bit31 of the rotated result.
func rotateRight(val, rotate uint32, carryIn bool) shiftResult {
	if rotate == 0 {
		return shiftResult{value: val, carry: carryIn}
	}
	rotate &= 31
	v := (val >> rotate) | (val << (32 - rotate))
	return shiftResult{value: v, carry: v&0x80000000 != 0}
}

// shift applies one of LSL/LSR/ASR/ROR to src by amount, following the
// exact edge-case table of §4.5. byReg distinguishes the register-form
// amount-from-register case (where amount==0 is always identity) from the
// register-form immediate-shift-amount case (where LSL amount==0 is also
// identity, but LSR/ASR/ROR amount==0 encode special forms).
func shift(st ShiftType, src, amount uint32, byReg bool, carryIn bool) shiftResult {
	if byReg && amount == 0 {
		return shiftResult{value: src, carry: carryIn}
	}
	switch st {
	case ShiftLSL:
		return shiftLSL(src, amount, carryIn)
	case ShiftLSR:
		return shiftLSR(src, amount, carryIn, byReg)
	case ShiftASR:
		return shiftASR(src, amount, carryIn, byReg)
	case ShiftROR:
		return shiftROR(src, amount, carryIn, byReg)
	default:
		return shiftResult{value: src, carry: carryIn}
	}
}

func shiftLSL(src, a uint32, carryIn bool) shiftResult {
	switch {
	case a == 0:
		return shiftResult{value: src, carry: carryIn}
	case a < 32:
		return shiftResult{value: src << a, carry: (src>>(32-a))&1 != 0}
	case a == 32:
		return shiftResult{value: 0, carry: src&1 != 0}
	default:
		return shiftResult{value: 0, carry: false}
	}
}

func shiftLSR(src, a uint32, carryIn bool, byReg bool) shiftResult {
	if a == 0 && !byReg {
		// Immediate-shift LSR #0 encodes LSR #32.
		a = 32
	}
	switch {
	case a == 0:
		return shiftResult{value: src, carry: carryIn}
	case a < 32:
		return shiftResult{value: src >> a, carry: (src>>(a-1))&1 != 0}
	case a == 32:
		return shiftResult{value: 0, carry: src&0x80000000 != 0}
	default:
		return shiftResult{value: 0, carry: false}
	}
}

func shiftASR(src, a uint32, carryIn bool, byReg bool) shiftResult {
	if a == 0 && !byReg {
		a = 32
	}
	fillBit := src&0x80000000 != 0
	switch {
	case a == 0:
		return shiftResult{value: src, carry: carryIn}
	case a < 32:
		v := uint32(int32(src) >> a)
		return shiftResult{value: v, carry: (src>>(a-1))&1 != 0}
	default: // a >= 32: fully filled with the sign bit
		var v uint32
		if fillBit {
			v = 0xFFFFFFFF
		}
		return shiftResult{value: v, carry: fillBit}
	}
}

func shiftROR(src, a uint32, carryIn bool, byReg bool) shiftResult {
	if a == 0 && !byReg {
		// RRX: rotate right through carry by one bit.
		v := src >> 1
		if carryIn {
			v |= 0x80000000
		}
		return shiftResult{value: v, carry: src&1 != 0}
	}
	if a == 0 {
		return shiftResult{value: src, carry: carryIn}
	}
	if a == 32 {
		return shiftResult{value: src, carry: src&0x80000000 != 0}
	}
	// a > 32 (only reachable in register form): reduce modulo 32 and
	// re-evaluate, per the normative Open Question resolution in §9.
	a &= 31
	if a == 0 {
		return shiftResult{value: src, carry: src&0x80000000 != 0}
	}
	v := (src >> a) | (src << (32 - a))
	return shiftResult{value: v, carry: (src>>(a-1))&1 != 0}
}
