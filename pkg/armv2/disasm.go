package armv2

import "fmt"

var dpMnemonics = [16]string{
	"AND", "EOR", "SUB", "RSB", "ADD", "ADC", "SBC", "RSC",
	"TST", "TEQ", "CMP", "CMN", "ORR", "MOV", "BIC", "MVN",
}

var condMnemonics = [16]string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE", "AL", "NV",
}

// Disassemble renders a best-effort mnemonic + operand string for a
// fetched instruction, covering the classes this core gives full
// semantics to (data processing, branch, coprocessor). Stub classes
// render as "<opcode classname>", mirroring the teacher's Disassemble
// contract of never failing on an unrecognized encoding.
func Disassemble(instr uint32) string {
	cond := condMnemonics[instr>>28]
	switch classify(instr) {
	case classDataProcessing:
		return disasmDataProcessing(instr, cond)
	case classBranch:
		link := ""
		if instr&(1<<24) != 0 {
			link = "L"
		}
		offset := signExtend24(instr&0x00FFFFFF) * 4
		return fmt.Sprintf("B%s%s %+d", link, cond, offset+8)
	case classCoprocDataOperation:
		id, crm, aux, crd, crn, opcode := decodeCoprocDataOp(instr)
		return fmt.Sprintf("CDP%s p%d, #%d, cr%d, cr%d, cr%d, #%d", cond, id, opcode, crd, crn, crm, aux)
	case classCoprocRegisterTransfer:
		id, crm, aux, rd, crn, opcode := decodeCoprocRegTransfer(instr)
		mnem := "MCR"
		if opcode&1 != 0 {
			mnem = "MRC"
		}
		return fmt.Sprintf("%s%s p%d, #%d, r%d, cr%d, cr%d, #%d", mnem, cond, id, opcode>>1, rd, crn, crm, aux)
	case classMultiply:
		return fmt.Sprintf("<multiply%s>", cond)
	case classSingleDataSwap:
		return fmt.Sprintf("<swap%s>", cond)
	case classSingleDataTransfer:
		return fmt.Sprintf("<single-data-transfer%s>", cond)
	case classBlockDataTransfer:
		return fmt.Sprintf("<block-data-transfer%s>", cond)
	case classCoprocDataTransfer:
		return fmt.Sprintf("<coproc-data-transfer%s>", cond)
	case classSoftwareInterrupt:
		return fmt.Sprintf("SWI%s #0x%06X", cond, instr&0x00FFFFFF)
	default:
		return fmt.Sprintf("<undefined 0x%08X>", instr)
	}
}

func disasmDataProcessing(instr uint32, cond string) string {
	immediate := instr&(1<<25) != 0
	op := DPOpcode((instr >> 21) & 0xF)
	s := ""
	if instr&(1<<20) != 0 {
		s = "S"
	}
	rn := (instr >> 16) & 0xF
	rd := (instr >> 12) & 0xF
	operand := disasmOperand2(instr, immediate)

	if op.comparelike() {
		return fmt.Sprintf("%s%s r%d, %s", dpMnemonics[op], cond, rn, operand)
	}
	if op == OpMOV || op == OpMVN {
		return fmt.Sprintf("%s%s%s r%d, %s", dpMnemonics[op], cond, s, rd, operand)
	}
	return fmt.Sprintf("%s%s%s r%d, r%d, %s", dpMnemonics[op], cond, s, rd, rn, operand)
}

func disasmOperand2(instr uint32, immediate bool) string {
	if immediate {
		rotate := 2 * ((instr >> 8) & 0xF)
		imm := instr & 0xFF
		return fmt.Sprintf("#0x%X", (imm>>rotate)|(imm<<(32-rotate)&0xFFFFFFFF))
	}
	rm := instr & 0xF
	st := []string{"LSL", "LSR", "ASR", "ROR"}[(instr>>5)&0x3]
	if instr&(1<<4) != 0 {
		rs := (instr >> 8) & 0xF
		return fmt.Sprintf("r%d, %s r%d", rm, st, rs)
	}
	amount := (instr >> 7) & 0x1F
	if amount == 0 {
		return fmt.Sprintf("r%d", rm)
	}
	return fmt.Sprintf("r%d, %s #%d", rm, st, amount)
}
