package armv2

// Condition is the 4-bit field at bits [31:28] of every instruction.
type Condition uint32

const (
	CondEQ Condition = iota
	CondNE
	CondCS
	CondCC
	CondMI
	CondPL
	CondVS
	CondVC
	CondHI
	CondLS
	CondGE
	CondLT
	CondGT
	CondLE
	CondAL
	CondNV
)

func decodeCondition(instr uint32) Condition {
	return Condition(instr >> 28)
}

// Flags is the NZCV quad, broken out for the condition evaluator and for
// tests that want to enumerate all 16 states independently of a CPU.
type Flags struct {
	N, Z, C, V bool
}

// Eval reports whether the condition holds against the given flags, per
// the table in §4.3.
func (cond Condition) Eval(f Flags) bool {
	switch cond {
	case CondEQ:
		return f.Z
	case CondNE:
		return !f.Z
	case CondCS:
		return f.C
	case CondCC:
		return !f.C
	case CondMI:
		return f.N
	case CondPL:
		return !f.N
	case CondVS:
		return f.V
	case CondVC:
		return !f.V
	case CondHI:
		return f.C && !f.Z
	case CondLS:
		return !f.C || f.Z
	case CondGE:
		return f.N == f.V
	case CondLT:
		return f.N != f.V
	case CondGT:
		return !f.Z && f.N == f.V
	case CondLE:
		return f.Z || f.N != f.V
	case CondAL:
		return true
	case CondNV:
		return false
	default:
		return false
	}
}

func flagsOf(c *CPU) Flags {
	return Flags{N: c.N(), Z: c.Z(), C: c.C(), V: c.V()}
}
