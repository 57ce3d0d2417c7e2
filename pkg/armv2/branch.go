package armv2

// execBranch implements C7: sign-extend the 24-bit offset, shift left by 2,
// add to PC+8 (pipeline compensation). If bit 24 (the link bit) is set,
// LR receives PC_current + 4.
//
// This implementation follows the "handler returns an explicit new PC"
// design permitted by §9's design notes rather than the literal -4
// pre-compensation hack: it returns the full post-branch PC address, and
// the execution loop installs it verbatim instead of applying its usual
// +4 advance.
func execBranch(c *CPU, instr uint32) (newPCAddr uint32, link bool) {
	offset := instr & 0x00FFFFFF
	signExtended := signExtend24(offset)
	current := c.PCAddr()
	target := current + 8 + uint32(signExtended*4)

	link = instr&(1<<24) != 0
	if link {
		c.SetLinkRegister(current + 4)
	}
	return target, link
}

func signExtend24(v uint32) int32 {
	if v&0x00800000 != 0 {
		return int32(v | 0xFF000000)
	}
	return int32(v)
}
