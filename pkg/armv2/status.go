// Package armv2 implements the instruction-execution core of a 32-bit
// ARMv2-style processor: paged memory, the fetch/decode/dispatch loop,
// the data-processing ALU and barrel shifter, branches, and a coprocessor
// bus serving a hardware-manager coprocessor.
package armv2

import "fmt"

// StatusCode is the host-side error channel: values returned by setup and
// teardown operations (New, LoadROM, CoprocessorBus.Register), carried in a
// StatusError, and by Coprocessor entry points. StatusCode never
// reflects guest architectural state; see Exception for that channel.
type StatusCode int

const (
	Ok StatusCode = iota
	InvalidCPUState
	InvalidArgs
	ValueError
	MemoryError
	IoError
	UnknownOpcode
	UniverseBroken
)

func (s StatusCode) String() string {
	switch s {
	case Ok:
		return "Ok"
	case InvalidCPUState:
		return "InvalidCpuState"
	case InvalidArgs:
		return "InvalidArgs"
	case ValueError:
		return "ValueError"
	case MemoryError:
		return "MemoryError"
	case IoError:
		return "IoError"
	case UnknownOpcode:
		return "UnknownOpcode"
	case UniverseBroken:
		return "UniverseBroken"
	default:
		return fmt.Sprintf("StatusCode(%d)", int(s))
	}
}

// StatusError wraps a StatusCode as an error, optionally with a cause.
type StatusError struct {
	Code StatusCode
	Msg  string
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *StatusError) Unwrap() error { return e.Err }

func statusf(code StatusCode, format string, args ...interface{}) error {
	return &StatusError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func statusWrap(code StatusCode, msg string, err error) error {
	return &StatusError{Code: code, Msg: msg, Err: err}
}

// Exception is the guest-side channel: the value an instruction handler
// returns to report an architectural trap condition. Exception values are
// consumed entirely by the execution loop and never escape as Go errors.
type Exception int

const (
	NoException Exception = iota
	ExcReset
	ExcUndefinedInstruction
	ExcSoftwareInterrupt
	ExcPrefetchAbort
	ExcDataAbort
	ExcAddressException
	ExcIrq
	ExcFiq
)

func (e Exception) String() string {
	switch e {
	case NoException:
		return "None"
	case ExcReset:
		return "Reset"
	case ExcUndefinedInstruction:
		return "UndefinedInstruction"
	case ExcSoftwareInterrupt:
		return "SoftwareInterrupt"
	case ExcPrefetchAbort:
		return "PrefetchAbort"
	case ExcDataAbort:
		return "DataAbort"
	case ExcAddressException:
		return "AddressException"
	case ExcIrq:
		return "Irq"
	case ExcFiq:
		return "Fiq"
	default:
		return fmt.Sprintf("Exception(%d)", int(e))
	}
}

// vector returns the page-0 byte address the loop branches to on trap entry.
// Order matches spec §6's exception taxonomy, excluding None.
func (e Exception) vector() (uint32, bool) {
	switch e {
	case ExcReset:
		return 0x00, true
	case ExcUndefinedInstruction:
		return 0x04, true
	case ExcSoftwareInterrupt:
		return 0x08, true
	case ExcPrefetchAbort:
		return 0x0C, true
	case ExcDataAbort:
		return 0x10, true
	case ExcAddressException:
		return 0x14, true
	case ExcIrq:
		return 0x18, true
	case ExcFiq:
		return 0x1C, true
	default:
		return 0, false
	}
}

// targetMode returns the processor mode an exception traps into, and
// whether the I and F mask bits must be set on entry.
func (e Exception) targetMode() (mode Mode, setI, setF bool) {
	switch e {
	case ExcIrq:
		return ModeIRQ, true, false
	case ExcFiq:
		return ModeFIQ, true, true
	case ExcReset:
		return ModeSUP, true, true
	default:
		return ModeSUP, true, false
	}
}
