package armv2

import "log/slog"

// Machine composes the CPU register file, paged memory, and coprocessor
// bus into a single emulated system, mirroring the teacher's single
// VM-instance-owns-everything shape.
type Machine struct {
	cpu *CPU
	mem *Memory
	bus *CoprocessorBus

	cycles uint64
	log    *slog.Logger
}

// New allocates a Machine with memSize bytes of RAM (rounded up to whole
// pages, bounded by MaxMemory) and an empty coprocessor bus with slot 0
// populated by a hardware manager reporting zero devices. The CPU enters
// service with its INIT flag set.
func New(memSize uint32) (*Machine, error) {
	mem, err := NewMemory(memSize)
	if err != nil {
		return nil, err
	}
	bus := NewCoprocessorBus()
	if err := bus.Register(0, NewHardwareManager(0)); err != nil {
		return nil, err
	}
	m := &Machine{
		cpu: NewCPU(),
		mem: mem,
		bus: bus,
		log: slog.Default(),
	}
	return m, nil
}

// SetLogger overrides the Machine's diagnostic logger (default: slog's
// package-level default logger).
func (m *Machine) SetLogger(l *slog.Logger) { m.log = l }

// CPU exposes the register file for tests and the launcher's trace mode.
func (m *Machine) CPU() *CPU { return m.cpu }

// Memory exposes the paged address space for tests and peripheral wiring.
func (m *Machine) Memory() *Memory { return m.mem }

// CoprocessorBus exposes the coprocessor bus so callers can register
// additional peripherals before Run.
func (m *Machine) CoprocessorBus() *CoprocessorBus { return m.bus }

// HardwareManager returns the slot-0 coprocessor installed by New, if it
// is still the one registered there.
func (m *Machine) HardwareManager() *HardwareManager {
	if hw, ok := m.bus.slots[0].(*HardwareManager); ok {
		return hw
	}
	return nil
}

// Cycles reports the number of instruction cycles executed so far.
func (m *Machine) Cycles() uint64 { return m.cycles }

// Step runs exactly one cycle: fetch, condition-check, dispatch, PC
// advance or trap, per §4.2. It returns the exception the loop observed
// (NoException on a normal cycle) so the launcher's debug mode can report
// it; traps are always fully handled internally and never returned to the
// caller as a Go error.
func (m *Machine) Step() (reportedException Exception, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*StatusError); ok && se.Code == UniverseBroken {
				err = se
				return
			}
			panic(r)
		}
	}()

	pcAddr := m.cpu.PCAddr()
	instr, fetchExc := m.mem.ReadWord(pcAddr, PermExec)
	if fetchExc != NoException {
		m.trap(fetchExc)
		m.cycles++
		return fetchExc, nil
	}

	cond := decodeCondition(instr)
	if !cond.Eval(flagsOf(m.cpu)) {
		m.cpu.excLatch = NoException
		m.cpu.SetPCAddr(pcAddr + 4)
		m.cycles++
		return NoException, nil
	}

	res := dispatch(m.cpu, m.mem, m.bus, instr)
	if res.exception != NoException {
		m.trap(res.exception)
		m.cycles++
		return res.exception, nil
	}

	m.cpu.excLatch = NoException
	if res.hasNewPC {
		m.cpu.SetPCAddr(res.newPC)
	} else {
		m.cpu.SetPCAddr(m.cpu.PCAddr() + 4)
	}
	m.cycles++
	return NoException, nil
}

// trap performs the architectural trap sequence of §4.10: switch the mode
// bank, save the pre-trap packed PC into the target mode's R14, set the
// I/F masks, and load the vector address into the PC's address field.
func (m *Machine) trap(exc Exception) {
	vector, ok := exc.vector()
	if !ok {
		panic(&StatusError{Code: UniverseBroken, Msg: "trap called with no vector for exception " + exc.String()})
	}
	targetMode, setI, setF := exc.targetMode()

	m.cpu.excLatch = exc

	savedPC := m.cpu.PackedPC()
	prevMode := m.cpu.Mode()
	m.cpu.setMode(targetMode)
	m.cpu.SetLinkRegister(savedPC)
	m.cpu.setIF(setI || m.cpu.iMasked(), setF || m.cpu.fMasked())
	m.cpu.SetPCAddr(vector)

	m.log.Debug("trap",
		"exception", exc.String(),
		"from_mode", prevMode.String(),
		"to_mode", targetMode.String(),
		"vector", vector,
	)
}

// Run executes cycles until halt is closed or receives a value. It never
// returns a non-nil error for guest exceptions (§7); only UniverseBroken
// or a host-side memory fault on startup would do so, and the latter
// cannot occur once New/LoadROM have succeeded.
func (m *Machine) Run(halt <-chan struct{}) error {
	m.log.Info("run: starting execution loop")
	for {
		select {
		case <-halt:
			m.log.Info("run: halted", "cycles", m.cycles)
			return nil
		default:
		}
		if _, err := m.Step(); err != nil {
			return err
		}
	}
}
