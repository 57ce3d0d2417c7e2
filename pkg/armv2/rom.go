package armv2

import "io"

// minROMBytes is §6's floor: the first 0x20 bytes are vectors, and at
// least one instruction word must follow.
const minROMBytes = 0x20 + 4

// LoadROM reads at most PageSize bytes from r into page 0 (read-only,
// executable). Inputs shorter than minROMBytes fail with IoError and leave
// page 0 untouched.
func (m *Machine) LoadROM(r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, PageSize+1))
	if err != nil {
		return statusWrap(IoError, "reading boot ROM", err)
	}
	if len(data) > PageSize {
		return statusf(IoError, "boot ROM exceeds page size %d bytes", PageSize)
	}
	if len(data) < minROMBytes {
		return statusf(IoError, "boot ROM of %d bytes is shorter than the %d-byte minimum", len(data), minROMBytes)
	}
	if err := m.mem.LoadPage0(data); err != nil {
		return statusWrap(IoError, "installing boot ROM into page 0", err)
	}
	return nil
}
