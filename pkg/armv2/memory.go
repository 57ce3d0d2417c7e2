package armv2

// Permission is a bitmask of what operations a page allows, modeled after
// the teacher's MemoryExec/MemoryWrite/MemoryRead flag triad.
type Permission uint32

const (
	PermRead Permission = 1 << iota
	PermWrite
	PermExec
)

const (
	// PageSizeBits fixes PAGE_SIZE = 1<<PageSizeBits bytes per page.
	PageSizeBits = 12
	PageSize     = 1 << PageSizeBits
	WordsPerPage = PageSize / 4

	// 26-bit address space: 14-bit page index, 12-bit byte offset.
	pageIndexBits = 26 - PageSizeBits
	NumPageTables = 1 << pageIndexBits
	MaxMemory     = NumPageTables * PageSize

	pageOffsetMask = PageSize - 1
)

// page is a page descriptor: an owned memory region plus its permission bits.
type page struct {
	words []uint32
	perm  Permission
}

// Memory is the paged address space: an ordered array of page slots, each
// either empty or holding a page descriptor.
type Memory struct {
	slots []*page
}

// NewMemory allocates backing RAM rounded up to a whole number of pages
// (bounded by MaxMemory) and installs page descriptors into slots
// [0, num_pages). Every installed page is initially read+write+exec, except
// page 0 which starts read+exec only (write permission is never set there).
func NewMemory(size uint32) (*Memory, error) {
	if size == 0 {
		return nil, statusf(InvalidArgs, "memory size must be nonzero")
	}
	if size > MaxMemory {
		size = MaxMemory
	}
	numPages := (size + PageSize - 1) / PageSize
	m := &Memory{slots: make([]*page, NumPageTables)}
	for i := uint32(0); i < numPages; i++ {
		perm := PermRead | PermWrite | PermExec
		if i == 0 {
			perm = PermRead | PermExec
		}
		m.slots[i] = &page{words: make([]uint32, WordsPerPage), perm: perm}
	}
	return m, nil
}

func split(addr uint32) (pageIdx, wordOff uint32) {
	addr &= MaxMemory - 1
	return addr >> PageSizeBits, (addr & pageOffsetMask) >> 2
}

// ReadWord reads the word at addr, requiring the page to carry the flags in
// need (PermRead or PermExec). On a fault it returns PrefetchAbort when need
// includes PermExec and DataAbort otherwise.
func (m *Memory) ReadWord(addr uint32, need Permission) (uint32, Exception) {
	idx, off := split(addr)
	if int(idx) >= len(m.slots) || m.slots[idx] == nil {
		return 0, faultFor(need)
	}
	p := m.slots[idx]
	if p.perm&need != need {
		return 0, faultFor(need)
	}
	return p.words[off], NoException
}

// WriteWord writes word to addr, requiring write permission. Page 0 never
// carries PermWrite, so writes there always fault.
func (m *Memory) WriteWord(addr, word uint32) Exception {
	idx, off := split(addr)
	if int(idx) >= len(m.slots) || m.slots[idx] == nil {
		return ExcDataAbort
	}
	p := m.slots[idx]
	if p.perm&PermWrite == 0 {
		return ExcDataAbort
	}
	p.words[off] = word
	return NoException
}

func faultFor(need Permission) Exception {
	if need&PermExec != 0 {
		return ExcPrefetchAbort
	}
	return ExcDataAbort
}

// LoadPage0 overwrites page 0's backing words from a little-endian byte
// slice of at most PageSize bytes, without altering page 0's permissions.
func (m *Memory) LoadPage0(data []byte) error {
	if len(data) > PageSize {
		return statusf(ValueError, "image of %d bytes exceeds page size %d", len(data), PageSize)
	}
	p := m.slots[0]
	if p == nil {
		return statusf(InvalidCPUState, "page 0 is not mapped")
	}
	words := make([]uint32, WordsPerPage)
	for i := 0; i+3 < len(data); i += 4 {
		words[i/4] = uint32(data[i]) | uint32(data[i+1])<<8 | uint32(data[i+2])<<16 | uint32(data[i+3])<<24
	}
	if rem := len(data) % 4; rem != 0 {
		base := len(data) - rem
		var w uint32
		for i := 0; i < rem; i++ {
			w |= uint32(data[base+i]) << (8 * i)
		}
		words[base/4] = w
	}
	p.words = words
	return nil
}
