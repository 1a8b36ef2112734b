// Package emu provides functional RISC-V instruction semantics: the
// register file, the byte-addressable memory store, and the pure
// stage-shaped functions that compute decode fields and result values for
// an instruction. None of it carries timing state.
package emu

// MemorySize is the size, in bytes, of the backing store. Any load or
// store address greater than or equal to this value is out of range and
// triggers a memory exception in the pipeline controller.
const MemorySize = 1 << 20 // 1 MiB

// Memory is a flat, byte-addressable store. It has no timing knowledge:
// every access is instantaneous as far as Memory itself is concerned. The
// cache model and pipeline controller are the only components aware that
// a real access takes cycles.
type Memory struct {
	bytes [MemorySize]byte
}

// NewMemory creates a zero-filled memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// InRange reports whether addr is a legal address for this store.
func (m *Memory) InRange(addr uint64) bool {
	return addr < MemorySize
}

// Read8 reads a single byte. Out-of-range reads return 0; callers that
// care about bounds (the pipeline controller) must check InRange first.
func (m *Memory) Read8(addr uint64) uint8 {
	if !m.InRange(addr) {
		return 0
	}
	return m.bytes[addr]
}

// Write8 writes a single byte. Out-of-range writes are silently dropped;
// callers that care about bounds must check InRange first.
func (m *Memory) Write8(addr uint64, v uint8) {
	if !m.InRange(addr) {
		return
	}
	m.bytes[addr] = v
}

// Read16 reads a little-endian halfword.
func (m *Memory) Read16(addr uint64) uint16 {
	return uint16(m.Read8(addr)) | uint16(m.Read8(addr+1))<<8
}

// Write16 writes a little-endian halfword.
func (m *Memory) Write16(addr uint64, v uint16) {
	m.Write8(addr, uint8(v))
	m.Write8(addr+1, uint8(v>>8))
}

// Read32 reads a little-endian word.
func (m *Memory) Read32(addr uint64) uint32 {
	return uint32(m.Read16(addr)) | uint32(m.Read16(addr+2))<<16
}

// Write32 writes a little-endian word.
func (m *Memory) Write32(addr uint64, v uint32) {
	m.Write16(addr, uint16(v))
	m.Write16(addr+2, uint16(v>>16))
}
