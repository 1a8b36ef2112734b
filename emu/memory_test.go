package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv5sim/emu"
)

var _ = Describe("Memory", func() {
	var m *emu.Memory

	BeforeEach(func() {
		m = emu.NewMemory()
	})

	It("round-trips a byte", func() {
		m.Write8(0x100, 0x42)
		Expect(m.Read8(0x100)).To(Equal(uint8(0x42)))
	})

	It("round-trips a little-endian halfword", func() {
		m.Write16(0x200, 0xbeef)
		Expect(m.Read16(0x200)).To(Equal(uint16(0xbeef)))
		Expect(m.Read8(0x200)).To(Equal(uint8(0xef)))
		Expect(m.Read8(0x201)).To(Equal(uint8(0xbe)))
	})

	It("round-trips a little-endian word", func() {
		m.Write32(0x300, 0xdeadbeef)
		Expect(m.Read32(0x300)).To(Equal(uint32(0xdeadbeef)))
	})

	It("reports addresses within MemorySize as in range", func() {
		Expect(m.InRange(0)).To(BeTrue())
		Expect(m.InRange(emu.MemorySize - 1)).To(BeTrue())
		Expect(m.InRange(emu.MemorySize)).To(BeFalse())
	})

	It("silently drops out-of-range writes and reads zero", func() {
		m.Write8(emu.MemorySize, 0xff)
		Expect(m.Read8(emu.MemorySize)).To(Equal(uint8(0)))
	})
})
