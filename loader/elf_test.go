package loader_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv5sim/emu"
	"github.com/sarchlab/rv5sim/loader"
)

var _ = Describe("LoadInto", func() {
	It("copies segment data into memory at its virtual address", func() {
		prog := &loader.Program{
			EntryPoint: 0,
			Segments: []loader.Segment{
				{VirtAddr: 0x100, Data: []byte{0x01, 0x02, 0x03, 0x04}, MemSize: 4},
			},
		}
		memory := emu.NewMemory()

		loader.LoadInto(prog, memory)

		Expect(memory.Read32(0x100)).To(Equal(uint32(0x04030201)))
	})

	It("zero-fills the BSS tail beyond the segment's file data", func() {
		prog := &loader.Program{
			Segments: []loader.Segment{
				{VirtAddr: 0x200, Data: []byte{0xff}, MemSize: 4},
			},
		}
		memory := emu.NewMemory()
		memory.Write32(0x200, 0xaaaaaaaa) // pre-existing garbage

		loader.LoadInto(prog, memory)

		Expect(memory.Read8(0x200)).To(Equal(uint8(0xff)))
		Expect(memory.Read8(0x201)).To(Equal(uint8(0)))
		Expect(memory.Read8(0x202)).To(Equal(uint8(0)))
		Expect(memory.Read8(0x203)).To(Equal(uint8(0)))
	})

	It("loads multiple segments independently", func() {
		prog := &loader.Program{
			Segments: []loader.Segment{
				{VirtAddr: 0x0, Data: []byte{0x11, 0x11, 0x11, 0x11}, MemSize: 4, Flags: loader.SegmentFlagExecute | loader.SegmentFlagRead},
				{VirtAddr: 0x1000, Data: []byte{0x22, 0x22}, MemSize: 2, Flags: loader.SegmentFlagRead | loader.SegmentFlagWrite},
			},
		}
		memory := emu.NewMemory()

		loader.LoadInto(prog, memory)

		Expect(memory.Read32(0x0)).To(Equal(uint32(0x11111111)))
		Expect(memory.Read16(0x1000)).To(Equal(uint16(0x2222)))
	})
})

var _ = Describe("Load", func() {
	It("rejects a file that is not a valid ELF binary", func() {
		_, err := loader.Load("/nonexistent/path/to/binary.elf")
		Expect(err).To(HaveOccurred())
	})
})
