package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv5sim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	It("decodes the HALT sentinel ahead of any opcode field", func() {
		dec := decoder.Decode(insts.HaltWord)
		Expect(dec.Opcode).To(Equal(insts.OpHalt))
		Expect(dec.IsHalt).To(BeTrue())
		Expect(dec.IsLegal).To(BeTrue())
	})

	It("decodes the architectural NOP", func() {
		dec := decoder.Decode(insts.NopWord)
		Expect(dec.IsNop).To(BeTrue())
		Expect(dec.WritesRd).To(BeFalse())
	})

	It("decodes an R-type OP instruction", func() {
		// add x3, x1, x2
		w := uint32(2)<<20 | uint32(1)<<15 | uint32(3)<<7 | 0b0110011
		dec := decoder.Decode(w)
		Expect(dec.Opcode).To(Equal(insts.OpOP))
		Expect(dec.Rs1).To(Equal(uint8(1)))
		Expect(dec.Rs2).To(Equal(uint8(2)))
		Expect(dec.Rd).To(Equal(uint8(3)))
		Expect(dec.ReadsRs1).To(BeTrue())
		Expect(dec.ReadsRs2).To(BeTrue())
		Expect(dec.WritesRd).To(BeTrue())
		Expect(dec.DoesArith).To(BeTrue())
		Expect(dec.IsLegal).To(BeTrue())
	})

	It("decodes an I-type OP_IMM instruction with sign-extended immediate", func() {
		// addi x1, x0, -1  (imm = 0xfff = -1)
		w := uint32(0xfff)<<20 | uint32(0)<<15 | uint32(0)<<12 | uint32(1)<<7 | 0b0010011
		dec := decoder.Decode(w)
		Expect(dec.Opcode).To(Equal(insts.OpOPImm))
		Expect(dec.Imm).To(Equal(int32(-1)))
	})

	It("decodes a LOAD instruction", func() {
		// lw x5, 4(x1)
		w := uint32(4)<<20 | uint32(1)<<15 | uint32(insts.Funct3LW)<<12 | uint32(5)<<7 | 0b0000011
		dec := decoder.Decode(w)
		Expect(dec.Opcode).To(Equal(insts.OpLoad))
		Expect(dec.ReadsMem).To(BeTrue())
		Expect(dec.WritesRd).To(BeTrue())
		Expect(dec.Imm).To(Equal(int32(4)))
	})

	It("decodes an S-type STORE instruction with a split immediate", func() {
		// sw x2, 4(x1): imm[11:5]=0, imm[4:0]=4
		w := uint32(0)<<25 | uint32(2)<<20 | uint32(1)<<15 | uint32(insts.Funct3SW)<<12 | uint32(4)<<7 | 0b0100011
		dec := decoder.Decode(w)
		Expect(dec.Opcode).To(Equal(insts.OpStore))
		Expect(dec.WritesMem).To(BeTrue())
		Expect(dec.Imm).To(Equal(int32(4)))
	})

	It("decodes a JAL instruction", func() {
		// jal x1, 0 (all immediate bits zero)
		w := uint32(1)<<7 | 0b1101111
		dec := decoder.Decode(w)
		Expect(dec.Opcode).To(Equal(insts.OpJAL))
		Expect(dec.WritesRd).To(BeTrue())
		Expect(dec.Imm).To(Equal(int32(0)))
	})

	It("decodes a JALR instruction", func() {
		w := uint32(0)<<20 | uint32(1)<<15 | uint32(2)<<7 | 0b1100111
		dec := decoder.Decode(w)
		Expect(dec.Opcode).To(Equal(insts.OpJALR))
		Expect(dec.ReadsRs1).To(BeTrue())
		Expect(dec.WritesRd).To(BeTrue())
	})

	It("decodes a SYSTEM instruction as legal and inert", func() {
		w := uint32(0b1110011)
		dec := decoder.Decode(w)
		Expect(dec.Opcode).To(Equal(insts.OpSystem))
		Expect(dec.IsLegal).To(BeTrue())
		Expect(dec.ReadsRs1).To(BeFalse())
		Expect(dec.WritesRd).To(BeFalse())
	})

	It("marks an unrecognized base opcode as illegal", func() {
		w := uint32(0b1111111)
		dec := decoder.Decode(w)
		Expect(dec.Opcode).To(Equal(insts.OpUnknown))
		Expect(dec.IsLegal).To(BeFalse())
	})
})
