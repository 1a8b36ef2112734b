package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv5sim/emu"
)

var _ = Describe("RegFile", func() {
	var rf *emu.RegFile

	BeforeEach(func() {
		rf = &emu.RegFile{}
	})

	It("reads and writes general-purpose registers", func() {
		rf.WriteReg(5, 0xdeadbeef)
		Expect(rf.ReadReg(5)).To(Equal(uint32(0xdeadbeef)))
	})

	It("hardwires x0 to zero on read", func() {
		Expect(rf.ReadReg(0)).To(Equal(uint32(0)))
	})

	It("discards writes to x0", func() {
		rf.WriteReg(0, 123)
		Expect(rf.ReadReg(0)).To(Equal(uint32(0)))
	})
})
