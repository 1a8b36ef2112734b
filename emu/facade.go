package emu

import "github.com/sarchlab/rv5sim/insts"

// This file is the functional instruction semantics façade spec.md §4.3
// declares as an external collaborator: five pure, stage-shaped functions
// (plus the preliminary fetch) that compute decode fields and result
// values given the current latch contents and the architectural state
// (register file, memory). None of them carry timing state or know
// anything about hazards, forwarding, or stalling — that is entirely the
// pipeline controller's job.

// SimIF fetches the instruction word at pc from memory and returns the
// corresponding Instruction value with only its fetch-stage fields
// populated. Decoding happens in SimID.
func SimIF(pc uint32, memory *Memory) Instruction {
	word := memory.Read32(uint64(pc))
	return Instruction{
		Raw:    word,
		PC:     pc,
		NextPC: pc + 4,
	}
}

// SimID decodes the instruction fetched into ifLatch, reads its source
// operands from regFile, and sets a provisional NextPC (sequential; control
// instructions have it refined by SimNextPCResolution once operands are
// forwarded).
func SimID(ifLatch Instruction, decoder *insts.Decoder, regFile *RegFile) Instruction {
	d := decoder.Decode(ifLatch.Raw)

	out := Instruction{
		Raw:       ifLatch.Raw,
		PC:        ifLatch.PC,
		NextPC:    ifLatch.PC + 4,
		Opcode:    d.Opcode,
		Rs1:       d.Rs1,
		Rs2:       d.Rs2,
		Rd:        d.Rd,
		ReadsRs1:  d.ReadsRs1,
		ReadsRs2:  d.ReadsRs2,
		WritesRd:  d.WritesRd,
		ReadsMem:  d.ReadsMem,
		WritesMem: d.WritesMem,
		DoesArith: d.DoesArith,
		Funct3:    d.Funct3,
		Funct7:    d.Funct7,
		Imm:       d.Imm,
		IsNop:     d.IsNop,
		IsHalt:    d.IsHalt,
		IsLegal:   d.IsLegal,
	}

	if out.ReadsRs1 {
		out.Op1Val = regFile.ReadReg(out.Rs1)
	}
	if out.ReadsRs2 {
		out.Op2Val = regFile.ReadReg(out.Rs2)
	}

	// JAL/JALR write the link address (pc+4); treat that as an ALU-like
	// result so it participates in the same EX->ID/MEM->ID forwarding
	// paths as any other register write.
	if out.Opcode == insts.OpJAL || out.Opcode == insts.OpJALR {
		out.WritesRd = true
		out.DoesArith = true
	}

	if out.Opcode.IsControl() {
		out = SimNextPCResolution(out)
	}

	return out
}

// SimNextPCResolution recomputes NextPC for a control instruction in ID,
// using its (possibly forwarded) Op1Val/Op2Val. Branch prediction is
// always-not-taken (spec.md §4.2.5); this is what determines whether that
// prediction was wrong.
func SimNextPCResolution(idLatch Instruction) Instruction {
	switch idLatch.Opcode {
	case insts.OpBranch:
		if branchTaken(idLatch.Funct3, idLatch.Op1Val, idLatch.Op2Val) {
			idLatch.NextPC = uint32(int32(idLatch.PC) + idLatch.Imm)
		} else {
			idLatch.NextPC = idLatch.PC + 4
		}
	case insts.OpJAL:
		idLatch.NextPC = uint32(int32(idLatch.PC) + idLatch.Imm)
	case insts.OpJALR:
		idLatch.NextPC = (idLatch.Op1Val + uint32(idLatch.Imm)) &^ 1
	}
	return idLatch
}

// SimEX runs ALU/address-calculation semantics on the (forwarded) ID
// latch contents.
func SimEX(idLatch Instruction) Instruction {
	out := idLatch

	switch idLatch.Opcode {
	case insts.OpOP:
		out.ALUResult = aluCompute(idLatch.Funct3, idLatch.Funct7, idLatch.Op1Val, idLatch.Op2Val, false)
	case insts.OpOPImm:
		out.ALUResult = aluCompute(idLatch.Funct3, idLatch.Funct7, idLatch.Op1Val, uint32(idLatch.Imm), true)
	case insts.OpLoad, insts.OpStore:
		out.MemAddr = idLatch.Op1Val + uint32(idLatch.Imm)
	case insts.OpLUI:
		out.ALUResult = uint32(idLatch.Imm)
	case insts.OpAUIPC:
		out.ALUResult = idLatch.PC + uint32(idLatch.Imm)
	case insts.OpJAL, insts.OpJALR:
		out.ALUResult = idLatch.PC + 4
	}

	return out
}

// SimMEM runs load/store semantics on the EX latch contents. memory is
// the untimed backing store; the D-cache timing contract is entirely the
// pipeline controller's concern and is consulted separately.
func SimMEM(exLatch Instruction, memory *Memory) Instruction {
	out := exLatch

	switch exLatch.Opcode {
	case insts.OpLoad:
		out.MemResult = loadValue(memory, exLatch.MemAddr, exLatch.Funct3)
	case insts.OpStore:
		storeValue(memory, exLatch.MemAddr, exLatch.Funct3, exLatch.Op2Val)
	}

	return out
}

// SimWB performs the register write for a MEM latch, if applicable:
// writes_rd must be set, rd must not be x0, and the instruction must be
// in NORMAL status (spec.md §4.2.2 step 1).
func SimWB(memLatch Instruction, regFile *RegFile) Instruction {
	if memLatch.WritesRd && memLatch.Rd != 0 && memLatch.Status == StatusNormal {
		if memLatch.ReadsMem {
			regFile.WriteReg(memLatch.Rd, memLatch.MemResult)
		} else {
			regFile.WriteReg(memLatch.Rd, memLatch.ALUResult)
		}
	}
	return memLatch
}

func loadValue(memory *Memory, addr uint32, funct3 uint8) uint32 {
	switch funct3 {
	case insts.Funct3LB:
		return uint32(int32(int8(memory.Read8(uint64(addr)))))
	case insts.Funct3LH:
		return uint32(int32(int16(memory.Read16(uint64(addr)))))
	case insts.Funct3LW:
		return memory.Read32(uint64(addr))
	case insts.Funct3LBU:
		return uint32(memory.Read8(uint64(addr)))
	case insts.Funct3LHU:
		return uint32(memory.Read16(uint64(addr)))
	default:
		return 0
	}
}

func storeValue(memory *Memory, addr uint32, funct3 uint8, value uint32) {
	switch funct3 {
	case insts.Funct3SB:
		memory.Write8(uint64(addr), uint8(value))
	case insts.Funct3SH:
		memory.Write16(uint64(addr), uint16(value))
	case insts.Funct3SW:
		memory.Write32(uint64(addr), value)
	}
}
