package emu

import "github.com/sarchlab/rv5sim/insts"

// aluCompute evaluates the RV32I integer ALU operation named by funct3
// against two 32-bit operands. funct7 disambiguates ADD/SUB and SRL/SRA
// for OP (register-register); isImm must be true for OP_IMM
// (register-immediate), where funct7's bit position is occupied by the
// immediate's upper bits for every funct3 except SRLI/SRAI, so ADDI must
// never be read as a subtract.
func aluCompute(funct3, funct7 uint8, a, b uint32, isImm bool) uint32 {
	switch funct3 {
	case insts.Funct3ADDSUB:
		if !isImm && funct7 == insts.Funct7SUBSRA {
			return a - b
		}
		return a + b
	case insts.Funct3SLL:
		return a << (b & 0x1f)
	case insts.Funct3SLT:
		if int32(a) < int32(b) {
			return 1
		}
		return 0
	case insts.Funct3SLTU:
		if a < b {
			return 1
		}
		return 0
	case insts.Funct3XOR:
		return a ^ b
	case insts.Funct3SRL_SRA:
		if funct7 == insts.Funct7SUBSRA {
			return uint32(int32(a) >> (b & 0x1f))
		}
		return a >> (b & 0x1f)
	case insts.Funct3OR:
		return a | b
	case insts.Funct3AND:
		return a & b
	default:
		return 0
	}
}

// branchTaken evaluates a BRANCH instruction's condition against its two
// operand values. RISC-V branches compare two registers directly; there
// is no condition-flags register to consult.
func branchTaken(funct3 uint8, a, b uint32) bool {
	switch funct3 {
	case insts.Funct3BEQ:
		return a == b
	case insts.Funct3BNE:
		return a != b
	case insts.Funct3BLT:
		return int32(a) < int32(b)
	case insts.Funct3BGE:
		return int32(a) >= int32(b)
	case insts.Funct3BLTU:
		return a < b
	case insts.Funct3BGEU:
		return a >= b
	default:
		return false
	}
}
