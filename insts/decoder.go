package insts

// Decoded holds every field a functional execution engine needs to act on
// an instruction, plus the fields the pipeline controller inspects for
// hazard and control-flow purposes.
type Decoded struct {
	Opcode Opcode

	Rs1 uint8
	Rs2 uint8
	Rd  uint8

	Funct3 uint8
	Funct7 uint8

	// Imm is the sign-extended immediate for this encoding (zero for
	// formats with no immediate field, e.g. OP).
	Imm int32

	ReadsRs1  bool
	ReadsRs2  bool
	WritesRd  bool
	ReadsMem  bool
	WritesMem bool
	DoesArith bool

	IsNop  bool
	IsHalt bool
	// IsLegal is false for any bit pattern that does not decode to one of
	// the opcodes in spec.md's closed set.
	IsLegal bool
}

// Decoder decodes RV32I instruction words. It carries no state; a single
// Decoder may be shared across every stage that needs to decode.
type Decoder struct{}

// NewDecoder creates a RV32I decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit instruction word.
func (d *Decoder) Decode(word uint32) Decoded {
	if word == HaltWord {
		return Decoded{
			Opcode:  OpHalt,
			IsLegal: true,
			IsHalt:  true,
		}
	}

	baseOp := word & 0x7f
	rd := uint8((word >> 7) & 0x1f)
	funct3 := uint8((word >> 12) & 0x7)
	rs1 := uint8((word >> 15) & 0x1f)
	rs2 := uint8((word >> 20) & 0x1f)
	funct7 := uint8((word >> 25) & 0x7f)

	dec := Decoded{Rd: rd, Rs1: rs1, Rs2: rs2, Funct3: funct3, Funct7: funct7}

	switch baseOp {
	case baseOpOP:
		dec.Opcode = OpOP
		dec.ReadsRs1 = true
		dec.ReadsRs2 = true
		dec.WritesRd = true
		dec.DoesArith = true
		dec.IsLegal = true

	case baseOpOPImm:
		dec.Opcode = OpOPImm
		dec.ReadsRs1 = true
		dec.WritesRd = true
		dec.DoesArith = true
		dec.Imm = signExtend(word>>20, 12)
		dec.IsLegal = true

	case baseOpLoad:
		dec.Opcode = OpLoad
		dec.ReadsRs1 = true
		dec.WritesRd = true
		dec.ReadsMem = true
		dec.Imm = signExtend(word>>20, 12)
		dec.IsLegal = true

	case baseOpStore:
		dec.Opcode = OpStore
		dec.ReadsRs1 = true
		dec.ReadsRs2 = true
		dec.WritesMem = true
		imm := ((word >> 25) << 5) | ((word >> 7) & 0x1f)
		dec.Imm = signExtend(imm, 12)
		dec.IsLegal = true

	case baseOpBranch:
		dec.Opcode = OpBranch
		dec.ReadsRs1 = true
		dec.ReadsRs2 = true
		imm := ((word >> 31) << 12) |
			(((word >> 7) & 0x1) << 11) |
			(((word >> 25) & 0x3f) << 5) |
			(((word >> 8) & 0xf) << 1)
		dec.Imm = signExtend(imm, 13)
		dec.IsLegal = true

	case baseOpJAL:
		dec.Opcode = OpJAL
		dec.WritesRd = true
		imm := ((word >> 31) << 20) |
			(((word >> 12) & 0xff) << 12) |
			(((word >> 20) & 0x1) << 11) |
			(((word >> 21) & 0x3ff) << 1)
		dec.Imm = signExtend(imm, 21)
		dec.IsLegal = true

	case baseOpJALR:
		dec.Opcode = OpJALR
		dec.ReadsRs1 = true
		dec.WritesRd = true
		dec.Imm = signExtend(word>>20, 12)
		dec.IsLegal = true

	case baseOpLUI:
		dec.Opcode = OpLUI
		dec.WritesRd = true
		dec.DoesArith = true
		dec.Imm = int32(word & 0xfffff000)
		dec.IsLegal = true

	case baseOpAUIPC:
		dec.Opcode = OpAUIPC
		dec.WritesRd = true
		dec.DoesArith = true
		dec.Imm = int32(word & 0xfffff000)
		dec.IsLegal = true

	case baseOpSystem:
		// ECALL/EBREAK and CSR instructions decode as legal, inert SYSTEM
		// instructions: no registers are read or written, no memory
		// activity. A full syscall ABI is out of scope for this core.
		dec.Opcode = OpSystem
		dec.IsLegal = true

	default:
		dec.Opcode = OpUnknown
		dec.IsLegal = false
	}

	if word == NopWord {
		dec.IsNop = true
		dec.WritesRd = false
	}

	return dec
}

// signExtend sign-extends the low bits-wide field of v to int32.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
