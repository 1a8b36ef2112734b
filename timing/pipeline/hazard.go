package pipeline

import "github.com/sarchlab/rv5sim/emu"

// isActive reports whether a latch's status represents a real,
// in-flight instruction that can cause hazards, be forwarded from, or
// commit side effects. IDLE, SQUASHED and BUBBLE latches never do.
func isActive(s emu.Status) bool {
	return s == emu.StatusNormal || s == emu.StatusSpeculative
}

// hazardDecision is the outcome of evaluating the hazard table against a
// single cycle's ID'/EX' snapshot (spec.md §4.2.4).
type hazardDecision struct {
	StallIF       bool
	StallID       bool
	BubbleEX      bool
	CountAsStall  bool // increments load_stall_count
	StartsLoadBranch bool // arms the second stall cycle of a load-branch hazard
}

// detectHazard evaluates the hazard table in priority order against the
// ID'/EX' snapshot, committing to the first row that fires. loadBranchExtra
// is the pending-second-cycle state carried over from a prior tick; when
// it is set, this cycle is always the forced second half of a load-branch
// stall regardless of what ID'/EX' currently hold.
func detectHazard(id, ex emu.Instruction, loadBranchExtra bool) hazardDecision {
	if loadBranchExtra {
		return hazardDecision{StallIF: true, StallID: true, BubbleEX: true}
	}

	exWrites := isActive(ex.Status) && ex.WritesRd && ex.Rd != 0
	exIsLoad := exWrites && ex.ReadsMem
	exIsArith := exWrites && ex.DoesArith

	idActive := isActive(id.Status)
	idIsBranch := idActive && id.Opcode.IsControl() && !id.IsNop
	idIsStore := id.WritesMem && !id.ReadsMem

	haz1 := idActive && id.ReadsRs1 && id.Rs1 == ex.Rd
	haz2 := idActive && id.ReadsRs2 && id.Rs2 == ex.Rd

	switch {
	case exIsLoad && idIsBranch && (haz1 || haz2):
		return hazardDecision{StallIF: true, StallID: true, BubbleEX: true, CountAsStall: true, StartsLoadBranch: true}
	case exIsLoad && !idIsBranch && (haz1 || (haz2 && !idIsStore)):
		return hazardDecision{StallIF: true, StallID: true, BubbleEX: true, CountAsStall: true}
	case exIsArith && idIsBranch && (haz1 || haz2):
		return hazardDecision{StallIF: true, StallID: true, BubbleEX: true}
	default:
		return hazardDecision{}
	}
}

// forwardOperands resolves read-after-write hazards for id's source
// operands against the EX'/MEM' snapshot, in the priority order of
// spec.md §4.2.3 (EX->ID ALU result, then MEM->ID load result, then
// MEM->ID ALU result).
func forwardOperands(id, ex, mem emu.Instruction) emu.Instruction {
	out := id
	out.Op1Val = forwardReg(id.Rs1, id.ReadsRs1, id.Op1Val, ex, mem)
	out.Op2Val = forwardReg(id.Rs2, id.ReadsRs2, id.Op2Val, ex, mem)
	return out
}

func forwardReg(rs uint8, reads bool, original uint32, ex, mem emu.Instruction) uint32 {
	if !reads || rs == 0 {
		return original
	}
	if isActive(ex.Status) && ex.WritesRd && ex.Rd == rs && ex.DoesArith {
		return ex.ALUResult
	}
	if isActive(mem.Status) && mem.WritesRd && mem.Rd == rs && mem.ReadsMem {
		return mem.MemResult
	}
	if isActive(mem.Status) && mem.WritesRd && mem.Rd == rs && mem.DoesArith {
		return mem.ALUResult
	}
	return original
}

// forwardStoreData applies the WB->MEM store-data forwarding rule: a
// store in EX' reading rs2 gets its store value replaced by a load
// retiring in WB' this same cycle, if they name the same register
// (spec.md §4.2.3).
func forwardStoreData(ex, wb emu.Instruction) emu.Instruction {
	out := ex
	if ex.WritesMem && ex.ReadsRs2 && ex.Rs2 != 0 &&
		isActive(wb.Status) && wb.WritesRd && wb.ReadsMem && wb.Rd == ex.Rs2 {
		out.Op2Val = wb.MemResult
	}
	return out
}
