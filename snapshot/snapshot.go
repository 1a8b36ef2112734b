// Package snapshot implements the pipeline-state logger spec.md §6
// declares as an external collaborator: a per-cycle Snapshot record, an
// OutputSink it is emitted to, and the final Statistics record produced
// at Finalize.
package snapshot

import "github.com/sarchlab/rv5sim/emu"

// Snapshot is one per-cycle record (spec.md §6). Instruction fields are
// the raw 32-bit words, as the spec requires.
type Snapshot struct {
	Cycle uint64 `json:"cycle"`

	IFPC     uint32     `json:"if_pc"`
	IFStatus emu.Status `json:"if_status"`

	IDInstr  uint32     `json:"id_instr"`
	IDStatus emu.Status `json:"id_status"`

	EXInstr  uint32     `json:"ex_instr"`
	EXStatus emu.Status `json:"ex_status"`

	MEMInstr  uint32     `json:"mem_instr"`
	MEMStatus emu.Status `json:"mem_status"`

	WBInstr  uint32     `json:"wb_instr"`
	WBStatus emu.Status `json:"wb_status"`
}

// Statistics is the final-statistics record spec.md §6 defines, emitted
// once by Finalize.
type Statistics struct {
	DynamicInstructions uint64 `json:"dynamic_instructions"`
	TotalCycles         uint64 `json:"total_cycles"`
	ICHits              uint64 `json:"ic_hits"`
	ICMisses            uint64 `json:"ic_misses"`
	DCHits              uint64 `json:"dc_hits"`
	DCMisses            uint64 `json:"dc_misses"`
	LoadStalls          uint64 `json:"load_stalls"`
}

// OutputSink receives the per-cycle snapshot stream and the final
// statistics record. The pipeline controller knows nothing about how a
// sink renders them — it only ever calls Emit/Finalize.
type OutputSink interface {
	Emit(Snapshot)
	Finalize(Statistics)
}
