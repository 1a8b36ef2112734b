package emu

import (
	"encoding/json"
	"fmt"

	"github.com/sarchlab/rv5sim/insts"
)

// Status is the lifecycle state of an instruction occupying a pipeline
// latch (spec.md §3).
type Status uint8

const (
	// StatusIdle marks a latch that has never held a real instruction
	// (the controller's initial state for every latch but IF).
	StatusIdle Status = iota
	// StatusNormal is an instruction proceeding normally; it will commit
	// its architectural effects when it reaches WB.
	StatusNormal
	// StatusSpeculative marks an instruction fetched while a control
	// instruction ahead of it is still unresolved; it may be squashed.
	StatusSpeculative
	// StatusSquashed marks an instruction cancelled by a misprediction or
	// an exception; it must not commit any architectural side effect.
	StatusSquashed
	// StatusBubble is a NOP injected to preserve pipeline timing.
	StatusBubble
)

// String renders the status for logging/debugging.
func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "NORMAL"
	case StatusSpeculative:
		return "SPECULATIVE"
	case StatusSquashed:
		return "SQUASHED"
	case StatusBubble:
		return "BUBBLE"
	default:
		return "IDLE"
	}
}

// MarshalJSON renders a Status as its name rather than its numeric value,
// so snapshot traces stay human-readable.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a Status from the name MarshalJSON writes.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for candidate := StatusIdle; candidate <= StatusBubble; candidate++ {
		if candidate.String() == name {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", name)
}

// Instruction is the value carried by every pipeline latch (spec.md §3).
// It is the only unit of data the controller inspects or mutates; the
// functional semantics façade below is the only code that fills in its
// stage-output fields.
type Instruction struct {
	Raw    uint32
	PC     uint32
	NextPC uint32

	Opcode insts.Opcode

	Rs1, Rs2, Rd uint8
	ReadsRs1     bool
	ReadsRs2     bool
	WritesRd     bool

	ReadsMem  bool
	WritesMem bool
	DoesArith bool

	// Funct3/Funct7/Imm are the raw decoded fields the façade needs to
	// compute stage outputs; they are not inspected by the controller
	// itself.
	Funct3 uint8
	Funct7 uint8
	Imm    int32

	Op1Val uint32
	Op2Val uint32

	ALUResult uint32
	MemAddr   uint32
	MemResult uint32

	IsNop   bool
	IsHalt  bool
	IsLegal bool

	Status Status
}

// Bubble returns a bubble instruction: the architectural NOP, carrying no
// side effects, in BUBBLE status.
func Bubble() Instruction {
	return Instruction{
		Raw:     insts.NopWord,
		Opcode:  insts.OpOPImm,
		IsNop:   true,
		IsLegal: true,
		Status:  StatusBubble,
	}
}

// IdleNop returns the NOP instruction in IDLE status, the value every
// latch but IF starts with at Init.
func IdleNop() Instruction {
	b := Bubble()
	b.Status = StatusIdle
	return b
}
