// Package pipeline implements the five-stage in-order RISC-V pipeline
// controller: the synchronous tick loop that snapshots every latch, applies
// hazard detection and forwarding, resolves branches in ID, drives cache
// stalls, handles precise exceptions and halt, and publishes the next
// cycle's five latches. It is grounded on the teacher's timing/pipeline
// tick/hazard/stage-register structure, restructured around the five named
// latches (IF, ID, EX, MEM, WB) this core's data model requires.
package pipeline

import (
	"github.com/sarchlab/rv5sim/emu"
	"github.com/sarchlab/rv5sim/insts"
	"github.com/sarchlab/rv5sim/snapshot"
	"github.com/sarchlab/rv5sim/timing/cache"
)

// ExceptionHandlerPC is the fixed redirect target for both precise
// exception kinds.
const ExceptionHandlerPC = 0x8000

// Latch indices into Controller.latches.
const (
	latchIF = iota
	latchID
	latchEX
	latchMEM
	latchWB
	numLatches
)

// RunStatus is the outcome of a run (spec.md §7).
type RunStatus uint8

const (
	// RunSuccess means the requested number of cycles completed with
	// neither a halt nor an exception.
	RunSuccess RunStatus = iota
	// RunHalt means the HALT sentinel reached WB and retired.
	RunHalt
	// RunError means a precise exception redirected control to the
	// handler address.
	RunError
)

// String renders a RunStatus for logging/debugging.
func (s RunStatus) String() string {
	switch s {
	case RunHalt:
		return "HALT"
	case RunError:
		return "ERROR"
	default:
		return "SUCCESS"
	}
}

// Controller owns the five pipeline latches and the architectural state
// (register file, memory, caches) they act on. It is single-threaded and
// synchronous: one call to Tick advances exactly one cycle.
type Controller struct {
	regFile *emu.RegFile
	memory  *emu.Memory
	decoder *insts.Decoder
	iCache  *cache.Cache
	dCache  *cache.Cache
	sink    snapshot.OutputSink

	latches [numLatches]emu.Instruction

	// pc is the address of the next fetch.
	pc uint32

	cycleCount          uint64
	dynamicInstructions uint64
	loadStallCount      uint64

	iMissRemaining uint64
	dMissRemaining uint64
	iMissPendingPC uint32

	loadBranchExtra bool
}

// New creates a Controller over the given architectural state. iCache and
// dCache must be freshly constructed (or Reset) caches.
func New(regFile *emu.RegFile, memory *emu.Memory, iCache, dCache *cache.Cache, sink snapshot.OutputSink) *Controller {
	return &Controller{
		regFile: regFile,
		memory:  memory,
		decoder: insts.NewDecoder(),
		iCache:  iCache,
		dCache:  dCache,
		sink:    sink,
	}
}

// Init resets every latch to IDLE, then performs the one initial I-cache
// access at PC=0 and installs the fetched instruction into the IF latch
// with status SPECULATIVE (spec.md §4.2.9). The resulting state is
// emitted as the cycle-0 snapshot: spec.md §8's first quantified
// invariant is 0-based ("cycle equals the count of prior snapshots"),
// and this cycle-0 record is what shows the initial fetch already
// populated ahead of any tick.
func (c *Controller) Init() {
	for i := range c.latches {
		c.latches[i] = emu.IdleNop()
	}

	c.pc = 0
	initial := emu.SimIF(c.pc, c.memory)
	initial.Status = emu.StatusSpeculative
	hit := c.iCache.Access(uint64(c.pc), cache.Read)
	if !hit {
		c.iMissRemaining = c.iCache.MissLatency()
		c.iMissPendingPC = c.pc
	}
	c.latches[latchIF] = initial
	c.pc += 4

	c.emitSnapshot()
}

// RunCycles runs n cycles, or until halt/error, whichever comes first. n==0
// means run until halt or error.
func (c *Controller) RunCycles(n uint64) RunStatus {
	if n == 0 {
		return c.RunTillHalt()
	}
	status := RunSuccess
	for i := uint64(0); i < n; i++ {
		status = c.Tick()
		if status != RunSuccess {
			break
		}
	}
	return status
}

// RunTillHalt runs until the pipeline halts or faults.
func (c *Controller) RunTillHalt() RunStatus {
	for {
		status := c.Tick()
		if status != RunSuccess {
			return status
		}
	}
}

// Finalize computes the final statistics record and hands it to the sink,
// if one is attached.
func (c *Controller) Finalize() snapshot.Statistics {
	stats := snapshot.Statistics{
		DynamicInstructions: c.dynamicInstructions,
		TotalCycles:         c.cycleCount,
		ICHits:              c.iCache.Hits(),
		ICMisses:            c.iCache.Misses(),
		DCHits:              c.dCache.Hits(),
		DCMisses:            c.dCache.Misses(),
		LoadStalls:          c.loadStallCount,
	}
	if c.sink != nil {
		c.sink.Finalize(stats)
	}
	return stats
}

// Tick advances the pipeline by exactly one cycle.
func (c *Controller) Tick() RunStatus {
	c.cycleCount++
	snap := c.latches

	if c.dMissRemaining > 0 {
		return c.tickFrozen(snap)
	}
	return c.tickNormal(snap)
}

// tickFrozen republishes every latch but WB unchanged: the whole pipeline
// is held while a D-cache miss is in flight. WB emits a BUBBLE every such
// cycle; the older instruction already in WB retired on the detection
// cycle, before the freeze began.
func (c *Controller) tickFrozen(snap [numLatches]emu.Instruction) RunStatus {
	next := snap
	next[latchWB] = emu.Bubble()

	c.dMissRemaining--
	if c.iMissRemaining > 0 {
		c.iMissRemaining--
	}

	c.latches = next
	c.emitSnapshot()
	return RunSuccess
}

// tickNormal runs one non-frozen cycle: hazard detection, forwarding,
// branch resolution, cache accesses and exception checks all happen here
// against the pre-tick snapshot.
func (c *Controller) tickNormal(snap [numLatches]emu.Instruction) RunStatus {
	var next [numLatches]emu.Instruction

	haz := detectHazard(snap[latchID], snap[latchEX], c.loadBranchExtra)
	c.loadBranchExtra = haz.StartsLoadBranch
	if haz.CountAsStall {
		c.loadStallCount++
	}

	// WB: always derived from snap[MEM], independent of everything else
	// this cycle (it is the oldest in-flight instruction).
	next[latchWB] = emu.SimWB(snap[latchMEM], c.regFile)
	halted := next[latchWB].Status == emu.StatusNormal && next[latchWB].IsHalt
	if next[latchWB].Status == emu.StatusNormal {
		c.dynamicInstructions++
	}

	// MEM: derived from snap[EX].
	memException := false
	if isActive(snap[latchEX].Status) && (snap[latchEX].ReadsMem || snap[latchEX].WritesMem) {
		if uint64(snap[latchEX].MemAddr) >= emu.MemorySize {
			next[latchMEM] = snap[latchEX]
			next[latchMEM].Status = emu.StatusSquashed
			memException = true
		} else {
			op := cache.Write
			if snap[latchEX].ReadsMem {
				op = cache.Read
			}
			hit := c.dCache.Access(uint64(snap[latchEX].MemAddr), op)
			if !hit {
				c.dMissRemaining = c.dCache.MissLatency()
			}
			forwarded := forwardStoreData(snap[latchEX], snap[latchWB])
			result := emu.SimMEM(forwarded, c.memory)
			result.Status = snap[latchEX].Status
			next[latchMEM] = result
		}
	} else {
		next[latchMEM] = snap[latchEX]
	}

	// EX: derived from snap[ID], unless the hazard table stalls it.
	branchTaken := false
	var branchTarget uint32
	switch {
	case haz.StallID:
		if haz.BubbleEX {
			next[latchEX] = emu.Bubble()
		} else {
			next[latchEX] = snap[latchID]
		}
	case isActive(snap[latchID].Status):
		resolved := forwardOperands(snap[latchID], snap[latchEX], snap[latchMEM])
		if resolved.Opcode.IsControl() && !resolved.IsNop {
			resolved = emu.SimNextPCResolution(resolved)
			if resolved.NextPC != resolved.PC+4 {
				branchTaken = true
				branchTarget = resolved.NextPC
			}
		}
		result := emu.SimEX(resolved)
		result.Status = snap[latchID].Status
		next[latchEX] = result
	default:
		next[latchEX] = snap[latchID]
	}

	// ID: derived from snap[IF], unless stalled, still waiting on an
	// outstanding I-miss, or the upstream fetch was itself squashed. The
	// I-miss counter, once outstanding, decrements exactly once per
	// non-frozen cycle regardless of any unrelated hazard stall.
	iMissOutstanding := c.iMissRemaining > 0
	if iMissOutstanding {
		c.iMissRemaining--
	}

	illegal := false
	switch {
	case haz.StallID:
		next[latchID] = snap[latchID]
	case iMissOutstanding:
		next[latchID] = emu.Bubble()
	case snap[latchIF].Status == emu.StatusSquashed:
		next[latchID] = snap[latchIF]
	default:
		decoded := emu.SimID(snap[latchIF], c.decoder, c.regFile)
		decoded.Status = emu.StatusNormal
		switch {
		case !decoded.IsLegal:
			decoded.Status = emu.StatusSquashed
			illegal = true
		case branchTaken:
			decoded.Status = emu.StatusSquashed
		}
		next[latchID] = decoded
	}

	exception := memException || illegal

	// IF: fetch at c.pc, unless stalled or still waiting on the same
	// outstanding I-miss.
	switch {
	case haz.StallIF:
		next[latchIF] = snap[latchIF]
	case iMissOutstanding:
		next[latchIF] = snap[latchIF]
	default:
		fetched := emu.SimIF(c.pc, c.memory)
		if isActive(snap[latchID].Status) && snap[latchID].Opcode.IsControl() && !snap[latchID].IsNop {
			fetched.Status = emu.StatusSpeculative
		} else {
			fetched.Status = emu.StatusNormal
		}
		hit := c.iCache.Access(uint64(c.pc), cache.Read)
		if !hit {
			c.iMissRemaining = c.iCache.MissLatency()
			c.iMissPendingPC = c.pc
		}
		next[latchIF] = fetched
	}

	switch {
	case branchTaken:
		if c.iMissRemaining > 0 {
			c.iCache.Invalidate(uint64(c.iMissPendingPC))
			c.iMissRemaining = 0
		}
		next[latchIF] = emu.Instruction{PC: branchTarget, Status: emu.StatusSquashed}
		c.pc = branchTarget
	case exception:
		c.iMissRemaining = 0
		c.dMissRemaining = 0
		c.loadBranchExtra = false
		if memException {
			// The faulting instruction was in EX' this tick and is already
			// squashed in next[latchMEM]; the instructions that advanced
			// into EX and ID this same tick are younger in program order
			// and must not commit either.
			next[latchEX].Status = emu.StatusSquashed
			next[latchID].Status = emu.StatusSquashed
		}
		next[latchIF] = emu.Instruction{PC: ExceptionHandlerPC, Status: emu.StatusSquashed}
		c.pc = ExceptionHandlerPC
	case haz.StallIF:
		// pc unchanged
	case iMissOutstanding:
		// pc unchanged: the IF latch was held, not fetched, this cycle.
	default:
		c.pc += 4
	}

	c.latches = next
	c.emitSnapshot()

	switch {
	case exception:
		return RunError
	case halted:
		return RunHalt
	default:
		return RunSuccess
	}
}

func (c *Controller) emitSnapshot() {
	if c.sink == nil {
		return
	}
	l := c.latches
	c.sink.Emit(snapshot.Snapshot{
		Cycle:     c.cycleCount,
		IFPC:      l[latchIF].PC,
		IFStatus:  l[latchIF].Status,
		IDInstr:   l[latchID].Raw,
		IDStatus:  l[latchID].Status,
		EXInstr:   l[latchEX].Raw,
		EXStatus:  l[latchEX].Status,
		MEMInstr:  l[latchMEM].Raw,
		MEMStatus: l[latchMEM].Status,
		WBInstr:   l[latchWB].Raw,
		WBStatus:  l[latchWB].Status,
	})
}
